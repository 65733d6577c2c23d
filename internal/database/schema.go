package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL statements executed at startup. Every statement
// is idempotent (CREATE TABLE IF NOT EXISTS) so repeated boots and
// concurrent replicas are safe. The user_library join table's composite
// primary key is what gives library membership its set semantics:
// INSERT IGNORE against it is the idempotent set-add, a keyed DELETE is
// the idempotent set-remove.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(190) NOT NULL,
		email VARCHAR(190) NOT NULL,
		password_hash VARCHAR(190) NOT NULL,
		phone VARCHAR(32) NOT NULL DEFAULT '',
		role ENUM('STUDENT','ADMIN') NOT NULL DEFAULT 'STUDENT',
		sub_plan_id VARCHAR(64) NULL,
		sub_status ENUM('active','inactive','past_due') NULL,
		sub_expires_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email),
		KEY idx_users_role (role)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS content (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		title VARCHAR(190) NOT NULL,
		description TEXT NOT NULL,
		subject VARCHAR(190) NOT NULL,
		price_cents INT UNSIGNED NOT NULL DEFAULT 0,
		preview_url VARCHAR(512) NOT NULL DEFAULT '',
		content_type VARCHAR(16) NOT NULL DEFAULT 'other',
		lessons INT UNSIGNED NOT NULL DEFAULT 0,
		file_key VARCHAR(255) NOT NULL DEFAULT '',
		file_name VARCHAR(255) NOT NULL DEFAULT '',
		file_type VARCHAR(128) NOT NULL DEFAULT '',
		file_size BIGINT UNSIGNED NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_content_price (price_cents)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS user_library (
		user_id BIGINT UNSIGNED NOT NULL,
		content_id BIGINT UNSIGNED NOT NULL,
		added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, content_id),
		KEY idx_library_content (content_id),
		CONSTRAINT fk_library_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_library_content FOREIGN KEY (content_id) REFERENCES content (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_tokens_hash (token_hash),
		KEY idx_tokens_user (user_id),
		CONSTRAINT fk_tokens_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all tables required by the service if they do
// not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

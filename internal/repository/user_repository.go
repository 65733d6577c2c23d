package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/edu-content-platform/internal/model"
	"github.com/iliyamo/edu-content-platform/internal/utils"
)

// UserRepo persists rows of the 'users' table, including the inline
// subscription columns. Subscription state lives on the user row so a
// single-row write keeps a user's entitlement state read-after-write
// consistent for their own next request.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,password_hash,phone,role,sub_plan_id,sub_status,sub_expires_at,created_at,updated_at"

// Create inserts a user and returns its ID. Email uniqueness is
// enforced by the unique key; a duplicate maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, password, phone, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, phone, role) VALUES (?,?,?,?,?)",
		name, email, hash, phone, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns all users ordered by creation time. Used by the admin
// students view.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateProfile applies the non-nil fields to the user row. A nil
// pointer leaves the column untouched.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, phone, passwordHash *string) error {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if name != nil {
		sets = append(sets, "name=?")
		args = append(args, *name)
	}
	if phone != nil {
		sets = append(sets, "phone=?")
		args = append(args, *phone)
	}
	if passwordHash != nil {
		sets = append(sets, "password_hash=?")
		args = append(args, *passwordHash)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL reports zero affected rows for a no-op update too, so
		// confirm the user actually exists before reporting not found.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SetSubscription overwrites the user's subscription record wholesale.
// A repeat activation resets the clock and may change plan; there is no
// stacking.
func (r *UserRepo) SetSubscription(ctx context.Context, id uint64, planID, status string, expiresAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET sub_plan_id=?, sub_status=?, sub_expires_at=? WHERE id=?",
		planID, status, expiresAt, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account unless an admin
// already exists. The guard is the SELECT inside a single INSERT
// statement, so concurrent boots cannot create a second admin and an
// existing admin's credential is never overwritten. Returns true when
// this call created the account.
func (r *UserRepo) EnsureAdmin(ctx context.Context, name, email, passwordHash string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, role)
		 SELECT ?,?,?,'ADMIN' FROM DUAL
		 WHERE NOT EXISTS (SELECT 1 FROM users WHERE role='ADMIN')`,
		name, email, passwordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			// Another replica inserted the same admin first.
			return false, nil
		}
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface{ Scan(dest ...any) error }

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

func scanUser(s rowScanner) (model.User, error) {
	var (
		u         model.User
		planID    sql.NullString
		status    sql.NullString
		expiresAt sql.NullTime
	)
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role,
		&planID, &status, &expiresAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if planID.Valid && status.Valid && expiresAt.Valid {
		u.Subscription = &model.Subscription{
			PlanID:    planID.String,
			Status:    status.String,
			ExpiresAt: expiresAt.Time,
		}
	}
	return u, nil
}

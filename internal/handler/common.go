package handler // handler defines http handlers

import (
    "errors" // errors provides the sentinel used in currentUser
    "time"   // time is used for response timestamps

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/edu-content-platform/internal/model"
)

// currentUser extracts the authenticated user stored by the TokenAuth
// middleware. Handlers behind the middleware can rely on it being set;
// a miss means the route was registered without protection.
func currentUser(c echo.Context) (model.User, error) {
    if u, ok := c.Get("user").(model.User); ok && u.ID != 0 {
        return u, nil
    }
    return model.User{}, errors.New("no authenticated user in context")
}

// userView is the public shape of a user record. The credential hash is
// redacted here unconditionally, for every role: this struct simply has
// no field to carry it, so no response path can leak it.
type userView struct {
    ID           uint64              `json:"id"`
    Name         string              `json:"name"`
    Email        string              `json:"email"`
    Phone        string              `json:"phone,omitempty"`
    Role         string              `json:"role"`
    Subscription *model.Subscription `json:"subscription"`
    CreatedAt    time.Time           `json:"created_at"`
    UpdatedAt    time.Time           `json:"updated_at"`
}

func publicUser(u model.User) userView {
    return userView{
        ID:           u.ID,
        Name:         u.Name,
        Email:        u.Email,
        Phone:        u.Phone,
        Role:         u.Role,
        Subscription: u.Subscription,
        CreatedAt:    u.CreatedAt,
        UpdatedAt:    u.UpdatedAt,
    }
}

// catalogItem is the public catalog listing shape. Locked mirrors the
// price so mobile clients can badge gated kits without a second call;
// the artifact key never appears here.
type catalogItem struct {
    ID       uint64 `json:"id"`
    Title    string `json:"title"`
    Subject  string `json:"subject"`
    Price    uint32 `json:"price_cents"`
    Lessons  uint32 `json:"lessons"`
    Type     string `json:"type"`
    Locked   bool   `json:"locked"`
    FileSize uint64 `json:"file_size,omitempty"`
}

func toCatalogItem(c model.ContentItem) catalogItem {
    return catalogItem{
        ID:       c.ID,
        Title:    c.Title,
        Subject:  c.Subject,
        Price:    c.PriceCents,
        Lessons:  c.Lessons,
        Type:     c.Type,
        Locked:   !c.Free(),
        FileSize: c.FileSize,
    }
}

// libraryItem is the "my purchased content" shape: ownership is already
// established, so the price and lock flag are irrelevant.
type libraryItem struct {
    ID       uint64 `json:"id"`
    Title    string `json:"title"`
    Subject  string `json:"subject"`
    Lessons  uint32 `json:"lessons"`
    Type     string `json:"type"`
    FileName string `json:"file_name,omitempty"`
    FileSize uint64 `json:"file_size,omitempty"`
}

func toLibraryItem(c model.ContentItem) libraryItem {
    return libraryItem{
        ID:       c.ID,
        Title:    c.Title,
        Subject:  c.Subject,
        Lessons:  c.Lessons,
        Type:     c.Type,
        FileName: c.FileName,
        FileSize: c.FileSize,
    }
}

package storage

import (
	"errors"
	"sync"
	"time"

	"momentmap/backend/internal/config"
	"momentmap/backend/internal/models"
)

// ErrInvalidCode is returned by Login when the verification code does
// not match. No user is created or looked up in that case.
var ErrInvalidCode = errors.New("invalid verification code")

// UserStorage is the directory interface the handlers depend on.
type UserStorage interface {
	// Login validates the verification code and returns the user for
	// the phone, creating one on first sight. Lookup-or-create is
	// atomic per phone.
	Login(phone, code string) (*models.User, error)
	// FindByID looks a user up by id, for resolving session tokens.
	FindByID(id string) (*models.User, bool)
}

// UserDirectory maps phone numbers to user records. The directory only
// grows; users are never deleted or mutated after creation.
type UserDirectory struct {
	mu      sync.Mutex
	byPhone map[string]*models.User
	byID    map[string]*models.User
}

// NewUserDirectory returns an empty directory.
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{
		byPhone: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func (d *UserDirectory) Login(phone, code string) (*models.User, error) {
	if code != config.TestVerificationCode {
		return nil, ErrInvalidCode
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if u, ok := d.byPhone[phone]; ok {
		return u, nil
	}

	now := time.Now()
	u := &models.User{
		ID:        newID("USER", now),
		Phone:     phone,
		Nickname:  "user" + lastDigits(phone, 4),
		Avatar:    config.DefaultAvatar,
		CreatedAt: now.UnixMilli(),
	}
	d.byPhone[phone] = u
	d.byID[u.ID] = u
	return u, nil
}

func (d *UserDirectory) FindByID(id string) (*models.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[id]
	return u, ok
}

// lastDigits returns the last n characters of s, or all of s when it
// is shorter.
func lastDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

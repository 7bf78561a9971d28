package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/techtitans/foundit/internal/common"
	"github.com/techtitans/foundit/internal/model"
)

// SaveUser inserts or replaces a user profile.
func (s *SQLiteStorage) SaveUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(user); err != nil {
		return err
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, name, phone, campus, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET name = excluded.name,
			phone = excluded.phone, campus = excluded.campus
	`, user.Email, user.Name, user.Phone, user.Campus, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUserByEmail fetches a user profile by email.
func (s *SQLiteStorage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}

	return s.getUser(ctx, "email = ?", email)
}

// GetUserByPhone fetches a user profile by phone number. Used to resolve
// phone-shaped item contacts to an email address.
func (s *SQLiteStorage) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(phone, "phone"); err != nil {
		return nil, err
	}

	return s.getUser(ctx, "phone = ?", phone)
}

func (s *SQLiteStorage) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT email, name, phone, campus, created_at FROM users WHERE "+where, arg)

	var user model.User
	var name, phone, campus sql.NullString
	err := row.Scan(&user.Email, &name, &phone, &campus, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Name = name.String
	user.Phone = phone.String
	user.Campus = campus.String
	return &user, nil
}

// DeleteUserData removes a user profile and every item reported under
// their email or phone contact. Returns the number of deleted items.
func (s *SQLiteStorage) DeleteUserData(ctx context.Context, email string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(email, "email"); err != nil {
		return 0, err
	}

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleted := 0
	contacts := []string{email}
	if user != nil && user.Phone != "" {
		contacts = append(contacts, user.Phone)
	}

	for _, contact := range contacts {
		result, execErr := tx.ExecContext(ctx, "DELETE FROM items WHERE contact = ?", contact)
		if execErr != nil {
			return 0, fmt.Errorf("failed to delete items for contact: %w", execErr)
		}
		affected, raErr := result.RowsAffected()
		if raErr != nil {
			return 0, fmt.Errorf("failed to count deleted items: %w", raErr)
		}
		deleted += int(affected)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE email = ?", email); err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit user delete: %w", err)
	}
	return deleted, nil
}

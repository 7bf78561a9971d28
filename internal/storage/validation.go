package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/techtitans/foundit/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidItem  = errors.New("invalid item")
	ErrInvalidMatch = errors.New("invalid match record")
	ErrInvalidUser  = errors.New("invalid user")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateItem validates a single item.
func validateItem(item *model.Item) error {
	if item == nil {
		return fmt.Errorf("%w: item", ErrNilParameter)
	}
	if item.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidItem)
	}
	if !item.Type.IsValid() {
		return fmt.Errorf("%w: unknown report type %q", ErrInvalidItem, item.Type)
	}
	if item.Campus == "" {
		return fmt.Errorf("%w: missing campus", ErrInvalidItem)
	}
	if item.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidItem)
	}
	if item.Description == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidItem)
	}
	if item.Contact == "" {
		return fmt.Errorf("%w: missing contact", ErrInvalidItem)
	}
	return nil
}

// validateMatchRecord validates a match record.
func validateMatchRecord(record *model.MatchRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if record.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidMatch)
	}
	if record.SourceItemID == "" {
		return fmt.Errorf("%w: missing source item ID", ErrInvalidMatch)
	}
	if record.MatchedItemID == "" {
		return fmt.Errorf("%w: missing matched item ID", ErrInvalidMatch)
	}
	if record.Confidence < 0 || record.Confidence > 100 {
		return fmt.Errorf("%w: confidence %d out of range", ErrInvalidMatch, record.Confidence)
	}
	return nil
}

// validateUser validates a user profile.
func validateUser(user *model.User) error {
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if !strings.Contains(user.Email, "@") {
		return fmt.Errorf("%w: email %q", ErrInvalidUser, user.Email)
	}
	return nil
}

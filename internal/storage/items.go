package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/techtitans/foundit/internal/common"
	"github.com/techtitans/foundit/internal/model"
	"github.com/techtitans/foundit/internal/service"
)

// SaveItem inserts a new item.
func (s *SQLiteStorage) SaveItem(ctx context.Context, item *model.Item) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateItem(item); err != nil {
		return err
	}

	tagsJSON, err := marshalTags(item.Tags)
	if err != nil {
		return err
	}

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	if item.Status == "" {
		item.Status = model.StatusOpen
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO items (
			id, type, campus, category, description, location,
			contact, tags, summary, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, string(item.Type), item.Campus, item.Category, item.Description,
		item.Location, item.Contact, tagsJSON, item.Summary, string(item.Status), item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	return nil
}

// GetItem fetches a single item by ID. Returns common.ErrNotFound when
// the item has disappeared, which the matcher treats as no-match.
func (s *SQLiteStorage) GetItem(ctx context.Context, id string) (*model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, campus, category, description, location, contact,
		       tags, summary, status, created_at, resolved_at, resolution_note
		FROM items WHERE id = ?
	`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItems returns items matching the filter, ordered by creation time
// ascending so downstream tie-breaks and pairing are reproducible.
func (s *SQLiteStorage) ListItems(ctx context.Context, filter service.ItemFilter) ([]model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, type, campus, category, description, location, contact,
		       tags, summary, status, created_at, resolved_at, resolution_note
		FROM items WHERE 1=1`
	var args []any

	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, string(filter.Type))
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.Campus != "" {
		query += " AND campus = ?"
		args = append(args, filter.Campus)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Contact != "" {
		query += " AND contact = ?"
		args = append(args, filter.Contact)
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanItems(rows)
}

// ListResolvedItems returns all resolved items in creation order. This is
// the input to the retrospective resolution pairer.
func (s *SQLiteStorage) ListResolvedItems(ctx context.Context) ([]model.Item, error) {
	return s.ListItems(ctx, service.ItemFilter{Status: model.StatusResolved})
}

// UpdateItem applies a partial update to an item's editable fields.
// Report type and campus cannot be changed here.
func (s *SQLiteStorage) UpdateItem(ctx context.Context, id string, update service.ItemUpdate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	setClauses := ""
	var args []any

	appendSet := func(column string, value *string) {
		if value == nil {
			return
		}
		if setClauses != "" {
			setClauses += ", "
		}
		setClauses += column + " = ?"
		args = append(args, *value)
	}

	appendSet("description", update.Description)
	appendSet("location", update.Location)
	appendSet("contact", update.Contact)
	appendSet("category", update.Category)

	if setClauses == "" {
		return nil
	}

	args = append(args, id)
	result, err := s.db.ExecContext(ctx, "UPDATE items SET "+setClauses+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// ResolveItem transitions an item from open to resolved, recording the
// resolution time and note. The transition happens at most once.
func (s *SQLiteStorage) ResolveItem(ctx context.Context, id string, note string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE items SET status = ?, resolved_at = ?, resolution_note = ?
		WHERE id = ? AND status = ?
	`, string(model.StatusResolved), time.Now().UTC(), note, id, string(model.StatusOpen))
	if err != nil {
		return fmt.Errorf("failed to resolve item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check resolve result: %w", err)
	}
	if affected == 0 {
		// Either the item is gone or it was already resolved.
		if _, getErr := s.GetItem(ctx, id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("item %s: %w", id, common.ErrItemResolved)
	}
	return nil
}

// DeleteItem removes an item. Match records referencing it are kept;
// readers tolerate the dangling reference.
func (s *SQLiteStorage) DeleteItem(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	var item model.Item
	var itemType, status string
	var location, tagsJSON, summary, resolutionNote sql.NullString
	var resolvedAt sql.NullTime

	err := row.Scan(&item.ID, &itemType, &item.Campus, &item.Category,
		&item.Description, &location, &item.Contact, &tagsJSON, &summary,
		&status, &item.CreatedAt, &resolvedAt, &resolutionNote)
	if err != nil {
		return nil, err
	}

	item.Type = model.ReportType(itemType)
	item.Status = model.ItemStatus(status)
	item.Location = location.String
	item.Summary = summary.String
	item.Resolution = resolutionNote.String
	if resolvedAt.Valid {
		t := resolvedAt.Time
		item.ResolvedAt = &t
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &item.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

func marshalTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

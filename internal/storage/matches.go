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

// SaveMatchRecord appends an accepted pairing. Records are never updated
// or deleted through this layer.
func (s *SQLiteStorage) SaveMatchRecord(ctx context.Context, record *model.MatchRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMatchRecord(record); err != nil {
		return err
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO match_records (id, source_item_id, matched_item_id, confidence, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.ID, record.SourceItemID, record.MatchedItemID, record.Confidence, record.Reason, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save match record: %w", err)
	}
	return nil
}

// ListMatchRecords returns all match records, newest first.
func (s *SQLiteStorage) ListMatchRecords(ctx context.Context) ([]model.MatchRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_item_id, matched_item_id, confidence, reason, created_at
		FROM match_records ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list match records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.MatchRecord
	for rows.Next() {
		var record model.MatchRecord
		var reason sql.NullString
		if err := rows.Scan(&record.ID, &record.SourceItemID, &record.MatchedItemID,
			&record.Confidence, &reason, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match record: %w", err)
		}
		record.Reason = reason.String
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match records: %w", err)
	}
	return records, nil
}

// GetMatchRecordBySource returns the most recent match record created for
// a source item, or common.ErrNotFound.
func (s *SQLiteStorage) GetMatchRecordBySource(ctx context.Context, sourceItemID string) (*model.MatchRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sourceItemID, "sourceItemID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_item_id, matched_item_id, confidence, reason, created_at
		FROM match_records WHERE source_item_id = ?
		ORDER BY created_at DESC LIMIT 1
	`, sourceItemID)

	var record model.MatchRecord
	var reason sql.NullString
	err := row.Scan(&record.ID, &record.SourceItemID, &record.MatchedItemID,
		&record.Confidence, &reason, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match record for item %s: %w", sourceItemID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match record: %w", err)
	}
	record.Reason = reason.String
	return &record, nil
}

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/priya/resume-builder/internal/types"
)

const sectionItemColumns = `id, user_id, section_type, include_in_resume, payload, created_at, updated_at`

func scanSectionItem(row pgx.Row) (*SectionItem, error) {
	var item SectionItem
	err := row.Scan(&item.ID, &item.UserID, &item.SectionType, &item.IncludeInResume,
		&item.Payload, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateSectionItem validates the payload, inserts the item, and appends its
// id to the user's ordering list for that section in one transaction. New
// items default to include_in_resume = true.
func (db *DB) CreateSectionItem(ctx context.Context, userID uuid.UUID, section types.SectionType, payload json.RawMessage, include bool) (*SectionItem, error) {
	decoded, err := types.DecodePayload(section, nil, payload)
	if err != nil {
		return nil, err
	}
	stored, err := types.EncodePayload(decoded)
	if err != nil {
		return nil, err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	item, err := scanSectionItem(tx.QueryRow(ctx,
		`INSERT INTO section_items (user_id, section_type, include_in_resume, payload)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+sectionItemColumns,
		userID, section, include, stored,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s item: %w", section, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO section_orders (user_id, section_type, item_ids)
		 VALUES ($1, $2, ARRAY[$3]::uuid[])
		 ON CONFLICT (user_id, section_type)
		 DO UPDATE SET item_ids = array_append(section_orders.item_ids, $3), updated_at = NOW()`,
		userID, section, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append to %s ordering: %w", section, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return item, nil
}

// GetSectionItem retrieves a single item owned by the user.
func (db *DB) GetSectionItem(ctx context.Context, userID uuid.UUID, section types.SectionType, itemID uuid.UUID) (*SectionItem, error) {
	item, err := scanSectionItem(db.pool.QueryRow(ctx,
		`SELECT `+sectionItemColumns+`
		 FROM section_items WHERE id = $1 AND user_id = $2 AND section_type = $3`,
		itemID, userID, section,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &types.ErrItemNotFound{Section: section, ID: itemID}
		}
		return nil, fmt.Errorf("failed to get %s item: %w", section, err)
	}
	return item, nil
}

// UpdateSectionItem applies a partial payload update: the raw JSON is decoded
// over the stored payload, re-validated, and written back. The item's list
// position is never touched. Concurrent edits to the same item are
// last-write-wins.
func (db *DB) UpdateSectionItem(ctx context.Context, userID uuid.UUID, section types.SectionType, itemID uuid.UUID, payload json.RawMessage) (*SectionItem, error) {
	current, err := db.GetSectionItem(ctx, userID, section, itemID)
	if err != nil {
		return nil, err
	}

	merged, err := types.DecodePayload(section, current.Payload, payload)
	if err != nil {
		return nil, err
	}
	stored, err := types.EncodePayload(merged)
	if err != nil {
		return nil, err
	}

	item, err := scanSectionItem(db.pool.QueryRow(ctx,
		`UPDATE section_items SET payload = $1, updated_at = NOW()
		 WHERE id = $2 AND user_id = $3 AND section_type = $4
		 RETURNING `+sectionItemColumns,
		stored, itemID, userID, section,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &types.ErrItemNotFound{Section: section, ID: itemID}
		}
		return nil, fmt.Errorf("failed to update %s item: %w", section, err)
	}
	return item, nil
}

// DeleteSectionItem removes the item and its ordering entry in one
// transaction, so the list never holds a dangling id.
func (db *DB) DeleteSectionItem(ctx context.Context, userID uuid.UUID, section types.SectionType, itemID uuid.UUID) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	result, err := tx.Exec(ctx,
		`DELETE FROM section_items WHERE id = $1 AND user_id = $2 AND section_type = $3`,
		itemID, userID, section,
	)
	if err != nil {
		return fmt.Errorf("failed to delete %s item: %w", section, err)
	}
	if result.RowsAffected() == 0 {
		return &types.ErrItemNotFound{Section: section, ID: itemID}
	}

	// The list row stays behind even when it becomes empty; an empty section
	// round-trips as empty, not missing.
	_, err = tx.Exec(ctx,
		`UPDATE section_orders SET item_ids = array_remove(item_ids, $1), updated_at = NOW()
		 WHERE user_id = $2 AND section_type = $3`,
		itemID, userID, section,
	)
	if err != nil {
		return fmt.Errorf("failed to remove from %s ordering: %w", section, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// ToggleInclude flips include_in_resume on a single item. Ordering is
// unaffected.
func (db *DB) ToggleInclude(ctx context.Context, userID uuid.UUID, section types.SectionType, itemID uuid.UUID) (*SectionItem, error) {
	item, err := scanSectionItem(db.pool.QueryRow(ctx,
		`UPDATE section_items SET include_in_resume = NOT include_in_resume, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2 AND section_type = $3
		 RETURNING `+sectionItemColumns,
		itemID, userID, section,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &types.ErrItemNotFound{Section: section, ID: itemID}
		}
		return nil, fmt.Errorf("failed to toggle %s item: %w", section, err)
	}
	return item, nil
}

// ListSectionItems returns the user's items for one section in ordering-list
// order. Items missing from the ordering list (data drift) are appended at
// the end in creation order; this is a repair fallback, not a normal path.
func (db *DB) ListSectionItems(ctx context.Context, userID uuid.UUID, section types.SectionType) ([]SectionItem, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+sectionItemColumns+`
		 FROM section_items WHERE user_id = $1 AND section_type = $2
		 ORDER BY created_at, id`,
		userID, section,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s items: %w", section, err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*SectionItem)
	var creationOrder []uuid.UUID
	for rows.Next() {
		var item SectionItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.SectionType, &item.IncludeInResume,
			&item.Payload, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s item: %w", section, err)
		}
		byID[item.ID] = &item
		creationOrder = append(creationOrder, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s items: %w", section, err)
	}

	var orderedIDs []uuid.UUID
	err = db.pool.QueryRow(ctx,
		`SELECT item_ids FROM section_orders WHERE user_id = $1 AND section_type = $2`,
		userID, section,
	).Scan(&orderedIDs)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get %s ordering: %w", section, err)
	}

	return arrangeItems(byID, orderedIDs, creationOrder), nil
}

// arrangeItems walks the ordering list first, then appends any stragglers in
// creation order. Stale ids in the list are skipped.
func arrangeItems(byID map[uuid.UUID]*SectionItem, orderedIDs, creationOrder []uuid.UUID) []SectionItem {
	items := make([]SectionItem, 0, len(byID))
	seen := make(map[uuid.UUID]bool, len(byID))

	for _, id := range orderedIDs {
		if item, ok := byID[id]; ok && !seen[id] {
			items = append(items, *item)
			seen[id] = true
		}
	}
	for _, id := range creationOrder {
		if !seen[id] {
			items = append(items, *byID[id])
			seen[id] = true
		}
	}
	return items
}

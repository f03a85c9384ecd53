package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/priya/resume-builder/internal/types"
)

// GetSectionOrder returns the persisted ordering list for one section,
// falling back to creation order when no explicit order exists yet.
func (db *DB) GetSectionOrder(ctx context.Context, userID uuid.UUID, section types.SectionType) (*SectionOrderList, error) {
	var list SectionOrderList
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, section_type, item_ids, updated_at
		 FROM section_orders WHERE user_id = $1 AND section_type = $2`,
		userID, section,
	).Scan(&list.UserID, &list.SectionType, &list.ItemIDs, &list.UpdatedAt)
	if err == nil {
		return &list, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get %s ordering: %w", section, err)
	}

	ids, err := db.liveItemIDs(ctx, db.pool, userID, section)
	if err != nil {
		return nil, err
	}
	return &SectionOrderList{UserID: userID, SectionType: section, ItemIDs: ids}, nil
}

// MoveItemUp swaps the item with its immediate predecessor. Already-first is
// a no-op, not an error.
func (db *DB) MoveItemUp(ctx context.Context, userID uuid.UUID, section types.SectionType, itemID uuid.UUID) (*SectionOrderList, error) {
	return db.moveItem(ctx, userID, section, itemID, -1)
}

// MoveItemDown swaps the item with its immediate successor. Already-last is a
// no-op, not an error.
func (db *DB) MoveItemDown(ctx context.Context, userID uuid.UUID, section types.SectionType, itemID uuid.UUID) (*SectionOrderList, error) {
	return db.moveItem(ctx, userID, section, itemID, +1)
}

func (db *DB) moveItem(ctx context.Context, userID uuid.UUID, section types.SectionType, itemID uuid.UUID, delta int) (*SectionOrderList, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ids, err := db.lockOrderList(ctx, tx, userID, section)
	if err != nil {
		return nil, err
	}

	idx := indexOf(ids, itemID)
	if idx < 0 {
		return nil, &types.ErrItemNotFound{Section: section, ID: itemID}
	}

	target := idx + delta
	if target >= 0 && target < len(ids) {
		ids[idx], ids[target] = ids[target], ids[idx]
		if err := db.writeOrderList(ctx, tx, userID, section, ids); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return &SectionOrderList{UserID: userID, SectionType: section, ItemIDs: ids}, nil
}

// SetSectionOrder replaces the ordering list wholesale. The submitted ids
// must be an exact permutation of the live item ids for that (user, section);
// wrong length, duplicates, and unknown ids are all rejected and the stored
// order is left unchanged.
func (db *DB) SetSectionOrder(ctx context.Context, userID uuid.UUID, section types.SectionType, orderedIDs []uuid.UUID) (*SectionOrderList, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Lock the order row first so concurrent reorders and deletes serialize
	// against the same row and the permutation check stays valid at commit.
	if _, err := db.lockOrderList(ctx, tx, userID, section); err != nil {
		return nil, err
	}

	live, err := db.liveItemIDs(ctx, tx, userID, section)
	if err != nil {
		return nil, err
	}

	if err := checkPermutation(orderedIDs, live); err != nil {
		return nil, err
	}

	if err := db.writeOrderList(ctx, tx, userID, section, orderedIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return &SectionOrderList{UserID: userID, SectionType: section, ItemIDs: orderedIDs}, nil
}

// queryer lets the helpers run on either the pool or an open transaction.
type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// lockOrderList reads the order row under FOR UPDATE, repairing a missing row
// from creation order so the lock is always held for the rest of the
// transaction.
func (db *DB) lockOrderList(ctx context.Context, tx pgx.Tx, userID uuid.UUID, section types.SectionType) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT item_ids FROM section_orders
		 WHERE user_id = $1 AND section_type = $2 FOR UPDATE`,
		userID, section,
	).Scan(&ids)
	if err == nil {
		return ids, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to lock %s ordering: %w", section, err)
	}

	live, err := db.liveItemIDs(ctx, tx, userID, section)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO section_orders (user_id, section_type, item_ids)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, section_type) DO NOTHING`,
		userID, section, live,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to repair %s ordering: %w", section, err)
	}
	err = tx.QueryRow(ctx,
		`SELECT item_ids FROM section_orders
		 WHERE user_id = $1 AND section_type = $2 FOR UPDATE`,
		userID, section,
	).Scan(&ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s ordering: %w", section, err)
	}
	return ids, nil
}

func (db *DB) writeOrderList(ctx context.Context, tx pgx.Tx, userID uuid.UUID, section types.SectionType, ids []uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE section_orders SET item_ids = $1, updated_at = NOW()
		 WHERE user_id = $2 AND section_type = $3`,
		ids, userID, section,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s ordering: %w", section, err)
	}
	return nil
}

func (db *DB) liveItemIDs(ctx context.Context, q queryer, userID uuid.UUID, section types.SectionType) ([]uuid.UUID, error) {
	rows, err := q.Query(ctx,
		`SELECT id FROM section_items
		 WHERE user_id = $1 AND section_type = $2
		 ORDER BY created_at, id`,
		userID, section,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s item ids: %w", section, err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s item id: %w", section, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s item ids: %w", section, err)
	}
	return ids, nil
}

// checkPermutation verifies submitted is exactly a permutation of live.
func checkPermutation(submitted, live []uuid.UUID) error {
	if len(submitted) != len(live) {
		return &types.ErrValidation{
			Field:   "item_ids",
			Message: fmt.Sprintf("expected %d ids, got %d", len(live), len(submitted)),
		}
	}

	liveSet := make(map[uuid.UUID]bool, len(live))
	for _, id := range live {
		liveSet[id] = true
	}

	seen := make(map[uuid.UUID]bool, len(submitted))
	for _, id := range submitted {
		if seen[id] {
			return &types.ErrValidation{Field: "item_ids", Message: fmt.Sprintf("duplicate id: %s", id)}
		}
		seen[id] = true
		if !liveSet[id] {
			return &types.ErrValidation{Field: "item_ids", Message: fmt.Sprintf("unknown id: %s", id)}
		}
	}
	return nil
}

func indexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya/resume-builder/internal/types"
)

func TestCheckPermutation_Valid(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	live := []uuid.UUID{a, b, c}

	assert.NoError(t, checkPermutation([]uuid.UUID{c, a, b}, live))
	assert.NoError(t, checkPermutation([]uuid.UUID{a, b, c}, live))
	assert.NoError(t, checkPermutation(nil, nil))
}

func TestCheckPermutation_WrongLength(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	err := checkPermutation([]uuid.UUID{a}, []uuid.UUID{a, b})

	var verr *types.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "item_ids", verr.Field)
}

func TestCheckPermutation_Duplicate(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	err := checkPermutation([]uuid.UUID{a, a}, []uuid.UUID{a, b})

	var verr *types.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "duplicate")
}

func TestCheckPermutation_UnknownID(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	err := checkPermutation([]uuid.UUID{a, uuid.New()}, []uuid.UUID{a, b})

	var verr *types.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "unknown")
}

func TestIndexOf(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids := []uuid.UUID{a, b}

	assert.Equal(t, 0, indexOf(ids, a))
	assert.Equal(t, 1, indexOf(ids, b))
	assert.Equal(t, -1, indexOf(ids, uuid.New()))
}

func makeItem(id uuid.UUID, createdAt time.Time) *SectionItem {
	return &SectionItem{ID: id, SectionType: types.SectionExperience, CreatedAt: createdAt}
}

func TestArrangeItems_OrderListWins(t *testing.T) {
	now := time.Now()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	byID := map[uuid.UUID]*SectionItem{
		a: makeItem(a, now),
		b: makeItem(b, now.Add(time.Second)),
		c: makeItem(c, now.Add(2*time.Second)),
	}

	items := arrangeItems(byID, []uuid.UUID{c, a, b}, []uuid.UUID{a, b, c})
	require.Len(t, items, 3)
	assert.Equal(t, []uuid.UUID{c, a, b}, []uuid.UUID{items[0].ID, items[1].ID, items[2].ID})
}

func TestArrangeItems_DriftAppendsInCreationOrder(t *testing.T) {
	now := time.Now()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	byID := map[uuid.UUID]*SectionItem{
		a: makeItem(a, now),
		b: makeItem(b, now.Add(time.Second)),
		c: makeItem(c, now.Add(2*time.Second)),
	}

	// Order list only knows about c; a and b drifted.
	items := arrangeItems(byID, []uuid.UUID{c}, []uuid.UUID{a, b, c})
	require.Len(t, items, 3)
	assert.Equal(t, c, items[0].ID)
	assert.Equal(t, a, items[1].ID)
	assert.Equal(t, b, items[2].ID)
}

func TestArrangeItems_StaleIDsSkipped(t *testing.T) {
	now := time.Now()
	a := uuid.New()
	byID := map[uuid.UUID]*SectionItem{a: makeItem(a, now)}

	items := arrangeItems(byID, []uuid.UUID{uuid.New(), a, a}, []uuid.UUID{a})
	require.Len(t, items, 1)
	assert.Equal(t, a, items[0].ID)
}

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya/resume-builder/internal/db"
	"github.com/priya/resume-builder/internal/types"
)

// fakeStore serves canned section listings and can fail specific sections.
type fakeStore struct {
	items   map[types.SectionType][]db.SectionItem
	failing map[types.SectionType]error
}

func (s *fakeStore) ListSectionItems(ctx context.Context, userID uuid.UUID, section types.SectionType) ([]db.SectionItem, error) {
	if err, ok := s.failing[section]; ok {
		return nil, err
	}
	return s.items[section], nil
}

func skillItem(name string, include bool) db.SectionItem {
	return db.SectionItem{
		ID:              uuid.New(),
		SectionType:     types.SectionSkill,
		IncludeInResume: include,
		Payload:         json.RawMessage(fmt.Sprintf(`{"name": %q}`, name)),
	}
}

func TestBuildProfile_FiltersExcludedItems(t *testing.T) {
	store := &fakeStore{items: map[types.SectionType][]db.SectionItem{
		types.SectionSkill: {
			skillItem("Go", true),
			skillItem("COBOL", false),
			skillItem("SQL", true),
		},
	}}

	p, err := New(store, nil).BuildProfile(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, p.Skills, 2)
	assert.Equal(t, "Go", p.Skills[0].Payload.Name)
	assert.Equal(t, "SQL", p.Skills[1].Payload.Name)
}

func TestBuildProfile_PreservesListOrder(t *testing.T) {
	c := skillItem("C", true)
	a := skillItem("A", true)
	b := skillItem("B", true)
	store := &fakeStore{items: map[types.SectionType][]db.SectionItem{
		types.SectionSkill: {c, a, b},
	}}

	p, err := New(store, nil).BuildProfile(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, p.Skills, 3)
	assert.Equal(t, c.ID, p.Skills[0].ID)
	assert.Equal(t, a.ID, p.Skills[1].ID)
	assert.Equal(t, b.ID, p.Skills[2].ID)
}

func TestBuildProfile_FailedSectionRendersEmpty(t *testing.T) {
	store := &fakeStore{
		items: map[types.SectionType][]db.SectionItem{
			types.SectionSkill: {skillItem("Go", true)},
		},
		failing: map[types.SectionType]error{
			types.SectionExperience: errors.New("connection reset"),
		},
	}

	p, err := New(store, nil).BuildProfile(context.Background(), uuid.New())
	require.NoError(t, err, "one failing section must not abort the profile")

	assert.Empty(t, p.Experience)
	require.Len(t, p.Skills, 1)
}

func TestBuildProfile_ContactAndSummaryTakeFirstIncluded(t *testing.T) {
	excluded := db.SectionItem{
		ID:          uuid.New(),
		SectionType: types.SectionContact,
		Payload:     json.RawMessage(`{"name": "Old Me", "email": "old@example.com"}`),
	}
	current := db.SectionItem{
		ID:              uuid.New(),
		SectionType:     types.SectionContact,
		IncludeInResume: true,
		Payload:         json.RawMessage(`{"name": "Priya Raman", "email": "priya@example.com"}`),
	}
	summary := db.SectionItem{
		ID:              uuid.New(),
		SectionType:     types.SectionSummary,
		IncludeInResume: true,
		Payload:         json.RawMessage(`{"content": "Backend engineer."}`),
	}
	store := &fakeStore{items: map[types.SectionType][]db.SectionItem{
		types.SectionContact: {excluded, current},
		types.SectionSummary: {summary},
	}}

	p, err := New(store, nil).BuildProfile(context.Background(), uuid.New())
	require.NoError(t, err)

	require.NotNil(t, p.Contact)
	assert.Equal(t, "Priya Raman", p.Contact.Name)
	require.NotNil(t, p.Summary)
	assert.Equal(t, "Backend engineer.", p.Summary.Content)
}

func TestBuildProfile_SkipsCorruptPayloads(t *testing.T) {
	corrupt := db.SectionItem{
		ID:              uuid.New(),
		SectionType:     types.SectionSkill,
		IncludeInResume: true,
		Payload:         json.RawMessage(`{not json`),
	}
	store := &fakeStore{items: map[types.SectionType][]db.SectionItem{
		types.SectionSkill: {corrupt, skillItem("Go", true)},
	}}

	p, err := New(store, nil).BuildProfile(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, p.Skills, 1)
	assert.Equal(t, "Go", p.Skills[0].Payload.Name)
}

func TestBuildProfile_EmptyStore(t *testing.T) {
	p, err := New(&fakeStore{}, nil).BuildProfile(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.True(t, p.IsEmpty())
	assert.Nil(t, p.Contact)
	assert.Empty(t, p.Skills)
}

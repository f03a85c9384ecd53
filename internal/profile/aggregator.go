// Package profile assembles a user's included, ordered resume sections into
// the aggregate consumed by rendering and suggestion collaborators.
package profile

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/priya/resume-builder/internal/db"
	"github.com/priya/resume-builder/internal/types"
)

// Store is the slice of the persistence layer the aggregator reads from.
type Store interface {
	ListSectionItems(ctx context.Context, userID uuid.UUID, section types.SectionType) ([]db.SectionItem, error)
}

// Aggregator builds ResumeProfile aggregates. Pure reads, no side effects.
type Aggregator struct {
	store  Store
	logger *zap.Logger
}

// New creates an Aggregator. A nil logger falls back to zap.NewNop.
func New(store Store, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{store: store, logger: logger}
}

// BuildProfile assembles the full resume profile for one user. Sections are
// fetched concurrently; a section that fails to load is logged and rendered
// empty rather than aborting the whole profile.
func (a *Aggregator) BuildProfile(ctx context.Context, userID uuid.UUID) (*types.ResumeProfile, error) {
	var g errgroup.Group
	results := make([][]db.SectionItem, len(types.SectionOrder))
	for i, section := range types.SectionOrder {
		g.Go(func() error {
			items, err := a.store.ListSectionItems(ctx, userID, section)
			if err != nil {
				a.logger.Warn("section load failed, treating as empty",
					zap.String("section", string(section)),
					zap.String("user_id", userID.String()),
					zap.Error(err))
				return nil
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fetched := make(map[types.SectionType][]db.SectionItem, len(types.SectionOrder))
	for i, section := range types.SectionOrder {
		fetched[section] = results[i]
	}

	p := &types.ResumeProfile{
		UserID:         userID,
		Education:      decodeItems[types.Education](a, fetched[types.SectionEducation]),
		Experience:     decodeItems[types.Experience](a, fetched[types.SectionExperience]),
		Skills:         decodeItems[types.Skill](a, fetched[types.SectionSkill]),
		Projects:       decodeItems[types.Project](a, fetched[types.SectionProject]),
		Certifications: decodeItems[types.Certification](a, fetched[types.SectionCertification]),
		Involvements:   decodeItems[types.Involvement](a, fetched[types.SectionInvolvement]),
	}

	if contacts := decodeItems[types.Contact](a, fetched[types.SectionContact]); len(contacts) > 0 {
		p.Contact = &contacts[0].Payload
	}
	if summaries := decodeItems[types.Summary](a, fetched[types.SectionSummary]); len(summaries) > 0 {
		p.Summary = &summaries[0].Payload
	}

	return p, nil
}

// decodeItems filters to included items and decodes their payloads, keeping
// list order. A corrupt payload is logged and skipped, never fatal.
func decodeItems[T any](a *Aggregator, items []db.SectionItem) []types.ProfileItem[T] {
	out := make([]types.ProfileItem[T], 0, len(items))
	for _, item := range items {
		if !item.IncludeInResume {
			continue
		}
		var payload T
		if err := json.Unmarshal(item.Payload, &payload); err != nil {
			a.logger.Warn("skipping undecodable section item",
				zap.String("section", string(item.SectionType)),
				zap.String("item_id", item.ID.String()),
				zap.Error(err))
			continue
		}
		out = append(out, types.ProfileItem[T]{ID: item.ID, Payload: payload})
	}
	return out
}

package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AssociationManager owns the post_categories rows. It is the only writer of
// the join table apart from the cascades on post and category deletion.
type AssociationManager struct {
	store  database.Store
	logger zerolog.Logger
}

func NewAssociationManager(store database.Store) *AssociationManager {
	return &AssociationManager{
		store:  store,
		logger: log.With().Str("service", "associationManager").Logger(),
	}
}

// ParseCategoryIDs turns request ids into a de-duplicated set, keeping first
// occurrence order. Strings that are not uuids cannot reference a category and
// are reported as invalid references.
func ParseCategoryIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	var malformed []string
	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			malformed = append(malformed, s)
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(malformed) > 0 {
		return nil, errs.NewInvalidReferenceError(malformed)
	}
	return ids, nil
}

// Validate checks that every id names a stored category. It mutates nothing.
func (m *AssociationManager) Validate(ctx context.Context, ids []uuid.UUID) error {
	return m.validate(ctx, m.store.Categories(), ids)
}

// CategoryIDs returns the ids currently linked to postID.
func (m *AssociationManager) CategoryIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	return m.store.PostCategories().CategoryIDs(ctx, postID)
}

// Synchronize replaces the category set of postID with ids. The post must
// exist. Validation, clearing and inserting run in one transaction.
func (m *AssociationManager) Synchronize(ctx context.Context, postID uuid.UUID, ids []uuid.UUID) error {
	return m.store.Transaction(ctx, func(tx database.Store) error {
		if _, err := tx.Posts().Get(ctx, postID); err != nil {
			return err
		}
		return m.SynchronizeTx(ctx, tx, postID, ids)
	})
}

// SynchronizeTx is Synchronize against a store the caller already opened a
// transaction on, so post writes and the association swap commit together.
func (m *AssociationManager) SynchronizeTx(ctx context.Context, tx database.Store, postID uuid.UUID, ids []uuid.UUID) error {
	if err := m.validate(ctx, tx.Categories(), ids); err != nil {
		return err
	}
	return m.replace(ctx, tx, postID, ids)
}

func (m *AssociationManager) validate(ctx context.Context, categories database.CategoryStore, ids []uuid.UUID) error {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil
	}

	found, err := categories.CountByIDs(ctx, ids)
	if err != nil {
		return errs.NewDatabaseError("count", "categories", err)
	}
	if found == int64(len(ids)) {
		return nil
	}

	existing, err := categories.FindByIDs(ctx, ids)
	if err != nil {
		return errs.NewDatabaseError("find", "categories", err)
	}
	known := make(map[uuid.UUID]bool, len(existing))
	for _, c := range existing {
		known[c.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id.String())
		}
	}
	return errs.NewInvalidReferenceError(missing)
}

// replace clears every row of postID and inserts one per id. ids must already
// be validated.
func (m *AssociationManager) replace(ctx context.Context, tx database.Store, postID uuid.UUID, ids []uuid.UUID) error {
	ids = dedupe(ids)
	links := tx.PostCategories()

	removed, err := links.DeleteByPost(ctx, postID)
	if err != nil {
		return errs.NewDatabaseError("clear", "post_categories", err)
	}

	inserted := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := links.Create(ctx, postID, id); err != nil {
			if tx.Atomic() {
				return errs.NewTransactionFailedError("category synchronization", err)
			}
			m.logger.Error().
				Err(err).
				Str("postID", postID.String()).
				Int("inserted", len(inserted)).
				Int("requested", len(ids)).
				Msg("category synchronization left post partially linked")
			return errs.NewPartialAssociationError(postID, inserted, err)
		}
		inserted = append(inserted, id)
	}

	m.logger.Debug().
		Str("postID", postID.String()).
		Int64("removed", removed).
		Int("inserted", len(inserted)).
		Msg("categories synchronized")
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

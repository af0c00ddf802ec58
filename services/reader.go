package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Sanitizer maps raw post markup to markup safe to render.
type Sanitizer func(string) string

// PostReader recombines posts and their categories for the public pages.
type PostReader struct {
	reads    database.ReadStore
	sanitize Sanitizer
	logger   zerolog.Logger
}

// NewPostReader returns a reader over reads. A nil sanitize uses SanitizeContent.
func NewPostReader(reads database.ReadStore, sanitize Sanitizer) *PostReader {
	if sanitize == nil {
		sanitize = SanitizeContent
	}
	return &PostReader{
		reads:    reads,
		sanitize: sanitize,
		logger:   log.With().Str("service", "postReader").Logger(),
	}
}

// GetDetail returns post id with all of its categories. The post row and its
// join rows are fetched concurrently.
func (r *PostReader) GetDetail(ctx context.Context, id uuid.UUID) (*models.PostDetail, error) {
	var (
		post        *models.Post
		categoryIDs []uuid.UUID
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := r.reads.GetPost(gctx, id)
		if err != nil {
			return err
		}
		post = p
		return nil
	})
	g.Go(func() error {
		ids, err := r.reads.CategoryIDsForPost(gctx, id)
		if err != nil {
			return err
		}
		categoryIDs = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categories, err := r.resolve(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	detail := models.NewPostDetail(*post, categories)
	detail.SafeContent = r.sanitize(post.Content)
	return &detail, nil
}

// ListDetails returns every post with all of its categories.
func (r *PostReader) ListDetails(ctx context.Context, dir models.SortDirection) ([]models.PostDetail, error) {
	posts, byPost, err := r.postsWithLinks(ctx, dir)
	if err != nil {
		return nil, err
	}

	var all []uuid.UUID
	for _, ids := range byPost {
		all = append(all, ids...)
	}
	index, err := r.categoryIndex(ctx, all)
	if err != nil {
		return nil, err
	}

	details := make([]models.PostDetail, 0, len(posts))
	for _, p := range posts {
		detail := models.NewPostDetail(p, pick(index, byPost[p.ID]))
		detail.SafeContent = r.sanitize(p.Content)
		details = append(details, detail)
	}
	return details, nil
}

// ListSummaries returns every post with a plain-text excerpt and at most its
// first linked category.
func (r *PostReader) ListSummaries(ctx context.Context, dir models.SortDirection) ([]models.PostSummary, error) {
	posts, byPost, err := r.postsWithLinks(ctx, dir)
	if err != nil {
		return nil, err
	}

	var firsts []uuid.UUID
	for _, ids := range byPost {
		if len(ids) > 0 {
			firsts = append(firsts, ids[0])
		}
	}
	index, err := r.categoryIndex(ctx, firsts)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PostSummary, 0, len(posts))
	for _, p := range posts {
		var first []uuid.UUID
		if ids := byPost[p.ID]; len(ids) > 0 {
			first = ids[:1]
		}
		summaries = append(summaries, models.PostSummary{
			ID:            p.ID,
			Title:         p.Title,
			Excerpt:       Excerpt(p.Content),
			CoverImageURL: p.CoverImageURL,
			CreatedAt:     p.CreatedAt,
			Categories:    models.CategoryRefs(pick(index, first)),
		})
	}
	return summaries, nil
}

// postsWithLinks lists posts and groups their join rows by post id.
func (r *PostReader) postsWithLinks(ctx context.Context, dir models.SortDirection) ([]models.Post, map[uuid.UUID][]uuid.UUID, error) {
	posts, err := r.reads.ListPosts(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	if len(posts) == 0 {
		return posts, map[uuid.UUID][]uuid.UUID{}, nil
	}

	postIDs := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}
	links, err := r.reads.AssociationsForPosts(ctx, postIDs)
	if err != nil {
		return nil, nil, err
	}

	byPost := make(map[uuid.UUID][]uuid.UUID, len(posts))
	for _, l := range links {
		byPost[l.PostID] = append(byPost[l.PostID], l.CategoryID)
	}
	return posts, byPost, nil
}

// resolve loads categories by id, keeping the order of ids. Ids whose category
// no longer exists are skipped.
func (r *PostReader) resolve(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	index, err := r.categoryIndex(ctx, ids)
	if err != nil {
		return nil, err
	}
	return pick(index, ids), nil
}

func (r *PostReader) categoryIndex(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Category, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return map[uuid.UUID]models.Category{}, nil
	}
	categories, err := r.reads.CategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]models.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	if len(index) < len(ids) {
		r.logger.Warn().Int("requested", len(ids)).Int("found", len(index)).Msg("join rows reference missing categories")
	}
	return index, nil
}

func pick(index map[uuid.UUID]models.Category, ids []uuid.UUID) []models.Category {
	out := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := index[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

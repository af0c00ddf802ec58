// Package memory is an in-process implementation of database.Store. It
// enforces the same keys and cascades as the relational schema and is used by
// tests and by STORE=memory local runs.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
)

var _ database.Store = (*Store)(nil)

// Store keeps posts, categories and join rows in maps guarded by a mutex.
// Transactions are serialized and do not nest.
type Store struct {
	txMu sync.Mutex

	mu         sync.RWMutex
	posts      map[uuid.UUID]models.Post
	postOrder  []uuid.UUID
	categories map[uuid.UUID]models.Category
	catOrder   []uuid.UUID
	links      []models.PostCategory

	now    func() time.Time
	atomic bool
	fault  func(op string) error
}

type Option func(*Store)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithoutRollback makes Transaction run fn without undoing its writes on
// failure, like a client that exposes no multi-statement transaction.
func WithoutRollback() Option {
	return func(s *Store) { s.atomic = false }
}

// WithFault installs a hook called before every write; a non-nil return fails that write.
func WithFault(fn func(op string) error) Option {
	return func(s *Store) { s.fault = fn }
}

func New(opts ...Option) *Store {
	s := &Store{
		posts:      make(map[uuid.UUID]models.Post),
		categories: make(map[uuid.UUID]models.Category),
		now:        time.Now,
		atomic:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Posts() database.PostStore {
	return postView{s}
}

func (s *Store) Categories() database.CategoryStore {
	return categoryView{s}
}

func (s *Store) PostCategories() database.PostCategoryStore {
	return linkView{s}
}

func (s *Store) Atomic() bool {
	return s.atomic
}

func (s *Store) Transaction(ctx context.Context, fn func(tx database.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.snapshot()
	if err := fn(s); err != nil {
		if s.atomic {
			s.restore(snap)
		}
		return err
	}
	// A request cancelled mid-transaction must not commit.
	if err := ctx.Err(); err != nil {
		if s.atomic {
			s.restore(snap)
		}
		return err
	}
	return nil
}

// Links returns a copy of every join row, for assertions.
func (s *Store) Links() []models.PostCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PostCategory(nil), s.links...)
}

type snapshot struct {
	posts      map[uuid.UUID]models.Post
	postOrder  []uuid.UUID
	categories map[uuid.UUID]models.Category
	catOrder   []uuid.UUID
	links      []models.PostCategory
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		posts:      make(map[uuid.UUID]models.Post, len(s.posts)),
		postOrder:  append([]uuid.UUID(nil), s.postOrder...),
		categories: make(map[uuid.UUID]models.Category, len(s.categories)),
		catOrder:   append([]uuid.UUID(nil), s.catOrder...),
		links:      append([]models.PostCategory(nil), s.links...),
	}
	for id, p := range s.posts {
		snap.posts[id] = p
	}
	for id, c := range s.categories {
		snap.categories[id] = c
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = snap.posts
	s.postOrder = snap.postOrder
	s.categories = snap.categories
	s.catOrder = snap.catOrder
	s.links = snap.links
}

func (s *Store) before(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.fault != nil {
		if err := s.fault(op); err != nil {
			return errs.NewDatabaseError("write", op, err)
		}
	}
	return nil
}

// removeID drops id from order, keeping the remaining order.
func removeID(order []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := order[:0]
	for _, existing := range order {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// dropLinks removes the join rows match reports true for. Caller holds mu.
func (s *Store) dropLinks(match func(models.PostCategory) bool) int64 {
	kept := make([]models.PostCategory, 0, len(s.links))
	var removed int64
	for _, l := range s.links {
		if match(l) {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	s.links = kept
	return removed
}

type postView struct{ s *Store }

func (v postView) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	p, ok := v.s.posts[id]
	if !ok {
		return nil, errs.NewNotFound("post")
	}
	return &p, nil
}

func (v postView) List(ctx context.Context, dir models.SortDirection) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	posts := make([]models.Post, 0, len(v.s.postOrder))
	for _, id := range v.s.postOrder {
		posts = append(posts, v.s.posts[id])
	}
	if dir == models.Ascending {
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt.Before(posts[j].CreatedAt) })
		return posts, nil
	}
	// newest first; equal timestamps keep the later insert first
	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (v postView) Create(ctx context.Context, fields models.PostFields) (*models.Post, error) {
	if err := v.s.before(ctx, "posts.create"); err != nil {
		return nil, err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	now := v.s.now()
	p := models.Post{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	fields.Apply(&p)
	v.s.posts[p.ID] = p
	v.s.postOrder = append(v.s.postOrder, p.ID)
	return &p, nil
}

func (v postView) Update(ctx context.Context, id uuid.UUID, fields models.PostFields) (*models.Post, error) {
	if err := v.s.before(ctx, "posts.update"); err != nil {
		return nil, err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	p, ok := v.s.posts[id]
	if !ok {
		return nil, errs.NewNotFound("post")
	}
	fields.Apply(&p)
	p.UpdatedAt = v.s.now()
	v.s.posts[id] = p
	return &p, nil
}

func (v postView) Delete(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	if err := v.s.before(ctx, "posts.delete"); err != nil {
		return nil, err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	p, ok := v.s.posts[id]
	if !ok {
		return nil, errs.NewNotFound("post")
	}
	delete(v.s.posts, id)
	v.s.postOrder = removeID(v.s.postOrder, id)
	v.s.dropLinks(func(l models.PostCategory) bool { return l.PostID == id })
	return &p, nil
}

type categoryView struct{ s *Store }

func (v categoryView) List(ctx context.Context) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	out := make([]models.Category, 0, len(v.s.catOrder))
	for _, id := range v.s.catOrder {
		out = append(out, v.s.categories[id])
	}
	return out, nil
}

func (v categoryView) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	c, ok := v.s.categories[id]
	if !ok {
		return nil, errs.NewNotFound("category")
	}
	return &c, nil
}

func (v categoryView) Create(ctx context.Context, name string) (*models.Category, error) {
	if err := v.s.before(ctx, "categories.create"); err != nil {
		return nil, err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	now := v.s.now()
	c := models.Category{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
	v.s.categories[c.ID] = c
	v.s.catOrder = append(v.s.catOrder, c.ID)
	return &c, nil
}

func (v categoryView) Delete(ctx context.Context, id uuid.UUID) error {
	if err := v.s.before(ctx, "categories.delete"); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	if _, ok := v.s.categories[id]; !ok {
		return errs.NewNotFound("category")
	}
	delete(v.s.categories, id)
	v.s.catOrder = removeID(v.s.catOrder, id)
	v.s.dropLinks(func(l models.PostCategory) bool { return l.CategoryID == id })
	return nil
}

func (v categoryView) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	found, err := v.FindByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	return int64(len(found)), nil
}

func (v categoryView) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := []models.Category{}
	for _, id := range v.s.catOrder {
		if wanted[id] {
			out = append(out, v.s.categories[id])
		}
	}
	return out, nil
}

type linkView struct{ s *Store }

func (v linkView) CategoryIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	ids := []uuid.UUID{}
	for _, l := range v.s.links {
		if l.PostID == postID {
			ids = append(ids, l.CategoryID)
		}
	}
	return ids, nil
}

func (v linkView) ForPosts(ctx context.Context, postIDs []uuid.UUID) ([]models.PostCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	wanted := make(map[uuid.UUID]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}
	rows := []models.PostCategory{}
	for _, l := range v.s.links {
		if wanted[l.PostID] {
			rows = append(rows, l)
		}
	}
	return rows, nil
}

var (
	errForeignKey = errors.New("violates foreign key constraint")
	errDuplicate  = errors.New("duplicate key value violates unique constraint")
)

func (v linkView) Create(ctx context.Context, postID, categoryID uuid.UUID) error {
	if err := v.s.before(ctx, "post_categories.create"); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	if _, ok := v.s.posts[postID]; !ok {
		return errs.NewDatabaseError("create", "post_category", fmt.Errorf("post %s %w", postID, errForeignKey))
	}
	if _, ok := v.s.categories[categoryID]; !ok {
		return errs.NewDatabaseError("create", "post_category", fmt.Errorf("category %s %w", categoryID, errForeignKey))
	}
	for _, l := range v.s.links {
		if l.PostID == postID && l.CategoryID == categoryID {
			return errs.NewDatabaseError("create", "post_category", errDuplicate)
		}
	}
	v.s.links = append(v.s.links, models.PostCategory{PostID: postID, CategoryID: categoryID, CreatedAt: v.s.now()})
	return nil
}

func (v linkView) DeleteByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	if err := v.s.before(ctx, "post_categories.delete"); err != nil {
		return 0, err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.dropLinks(func(l models.PostCategory) bool { return l.PostID == postID }), nil
}

func (v linkView) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	if err := v.s.before(ctx, "post_categories.delete"); err != nil {
		return 0, err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.dropLinks(func(l models.PostCategory) bool { return l.CategoryID == categoryID }), nil
}

// Package memory is a process-local implementation of the persistence layer.
// It backs tests and single-node development runs.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/repository"

	"github.com/google/uuid"
)

type txKey struct{}

var (
	_ repository.TransactionManager = (*Store)(nil)
	_ repository.RepositoryFactory  = (*Store)(nil)
)

// Store holds every collection behind one lock.
type Store struct {
	// txMu is held exclusively by a running transaction and shared by every other call.
	txMu sync.RWMutex
	mu   sync.RWMutex

	seq        uint64
	order      map[uuid.UUID]uint64
	principals map[uuid.UUID]*entity.Principal
	products   map[uuid.UUID]*entity.Product
	news       map[uuid.UUID]*entity.News
	reviews    map[uuid.UUID]*entity.Review
}

func NewStore() *Store {
	return &Store{
		order:      map[uuid.UUID]uint64{},
		principals: map[uuid.UUID]*entity.Principal{},
		products:   map[uuid.UUID]*entity.Product{},
		news:       map[uuid.UUID]*entity.News{},
		reviews:    map[uuid.UUID]*entity.Review{},
	}
}

func (s *Store) Principals() repository.PrincipalRepository { return &principalRepository{s: s} }

func (s *Store) Products() repository.ProductRepository { return &productRepository{s: s} }

func (s *Store) News() repository.NewsRepository { return &newsRepository{s: s} }

func (s *Store) Reviews() repository.ReviewRepository { return &reviewRepository{s: s} }

// Execute runs fn with exclusive access to the store and restores the prior state if fn fails.
// Calls nested inside a running transaction join it.
func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context, repos repository.RepositoryFactory) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx, s)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, s), s); err != nil {
		s.restore(snap)
	}

	return err
}

func (s *Store) inTx(ctx context.Context) bool {
	tx, _ := ctx.Value(txKey{}).(*Store)

	return tx == s
}

func (s *Store) read(ctx context.Context, fn func()) {
	if !s.inTx(ctx) {
		s.txMu.RLock()
		defer s.txMu.RUnlock()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if !s.inTx(ctx) {
		s.txMu.RLock()
		defer s.txMu.RUnlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn()
}

// track records insertion order for newest-first listings. Callers hold mu.
func (s *Store) track(id uuid.UUID) {
	s.seq++
	s.order[id] = s.seq
}

// newestFirst sorts by creation time, then by insertion order. Callers hold mu.
func newestFirst[T any](s *Store, items []T, key func(T) (uuid.UUID, time.Time)) {
	slices.SortFunc(items, func(a, b T) int {
		aid, at := key(a)
		bid, bt := key(b)
		if c := bt.Compare(at); c != 0 {
			return c
		}

		return cmp.Compare(s.order[bid], s.order[aid])
	})
}

type snapshot struct {
	seq        uint64
	order      map[uuid.UUID]uint64
	principals map[uuid.UUID]*entity.Principal
	products   map[uuid.UUID]*entity.Product
	news       map[uuid.UUID]*entity.News
	reviews    map[uuid.UUID]*entity.Review
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return snapshot{
		seq:        s.seq,
		order:      maps.Clone(s.order),
		principals: cloneMap(s.principals, clonePrincipal),
		products:   cloneMap(s.products, cloneProduct),
		news:       cloneMap(s.news, cloneNews),
		reviews:    cloneMap(s.reviews, cloneReview),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq = snap.seq
	s.order = snap.order
	s.principals = snap.principals
	s.products = snap.products
	s.news = snap.news
	s.reviews = snap.reviews
}

func cloneMap[T any](m map[uuid.UUID]*T, clone func(*T) *T) map[uuid.UUID]*T {
	out := make(map[uuid.UUID]*T, len(m))
	for id, v := range m {
		out[id] = clone(v)
	}

	return out
}

func clonePrincipal(p *entity.Principal) *entity.Principal {
	c := *p
	c.Profile.DOB = clonePtr(p.Profile.DOB)
	c.Profile.Weight = clonePtr(p.Profile.Weight)
	c.Profile.Height = clonePtr(p.Profile.Height)
	c.Profile.BMI = clonePtr(p.Profile.BMI)
	c.Profile.Gender = clonePtr(p.Profile.Gender)
	c.Profile.IsVeg = clonePtr(p.Profile.IsVeg)
	c.Products = slices.Clone(p.Products)
	c.Favourites = slices.Clone(p.Favourites)
	c.History = slices.Clone(p.History)
	c.News = slices.Clone(p.News)

	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	c.NutritionalInfo = maps.Clone(p.NutritionalInfo)
	c.Ingredients = slices.Clone(p.Ingredients)
	c.Tags = slices.Clone(p.Tags)
	c.Certifications = slices.Clone(p.Certifications)
	c.Diseases = slices.Clone(p.Diseases)

	return &c
}

func cloneNews(n *entity.News) *entity.News {
	c := *n

	return &c
}

func cloneReview(r *entity.Review) *entity.Review {
	c := *r

	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v

	return &c
}

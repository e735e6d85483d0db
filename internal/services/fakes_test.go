package services

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/data/repos"
	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

type fakeSupplementRepo struct {
	mu       sync.Mutex
	rows     map[string]*supplement.Supplement
	order    []string
	listHits int
}

func newFakeSupplementRepo(rows ...*supplement.Supplement) *fakeSupplementRepo {
	r := &fakeSupplementRepo{rows: map[string]*supplement.Supplement{}}
	for _, s := range rows {
		r.rows[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r
}

func (r *fakeSupplementRepo) Upsert(_ context.Context, _ *gorm.DB, rows []*supplement.Supplement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range rows {
		if _, ok := r.rows[s.ID]; !ok {
			r.order = append(r.order, s.ID)
		}
		r.rows[s.ID] = s
	}
	return nil
}

func (r *fakeSupplementRepo) GetByID(_ context.Context, _ *gorm.DB, id string) (*supplement.Supplement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id], nil
}

func (r *fakeSupplementRepo) GetActiveByIDs(_ context.Context, _ *gorm.DB, ids []string) ([]*supplement.Supplement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*supplement.Supplement{}
	for _, id := range ids {
		if s, ok := r.rows[id]; ok && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSupplementRepo) ListActive(_ context.Context, _ *gorm.DB, filter repos.SupplementFilter) ([]*supplement.Supplement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listHits++
	out := []*supplement.Supplement{}
	for _, id := range r.order {
		s, ok := r.rows[id]
		if !ok || !s.IsActive {
			continue
		}
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSupplementRepo) CountActive(ctx context.Context, tx *gorm.DB) (int64, error) {
	rows, _ := r.ListActive(ctx, tx, repos.SupplementFilter{})
	return int64(len(rows)), nil
}

func (r *fakeSupplementRepo) SoftDeleteByIDs(_ context.Context, _ *gorm.DB, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.rows[id]; ok {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeSupplementRepo) lists() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listHits
}

type fakeNodeRepo struct {
	mu   sync.Mutex
	rows map[string]knowledge.Node
}

func (r *fakeNodeRepo) Upsert(_ context.Context, _ *gorm.DB, rows []*knowledge.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rows == nil {
		r.rows = map[string]knowledge.Node{}
	}
	for _, n := range rows {
		r.rows[n.ID] = *n
	}
	return nil
}

func (r *fakeNodeRepo) List(_ context.Context, _ *gorm.DB) ([]knowledge.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]knowledge.Node, 0, len(r.rows))
	for _, n := range r.rows {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeNodeRepo) DeleteByIDs(_ context.Context, _ *gorm.DB, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}

type fakeRelRepo struct {
	mu   sync.Mutex
	rows map[string]knowledge.Relationship
}

func (r *fakeRelRepo) Upsert(_ context.Context, _ *gorm.DB, rows []*knowledge.Relationship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rows == nil {
		r.rows = map[string]knowledge.Relationship{}
	}
	for _, rel := range rows {
		r.rows[rel.ID] = *rel
	}
	return nil
}

func (r *fakeRelRepo) List(_ context.Context, _ *gorm.DB) ([]knowledge.Relationship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]knowledge.Relationship, 0, len(r.rows))
	for _, rel := range r.rows {
		out = append(out, rel)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRelRepo) DeleteByIDs(_ context.Context, _ *gorm.DB, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}

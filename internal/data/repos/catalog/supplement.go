package catalog

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

type ListFilter struct {
	Category    supplement.Category
	MinEvidence supplement.EvidenceLevel
	// Limit <= 0 means no limit.
	Limit int
}

type SupplementRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*supplement.Supplement) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*supplement.Supplement, error)
	GetActiveByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*supplement.Supplement, error)
	ListActive(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*supplement.Supplement, error)
	CountActive(ctx context.Context, tx *gorm.DB) (int64, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []string) (int64, error)
}

type supplementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSupplementRepo(db *gorm.DB, baseLog *logger.Logger) SupplementRepo {
	repoLog := baseLog.With("repo", "SupplementRepo")
	return &supplementRepo{db: db, log: repoLog}
}

// evidenceOrder sorts strongest evidence first in SQL.
var evidenceOrder = func() string {
	var b strings.Builder
	b.WriteString("CASE evidence_level")
	for _, lvl := range supplement.EvidenceLevels {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", lvl, lvl.Rank())
	}
	fmt.Fprintf(&b, " ELSE %d END", len(supplement.EvidenceLevels))
	return b.String()
}()

func (r *supplementRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*supplement.Supplement) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&rows).Error
}

func (r *supplementRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*supplement.Supplement, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var rows []*supplement.Supplement
	if err := t.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// GetActiveByIDs returns active supplements in the order of ids. Unknown and
// duplicate ids are skipped.
func (r *supplementRepo) GetActiveByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*supplement.Supplement, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	results := []*supplement.Supplement{}
	if len(ids) == 0 {
		return results, nil
	}
	var rows []*supplement.Supplement
	if err := t.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*supplement.Supplement, len(rows))
	for _, s := range rows {
		byID[s.ID] = s
	}
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			results = append(results, s)
			delete(byID, id)
		}
	}
	return results, nil
}

func (r *supplementRepo) ListActive(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*supplement.Supplement, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).Where("is_active = ?", true)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.MinEvidence != "" {
		q = q.Where("evidence_level IN ?", supplement.AtLeast(filter.MinEvidence))
	}
	q = q.Order(evidenceOrder).Order("polish_name ASC").Order("id ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var results []*supplement.Supplement
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *supplementRepo) CountActive(ctx context.Context, tx *gorm.DB) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(ctx).
		Model(&supplement.Supplement{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *supplementRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []string) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := t.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&supplement.Supplement{})
	if res.Error != nil {
		return 0, res.Error
	}
	r.log.Info("Supplements soft-deleted", "count", res.RowsAffected)
	return res.RowsAffected, nil
}

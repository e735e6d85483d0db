package knowledge

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

type NodeRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*types.Node) error
	List(ctx context.Context, tx *gorm.DB) ([]types.Node, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []string) error
}

type RelationshipRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*types.Relationship) error
	List(ctx context.Context, tx *gorm.DB) ([]types.Relationship, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []string) error
}

type nodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNodeRepo(db *gorm.DB, baseLog *logger.Logger) NodeRepo {
	return &nodeRepo{db: db, log: baseLog.With("repo", "KnowledgeNodeRepo")}
}

func (r *nodeRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*types.Node) error {
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

// List returns every node ordered by id so projections stay deterministic.
func (r *nodeRepo) List(ctx context.Context, tx *gorm.DB) ([]types.Node, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []types.Node
	if err := t.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *nodeRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("id IN ?", ids).Delete(&types.Node{}).Error
}

type relationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipRepo {
	return &relationshipRepo{db: db, log: baseLog.With("repo", "KnowledgeRelationshipRepo")}
}

func (r *relationshipRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*types.Relationship) error {
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

func (r *relationshipRepo) List(ctx context.Context, tx *gorm.DB) ([]types.Relationship, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []types.Relationship
	if err := t.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *relationshipRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("id IN ?", ids).Delete(&types.Relationship{}).Error
}

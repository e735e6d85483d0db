package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/data/repos/catalog"
	"github.com/yungbote/suplementor-backend/internal/data/repos/knowledge"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

type SupplementRepo = catalog.SupplementRepo
type SupplementFilter = catalog.ListFilter

type KnowledgeNodeRepo = knowledge.NodeRepo
type KnowledgeRelationshipRepo = knowledge.RelationshipRepo

func NewSupplementRepo(db *gorm.DB, baseLog *logger.Logger) SupplementRepo {
	return catalog.NewSupplementRepo(db, baseLog)
}

func NewKnowledgeNodeRepo(db *gorm.DB, baseLog *logger.Logger) KnowledgeNodeRepo {
	return knowledge.NewNodeRepo(db, baseLog)
}

func NewKnowledgeRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) KnowledgeRelationshipRepo {
	return knowledge.NewRelationshipRepo(db, baseLog)
}

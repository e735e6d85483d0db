package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/data/repos"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

type Repos struct {
	Supplement            repos.SupplementRepo
	KnowledgeNode         repos.KnowledgeNodeRepo
	KnowledgeRelationship repos.KnowledgeRelationshipRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Supplement:            repos.NewSupplementRepo(db, log),
		KnowledgeNode:         repos.NewKnowledgeNodeRepo(db, log),
		KnowledgeRelationship: repos.NewKnowledgeRelationshipRepo(db, log),
	}
}

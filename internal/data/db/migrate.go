package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Catalog
		&supplement.Supplement{},

		// Curated knowledge base
		&knowledge.Node{},
		&knowledge.Relationship{},
	)
}

// EnsureIndexes adds the composite indexes AutoMigrate cannot express.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_supplement_active_category", `CREATE INDEX IF NOT EXISTS idx_supplement_active_category ON supplement(is_active, category);`},
		{"idx_supplement_evidence", `CREATE INDEX IF NOT EXISTS idx_supplement_evidence ON supplement(evidence_level);`},
		{"idx_knowledge_relationship_pair", `CREATE INDEX IF NOT EXISTS idx_knowledge_relationship_pair ON knowledge_relationship(source_id, target_id);`},
	}
	for _, st := range stmts {
		if err := db.Exec(st.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", st.name, err)
		}
	}
	return nil
}

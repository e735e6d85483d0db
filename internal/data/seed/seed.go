package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/data/repos"
	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
	"github.com/yungbote/suplementor-backend/internal/platform/validate"
)

//go:embed catalog.yaml
var catalogYAML []byte

//go:embed knowledge.yaml
var knowledgeYAML []byte

type Data struct {
	Supplements []supplement.Supplement
	Base        knowledge.Base
}

type catalogDoc struct {
	Supplements []supplement.Supplement `json:"supplements"`
}

// Load decodes the embedded catalog and knowledge base. Every seeded
// supplement is active.
func Load() (*Data, error) {
	var cat catalogDoc
	if err := decode(catalogYAML, &cat); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	var base knowledge.Base
	if err := decode(knowledgeYAML, &base); err != nil {
		return nil, fmt.Errorf("seed knowledge: %w", err)
	}

	seen := map[string]bool{}
	for i := range cat.Supplements {
		s := &cat.Supplements[i]
		s.IsActive = true
		if seen[s.ID] {
			return nil, fmt.Errorf("seed catalog: duplicate supplement id %q", s.ID)
		}
		seen[s.ID] = true
		if err := validate.Struct(s); err != nil {
			return nil, fmt.Errorf("seed catalog: supplement %q: %w", s.ID, err)
		}
	}

	nodeIDs := map[string]bool{}
	for i := range base.Nodes {
		n := &base.Nodes[i]
		if err := validate.Struct(n); err != nil {
			return nil, fmt.Errorf("seed knowledge: node %q: %w", n.ID, err)
		}
		nodeIDs[n.ID] = true
	}
	for i := range base.Relationships {
		r := &base.Relationships[i]
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("seed knowledge: relationship %q: %w", r.ID, err)
		}
		if !nodeIDs[r.SourceID] || !nodeIDs[r.TargetID] {
			return nil, fmt.Errorf("seed knowledge: relationship %q references unknown node", r.ID)
		}
	}

	return &Data{Supplements: cat.Supplements, Base: base}, nil
}

// decode goes through JSON so the domain json tags drive field names.
func decode(raw []byte, out any) error {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

type Result struct {
	Supplements   int `json:"supplements"`
	Nodes         int `json:"nodes"`
	Relationships int `json:"relationships"`
}

// Apply upserts the seed data inside one transaction.
func Apply(ctx context.Context, db *gorm.DB, log *logger.Logger, supplements repos.SupplementRepo, nodes repos.KnowledgeNodeRepo, rels repos.KnowledgeRelationshipRepo) (Result, error) {
	data, err := Load()
	if err != nil {
		return Result{}, err
	}

	supRows := make([]*supplement.Supplement, 0, len(data.Supplements))
	for i := range data.Supplements {
		supRows = append(supRows, &data.Supplements[i])
	}
	nodeRows := make([]*knowledge.Node, 0, len(data.Base.Nodes))
	for i := range data.Base.Nodes {
		nodeRows = append(nodeRows, &data.Base.Nodes[i])
	}
	relRows := make([]*knowledge.Relationship, 0, len(data.Base.Relationships))
	for i := range data.Base.Relationships {
		relRows = append(relRows, &data.Base.Relationships[i])
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := supplements.Upsert(ctx, tx, supRows); err != nil {
			return err
		}
		if err := nodes.Upsert(ctx, tx, nodeRows); err != nil {
			return err
		}
		return rels.Upsert(ctx, tx, relRows)
	})
	if err != nil {
		return Result{}, fmt.Errorf("apply seed: %w", err)
	}

	res := Result{Supplements: len(supRows), Nodes: len(nodeRows), Relationships: len(relRows)}
	if log != nil {
		log.Info("Seed applied", "supplements", res.Supplements, "nodes", res.Nodes, "relationships", res.Relationships)
	}
	return res, nil
}

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/platform/logger"
	"github.com/yungbote/suplementor-backend/internal/platform/neo4jdb"
)

type SyncResult struct {
	Nodes         int  `json:"nodes"`
	Relationships int  `json:"relationships"`
	Pruned        int  `json:"pruned"`
	Skipped       bool `json:"skipped"`
}

func nodeRecords(nodes []knowledge.Node, syncedAt string) []map[string]any {
	out := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			continue
		}
		props := ""
		if len(n.Properties) > 0 {
			if b, err := json.Marshal(n.Properties); err == nil {
				props = string(b)
			}
		}
		out = append(out, map[string]any{
			"id":              n.ID,
			"type":            string(n.Type),
			"name":            n.Name,
			"polish_name":     n.PolishName,
			"category":        n.Category,
			"evidence_level":  string(n.EvidenceLevel),
			"color":           n.Color,
			"size":            n.Size,
			"importance":      n.Importance,
			"tags":            []string(n.Tags),
			"properties_json": props,
			"synced_at":       syncedAt,
		})
	}
	return out
}

func relationshipRecords(rels []knowledge.Relationship, syncedAt string) []map[string]any {
	out := make([]map[string]any, 0, len(rels))
	for _, r := range rels {
		if r.ID == "" || r.SourceID == "" || r.TargetID == "" {
			continue
		}
		out = append(out, map[string]any{
			"id":               r.ID,
			"from_id":          r.SourceID,
			"to_id":            r.TargetID,
			"rel_type":         string(r.Type),
			"strength":         r.Strength,
			"confidence":       r.Confidence,
			"mechanism":        r.Mechanism,
			"polish_mechanism": r.PolishMechanism,
			"evidence_level":   string(r.EvidenceLevel),
			"bidirectional":    r.Bidirectional,
			"synced_at":        syncedAt,
		})
	}
	return out
}

// UpsertKnowledgeGraph mirrors a projected graph into Neo4j. Nodes and edges
// not present in g are removed when prune is set. A nil client is a no-op.
func UpsertKnowledgeGraph(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, g knowledge.Graph, prune bool) (SyncResult, error) {
	if client == nil || client.Driver == nil {
		return SyncResult{Skipped: true}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	nodes := nodeRecords(g.Nodes, now)
	rels := relationshipRecords(g.Relationships, now)

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	// Schema helpers are best-effort; restricted users may not create them.
	for _, stmt := range []string{
		`CREATE CONSTRAINT knowledge_node_id_unique IF NOT EXISTS FOR (n:KnowledgeNode) REQUIRE n.id IS UNIQUE`,
		`CREATE INDEX knowledge_node_type_idx IF NOT EXISTS FOR (n:KnowledgeNode) ON (n.type)`,
	} {
		if res, err := session.Run(ctx, stmt, nil); err != nil {
			if log != nil {
				log.Warn("neo4j schema init failed (continuing)", "error", err)
			}
		} else {
			_, _ = res.Consume(ctx)
		}
	}

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res := SyncResult{Nodes: len(nodes), Relationships: len(rels)}
		if len(nodes) > 0 {
			r, err := tx.Run(ctx, `
UNWIND $nodes AS n
MERGE (k:KnowledgeNode {id: n.id})
SET k += n
`, map[string]any{"nodes": nodes})
			if err != nil {
				return nil, err
			}
			if _, err := r.Consume(ctx); err != nil {
				return nil, err
			}
		}

		if len(rels) > 0 {
			r, err := tx.Run(ctx, `
UNWIND $rels AS r
MATCH (a:KnowledgeNode {id: r.from_id})
MATCH (b:KnowledgeNode {id: r.to_id})
MERGE (a)-[e:KNOWLEDGE_EDGE {id: r.id}]->(b)
SET e.type = r.rel_type,
    e.strength = r.strength,
    e.confidence = r.confidence,
    e.mechanism = r.mechanism,
    e.polish_mechanism = r.polish_mechanism,
    e.evidence_level = r.evidence_level,
    e.bidirectional = r.bidirectional,
    e.synced_at = r.synced_at
`, map[string]any{"rels": rels})
			if err != nil {
				return nil, err
			}
			if _, err := r.Consume(ctx); err != nil {
				return nil, err
			}
		}

		if prune {
			r, err := tx.Run(ctx, `
MATCH ()-[e:KNOWLEDGE_EDGE]->()
WHERE e.synced_at <> $now
DELETE e
`, map[string]any{"now": now})
			if err != nil {
				return nil, err
			}
			if _, err := r.Consume(ctx); err != nil {
				return nil, err
			}
			r, err = tx.Run(ctx, `
MATCH (k:KnowledgeNode)
WHERE k.synced_at <> $now
DETACH DELETE k
RETURN count(*) AS pruned
`, map[string]any{"now": now})
			if err != nil {
				return nil, err
			}
			rec, err := r.Single(ctx)
			if err != nil {
				return nil, err
			}
			if v, ok := rec.Get("pruned"); ok {
				if n, ok := v.(int64); ok {
					res.Pruned = int(n)
				}
			}
		}
		return res, nil
	})
	if err != nil {
		return SyncResult{}, fmt.Errorf("neo4j knowledge graph sync: %w", err)
	}
	result, _ := out.(SyncResult)
	if log != nil {
		log.Info("Knowledge graph synced to neo4j", "nodes", result.Nodes, "relationships", result.Relationships, "pruned", result.Pruned)
	}
	return result, nil
}

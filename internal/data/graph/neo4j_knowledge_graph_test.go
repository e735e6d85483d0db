package graph

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
)

func TestNodeRecords(t *testing.T) {
	recs := nodeRecords([]knowledge.Node{
		{ID: "dopamine", Type: knowledge.NodeNeurotransmitter, Name: "Dopamine", Tags: datatypes.JSONSlice[string]{"reward"}, Properties: datatypes.JSONMap{"k": "v"}},
		{ID: "", Name: "dropped"},
	}, "now")
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0]["type"] != "NEUROTRANSMITTER" || recs[0]["properties_json"] != `{"k":"v"}` || recs[0]["synced_at"] != "now" {
		t.Fatalf("unexpected record: %+v", recs[0])
	}
	if tags, ok := recs[0]["tags"].([]string); !ok || len(tags) != 1 {
		t.Fatalf("tags must be a plain string list for the driver: %#v", recs[0]["tags"])
	}
}

func TestRelationshipRecords(t *testing.T) {
	recs := relationshipRecords([]knowledge.Relationship{
		{ID: "a-b", SourceID: "a", TargetID: "b", Type: knowledge.RelSynergizes, Strength: 0.8, Bidirectional: true},
		{ID: "dangling", SourceID: "a"},
	}, "now")
	if len(recs) != 1 || recs[0]["rel_type"] != "SYNERGIZES" || recs[0]["bidirectional"] != true {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestUpsertKnowledgeGraph_NilClientIsNoop(t *testing.T) {
	res, err := UpsertKnowledgeGraph(context.Background(), nil, nil, knowledge.Graph{}, true)
	if err != nil || !res.Skipped {
		t.Fatalf("expected skipped no-op, got %+v / %v", res, err)
	}
}

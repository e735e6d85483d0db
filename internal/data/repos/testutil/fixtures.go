package testutil

import (
	"context"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

func NewSupplement(id string, cat supplement.Category, ev supplement.EvidenceLevel) *supplement.Supplement {
	return &supplement.Supplement{
		ID:            id,
		Name:          id,
		PolishName:    id,
		Category:      cat,
		EvidenceLevel: ev,
		Tags:          datatypes.JSONSlice[string]{"test"},
		Dosage: datatypes.NewJSONType(supplement.DosageGuidelines{
			StandardDose: &supplement.StandardDose{Amount: 100, Unit: "mg", Frequency: "daily"},
		}),
		IsActive: true,
	}
}

func SeedSupplement(tb testing.TB, ctx context.Context, tx *gorm.DB, s *supplement.Supplement) *supplement.Supplement {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed supplement: %v", err)
	}
	return s
}

func SeedNode(tb testing.TB, ctx context.Context, tx *gorm.DB, id string, typ knowledge.NodeType) *knowledge.Node {
	tb.Helper()
	n := &knowledge.Node{
		ID:   id,
		Type: typ,
		Name: id,
	}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed node: %v", err)
	}
	return n
}

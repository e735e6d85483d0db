package knowledgegraph

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/suplementor-backend/internal/domain/knowledge"
	"github.com/yungbote/suplementor-backend/internal/domain/supplement"
)

const (
	DefaultMaxNodes = 500
	NodeCap         = 5000

	SupplementNodePrefix = "supplement-"

	mechanismStrength   = 0.7
	mechanismConfidence = 0.8

	interactionConfidence = 0.7
)

type Options struct {
	// MinEvidence drops relationships weaker than this level. Relationships
	// without an evidence level are kept.
	MinEvidence supplement.EvidenceLevel
	MaxNodes    int
	NodeTypes   []knowledge.NodeType
}

func (o Options) withDefaults() Options {
	if !o.MinEvidence.Valid() {
		o.MinEvidence = supplement.EvidenceWeak
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.MaxNodes > NodeCap {
		o.MaxNodes = NodeCap
	}
	return o
}

// SupplementNodeID is the graph id of a supplement's node.
func SupplementNodeID(supplementID string) string {
	return SupplementNodePrefix + supplementID
}

type projection struct {
	nodes   []knowledge.Node
	index   map[string]int
	rels    []knowledge.Relationship
	relSeen map[string]bool
	stats   knowledge.Stats
}

func (p *projection) addNode(n knowledge.Node) bool {
	if n.ID == "" {
		return false
	}
	if _, dup := p.index[n.ID]; dup {
		return false
	}
	p.index[n.ID] = len(p.nodes)
	p.nodes = append(p.nodes, n)
	return true
}

func (p *projection) addRel(r knowledge.Relationship) {
	if p.relSeen[r.ID] {
		return
	}
	p.relSeen[r.ID] = true
	r.Strength = clamp01(r.Strength)
	r.Confidence = clamp01(r.Confidence)
	p.rels = append(p.rels, r)
}

// findByName returns the first node, in insertion order, accepted by keep
// whose name contains needle or whose polish name contains polishNeedle.
func (p *projection) findByName(needle, polishNeedle string, keep func(knowledge.Node) bool) (string, bool) {
	needle = strings.ToLower(strings.TrimSpace(needle))
	polishNeedle = strings.ToLower(strings.TrimSpace(polishNeedle))
	if needle == "" && polishNeedle == "" {
		return "", false
	}
	for _, n := range p.nodes {
		if !keep(n) {
			continue
		}
		if needle != "" && strings.Contains(strings.ToLower(n.Name), needle) {
			return n.ID, true
		}
		if polishNeedle != "" && n.PolishName != "" && strings.Contains(strings.ToLower(n.PolishName), polishNeedle) {
			return n.ID, true
		}
	}
	return "", false
}

func (p *projection) has(id string) bool {
	_, ok := p.index[id]
	return ok
}

func supplementNode(s *supplement.Supplement) knowledge.Node {
	return knowledge.Node{
		ID:                SupplementNodeID(s.ID),
		Type:              knowledge.NodeSupplement,
		Name:              s.Name,
		PolishName:        s.PolishName,
		Description:       s.Description,
		PolishDescription: s.PolishDescription,
		Category:          string(s.Category),
		EvidenceLevel:     s.EvidenceLevel,
		Color:             colorFor(s.Category),
		Size:              supplementSize(s),
		Importance:        supplementImportance(s),
		Tags:              append(datatypes.JSONSlice[string]{}, s.Tags...),
		Properties: datatypes.JSONMap{
			"supplement_id":   s.ID,
			"scientific_name": s.ScientificName,
			"studies":         len(s.Studies),
			"applications":    len(s.Clinical),
		},
	}
}

func evidenceOr(lvl, fallback supplement.EvidenceLevel) supplement.EvidenceLevel {
	if lvl.Valid() {
		return lvl
	}
	return fallback
}

func (p *projection) mechanismEdges(s *supplement.Supplement, srcID string) {
	notSupplement := func(n knowledge.Node) bool { return n.Type != knowledge.NodeSupplement }
	for _, m := range s.Mechanisms {
		target := ""
		switch {
		case m.NodeID != "" && p.has(m.NodeID):
			target = m.NodeID
		case m.NodeID != "":
			// A dangling reference never falls back to name matching.
			p.stats.DroppedRelationships++
			continue
		default:
			needle := m.Name
			if strings.TrimSpace(needle) == "" {
				needle = m.Pathway
			}
			id, ok := p.findByName(needle, "", notSupplement)
			if !ok {
				continue
			}
			target = id
			p.stats.FuzzyMatches++
		}
		p.addRel(knowledge.Relationship{
			ID:              fmt.Sprintf("%s-modulates-%s", srcID, target),
			SourceID:        srcID,
			TargetID:        target,
			Type:            knowledge.RelModulates,
			Strength:        mechanismStrength,
			Confidence:      mechanismConfidence,
			Mechanism:       firstNonEmpty(m.Description, m.Pathway, m.Name),
			PolishMechanism: firstNonEmpty(m.PolishDescription, m.PolishPathway, m.PolishName),
			EvidenceLevel:   evidenceOr(m.EvidenceLevel, s.EvidenceLevel),
		})
	}
}

func (p *projection) interactionEdges(s *supplement.Supplement, srcID string) {
	notSelf := func(n knowledge.Node) bool { return n.ID != srcID }
	for _, ix := range s.Interactions {
		target := ""
		switch {
		case ix.SubstanceID != "" && p.has(SupplementNodeID(ix.SubstanceID)):
			target = SupplementNodeID(ix.SubstanceID)
		case ix.SubstanceID != "" && p.has(ix.SubstanceID):
			target = ix.SubstanceID
		case ix.SubstanceID != "":
			p.stats.DroppedRelationships++
			continue
		default:
			id, ok := p.findByName(ix.Substance, ix.PolishSubstance, notSelf)
			if !ok {
				continue
			}
			target = id
			p.stats.FuzzyMatches++
		}
		if target == srcID {
			continue
		}
		relType := knowledge.RelationshipFor(ix.Type)
		p.addRel(knowledge.Relationship{
			ID:              fmt.Sprintf("%s-%s-%s", srcID, strings.ToLower(string(relType)), target),
			SourceID:        srcID,
			TargetID:        target,
			Type:            relType,
			Strength:        ix.Type.Strength(),
			Confidence:      interactionConfidence,
			Mechanism:       firstNonEmpty(ix.Mechanism, ix.Description),
			PolishMechanism: firstNonEmpty(ix.PolishMechanism, ix.PolishDescription),
			EvidenceLevel:   evidenceOr(ix.EvidenceLevel, supplement.EvidenceModerate),
			Bidirectional:   relType == knowledge.RelSynergizes || relType == knowledge.RelAntagonizes,
		})
	}
}

// Project turns supplements and the curated knowledge base into a renderable
// graph. The output depends only on its inputs: node order is base nodes then
// supplements in catalog order, and every relationship id is derived from its
// endpoints.
func Project(sups []*supplement.Supplement, base knowledge.Base, opts Options) knowledge.Graph {
	opts = opts.withDefaults()
	p := &projection{
		nodes:   make([]knowledge.Node, 0, len(base.Nodes)+len(sups)),
		index:   make(map[string]int, len(base.Nodes)+len(sups)),
		relSeen: map[string]bool{},
	}

	for _, n := range base.Nodes {
		p.addNode(styleBaseNode(n))
	}
	active := make([]*supplement.Supplement, 0, len(sups))
	for _, s := range sups {
		if s == nil || s.ID == "" {
			continue
		}
		if p.addNode(supplementNode(s)) {
			active = append(active, s)
		}
	}
	// Edges are resolved only after every node exists so a later supplement
	// can be an interaction target of an earlier one.
	for _, s := range active {
		srcID := SupplementNodeID(s.ID)
		p.mechanismEdges(s, srcID)
		p.interactionEdges(s, srcID)
	}
	for _, r := range base.Relationships {
		p.addRel(r)
	}

	nodes := filterTypes(p.nodes, opts.NodeTypes)
	nodes, trimmed := trim(nodes, opts.MaxNodes)
	p.stats.TrimmedNodes = trimmed

	keep := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		keep[n.ID] = true
	}
	minWeight := opts.MinEvidence.Weight()
	rels := make([]knowledge.Relationship, 0, len(p.rels))
	for _, r := range p.rels {
		if r.EvidenceLevel != "" && r.EvidenceLevel.Weight() < minWeight {
			continue
		}
		if !keep[r.SourceID] || !keep[r.TargetID] {
			p.stats.DroppedRelationships++
			continue
		}
		rels = append(rels, r)
	}

	p.stats.NodeCount = len(nodes)
	p.stats.RelationshipCount = len(rels)
	return knowledge.Graph{Nodes: nodes, Relationships: rels, Stats: p.stats}
}

func filterTypes(nodes []knowledge.Node, types []knowledge.NodeType) []knowledge.Node {
	if len(types) == 0 {
		return nodes
	}
	allowed := make(map[knowledge.NodeType]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	out := make([]knowledge.Node, 0, len(nodes))
	for _, n := range nodes {
		if allowed[n.Type] {
			out = append(out, n)
		}
	}
	return out
}

// trim keeps the limit most important nodes. Survivors keep their original order.
func trim(nodes []knowledge.Node, limit int) ([]knowledge.Node, int) {
	if len(nodes) <= limit {
		return nodes, 0
	}
	order := make([]int, len(nodes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return nodes[order[a]].Importance > nodes[order[b]].Importance
	})
	kept := make([]bool, len(nodes))
	for _, idx := range order[:limit] {
		kept[idx] = true
	}
	out := make([]knowledge.Node, 0, limit)
	for i, n := range nodes {
		if kept[i] {
			out = append(out, n)
		}
	}
	return out, len(nodes) - limit
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

package ontology

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/poiesic/souk/core"
	"gopkg.in/yaml.v3"
)

// Concept is a node in a locally loaded taxonomy. The parent relation forms
// a forest: each concept has at most one parent and acyclicity is enforced
// at insertion time by requiring parents to exist before their children.
type Concept struct {
	Id       string
	Synonyms []string
	Parent   string
	Children []string
}

// Tree is an arena of Concept nodes indexed by id, with a term index over
// ids and synonyms. It is safe for concurrent use.
type Tree struct {
	mu    sync.RWMutex
	nodes map[string]*Concept
	terms map[string]string // normalized term -> concept id
}

// NewTree creates an empty concept tree.
func NewTree() *Tree {
	return &Tree{
		nodes: make(map[string]*Concept),
		terms: make(map[string]string),
	}
}

// Add inserts a concept under an existing parent. An empty parent makes the
// concept a root. The id and every synonym are indexed for term lookup.
// Because a parent must already be present, no insertion can create a cycle.
func (t *Tree) Add(id, parent string, synonyms ...string) error {
	normalizedId := NormalizeTerm(id)
	if normalizedId == "" {
		return fmt.Errorf("%w: empty id", ErrUnknownConcept)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.nodes[normalizedId]; ok {
		return fmt.Errorf("%w: %q", ErrConceptExists, normalizedId)
	}

	normalizedParent := NormalizeTerm(parent)
	if normalizedParent != "" {
		if normalizedParent == normalizedId {
			return fmt.Errorf("%w: %q is its own parent", ErrCyclicConcept, normalizedId)
		}
		parentNode, ok := t.nodes[normalizedParent]
		if !ok {
			return fmt.Errorf("%w: parent %q", ErrUnknownConcept, normalizedParent)
		}
		parentNode.Children = append(parentNode.Children, normalizedId)
	}

	node := &Concept{Id: normalizedId, Parent: normalizedParent}
	t.nodes[normalizedId] = node
	t.terms[normalizedId] = normalizedId
	for _, synonym := range synonyms {
		normalized := NormalizeTerm(synonym)
		if normalized == "" {
			continue
		}
		node.Synonyms = append(node.Synonyms, normalized)
		t.terms[normalized] = normalizedId
	}
	return nil
}

// Lookup resolves a term (concept id or synonym) to its concept id.
func (t *Tree) Lookup(term string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.terms[NormalizeTerm(term)]
	return id, ok
}

// IsAncestor reports whether ancestor appears on the rootward path from
// descendant, including ancestor == descendant. Unknown terms are never
// ancestors.
func (t *Tree) IsAncestor(ancestor, descendant string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ancestorId, ok := t.terms[NormalizeTerm(ancestor)]
	if !ok {
		return false
	}
	currentId, ok := t.terms[NormalizeTerm(descendant)]
	if !ok {
		return false
	}

	for currentId != "" {
		if currentId == ancestorId {
			return true
		}
		node, ok := t.nodes[currentId]
		if !ok {
			return false
		}
		currentId = node.Parent
	}
	return false
}

// Contains reports whether the term is known to the tree.
func (t *Tree) Contains(term string) bool {
	_, ok := t.Lookup(term)
	return ok
}

// Len returns the number of concepts in the tree.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// treeFile is the YAML shape of a taxonomy file. Concepts must be listed
// parents-first.
type treeFile struct {
	Concepts []struct {
		Id       string   `yaml:"id"`
		Parent   string   `yaml:"parent,omitempty"`
		Synonyms []string `yaml:"synonyms,omitempty"`
	} `yaml:"concepts"`
}

// LoadTree reads a taxonomy from a YAML file.
func LoadTree(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file treeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing taxonomy %s: %w", path, err)
	}

	tree := NewTree()
	for _, c := range file.Concepts {
		if err := tree.Add(c.Id, c.Parent, c.Synonyms...); err != nil {
			return nil, fmt.Errorf("taxonomy %s: %w", path, err)
		}
	}
	return tree, nil
}

// TreeSource adapts a Tree into a cascade Source. It answers implication and
// exclusion queries for terms the tree covers and is indefinite otherwise;
// antonym queries are always indefinite since the taxonomy carries none.
type TreeSource struct {
	tree *Tree
}

var _ Source = (*TreeSource)(nil)

// NewTreeSource creates a Source over a concept tree.
func NewTreeSource(tree *Tree) *TreeSource {
	return &TreeSource{tree: tree}
}

// Name identifies the source for provenance tags.
func (s *TreeSource) Name() core.Provenance {
	return core.ProvenanceTree
}

// Resolve judges the relation using tree ancestry.
func (s *TreeSource) Resolve(ctx context.Context, termA, termB string, kind core.RelationKind) (bool, error) {
	switch kind {
	case core.RelationImplies, core.RelationExcludes:
		if !s.tree.Contains(termA) || !s.tree.Contains(termB) {
			return false, ErrIndefinite
		}
		// termA implies / violates termB when termB is an ancestor of termA.
		return s.tree.IsAncestor(termB, termA), nil
	default:
		return false, ErrIndefinite
	}
}

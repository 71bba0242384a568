package ontology_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/souk/core"
	"github.com/poiesic/souk/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildVehicleTree(t *testing.T) *ontology.Tree {
	t.Helper()
	tree := ontology.NewTree()
	require.NoError(t, tree.Add("vehicle", ""))
	require.NoError(t, tree.Add("car", "vehicle", "automobile"))
	require.NoError(t, tree.Add("sedan", "car", "saloon"))
	require.NoError(t, tree.Add("boat", "vehicle"))
	return tree
}

func TestTreeAdd(t *testing.T) {
	tree := buildVehicleTree(t)
	assert.Equal(t, 4, tree.Len())

	id, ok := tree.Lookup("Automobile")
	require.True(t, ok)
	assert.Equal(t, "car", id)

	err := tree.Add("car", "vehicle")
	assert.ErrorIs(t, err, ontology.ErrConceptExists)

	err = tree.Add("submarine", "watercraft")
	assert.ErrorIs(t, err, ontology.ErrUnknownConcept, "parent must exist before the child")

	err = tree.Add("loop", "loop")
	assert.ErrorIs(t, err, ontology.ErrCyclicConcept)

	err = tree.Add("", "vehicle")
	assert.ErrorIs(t, err, ontology.ErrUnknownConcept)
}

func TestTreeIsAncestor(t *testing.T) {
	tree := buildVehicleTree(t)

	assert.True(t, tree.IsAncestor("vehicle", "sedan"))
	assert.True(t, tree.IsAncestor("car", "saloon"), "ancestry follows synonyms")
	assert.True(t, tree.IsAncestor("sedan", "sedan"), "a concept is its own ancestor")
	assert.False(t, tree.IsAncestor("sedan", "car"), "ancestry is directional")
	assert.False(t, tree.IsAncestor("boat", "sedan"))
	assert.False(t, tree.IsAncestor("spaceship", "sedan"), "unknown terms are never ancestors")
}

func TestLoadTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concepts.yaml")
	content := `concepts:
  - id: produce
  - id: fruit
    parent: produce
  - id: apple
    parent: fruit
    synonyms: [apples]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tree, err := ontology.LoadTree(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Len())
	assert.True(t, tree.IsAncestor("produce", "apples"))
}

func TestLoadTreeRejectsForwardReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concepts.yaml")
	content := `concepts:
  - id: apple
    parent: fruit
  - id: fruit
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ontology.LoadTree(path)
	assert.ErrorIs(t, err, ontology.ErrUnknownConcept)
}

func TestTreeSourceResolve(t *testing.T) {
	source := ontology.NewTreeSource(buildVehicleTree(t))
	ctx := context.Background()

	assert.Equal(t, core.ProvenanceTree, source.Name())

	answer, err := source.Resolve(ctx, "sedan", "vehicle", core.RelationImplies)
	require.NoError(t, err)
	assert.True(t, answer)

	answer, err = source.Resolve(ctx, "boat", "car", core.RelationImplies)
	require.NoError(t, err)
	assert.False(t, answer, "siblings do not imply each other")

	answer, err = source.Resolve(ctx, "saloon", "car", core.RelationExcludes)
	require.NoError(t, err)
	assert.True(t, answer, "a subtype falls under an excluded supertype")

	_, err = source.Resolve(ctx, "sedan", "spaceship", core.RelationImplies)
	assert.ErrorIs(t, err, ontology.ErrIndefinite, "unknown terms are outside the tree's competence")

	_, err = source.Resolve(ctx, "buy", "sell", core.RelationAntonym)
	assert.ErrorIs(t, err, ontology.ErrIndefinite, "the tree has no antonym edges")
}

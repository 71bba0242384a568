package rank

import (
	"fmt"
	"os"

	"github.com/poiesic/souk/core"
	"gopkg.in/yaml.v3"
)

// Method names shared with the upstream scoring services.
const (
	MethodDense        = "dense"
	MethodLexical      = "lexical"
	MethodCrossEncoder = "cross_encoder"
)

// WeightsForCategory returns the static weight vector for a listing
// category. Product and service listings fuse dense, lexical, and
// cross-encoder signals; mutual listings have no lexical signal.
func WeightsForCategory(intent core.Intent) (map[string]float64, error) {
	switch intent {
	case core.IntentProduct, core.IntentService:
		return map[string]float64{
			MethodDense:        1.0,
			MethodLexical:      0.8,
			MethodCrossEncoder: 1.2,
		}, nil
	case core.IntentMutual:
		return map[string]float64{
			MethodDense:        1.0,
			MethodCrossEncoder: 1.2,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, intent)
}

// weightsFile is the YAML shape of a weight configuration:
//
//	k: 60
//	categories:
//	  product: {dense: 1.0, lexical: 0.8}
//	  mutual: {dense: 1.0}
type weightsFile struct {
	K          float64                       `yaml:"k,omitempty"`
	Categories map[string]map[string]float64 `yaml:"categories"`
}

// Weights is a validated per-category weight configuration.
type Weights struct {
	K          float64
	Categories map[string]map[string]float64
}

// LoadWeights reads and validates a YAML weight configuration. Every
// category vector must pass the same checks NewFuser applies; a degenerate
// file is rejected before any ranking happens.
func LoadWeights(path string) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var parsed weightsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing weights %s: %w", path, err)
	}
	if len(parsed.Categories) == 0 {
		return nil, fmt.Errorf("%w: %s has no categories", ErrEmptyWeights, path)
	}

	for category, vector := range parsed.Categories {
		if _, err := NewFuser(vector); err != nil {
			return nil, fmt.Errorf("category %q: %w", category, err)
		}
	}
	if parsed.K < 0 {
		return nil, fmt.Errorf("%w: negative K", ErrInvalidWeights)
	}

	return &Weights{K: parsed.K, Categories: parsed.Categories}, nil
}

// FuserFor builds a fuser for a category name, using the file's K when set.
func (w *Weights) FuserFor(category string) (*Fuser, error) {
	vector, ok := w.Categories[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	if w.K > 0 {
		return NewFuser(vector, WithK(w.K))
	}
	return NewFuser(vector)
}

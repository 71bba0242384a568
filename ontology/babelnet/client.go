// Package babelnet queries the keyed BabelNet API as an optional cascade source.
package babelnet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/poiesic/souk/core"
	"github.com/poiesic/souk/ontology"
)

// DefaultBaseURL is the public BabelNet API endpoint.
const DefaultBaseURL = "https://babelnet.io/v9"

// ErrKeyRequired is returned when a client is constructed without an API key.
// Deployments without a key simply omit this tier from the cascade.
var ErrKeyRequired = errors.New("babelnet: API key required")

// Client resolves relationship queries against BabelNet synset edges.
// Implication and exclusion map to hypernym edges, antonymy to antonym edges.
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ontology.Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a BabelNet source. The key is mandatory; construction
// fails without one so callers skip the tier when unconfigured.
func NewClient(key string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrKeyRequired
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		key:        key,
		httpClient: http.DefaultClient,
		logger:     slog.Default().With("component", "babelnet"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name identifies the source for provenance tags.
func (c *Client) Name() core.Provenance {
	return core.ProvenanceBabelNet
}

// Resolve maps both lemmas to synsets and looks for a one-hop edge of the
// queried relation between them. A lemma with no synset is indefinite.
func (c *Client) Resolve(ctx context.Context, termA, termB string, kind core.RelationKind) (bool, error) {
	var pointerGroup string
	switch kind {
	case core.RelationImplies, core.RelationExcludes:
		pointerGroup = "HYPERNYM"
	case core.RelationAntonym:
		pointerGroup = "ANTONYM"
	default:
		return false, ontology.ErrIndefinite
	}

	synsetA, err := c.firstSynset(ctx, termA)
	if err != nil {
		return false, err
	}
	synsetB, err := c.firstSynset(ctx, termB)
	if err != nil {
		return false, err
	}

	edges, err := c.outgoingEdges(ctx, synsetA)
	if err != nil {
		return false, err
	}

	for _, edge := range edges {
		if edge.Target == synsetB && edge.Pointer.RelationGroup == pointerGroup {
			return true, nil
		}
	}
	return false, nil
}

// synsetId is one entry of the getSynsetIds response.
type synsetId struct {
	Id string `json:"id"`
}

func (c *Client) firstSynset(ctx context.Context, lemma string) (string, error) {
	query := url.Values{}
	query.Set("lemma", lemma)
	query.Set("searchLang", "EN")
	query.Set("key", c.key)

	var parsed []synsetId
	if err := c.get(ctx, "/getSynsetIds", query, &parsed); err != nil {
		return "", err
	}
	if len(parsed) == 0 {
		return "", fmt.Errorf("%w: no synset for %q", ontology.ErrIndefinite, lemma)
	}
	return parsed[0].Id, nil
}

// edge is one entry of the getOutgoingEdges response.
type edge struct {
	Target  string `json:"target"`
	Pointer struct {
		RelationGroup string `json:"relationGroup"`
	} `json:"pointer"`
}

func (c *Client) outgoingEdges(ctx context.Context, synset string) ([]edge, error) {
	query := url.Values{}
	query.Set("id", synset)
	query.Set("key", c.key)

	var parsed []edge
	if err := c.get(ctx, "/getOutgoingEdges", query, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	requestURL := c.baseURL + path + "?" + query.Encode()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("babelnet: unexpected status %d", response.StatusCode)
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("babelnet: decoding response: %w", err)
	}
	return nil
}

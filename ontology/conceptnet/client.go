// Package conceptnet queries the public ConceptNet API as a cascade source.
package conceptnet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/poiesic/souk/core"
	"github.com/poiesic/souk/ontology"
)

// DefaultBaseURL is the public ConceptNet API endpoint.
const DefaultBaseURL = "https://api.conceptnet.io"

// Client resolves relationship queries against the ConceptNet edge store.
// Implication and exclusion map to /r/IsA edges, antonymy to /r/Antonym.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ontology.Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for a local mirror or a test
// server.
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

// NewClient creates a ConceptNet source.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     slog.Default().With("component", "conceptnet"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the source for provenance tags.
func (c *Client) Name() core.Provenance {
	return core.ProvenanceConceptNet
}

// edgeResponse is the subset of the /query response the client reads.
type edgeResponse struct {
	Edges []struct {
		Rel struct {
			Id string `json:"@id"`
		} `json:"rel"`
	} `json:"edges"`
}

// Resolve queries for a direct edge of the relation between the two terms.
// A parsed response with no edges is a definite negative.
func (c *Client) Resolve(ctx context.Context, termA, termB string, kind core.RelationKind) (bool, error) {
	var rel string
	switch kind {
	case core.RelationImplies, core.RelationExcludes:
		rel = "/r/IsA"
	case core.RelationAntonym:
		rel = "/r/Antonym"
	default:
		return false, ontology.ErrIndefinite
	}

	query := url.Values{}
	query.Set("start", conceptURI(termA))
	query.Set("end", conceptURI(termB))
	query.Set("rel", rel)
	query.Set("limit", "1")

	requestURL := c.baseURL + "/query?" + query.Encode()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return false, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return false, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return false, fmt.Errorf("conceptnet: unexpected status %d", response.StatusCode)
	}

	var parsed edgeResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("conceptnet: decoding response: %w", err)
	}

	c.logger.Debug("queried edges",
		"term_a", termA, "term_b", termB, "rel", rel, "edges", len(parsed.Edges))
	return len(parsed.Edges) > 0, nil
}

// conceptURI converts a normalized term to a ConceptNet English concept URI.
func conceptURI(term string) string {
	return "/c/en/" + strings.ReplaceAll(term, " ", "_")
}

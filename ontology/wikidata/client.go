// Package wikidata queries the public Wikidata API as a cascade source.
package wikidata

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

// DefaultBaseURL is the public Wikidata API endpoint.
const DefaultBaseURL = "https://www.wikidata.org"

// Wikidata properties used for relationship judgments.
const (
	propSubclassOf = "P279"
	propInstanceOf = "P31"
	propOppositeOf = "P461"
)

// Client resolves relationship queries by mapping terms to Wikidata entities
// and walking one hop of their claims. Implication and exclusion map to
// subclass-of/instance-of claims, antonymy to opposite-of.
type Client struct {
	baseURL    string
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

// NewClient creates a Wikidata source.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		logger:     slog.Default().With("component", "wikidata"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the source for provenance tags.
func (c *Client) Name() core.Provenance {
	return core.ProvenanceWikidata
}

// Resolve maps both terms to entities and checks the relevant claims of the
// first for the second. A term with no matching entity is indefinite, not a
// negative: Wikidata simply has no opinion on it.
func (c *Client) Resolve(ctx context.Context, termA, termB string, kind core.RelationKind) (bool, error) {
	var properties []string
	switch kind {
	case core.RelationImplies, core.RelationExcludes:
		properties = []string{propSubclassOf, propInstanceOf}
	case core.RelationAntonym:
		properties = []string{propOppositeOf}
	default:
		return false, ontology.ErrIndefinite
	}

	entityA, err := c.searchEntity(ctx, termA)
	if err != nil {
		return false, err
	}
	entityB, err := c.searchEntity(ctx, termB)
	if err != nil {
		return false, err
	}

	for _, property := range properties {
		targets, err := c.claimTargets(ctx, entityA, property)
		if err != nil {
			return false, err
		}
		for _, target := range targets {
			if target == entityB {
				return true, nil
			}
		}
	}
	return false, nil
}

// searchResponse is the subset of the wbsearchentities response read here.
type searchResponse struct {
	Search []struct {
		Id string `json:"id"`
	} `json:"search"`
}

func (c *Client) searchEntity(ctx context.Context, term string) (string, error) {
	query := url.Values{}
	query.Set("action", "wbsearchentities")
	query.Set("search", term)
	query.Set("language", "en")
	query.Set("format", "json")
	query.Set("limit", "1")

	var parsed searchResponse
	if err := c.get(ctx, query, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Search) == 0 {
		return "", fmt.Errorf("%w: no entity for %q", ontology.ErrIndefinite, term)
	}
	return parsed.Search[0].Id, nil
}

// claimsResponse is the subset of the wbgetclaims response read here.
type claimsResponse struct {
	Claims map[string][]struct {
		Mainsnak struct {
			Datavalue struct {
				Value struct {
					Id string `json:"id"`
				} `json:"value"`
			} `json:"datavalue"`
		} `json:"mainsnak"`
	} `json:"claims"`
}

func (c *Client) claimTargets(ctx context.Context, entity, property string) ([]string, error) {
	query := url.Values{}
	query.Set("action", "wbgetclaims")
	query.Set("entity", entity)
	query.Set("property", property)
	query.Set("format", "json")

	var parsed claimsResponse
	if err := c.get(ctx, query, &parsed); err != nil {
		return nil, err
	}

	var targets []string
	for _, claims := range parsed.Claims {
		for _, claim := range claims {
			if id := claim.Mainsnak.Datavalue.Value.Id; id != "" {
				targets = append(targets, id)
			}
		}
	}
	return targets, nil
}

func (c *Client) get(ctx context.Context, query url.Values, out any) error {
	requestURL := c.baseURL + "/w/api.php?" + query.Encode()
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
		return fmt.Errorf("wikidata: unexpected status %d", response.StatusCode)
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("wikidata: decoding response: %w", err)
	}
	return nil
}

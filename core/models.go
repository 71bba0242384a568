package core

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or assigned by upstream storage.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Intent identifies which side of the market a listing lives on.
type Intent int

const (
	// IntentProduct represents a listing offering or requesting a product.
	IntentProduct Intent = iota + 1
	// IntentService represents a listing offering or requesting a service.
	IntentService
	// IntentMutual represents a listing seeking a mutual arrangement,
	// matched in both directions.
	IntentMutual
)

// String returns the wire name of the intent.
func (i Intent) String() string {
	switch i {
	case IntentProduct:
		return "product"
	case IntentService:
		return "service"
	case IntentMutual:
		return "mutual"
	}
	return "unknown"
}

// SubIntent refines an Intent into a direction within its market.
type SubIntent int

const (
	// SubIntentBuy seeks to acquire a product.
	SubIntentBuy SubIntent = iota + 1
	// SubIntentSell offers a product.
	SubIntentSell
	// SubIntentSeek seeks a service.
	SubIntentSeek
	// SubIntentProvide offers a service.
	SubIntentProvide
	// SubIntentConnect seeks a mutual arrangement.
	SubIntentConnect
)

// String returns the wire name of the subintent.
func (s SubIntent) String() string {
	switch s {
	case SubIntentBuy:
		return "buy"
	case SubIntentSell:
		return "sell"
	case SubIntentSeek:
		return "seek"
	case SubIntentProvide:
		return "provide"
	case SubIntentConnect:
		return "connect"
	}
	return "unknown"
}

// Complement returns the subintent a counterpart listing must carry for the
// pair to be compatible. Buy pairs with sell, seek with provide, and connect
// with itself.
func (s SubIntent) Complement() (SubIntent, bool) {
	switch s {
	case SubIntentBuy:
		return SubIntentSell, true
	case SubIntentSell:
		return SubIntentBuy, true
	case SubIntentSeek:
		return SubIntentProvide, true
	case SubIntentProvide:
		return SubIntentSeek, true
	case SubIntentConnect:
		return SubIntentConnect, true
	}
	return 0, false
}

// LocationMode selects how a listing's location constraint is interpreted.
type LocationMode int

const (
	// LocationExplicit requires token equality with the candidate.
	LocationExplicit LocationMode = iota + 1
	// LocationNearMe compares against a caller-resolved current token.
	LocationNearMe
	// LocationGlobal matches any candidate location.
	LocationGlobal
	// LocationRoute requires origin and destination to both match.
	LocationRoute
)

// String returns the wire name of the location mode.
func (m LocationMode) String() string {
	switch m {
	case LocationExplicit:
		return "explicit"
	case LocationNearMe:
		return "near_me"
	case LocationGlobal:
		return "global"
	case LocationRoute:
		return "route"
	}
	return "unknown"
}

// Span is an inclusive numeric interval. Open ends are represented with
// infinity sentinels rather than absence, so interval arithmetic never
// branches on presence.
type Span struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// FullSpan returns the unconstrained interval (-Inf, +Inf).
func FullSpan() Span {
	return Span{Low: math.Inf(-1), High: math.Inf(1)}
}

// Bundle groups the four constraint kinds shared by item bounds and
// preference/attribute declarations. An empty bundle is vacuously satisfied.
type Bundle struct {
	Categorical map[string]string  `json:"categorical,omitempty"`
	Min         map[string]float64 `json:"min,omitempty"`
	Max         map[string]float64 `json:"max,omitempty"`
	Range       map[string]Span    `json:"range,omitempty"`
}

// Empty reports whether the bundle carries no constraints at all.
func (b Bundle) Empty() bool {
	return len(b.Categorical) == 0 && len(b.Min) == 0 && len(b.Max) == 0 && len(b.Range) == 0
}

// Values returns every categorical value declared in the bundle.
// Used for exclusion disjointness checks.
func (b Bundle) Values() []string {
	out := make([]string, 0, len(b.Categorical))
	for _, v := range b.Categorical {
		out = append(out, v)
	}
	return out
}

// Item is a single required or offered unit inside a listing.
type Item struct {
	Type        string             `json:"type"`
	Categorical map[string]string  `json:"categorical,omitempty"`
	Min         map[string]float64 `json:"min,omitempty"`
	Max         map[string]float64 `json:"max,omitempty"`
	Range       map[string]Span    `json:"range,omitempty"`
}

// Bundle returns the item's constraints as a Bundle.
func (it Item) Bundle() Bundle {
	return Bundle{Categorical: it.Categorical, Min: it.Min, Max: it.Max, Range: it.Range}
}

// Location is an opaque location constraint. Token carries the place for
// explicit and near_me modes; Origin/Destination carry the endpoints for
// route mode.
type Location struct {
	Token       string       `json:"token,omitempty"`
	Origin      string       `json:"origin,omitempty"`
	Destination string       `json:"destination,omitempty"`
	Mode        LocationMode `json:"mode"`
}

// Listing is the unit being matched: a structured, two-sided offer or
// request. Listings are supplied per call and never mutated by matching.
type Listing struct {
	Id                      ID        `json:"id"`
	Intent                  Intent    `json:"intent"`
	SubIntent               SubIntent `json:"subintent"`
	Domains                 []string  `json:"domains,omitempty"`
	PrimaryMutualCategories []string  `json:"primary_mutual_categories,omitempty"`
	Items                   []Item    `json:"items,omitempty"`
	ItemExclusions          []string  `json:"item_exclusions,omitempty"`
	OtherPreferences        Bundle    `json:"other_preferences,omitempty"`
	SelfAttributes          Bundle    `json:"self_attributes,omitempty"`
	OtherExclusions         []string  `json:"other_exclusions,omitempty"`
	SelfExclusions          []string  `json:"self_exclusions,omitempty"`
	Location                Location  `json:"location,omitempty"`
	LocationExclusions      []string  `json:"location_exclusions,omitempty"`
}

// RelationKind identifies the kind of ontology relationship being queried.
type RelationKind int

const (
	// RelationImplies asks whether one term is on the ancestor-or-self path
	// of the other.
	RelationImplies RelationKind = iota + 1
	// RelationAntonym asks whether two terms are opposites.
	RelationAntonym
	// RelationExcludes asks whether a term violates an exclusion, including
	// through hierarchy.
	RelationExcludes
)

// String returns the wire name of the relation kind.
func (k RelationKind) String() string {
	switch k {
	case RelationImplies:
		return "implies"
	case RelationAntonym:
		return "antonym"
	case RelationExcludes:
		return "excludes"
	}
	return "unknown"
}

// Provenance tags which resolver tier produced an answer.
type Provenance string

const (
	// ProvenanceCache marks an answer served from the persistent cache.
	ProvenanceCache Provenance = "cache"
	// ProvenanceTree marks an answer from a locally loaded concept tree.
	ProvenanceTree Provenance = "tree"
	// ProvenanceConceptNet marks an answer from the ConceptNet service.
	ProvenanceConceptNet Provenance = "conceptnet"
	// ProvenanceWikidata marks an answer from the Wikidata service.
	ProvenanceWikidata Provenance = "wikidata"
	// ProvenanceBabelNet marks an answer from the BabelNet service.
	ProvenanceBabelNet Provenance = "babelnet"
	// ProvenanceLLM marks an answer from the generative fallback.
	ProvenanceLLM Provenance = "llm"
	// ProvenanceDefault marks the conservative default after every tier failed.
	ProvenanceDefault Provenance = "default"
)

// Resolution is a resolved ontology relationship answer with its provenance.
// Resolutions are written once per normalized key and never expire within a
// process lifetime.
type Resolution struct {
	Answer     bool
	Provenance Provenance
	ResolvedAt time.Time
}

// RankedCandidate carries per-method raw scores for a listing that already
// passed boolean matching. It is consumed only by rank fusion and never
// mutated by matching.
type RankedCandidate struct {
	ListingId ID                 `json:"listing_id"`
	Scores    map[string]float64 `json:"scores"`
}

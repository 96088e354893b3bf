// Package justopinion downloads judicial opinions and quotes from them.
//
// It wraps the Caselaw Access Project client, the text locator and the
// quotation store behind one Researcher, for programs that don't need the
// individual packages.
//
// # Basic Usage
//
// Download a decision with its opinion text and save a quotation:
//
//	r, err := justopinion.New(justopinion.WithToken(os.Getenv("CAP_API_TOKEN")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	decision, err := r.ReadDecision(ctx, "750 F.3d 1339", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	q, err := r.Quote(ctx, decision, "method of operation…or discovery", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(q.Passage) // "…method of operation…or discovery…"
//
// # Positions
//
// Positions are half-open rune offsets into the opinion text. A quotation
// with several passages is a PositionSet; its passages are written with a
// gap marker between them, "…" unless configured otherwise.
//
//	set, err := justopinion.Locate(text, "procedure…method of operation")
//	passage, err := set.Render(text)
package justopinion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/justopinion/justopinion/pkg/client"
	"github.com/justopinion/justopinion/pkg/research"
	"github.com/justopinion/justopinion/pkg/store"
	"github.com/justopinion/justopinion/pkg/textpos"
	"github.com/justopinion/justopinion/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/justopinion/justopinion" without subpackages.
type (
	// Selector is one half-open [Start, End) range of a text.
	Selector = textpos.Selector

	// PositionSet is a normalized set of Selectors.
	PositionSet = textpos.PositionSet

	// Locator finds quoted phrases in a text.
	Locator = textpos.Locator

	// RenderOptions controls how a PositionSet is written out.
	RenderOptions = textpos.RenderOptions

	// Decision is a court decision with its opinions.
	Decision = types.Decision

	// Opinion is one opinion of a Decision.
	Opinion = types.Opinion

	// Quotation is a saved selection from an opinion.
	Quotation = types.Quotation

	// ValidationError reports a Selector with invalid bounds.
	ValidationError = textpos.ValidationError

	// NotFoundError reports a phrase missing from a text.
	NotFoundError = textpos.NotFoundError

	// RangeError reports a Selector that extends past the end of a text.
	RangeError = textpos.RangeError
)

// Re-export the gap marker and error sentinels.
const DefaultGapMarker = textpos.DefaultGapMarker

var (
	ErrValidation = textpos.ErrValidation
	ErrNotFound   = textpos.ErrNotFound
	ErrRange      = textpos.ErrRange
)

// NewSelector creates a Selector, rejecting negative or empty ranges.
func NewSelector(start, end int) (Selector, error) {
	return textpos.NewSelector(start, end)
}

// FromRanges builds a PositionSet from [start, end) pairs.
func FromRanges(pairs ...[2]int) (PositionSet, error) {
	return textpos.FromRanges(pairs...)
}

// Locate finds phrase in text using the default gap marker.
func Locate(text, phrase string) (PositionSet, error) {
	return textpos.Locate(text, phrase)
}

// Researcher downloads decisions and saves quotations from them.
type Researcher struct {
	cap  *client.CAPClient
	core *research.Core
}

type researcherConfig struct {
	token     string
	endpoint  string
	storePath string
	render    textpos.RenderOptions
	logger    *slog.Logger
}

// Option configures a Researcher.
type Option func(*researcherConfig)

// WithToken sets the CAP API token, needed for full opinion text.
func WithToken(token string) Option {
	return func(c *researcherConfig) {
		c.token = token
	}
}

// WithEndpoint overrides the CAP API URL.
func WithEndpoint(endpoint string) Option {
	return func(c *researcherConfig) {
		c.endpoint = endpoint
	}
}

// WithStore saves quotations to a SQLite file or PostgreSQL URL instead of
// memory.
func WithStore(path string) Option {
	return func(c *researcherConfig) {
		c.storePath = path
	}
}

// WithGapMarker sets the marker between passages.
func WithGapMarker(marker string) Option {
	return func(c *researcherConfig) {
		c.render.GapMarker = marker
	}
}

// WithContextMarkers marks omitted text before and after located passages.
func WithContextMarkers() Option {
	return func(c *researcherConfig) {
		c.render.ContextMarkers = true
	}
}

// WithLogger sets the logger for API requests and saved quotations.
func WithLogger(l *slog.Logger) Option {
	return func(c *researcherConfig) {
		c.logger = l
	}
}

// New creates a Researcher. By default quotations are kept in memory and
// lost on Close.
func New(opts ...Option) (*Researcher, error) {
	cfg := &researcherConfig{
		endpoint:  client.DefaultCAPEndpoint,
		storePath: ":memory:",
		render:    textpos.RenderOptions{GapMarker: textpos.DefaultGapMarker},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s, err := store.New(context.Background(), store.Config{Path: cfg.storePath})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	core, err := research.NewCore(research.Config{Render: cfg.render, Store: s, Logger: cfg.logger})
	if err != nil {
		s.Close()
		return nil, err
	}

	clientOpts := []client.Option{client.WithEndpoint(cfg.endpoint)}
	if cfg.logger != nil {
		clientOpts = append(clientOpts, client.WithLogger(cfg.logger))
	}
	return &Researcher{
		cap:  client.NewCAPClient(cfg.token, clientOpts...),
		core: core,
	}, nil
}

// ReadDecision downloads a decision by CAP ID or citation. fullCase
// includes the opinion text and needs a token.
func (r *Researcher) ReadDecision(ctx context.Context, query string, fullCase bool) (*Decision, error) {
	return r.cap.Read(ctx, query, fullCase)
}

// Locate finds phrase in text with the Researcher's gap marker and renders
// it.
func (r *Researcher) Locate(text, phrase string) (PositionSet, string, error) {
	result, err := r.core.Locate(research.LocateItem{Text: text, Phrase: phrase})
	if err != nil {
		return PositionSet{}, "", err
	}
	return result.Selection, result.Passage, nil
}

// Quote locates phrase in the first opinion of decision and saves it.
func (r *Researcher) Quote(ctx context.Context, decision *Decision, phrase, note string) (*Quotation, error) {
	return r.core.Quote(ctx, decision, "", "", phrase, note)
}

// Quotations returns every quotation saved from the decision with the
// given ID.
func (r *Researcher) Quotations(ctx context.Context, decisionID int64) ([]*Quotation, error) {
	return r.core.Store().GetQuotations(ctx, decisionID)
}

// Close releases the store.
func (r *Researcher) Close() error {
	r.core.Close()
	return r.core.Store().Close()
}

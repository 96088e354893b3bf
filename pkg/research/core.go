// Package research bundles the operations shared by the CLI and the
// servers: locating quotations, rendering them, finding citations, and
// saving quotations to a store.
package research

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/justopinion/justopinion/pkg/citation"
	"github.com/justopinion/justopinion/pkg/store"
	"github.com/justopinion/justopinion/pkg/textpos"
	"github.com/justopinion/justopinion/pkg/types"
)

var (
	// cachedExtractor holds the builtin reporter extractor, built once per process
	cachedExtractor    *citation.Extractor
	cachedExtractorErr error
	extractorOnce      sync.Once
)

func loadExtractorCached() (*citation.Extractor, error) {
	extractorOnce.Do(func() {
		cachedExtractor, cachedExtractorErr = citation.NewExtractor(citation.Reporters())
	})
	return cachedExtractor, cachedExtractorErr
}

// Config configures a Core.
type Config struct {
	// Render controls the gap marker used to split and join passages, and
	// whether rendered quotations get context markers.
	Render textpos.RenderOptions

	// Store receives saved quotations. Defaults to an in-memory store,
	// which the Core closes.
	Store store.Store

	// Logger defaults to a logger that discards everything.
	Logger *slog.Logger
}

// Core wraps the locator, citation extractor and store.
type Core struct {
	locator   textpos.Locator
	render    textpos.RenderOptions
	extractor *citation.Extractor
	store     store.Store
	ownsStore bool
	logger    *slog.Logger
}

// NewCore creates a Core from cfg.
func NewCore(cfg Config) (*Core, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Render.GapMarker == "" {
		cfg.Render.GapMarker = textpos.DefaultGapMarker
	}

	ex, err := loadExtractorCached()
	if err != nil {
		return nil, fmt.Errorf("building citation extractor: %w", err)
	}

	c := &Core{
		locator:   textpos.Locator{GapMarker: cfg.Render.GapMarker},
		render:    cfg.Render,
		extractor: ex,
		store:     cfg.Store,
		logger:    logger,
	}
	if c.store == nil {
		c.store = store.NewMemory()
		c.ownsStore = true
	}
	logger.Debug("research core ready", "gap_marker", cfg.Render.GapMarker, "context_markers", cfg.Render.ContextMarkers)
	return c, nil
}

// Store returns the store quotations are saved to.
func (c *Core) Store() store.Store {
	return c.store
}

// Locate finds item.Phrase in item.Text and renders the selection.
func (c *Core) Locate(item LocateItem) (*LocateResult, error) {
	set, err := c.locator.LocateAll(item.Text, append([]string{item.Phrase}, item.Also...)...)
	if err != nil {
		return nil, err
	}
	passage, err := set.Render(item.Text, textpos.WithRenderOptions(c.render))
	if err != nil {
		return nil, err
	}
	return &LocateResult{Source: item.Source, Selection: set, Passage: passage}, nil
}

// LocateBatch locates every item. A failed item is reported in its
// result's Error field rather than failing the batch.
func (c *Core) LocateBatch(items []LocateItem) (*BatchLocateResult, error) {
	results := make([]LocateResult, 0, len(items))
	found := 0

	for _, item := range items {
		r, err := c.Locate(item)
		if err != nil {
			c.logger.Debug("locate failed", "source", item.Source, "error", err)
			results = append(results, LocateResult{Source: item.Source, Error: err.Error()})
			continue
		}
		results = append(results, *r)
		found++
	}

	return &BatchLocateResult{Results: results, Found: found}, nil
}

// Render renders item.Ranges from item.Text.
func (c *Core) Render(item RenderItem) (*RenderResult, error) {
	set, err := textpos.FromRanges(item.Ranges...)
	if err != nil {
		return nil, err
	}
	texts, err := set.Texts(item.Text)
	if err != nil {
		return nil, err
	}

	opts := c.render
	opts.ContextMarkers = opts.ContextMarkers || item.ContextMarkers
	passage, err := set.Render(item.Text, textpos.WithRenderOptions(opts))
	if err != nil {
		return nil, err
	}
	return &RenderResult{Selection: set, Passage: passage, Texts: texts}, nil
}

// Cite finds the case and short-form citations in text.
func (c *Core) Cite(text string) (*CiteResult, error) {
	found, err := c.extractor.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("extracting citations: %w", err)
	}
	shortForms, err := citation.ShortForms(text)
	if err != nil {
		return nil, fmt.Errorf("finding short forms: %w", err)
	}

	result := &CiteResult{
		Citations:  make([]Citation, 0, len(found)),
		ShortForms: make([]ShortForm, 0, len(shortForms)),
	}
	for _, cc := range found {
		result.Citations = append(result.Citations, newCitation(cc))
	}
	for _, sf := range shortForms {
		result.ShortForms = append(result.ShortForms, ShortForm{Type: sf.Type, Matched: sf.Matched, Span: sf.Span})
	}
	return result, nil
}

// Normalize parses the first case citation in text. It fails with an error
// matching citation.ErrNoCaseCitation if text holds none.
func (c *Core) Normalize(text string) (*Citation, error) {
	cc, err := c.extractor.Parse(text)
	if err != nil {
		return nil, err
	}
	result := newCitation(cc)
	return &result, nil
}

// Quote locates phrase in the opinion of decision matching opinionType and
// author (empty matches any) and saves the result as a Quotation.
func (c *Core) Quote(ctx context.Context, decision *types.Decision, opinionType, author, phrase, note string) (*types.Quotation, error) {
	opinion := decision.FindMatchingOpinion(opinionType, author)
	if opinion == nil {
		return nil, fmt.Errorf("no opinion of type %q by %q in %s", opinionType, author, decision)
	}

	set, err := c.locator.Locate(opinion.Text, phrase)
	if err != nil {
		return nil, err
	}
	q, err := types.NewQuotation(decision, *opinion, set, textpos.WithGapMarker(c.render.GapMarker))
	if err != nil {
		return nil, err
	}
	q.Phrase = phrase
	q.Note = note

	if err := c.store.AddQuotation(ctx, q); err != nil {
		return nil, fmt.Errorf("saving quotation: %w", err)
	}
	c.logger.Debug("saved quotation", "id", q.ID, "decision", q.Decision, "selection", q.Selection.String())
	return q, nil
}

// Close releases the store if the Core created it.
func (c *Core) Close() {
	if c.ownsStore && c.store != nil {
		c.store.Close()
	}
}

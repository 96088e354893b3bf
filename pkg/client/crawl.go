package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/justopinion/justopinion/pkg/types"
)

// DefaultCrawlWorkers is the number of concurrent downloads when none is set.
const DefaultCrawlWorkers = 4

// CitationReader downloads the Decision a citation refers to.
type CitationReader interface {
	ReadCitation(ctx context.Context, cite types.CAPCitation, fullCase bool) (*types.Decision, error)
}

// Crawler downloads the decisions cited by a decision, and the decisions
// those cite, to a given depth.
type Crawler struct {
	reader  CitationReader
	workers int
	logger  *slog.Logger
}

// NewCrawler creates a crawler with bounded concurrency.
func NewCrawler(reader CitationReader, workers int, logger *slog.Logger) *Crawler {
	if workers <= 0 {
		workers = DefaultCrawlWorkers
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Crawler{
		reader:  reader,
		workers: workers,
		logger:  logger,
	}
}

// CrawlResult is a decision reached while crawling.
type CrawlResult struct {
	Decision *types.Decision
	Depth    int               // 1 for decisions cited by the root
	Via      types.CAPCitation // citation that led to the decision
}

// Crawl follows the CitesTo lists starting from root, breadth first, for
// depth levels. Each decision is downloaded once. Citations the API has no
// case for are logged and skipped; other errors stop the crawl.
func (c *Crawler) Crawl(ctx context.Context, root *types.Decision, depth int, fullCase bool) ([]CrawlResult, error) {
	seenCites := make(map[string]bool)
	seenIDs := make(map[int64]bool)
	if root.ID != 0 {
		seenIDs[root.ID] = true
	}

	var results []CrawlResult
	frontier := []*types.Decision{root}
	for level := 1; level <= depth && len(frontier) > 0; level++ {
		var cites []types.CAPCitation
		for _, d := range frontier {
			for _, cite := range d.CitesTo {
				key := citeKey(cite)
				if seenCites[key] {
					continue
				}
				if id, ok := cite.CAPID(); ok && seenIDs[id] {
					continue
				}
				seenCites[key] = true
				cites = append(cites, cite)
			}
		}
		c.logger.InfoContext(ctx, "crawling citations", "depth", level, "citations", len(cites))

		fetched := make([]*types.Decision, len(cites))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.workers)
		for i, cite := range cites {
			g.Go(func() error {
				d, err := c.reader.ReadCitation(gctx, cite, fullCase)
				if err != nil {
					if isMissing(err) {
						c.logger.WarnContext(gctx, "skipping citation", "cite", cite.Cite, "error", err)
						return nil
					}
					return fmt.Errorf("reading %s: %w", cite, err)
				}
				fetched[i] = d
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return results, err
		}

		frontier = frontier[:0]
		for i, d := range fetched {
			if d == nil || (d.ID != 0 && seenIDs[d.ID]) {
				continue
			}
			if d.ID != 0 {
				seenIDs[d.ID] = true
			}
			results = append(results, CrawlResult{Decision: d, Depth: level, Via: cites[i]})
			frontier = append(frontier, d)
		}
	}
	return results, nil
}

func citeKey(cite types.CAPCitation) string {
	if id, ok := cite.CAPID(); ok {
		return "id:" + strconv.FormatInt(id, 10)
	}
	return "cite:" + cite.Cite
}

// isMissing reports whether err means the cited case isn't available.
func isMissing(err error) bool {
	if errors.Is(err, ErrNoResults) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

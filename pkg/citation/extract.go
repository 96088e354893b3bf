package citation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cloudflare/ahocorasick"
	"github.com/dlclark/regexp2"
	"github.com/justopinion/justopinion/pkg/textpos"
)

// matchTimeout bounds each regular expression search.
const matchTimeout = 5 * time.Second

var shortFormPattern = func() *regexp2.Regexp {
	re := regexp2.MustCompile(
		`(?<![\w.])(?:(?<id>[Ii](?:bi)?d\.)(?:,?\s+at\s+\d+(?:[-–]\d+)?)?|(?<supra>supra))(?!\w)`,
		regexp2.None,
	)
	re.MatchTimeout = matchTimeout
	return re
}()

var defaultExtractor = sync.OnceValues(func() (*Extractor, error) {
	return NewExtractor(Reporters())
})

// Extractor finds case citations in text.
//
// Reporter spellings are located with an Aho-Corasick prefilter first, and
// only the patterns for reporters whose spellings occur are run. An
// Extractor is safe for concurrent use.
type Extractor struct {
	mu               sync.Mutex // ahocorasick.Matcher keeps per-search state
	matcher          *ahocorasick.Matcher
	keywords         []string         // spelling at each matcher index
	keywordReporters map[string][]int // spelling -> indexes into reporters
	reporters        []Reporter
	patterns         []*regexp2.Regexp // pattern for each reporter
}

// NewExtractor compiles a citation pattern for each reporter.
func NewExtractor(reporters []Reporter) (*Extractor, error) {
	if len(reporters) == 0 {
		return nil, fmt.Errorf("no reporters provided")
	}

	ex := &Extractor{
		keywordReporters: make(map[string][]int),
		reporters:        reporters,
		patterns:         make([]*regexp2.Regexp, len(reporters)),
	}

	for i, r := range reporters {
		spellings := r.Spellings()
		for _, s := range spellings {
			if _, ok := ex.keywordReporters[s]; !ok {
				ex.keywords = append(ex.keywords, s)
			}
			ex.keywordReporters[s] = append(ex.keywordReporters[s], i)
		}

		re, err := regexp2.Compile(reporterPattern(spellings), regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for reporter %s: %w", r.Name, err)
		}
		re.MatchTimeout = matchTimeout
		ex.patterns[i] = re
	}

	ex.matcher = ahocorasick.NewStringMatcher(ex.keywords)
	return ex, nil
}

func reporterPattern(spellings []string) string {
	escaped := make([]string, len(spellings))
	for i, s := range spellings {
		escaped[i] = regexp2.Escape(s)
	}
	return `(?<![\w.])(?<volume>\d{1,4})\s+(?<reporter>` + strings.Join(escaped, "|") +
		`)\s+(?<page>\d{1,5})(?!\w)(?:,\s*(?<pin>\d+(?:[-–]\d+)?)(?!\w|\s+[A-Z]))?`
}

// candidates returns the indexes of reporters whose spellings occur in text.
func (ex *Extractor) candidates(text string) []int {
	ex.mu.Lock()
	hits := ex.matcher.Match([]byte(text))
	ex.mu.Unlock()

	seen := make(map[int]bool)
	var result []int
	for _, hit := range hits {
		for _, i := range ex.keywordReporters[ex.keywords[hit]] {
			if !seen[i] {
				seen[i] = true
				result = append(result, i)
			}
		}
	}
	slices.Sort(result)
	return result
}

// Extract returns every case citation in text, ordered by position. When
// two citations overlap, the earlier and then longer one is kept.
func (ex *Extractor) Extract(text string) ([]CaseCitation, error) {
	runes := []rune(text)
	var found []CaseCitation

	for _, i := range ex.candidates(text) {
		re := ex.patterns[i]
		at := 0
		for at < len(runes) {
			m, err := re.FindRunesMatchStartingAt(runes, at)
			if err != nil {
				return nil, fmt.Errorf("matching reporter %s: %w", ex.reporters[i].Name, err)
			}
			if m == nil {
				break
			}
			c, next, err := ex.citationFromMatch(runes, m, i)
			if err != nil {
				return nil, err
			}
			found = append(found, c)
			at = next
		}
	}

	slices.SortFunc(found, func(a, b CaseCitation) int {
		if a.Span.Start != b.Span.Start {
			return a.Span.Start - b.Span.Start
		}
		return b.Span.End - a.Span.End
	})

	result := found[:0]
	end := -1
	for _, c := range found {
		if c.Span.Start < end {
			continue
		}
		result = append(result, c)
		end = c.Span.End
	}
	return result, nil
}

// citationFromMatch builds a CaseCitation and returns the rune offset at
// which to resume searching.
func (ex *Extractor) citationFromMatch(runes []rune, m *regexp2.Match, reporter int) (CaseCitation, int, error) {
	volume := m.GroupByName("volume")
	page := m.GroupByName("page")

	v, err := strconv.Atoi(volume.String())
	if err != nil {
		return CaseCitation{}, 0, fmt.Errorf("parsing volume %q: %w", volume.String(), err)
	}

	start := volume.Index
	end := page.Index + page.Length
	c := CaseCitation{
		Volume:   v,
		Reporter: ex.reporters[reporter],
		Page:     page.String(),
		Matched:  string(runes[start:end]),
		Span:     textpos.Selector{Start: start, End: end},
	}
	if pin := m.GroupByName("pin"); pin != nil && len(pin.Captures) > 0 {
		c.Pin = pin.String()
	}
	return c, end, nil
}

// Parse returns the first case citation in text. If there is none it
// returns a *ParseError listing any short-form citations found instead.
func (ex *Extractor) Parse(text string) (CaseCitation, error) {
	found, err := ex.Extract(text)
	if err != nil {
		return CaseCitation{}, err
	}
	if len(found) > 0 {
		return found[0], nil
	}

	shortForms, err := ShortForms(text)
	if err != nil {
		return CaseCitation{}, err
	}
	return CaseCitation{}, &ParseError{Text: text, ShortForms: shortForms}
}

// ShortForms returns the "Id." and "supra" citations in text.
func ShortForms(text string) ([]ShortForm, error) {
	var result []ShortForm
	m, err := shortFormPattern.FindStringMatch(text)
	for m != nil && err == nil {
		sf := ShortForm{
			Type:    "SupraCitation",
			Matched: m.String(),
			Span:    textpos.Selector{Start: m.Index, End: m.Index + m.Length},
		}
		if id := m.GroupByName("id"); id != nil && len(id.Captures) > 0 {
			sf.Type = "IdCitation"
		}
		result = append(result, sf)
		m, err = shortFormPattern.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("matching short-form citations: %w", err)
	}
	return result, nil
}

package citation

import (
	"slices"
	"strings"
)

// Reporter categories, named as in the CAP API.
const (
	CategoryFederal  = "reporters:federal"
	CategoryState    = "reporters:state"
	CategoryRegional = "reporters:state_regional"
)

// Reporter is a series of printed case reports.
type Reporter struct {
	Name     string   // canonical abbreviation, e.g. "F. Supp. 2d"
	Category string   // e.g. "reporters:federal"
	Variants []string // other spellings found in opinions, e.g. "F.Supp.2d"
}

// Spellings returns every accepted spelling of the reporter's name,
// longest first. The canonical name and its form with spaces removed are
// always included.
func (r Reporter) Spellings() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(r.Name)
	add(strings.ReplaceAll(r.Name, " ", ""))
	for _, v := range r.Variants {
		add(v)
	}
	slices.SortStableFunc(out, func(a, b string) int {
		return len(b) - len(a)
	})
	return out
}

var reporters = []Reporter{
	// Supreme Court
	{Name: "U.S.", Category: CategoryFederal, Variants: []string{"U. S.", "US"}},
	{Name: "S. Ct.", Category: CategoryFederal, Variants: []string{"S Ct", "S.Ct"}},
	{Name: "L. Ed.", Category: CategoryFederal},
	{Name: "L. Ed. 2d", Category: CategoryFederal, Variants: []string{"L. Ed.2d", "L.Ed. 2d"}},
	{Name: "Dall.", Category: CategoryFederal},
	{Name: "Cranch", Category: CategoryFederal},
	{Name: "Wheat.", Category: CategoryFederal},
	{Name: "Pet.", Category: CategoryFederal},
	{Name: "How.", Category: CategoryFederal},
	{Name: "Wall.", Category: CategoryFederal},

	// Federal courts of appeals and district courts
	{Name: "F.", Category: CategoryFederal},
	{Name: "F.2d", Category: CategoryFederal, Variants: []string{"F. 2d", "F2d"}},
	{Name: "F.3d", Category: CategoryFederal, Variants: []string{"F. 3d", "F3d"}},
	{Name: "F.4th", Category: CategoryFederal, Variants: []string{"F. 4th"}},
	{Name: "F. Supp.", Category: CategoryFederal},
	{Name: "F. Supp. 2d", Category: CategoryFederal, Variants: []string{"F. Supp.2d", "F.Supp. 2d"}},
	{Name: "F. Supp. 3d", Category: CategoryFederal, Variants: []string{"F. Supp.3d", "F.Supp. 3d"}},
	{Name: "F. App'x", Category: CategoryFederal, Variants: []string{"F. App’x", "Fed. Appx", "Fed. App'x"}},
	{Name: "B.R.", Category: CategoryFederal},
	{Name: "Fed. Cl.", Category: CategoryFederal},

	// Regional reporters
	{Name: "A.", Category: CategoryRegional},
	{Name: "A.2d", Category: CategoryRegional, Variants: []string{"A. 2d"}},
	{Name: "A.3d", Category: CategoryRegional, Variants: []string{"A. 3d"}},
	{Name: "N.E.", Category: CategoryRegional, Variants: []string{"N. E."}},
	{Name: "N.E.2d", Category: CategoryRegional, Variants: []string{"N.E. 2d", "N. E. 2d"}},
	{Name: "N.E.3d", Category: CategoryRegional, Variants: []string{"N.E. 3d"}},
	{Name: "N.W.", Category: CategoryRegional, Variants: []string{"N. W."}},
	{Name: "N.W.2d", Category: CategoryRegional, Variants: []string{"N.W. 2d", "N. W. 2d"}},
	{Name: "P.", Category: CategoryRegional},
	{Name: "P.2d", Category: CategoryRegional, Variants: []string{"P. 2d"}},
	{Name: "P.3d", Category: CategoryRegional, Variants: []string{"P. 3d"}},
	{Name: "S.E.", Category: CategoryRegional, Variants: []string{"S. E."}},
	{Name: "S.E.2d", Category: CategoryRegional, Variants: []string{"S.E. 2d", "S. E. 2d"}},
	{Name: "S.W.", Category: CategoryRegional, Variants: []string{"S. W."}},
	{Name: "S.W.2d", Category: CategoryRegional, Variants: []string{"S.W. 2d", "S. W. 2d"}},
	{Name: "S.W.3d", Category: CategoryRegional, Variants: []string{"S.W. 3d"}},
	{Name: "So.", Category: CategoryRegional},
	{Name: "So. 2d", Category: CategoryRegional, Variants: []string{"So.2d"}},
	{Name: "So. 3d", Category: CategoryRegional, Variants: []string{"So.3d"}},

	// State reporters
	{Name: "Ill.", Category: CategoryState},
	{Name: "Ill. 2d", Category: CategoryState},
	{Name: "Ill. App.", Category: CategoryState},
	{Name: "Breese", Category: CategoryState},
	{Name: "Scam.", Category: CategoryState},
	{Name: "Gilm.", Category: CategoryState},
	{Name: "Cal.", Category: CategoryState},
	{Name: "Cal. 2d", Category: CategoryState},
	{Name: "Cal. 3d", Category: CategoryState},
	{Name: "Cal. 4th", Category: CategoryState},
	{Name: "N.Y.", Category: CategoryState, Variants: []string{"N. Y."}},
	{Name: "N.Y.2d", Category: CategoryState, Variants: []string{"N.Y. 2d"}},
	{Name: "N.Y.3d", Category: CategoryState, Variants: []string{"N.Y. 3d"}},
	{Name: "Mass.", Category: CategoryState},
	{Name: "Pick.", Category: CategoryState},
	{Name: "Tex.", Category: CategoryState},
	{Name: "Ohio St.", Category: CategoryState},
	{Name: "Pa.", Category: CategoryState},
}

// Reporters returns the reporters recognized by default.
func Reporters() []Reporter {
	out := make([]Reporter, len(reporters))
	copy(out, reporters)
	return out
}

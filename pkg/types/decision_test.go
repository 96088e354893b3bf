package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oracleCAP = `{
	"id": 4234040,
	"name": "ORACLE AMERICA, INC., Plaintiff-Appellant, v. GOOGLE INC., Defendant-Cross-Appellant",
	"name_abbreviation": "Oracle America, Inc. v. Google Inc.",
	"decision_date": "2014-05-09",
	"docket_number": "2013-1021, 2013-1022",
	"first_page": "1339",
	"last_page": "1381",
	"citations": [{"type": "official", "cite": "750 F.3d 1339"}],
	"court": {"id": 8955, "name": "United States Court of Appeals for the Federal Circuit", "slug": "fed-cir", "name_abbreviation": "Fed. Cir."},
	"jurisdiction": {"id": 39, "name": "U.S.", "slug": "us", "whitelisted": false},
	"cites_to": [{"cite": "49 F.3d 807", "category": "reporters:federal", "reporter": "F.3d", "case_ids": [9999], "opinion_id": 0}],
	"frontend_url": "https://cite.case.law/f3d/750/1339/",
	"last_updated": "2021-02-15T12:40:21.554462+00:00",
	"analysis": {"word_count": 23000, "char_count": 140000, "ocr_confidence": 0.92, "pagerank": {"percentile": 0.99, "raw": 0.0001}},
	"casebody": {
		"status": "ok",
		"data": {
			"judges": ["O'MALLEY"],
			"opinions": [
				{"type": "majority", "author": "O'MALLEY, Circuit Judge.", "text": "This copyright dispute involves 37 packages of computer source code."}
			]
		}
	}
}`

func TestDecodeDecision(t *testing.T) {
	d, err := DecodeDecision([]byte(oracleCAP))
	require.NoError(t, err)

	assert.Equal(t, int64(4234040), d.ID)
	assert.Equal(t, "Oracle America, Inc. v. Google Inc.", d.NameAbbreviation)
	assert.Equal(t, NewDate(2014, time.May, 9), d.DecisionDate)
	assert.Equal(t, PageNumber(1339), d.FirstPage)
	assert.Equal(t, PageNumber(1381), d.LastPage)
	require.NotNil(t, d.Court)
	assert.Equal(t, "fed-cir", d.Court.Slug)
	require.NotNil(t, d.Analysis)
	require.NotNil(t, d.Analysis.OCRConfidence)
	assert.InDelta(t, 0.92, *d.Analysis.OCRConfidence, 1e-9)
	require.NotNil(t, d.LastUpdated)
	assert.Equal(t, 2021, d.LastUpdated.Year())

	require.Len(t, d.Opinions(), 1)
	assert.Equal(t, "O'MALLEY, Circuit Judge", d.Opinions()[0].Author)

	id, ok := d.CitesTo[0].CAPID()
	assert.True(t, ok)
	assert.Equal(t, int64(9999), id)
}

func TestDecodeDecision_ResultsPage(t *testing.T) {
	body := []byte(`{"count": 1, "next": null, "results": [` + oracleCAP + `]}`)

	d, err := DecodeDecision(body)
	require.NoError(t, err)
	assert.Equal(t, int64(4234040), d.ID)
}

func TestDecodeDecision_EmptyResults(t *testing.T) {
	_, err := DecodeDecision([]byte(`{"count": 0, "results": []}`))
	assert.Error(t, err)
}

func TestDecodeDecisionPage(t *testing.T) {
	body := []byte(`{"count": 2, "next": "https://api.case.law/v1/cases/?cursor=abc", "previous": null, "results": [` + oracleCAP + `, {"id": 2, "decision_date": "1925-07"}]}`)

	page, err := DecodeDecisionPage(body)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, "https://api.case.law/v1/cases/?cursor=abc", page.Next)
	require.Len(t, page.Results, 2)
	assert.Equal(t, NewDate(1925, time.July, 1), page.Results[1].DecisionDate)
}

func TestDecision_String(t *testing.T) {
	d, err := DecodeDecision([]byte(oracleCAP))
	require.NoError(t, err)

	assert.Equal(t, "Oracle America, Inc. v. Google Inc., 750 F.3d 1339 (2014-05-09)", d.String())
}

func TestParseDate_PadsMonth(t *testing.T) {
	d, err := ParseDate("1925-07")
	require.NoError(t, err)
	assert.Equal(t, "1925-07-01", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("July 1925")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(NewDate(2014, time.May, 9))
	require.NoError(t, err)
	assert.JSONEq(t, `"2014-05-09"`, string(out))
}

func TestPageNumber_Unmarshal(t *testing.T) {
	var pages struct {
		First PageNumber `json:"first"`
		Last  PageNumber `json:"last"`
		None  PageNumber `json:"none"`
	}
	err := json.Unmarshal([]byte(`{"first": "12", "last": 34, "none": null}`), &pages)
	require.NoError(t, err)

	assert.Equal(t, PageNumber(12), pages.First)
	assert.Equal(t, PageNumber(34), pages.Last)
	assert.Equal(t, PageNumber(0), pages.None)
}

func TestDecision_Majority(t *testing.T) {
	d := &Decision{}
	assert.Nil(t, d.Majority())

	require.NoError(t, d.AddOpinion(NewOpinion("dissent", "HOLMES", "")))
	assert.Nil(t, d.Majority())

	require.NoError(t, d.AddOpinion(NewOpinion("majority", "TAFT", "")))
	majority := d.Majority()
	require.NotNil(t, majority)
	assert.Equal(t, "TAFT", majority.Author)
}

func TestDecision_AddOpinion_Duplicate(t *testing.T) {
	d, err := DecodeDecision([]byte(oracleCAP))
	require.NoError(t, err)

	err = d.AddOpinion(NewOpinion("majority", "O'MALLEY, Circuit Judge", "other text"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateOpinion)

	var decisionErr *DecisionError
	require.ErrorAs(t, err, &decisionErr)
	assert.Equal(t, "O'MALLEY, Circuit Judge", decisionErr.Existing.Author)
	assert.Len(t, d.Opinions(), 1)
}

func TestDecision_AddOpinion_BlankDecision(t *testing.T) {
	// Arrange
	d := &Decision{}

	// Act
	err := d.AddOpinion(Opinion{})

	// Assert
	require.NoError(t, err)
	assert.Len(t, d.Opinions(), 1)

	// An opinion with no type or author matches any existing opinion.
	err = d.AddOpinion(Opinion{})
	assert.ErrorIs(t, err, ErrDuplicateOpinion)
}

func TestDecision_FindMatchingOpinion(t *testing.T) {
	d := &Decision{}
	require.NoError(t, d.AddOpinion(NewOpinion("majority", "TAFT", "a")))
	require.NoError(t, d.AddOpinion(NewOpinion("dissent", "HOLMES", "b")))
	require.NoError(t, d.AddOpinion(NewOpinion("dissent", "BRANDEIS", "c")))

	assert.Equal(t, "b", d.FindMatchingOpinion("dissent", "").Text)
	assert.Equal(t, "c", d.FindMatchingOpinion("", "BRANDEIS").Text)
	assert.Equal(t, "a", d.FindMatchingOpinion("", "").Text)
	assert.Nil(t, d.FindMatchingOpinion("concurrence", ""))
}

func TestCAPCitation_String(t *testing.T) {
	c := CAPCitation{Cite: "15 Ill. 284"}
	assert.Equal(t, "Citation to 15 Ill. 284", c.String())

	_, ok := c.CAPID()
	assert.False(t, ok)
}

func TestReporterCitation_String(t *testing.T) {
	c := ReporterCitation{Volume: 750, Reporter: "F.3d", Page: "1339"}
	assert.Equal(t, "750 F.3d 1339", c.String())
}

package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/justopinion/justopinion/pkg/textpos"
)

// PrecedentialStatus says whether a CourtListener cluster was published.
type PrecedentialStatus string

const (
	StatusPublished   PrecedentialStatus = "Published"
	StatusUnpublished PrecedentialStatus = "Unpublished"
)

// OpinionCL is a judicial opinion from the CourtListener API.
type OpinionCL struct {
	ResourceURI       string    `json:"resource_uri"`
	ID                int64     `json:"id"`
	AbsoluteURL       string    `json:"absolute_url"`
	ClusterID         int64     `json:"cluster_id"`
	AuthorID          *int64    `json:"author_id"`
	Type              string    `json:"type"`
	Author            string    `json:"author_str"`
	PerCuriam         bool      `json:"per_curiam"`
	JoinedBy          []string  `json:"joined_by"`
	JoinedByStr       string    `json:"joined_by_str"`
	DateCreated       time.Time `json:"date_created"`
	DateModified      time.Time `json:"date_modified"`
	Judges            string    `json:"judges"`
	SHA1              string    `json:"sha1"`
	PageCount         *int      `json:"page_count"`
	DownloadURL       string    `json:"download_url"`
	LocalPath         string    `json:"local_path"`
	Text              string    `json:"plain_text"`
	HTML              string    `json:"html"`
	HTMLLawbox        string    `json:"html_lawbox"`
	HTMLColumbia      string    `json:"html_columbia"`
	HTMLAnon2020      string    `json:"html_anon_2020"`
	XMLHarvard        string    `json:"xml_harvard"`
	HTMLWithCitations string    `json:"html_with_citations"`
	ExtractedByOCR    bool      `json:"extracted_by_ocr"`
	OpinionsCited     []string  `json:"opinions_cited"`
}

// Opinion converts the CourtListener record to the common Opinion form.
// CourtListener opinion types such as "010combined" are kept as given.
func (o OpinionCL) Opinion() Opinion {
	opinionType := o.Type
	if opinionType == "" {
		opinionType = DefaultOpinionType
	}
	return NewOpinion(opinionType, o.Author, o.Text)
}

// LocateText returns the positions of phrase in the opinion's plain text.
func (o OpinionCL) LocateText(phrase string) (textpos.PositionSet, error) {
	return textpos.Locate(o.Text, phrase)
}

// OpinionCluster groups related opinions from the CourtListener API.
type OpinionCluster struct {
	ResourceURI             string             `json:"resource_uri"`
	ID                      int64              `json:"id"`
	AbsoluteURL             string             `json:"absolute_url"`
	DocketID                int64              `json:"docket_id"`
	Docket                  string             `json:"docket"`
	Citations               []ReporterCitation `json:"citations"`
	SubOpinions             []string           `json:"sub_opinions"`
	DateCreated             time.Time          `json:"date_created"`
	DateModified            time.Time          `json:"date_modified"`
	Judges                  string             `json:"judges"`
	DateFiled               Date               `json:"date_filed"`
	DateFiledIsApproximate  bool               `json:"date_filed_is_approximate"`
	Slug                    string             `json:"slug"`
	CaseNameShort           string             `json:"case_name_short"`
	CaseName                string             `json:"case_name"`
	CaseNameFull            string             `json:"case_name_full"`
	Attorneys               string             `json:"attorneys"`
	PrecedentialStatus      PrecedentialStatus `json:"precedential_status"`
	Blocked                 bool               `json:"blocked"`
	Headmatter              string             `json:"headmatter"`
}

// UnmarshalJSON implements json.Unmarshaler, defaulting the precedential
// status to Published.
func (c *OpinionCluster) UnmarshalJSON(data []byte) error {
	type plain OpinionCluster
	p := plain{PrecedentialStatus: StatusPublished}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = OpinionCluster(p)
	return nil
}

// CourtListenerURL is the CourtListener website that absolute URLs are
// relative to.
const CourtListenerURL = "https://www.courtlistener.com"

// Decision converts the cluster and its opinions to the common Decision
// form, so CourtListener cases can be stored next to CAP cases. The
// Decision takes the cluster's ID.
func (c *OpinionCluster) Decision(opinions []OpinionCL) *Decision {
	d := &Decision{
		ID:               c.ID,
		DecisionDate:     c.DateFiled,
		Name:             c.CaseNameFull,
		NameAbbreviation: c.CaseName,
	}
	if d.Name == "" {
		d.Name = c.CaseName
	}
	if d.NameAbbreviation == "" {
		d.NameAbbreviation = c.CaseNameShort
	}
	if c.AbsoluteURL != "" {
		d.FrontendURL = CourtListenerURL + c.AbsoluteURL
	}
	for _, rc := range c.Citations {
		d.Citations = append(d.Citations, CAPCitation{Cite: rc.String(), Reporter: rc.Reporter})
	}
	for _, op := range opinions {
		// CourtListener can list the same opinion twice under one cluster.
		_ = d.AddOpinion(op.Opinion())
	}
	return d
}

// DecisionCL is a docket from the CourtListener API.
type DecisionCL struct {
	OpinionClusters []OpinionCluster `json:"opinion_clusters,omitempty"`
	ResourceURI     string           `json:"resource_uri"`
	ID              int64            `json:"id"`
	Court           string           `json:"court"`
	CourtID         string           `json:"court_id"`
	Clusters        []string         `json:"clusters"`
	AbsoluteURL     string           `json:"absolute_url"`
	DateCreated     time.Time        `json:"date_created"`
	DateModified    time.Time        `json:"date_modified"`
	Source          *int             `json:"source"`
	AppealFromStr   string           `json:"appeal_from_str"`
	AssignedToStr   string           `json:"assigned_to_str"`
	ReferredToStr   string           `json:"referred_to_str"`
	PanelStr        string           `json:"panel_str"`
	CaseName        string           `json:"case_name"`
	CaseNameFull    string           `json:"case_name_full"`
	Slug            string           `json:"slug"`
	DocketNumber    string           `json:"docket_number"`
	Blocked         bool             `json:"blocked"`
}

// String implements Stringer, e.g. "Oracle America, Inc. v. Google Inc., 750 F.3d 1339 (2014-05-09)".
func (d *DecisionCL) String() string {
	if len(d.OpinionClusters) == 0 {
		return d.CaseName
	}
	cluster := d.OpinionClusters[0]
	citation := ""
	if len(cluster.Citations) > 0 {
		citation = cluster.Citations[0].String()
	}
	return fmt.Sprintf("%s, %s (%s)", d.CaseName, citation, cluster.DateFiled)
}

// CitationResponse is CourtListener's answer for one citation submitted to
// the citation-lookup endpoint.
type CitationResponse struct {
	Citation            string           `json:"citation"`
	NormalizedCitations []string         `json:"normalized_citations"`
	StartIndex          int              `json:"start_index"`
	EndIndex            int              `json:"end_index"`
	Status              int              `json:"status"`
	ErrorMessage        string           `json:"error_message"`
	Clusters            []OpinionCluster `json:"clusters"`
}

// Selector returns the span of the citation within the submitted text.
func (r CitationResponse) Selector() (textpos.Selector, error) {
	return textpos.NewSelector(r.StartIndex, r.EndIndex)
}

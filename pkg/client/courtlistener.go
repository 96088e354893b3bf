package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/justopinion/justopinion/pkg/citation"
	"github.com/justopinion/justopinion/pkg/types"
)

// DefaultCourtListenerEndpoint is the CourtListener REST API root.
const DefaultCourtListenerEndpoint = "https://www.courtlistener.com/api/rest/v4/"

const courtListenerAPI = "CourtListener"

// CourtListenerClient downloads dockets, clusters, and opinions from the
// CourtListener API. Every request is authenticated.
type CourtListenerClient struct {
	t *transport
}

// NewCourtListenerClient creates a CourtListener client.
func NewCourtListenerClient(token string, opts ...Option) *CourtListenerClient {
	return &CourtListenerClient{t: newTransport(courtListenerAPI, DefaultCourtListenerEndpoint, token, opts)}
}

// Endpoint returns the API base URL.
func (c *CourtListenerClient) Endpoint() string {
	return c.t.endpoint
}

func (c *CourtListenerClient) checkStatus(body []byte, status int) error {
	if status >= 300 {
		return &APIError{API: courtListenerAPI, StatusCode: status, Message: detail(body, status)}
	}
	return nil
}

func (c *CourtListenerClient) getJSON(ctx context.Context, rawURL string, v any) error {
	body, status, err := c.t.get(ctx, rawURL, nil, true)
	if err != nil {
		return err
	}
	if err := c.checkStatus(body, status); err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", rawURL, err)
	}
	return nil
}

// Fetch downloads a docket by CourtListener ID, if query is numeric, or
// else looks up a citation.
func (c *CourtListenerClient) Fetch(ctx context.Context, query string) ([]byte, error) {
	if id, ok := isID(query); ok {
		return c.FetchID(ctx, id)
	}
	return c.FetchCite(ctx, query)
}

// FetchID downloads the docket with the given ID, e.g. 260804 for Oracle
// America, Inc. v. Google Inc.
func (c *CourtListenerClient) FetchID(ctx context.Context, id int64) ([]byte, error) {
	body, status, err := c.t.get(ctx, c.t.endpoint+"dockets/"+strconv.FormatInt(id, 10)+"/", nil, true)
	if err != nil {
		return nil, fmt.Errorf("fetching docket %d: %w", id, err)
	}
	if status == http.StatusNotFound {
		return nil, &APIError{API: courtListenerAPI, StatusCode: status, Message: fmt.Sprintf("API returned no cases with id %d", id)}
	}
	if err := c.checkStatus(body, status); err != nil {
		return nil, err
	}
	return body, nil
}

// FetchCite submits a citation to the citation-lookup endpoint and returns
// the raw list response.
func (c *CourtListenerClient) FetchCite(ctx context.Context, cite string) ([]byte, error) {
	parsed, err := citation.Parse(cite)
	if err != nil {
		return nil, err
	}
	form := url.Values{
		"volume":   {strconv.Itoa(parsed.Volume)},
		"reporter": {parsed.Reporter.Name},
		"page":     {parsed.Page},
	}
	body, status, err := c.t.do(ctx, http.MethodPost, c.t.endpoint+"citation-lookup/", form, true)
	if err != nil {
		return nil, fmt.Errorf("looking up cite %q: %w", parsed.Corrected(), err)
	}
	if err := c.checkStatus(body, status); err != nil {
		return nil, err
	}
	return body, nil
}

// ReadID downloads a docket and its first opinion cluster.
func (c *CourtListenerClient) ReadID(ctx context.Context, id int64) (*types.DecisionCL, error) {
	body, err := c.FetchID(ctx, id)
	if err != nil {
		return nil, err
	}
	var decision types.DecisionCL
	if err := json.Unmarshal(body, &decision); err != nil {
		return nil, fmt.Errorf("decoding docket %d: %w", id, err)
	}
	if len(decision.Clusters) > 0 {
		cluster, err := c.ReadCluster(ctx, decision.Clusters[0])
		if err != nil {
			return nil, err
		}
		decision.OpinionClusters = []types.OpinionCluster{*cluster}
	}
	return &decision, nil
}

// ReadCitations looks up a citation and decodes every response.
func (c *CourtListenerClient) ReadCitations(ctx context.Context, cite string) ([]types.CitationResponse, error) {
	body, err := c.FetchCite(ctx, cite)
	if err != nil {
		return nil, err
	}
	var responses []types.CitationResponse
	if err := json.Unmarshal(body, &responses); err != nil {
		return nil, fmt.Errorf("decoding citation lookup: %w", err)
	}
	return responses, nil
}

// ReadCite looks up a citation and returns the first response.
func (c *CourtListenerClient) ReadCite(ctx context.Context, cite string) (*types.CitationResponse, error) {
	responses, err := c.ReadCitations(ctx, cite)
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, fmt.Errorf("reading cite %q: %w", cite, ErrNoResults)
	}
	return &responses[0], nil
}

// ReadCluster downloads the opinion cluster at rawURL.
func (c *CourtListenerClient) ReadCluster(ctx context.Context, rawURL string) (*types.OpinionCluster, error) {
	var cluster types.OpinionCluster
	if err := c.getJSON(ctx, rawURL, &cluster); err != nil {
		return nil, fmt.Errorf("reading cluster: %w", err)
	}
	return &cluster, nil
}

// ReadClusterOpinions downloads every opinion in a cluster.
func (c *CourtListenerClient) ReadClusterOpinions(ctx context.Context, cluster *types.OpinionCluster) ([]types.OpinionCL, error) {
	opinions := make([]types.OpinionCL, 0, len(cluster.SubOpinions))
	for _, u := range cluster.SubOpinions {
		var op types.OpinionCL
		if err := c.getJSON(ctx, u, &op); err != nil {
			return nil, fmt.Errorf("reading opinion: %w", err)
		}
		opinions = append(opinions, op)
	}
	return opinions, nil
}

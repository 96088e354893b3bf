package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/justopinion/justopinion/pkg/citation"
	"github.com/justopinion/justopinion/pkg/types"
)

// DefaultCAPEndpoint is the Caselaw Access Project cases endpoint.
const DefaultCAPEndpoint = "https://api.case.law/v1/cases/"

const capAPI = "Caselaw Access Project"

const capAlert = "To fetch full opinion text with the full case option, " +
	"give the CAP client your API key for the Caselaw Access Project. See https://api.case.law/"

// CAPClient downloads decisions from the Caselaw Access Project API.
//
// Case metadata is public. Requests for the full text of opinions send
// the API token and fail early if there is none.
type CAPClient struct {
	t *transport
}

// NewCAPClient creates a CAP client. token may be empty, and may carry the
// "Token " prefix used in the Authorization header.
func NewCAPClient(token string, opts ...Option) *CAPClient {
	return &CAPClient{t: newTransport(capAPI, DefaultCAPEndpoint, token, opts)}
}

// Endpoint returns the API base URL.
func (c *CAPClient) Endpoint() string {
	return c.t.endpoint
}

func (c *CAPClient) checkAuth(fullCase bool) error {
	if fullCase && c.t.authorized == nil {
		return &APIError{API: capAPI, Message: capAlert}
	}
	return nil
}

func fullCaseParams(fullCase bool) url.Values {
	if !fullCase {
		return nil
	}
	return url.Values{"full_case": {"true"}}
}

// Fetch downloads a case record by CAP ID, if query is numeric, or else by
// citation.
func (c *CAPClient) Fetch(ctx context.Context, query string, fullCase bool) ([]byte, error) {
	if id, ok := isID(query); ok {
		return c.FetchID(ctx, id, fullCase)
	}
	return c.FetchCite(ctx, query, fullCase)
}

// FetchID downloads the case record with the given CAP ID, e.g. 4066790
// for Oracle America, Inc. v. Google Inc.
func (c *CAPClient) FetchID(ctx context.Context, id int64, fullCase bool) ([]byte, error) {
	if err := c.checkAuth(fullCase); err != nil {
		return nil, err
	}
	body, status, err := c.t.get(ctx, c.t.endpoint+strconv.FormatInt(id, 10)+"/", fullCaseParams(fullCase), fullCase)
	if err != nil {
		return nil, fmt.Errorf("fetching case %d: %w", id, err)
	}
	switch {
	case status == http.StatusNotFound:
		return nil, &APIError{API: capAPI, StatusCode: status, Message: fmt.Sprintf("API returned no cases with id %d", id)}
	case status == http.StatusUnauthorized:
		return nil, &APIError{API: capAPI, StatusCode: status, Message: detail(body, status) + " " + capAlert}
	case status >= 300:
		return nil, &APIError{API: capAPI, StatusCode: status, Message: detail(body, status)}
	}
	return body, nil
}

// FetchCite downloads the list response for a citation such as
// "750 F.3d 1339". The citation is normalized first.
func (c *CAPClient) FetchCite(ctx context.Context, cite string, fullCase bool) ([]byte, error) {
	normalized, err := citation.Normalize(cite)
	if err != nil {
		return nil, err
	}
	return c.fetchNormalizedCite(ctx, normalized, fullCase)
}

func (c *CAPClient) fetchNormalizedCite(ctx context.Context, cite string, fullCase bool) ([]byte, error) {
	if err := c.checkAuth(fullCase); err != nil {
		return nil, err
	}
	params := url.Values{"cite": {cite}}
	if fullCase {
		params.Set("full_case", "true")
	}
	body, status, err := c.t.get(ctx, c.t.endpoint, params, fullCase)
	if err != nil {
		return nil, fmt.Errorf("fetching cite %q: %w", cite, err)
	}
	if err := c.checkStatus(body, status); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *CAPClient) checkStatus(body []byte, status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return &APIError{API: capAPI, StatusCode: status, Message: detail(body, status) + " " + capAlert}
	case status >= 300:
		return &APIError{API: capAPI, StatusCode: status, Message: detail(body, status)}
	}
	return nil
}

// Read downloads and decodes a Decision by CAP ID or citation.
func (c *CAPClient) Read(ctx context.Context, query string, fullCase bool) (*types.Decision, error) {
	if id, ok := isID(query); ok {
		return c.ReadID(ctx, id, fullCase)
	}
	return c.ReadCite(ctx, query, fullCase)
}

// ReadID downloads and decodes the Decision with the given CAP ID.
func (c *CAPClient) ReadID(ctx context.Context, id int64, fullCase bool) (*types.Decision, error) {
	body, err := c.FetchID(ctx, id, fullCase)
	if err != nil {
		return nil, err
	}
	return types.DecodeDecision(body)
}

// ReadCite downloads and decodes the first Decision matching a citation.
func (c *CAPClient) ReadCite(ctx context.Context, cite string, fullCase bool) (*types.Decision, error) {
	body, err := c.FetchCite(ctx, cite, fullCase)
	if err != nil {
		return nil, err
	}
	return firstDecision(body, cite)
}

// ReadCitation downloads the Decision a CAP citation refers to, by CAP ID
// when the citation carries one.
func (c *CAPClient) ReadCitation(ctx context.Context, cite types.CAPCitation, fullCase bool) (*types.Decision, error) {
	if id, ok := cite.CAPID(); ok {
		return c.ReadID(ctx, id, fullCase)
	}
	body, err := c.fetchNormalizedCite(ctx, cite.Cite, fullCase)
	if err != nil {
		return nil, err
	}
	return firstDecision(body, cite.Cite)
}

// ReadDecisionListByCite downloads every Decision matching a citation,
// following the "next" links of a paginated response.
func (c *CAPClient) ReadDecisionListByCite(ctx context.Context, cite string, fullCase bool) ([]types.Decision, error) {
	body, err := c.FetchCite(ctx, cite, fullCase)
	if err != nil {
		return nil, err
	}

	var decisions []types.Decision
	for {
		page, err := types.DecodeDecisionPage(body)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, page.Results...)
		if page.Next == "" {
			return decisions, nil
		}

		var status int
		body, status, err = c.t.get(ctx, page.Next, nil, fullCase)
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
		if err := c.checkStatus(body, status); err != nil {
			return nil, err
		}
	}
}

// DecisionsFromResponse decodes every Decision in a list response body.
func DecisionsFromResponse(body []byte) ([]types.Decision, error) {
	page, err := types.DecodeDecisionPage(body)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

func firstDecision(body []byte, cite string) (*types.Decision, error) {
	decisions, err := DecisionsFromResponse(body)
	if err != nil {
		return nil, err
	}
	if len(decisions) == 0 {
		return nil, fmt.Errorf("reading cite %q: %w", cite, ErrNoResults)
	}
	return &decisions[0], nil
}

package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/justopinion/justopinion/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lotusJSON = `{
	"id": 1181436,
	"name_abbreviation": "Lotus Development Corp. v. Borland International, Inc.",
	"decision_date": "1995-03-09",
	"citations": [{"type": "official", "cite": "49 F.3d 807"}],
	"cites_to": [
		{"cite": "101 U.S. 99", "case_ids": [6168]},
		{"cite": "999 U.S. 1", "case_ids": [404]}
	]
}`

func TestRunCrawl(t *testing.T) {
	useTestSettings(t)
	newCAPServer(t, map[string]string{
		"/v1/cases/1181436/": lotusJSON,
		"/v1/cases/6168/":    bakerJSON,
	})
	setFlag(t, &crawlFormat, "json")
	setFlag(t, &crawlSave, true)

	out, errOut, err := runCommand(t, runCrawl, "", "1181436")
	require.NoError(t, err)

	var results []crawlOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, int64(1181436), results[0].ID)
	assert.Equal(t, 0, results[0].Depth)
	assert.Equal(t, int64(6168), results[1].ID)
	assert.Equal(t, 1, results[1].Depth)
	assert.Equal(t, "101 U.S. 99", results[1].Via)
	assert.Contains(t, errOut, "Saved 2 decisions")

	s, err := store.New(context.Background(), store.Config{Path: settings.Store.Path})
	require.NoError(t, err)
	defer s.Close()
	decisions, err := s.ListDecisions(context.Background())
	require.NoError(t, err)
	assert.Len(t, decisions, 2)
}

func TestRunCrawl_DepthZero(t *testing.T) {
	useTestSettings(t)
	newCAPServer(t, map[string]string{"/v1/cases/1181436/": lotusJSON})
	settings.Crawl.Depth = 0
	setFlag(t, &crawlFormat, "human")
	setFlag(t, &crawlSave, false)

	out, _, err := runCommand(t, runCrawl, "", "1181436")
	require.NoError(t, err)
	assert.Contains(t, out, "0 decisions cited within depth 0")
}

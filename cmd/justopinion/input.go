package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/justopinion/justopinion/pkg/store"
	"github.com/justopinion/justopinion/pkg/types"
)

// textSource names where a command reads opinion text from: a file, or an
// opinion of a decision saved in the store.
type textSource struct {
	file        string
	decisionID  int64
	opinionType string
	author      string
}

// read returns the text and a label naming where it came from.
func (src textSource) read(ctx context.Context, in io.Reader) (text, label string, err error) {
	switch {
	case src.decisionID != 0 && src.file != "":
		return "", "", errors.New("--file and --decision cannot be combined")
	case src.decisionID != 0:
		s, err := openStore(ctx)
		if err != nil {
			return "", "", err
		}
		defer s.Close()
		d, op, err := storedOpinion(ctx, s, src.decisionID, src.opinionType, src.author)
		if err != nil {
			return "", "", err
		}
		return op.Text, fmt.Sprintf("%d:%s", d.ID, op.Type), nil
	default:
		text, err := readText(src.file, in)
		if err != nil {
			return "", "", err
		}
		label := src.file
		if label == "" {
			label = "-"
		}
		return text, label, nil
	}
}

// readText reads path, or in when path is empty or "-".
func readText(path string, in io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	return string(data), nil
}

// storedOpinion loads a decision from s and picks its opinion matching
// opinionType and author.
func storedOpinion(ctx context.Context, s store.Store, id int64, opinionType, author string) (*types.Decision, *types.Opinion, error) {
	d, err := s.GetDecision(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	op := d.FindMatchingOpinion(opinionType, author)
	if op == nil {
		if len(d.Opinions()) == 0 {
			return nil, nil, fmt.Errorf("decision %d has no opinion text; fetch it again with --full-case", id)
		}
		return nil, nil, fmt.Errorf("decision %d has no opinion of type %q by %q", id, opinionType, author)
	}
	return d, op, nil
}

// parseRange parses "start:end" or "start-end".
func parseRange(s string) ([2]int, error) {
	sep := strings.IndexAny(s, ":-")
	if sep < 0 {
		return [2]int{}, fmt.Errorf("invalid range %q (want start:end)", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(s[:sep]))
	if err != nil {
		return [2]int{}, fmt.Errorf("invalid range start %q: %w", s, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err != nil {
		return [2]int{}, fmt.Errorf("invalid range end %q: %w", s, err)
	}
	return [2]int{start, end}, nil
}

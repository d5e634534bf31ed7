package app

import (
	"context"
	"fmt"
	"strings"
)

// MockRetriever and MockResponder back --mock mode and the tests. No
// network calls, deterministic output.

type MockRetriever struct {
	Passages []Passage
	Err      error
	Calls    int
}

func (m *MockRetriever) Retrieve(ctx context.Context, query string, k int) ([]Passage, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Passages != nil {
		if k > 0 && k < len(m.Passages) {
			return m.Passages[:k], nil
		}
		return m.Passages, nil
	}
	return []Passage{{Source: "mock.txt", Text: "Mock context for: " + query}}, nil
}

type MockResponder struct {
	Answer string
	Err    error
	Calls  int
}

func (m *MockResponder) Generate(ctx context.Context, query string, passages []Passage) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	if m.Answer != "" {
		return m.Answer, nil
	}
	sources := make([]string, 0, len(passages))
	for _, p := range passages {
		sources = append(sources, p.Source)
	}
	return fmt.Sprintf("[mock] You asked %q. Context drawn from: %s.",
		query, strings.Join(sources, ", ")), nil
}

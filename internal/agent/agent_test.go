package agent

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shravya-mutyala/agent-test/internal/googlesearch"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeSearcher returns canned results or a canned error.
type fakeSearcher struct {
	results []googlesearch.SearchResult
	err     error
	calls   int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, numResults int) ([]googlesearch.SearchResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func newTestAgent(search Searcher) *Agent {
	return New(search, testLogger())
}

func TestAsk_InputValidation(t *testing.T) {
	a := newTestAgent(&fakeSearcher{})
	ctx := context.Background()

	tests := []struct {
		name     string
		question any
		want     string
	}{
		{"nil question", nil, "didn't receive a question"},
		{"non-string question", 123, "can only process text questions"},
		{"slice question", []string{"x"}, "can only process text questions"},
		{"empty question", "", "appears to be empty"},
		{"whitespace question", "  \n\t ", "appears to be empty"},
		{"two characters", "Hi", "seems very short"},
		{"very long question", strings.Repeat("What is AWS certification? ", 100), "more concise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := a.Ask(ctx, tt.question)
			assert.Contains(t, response, tt.want)
		})
	}
}

func TestAsk_StaticPath(t *testing.T) {
	search := &fakeSearcher{}
	a := newTestAgent(search)

	response := a.Ask(context.Background(), "Tell me about cloud computing")

	assert.NotEmpty(t, response)
	assert.Equal(t, 0, search.calls, "general questions must not hit the search provider")
}

func TestAsk_SearchPathSuccess(t *testing.T) {
	search := &fakeSearcher{
		results: []googlesearch.SearchResult{
			{
				Title:   "AWS Certification Discount - 50% Off",
				Snippet: "AWS is offering 50% discount on certification exams this month through re:Invent promotion.",
				URL:     "https://aws.amazon.com/certification/discount",
			},
			{
				Title:   "Latest AWS Exam Vouchers Available",
				Snippet: "Get your AWS certification vouchers with special pricing. Limited time offer for cloud professionals.",
				URL:     "https://aws.amazon.com/training/vouchers",
			},
		},
	}
	a := newTestAgent(search)

	response := a.Ask(context.Background(), "What are the latest AWS certification discounts?")

	require.Equal(t, 1, search.calls)
	assert.Contains(t, response, "50% discount")
	assert.Contains(t, response, "vouchers")
	assert.Contains(t, response, "Sources: aws.amazon.com")
	// The duplicated domain must be cited exactly once.
	assert.Equal(t, 1, strings.Count(response, "aws.amazon.com"))
}

func TestAsk_RateLimitFallback(t *testing.T) {
	search := &fakeSearcher{err: &googlesearch.RateLimitError{Message: "Search API rate limit exceeded."}}
	a := newTestAgent(search)

	response := a.Ask(context.Background(), "What are the latest AWS certification discounts?")

	assert.Contains(t, response, "high demand")
	assert.NotEmpty(t, response)
	// The fallback body comes from static knowledge.
	assert.Contains(t, response, "AWS")
}

func TestAsk_SearchErrorFallback(t *testing.T) {
	search := &fakeSearcher{err: &googlesearch.SearchError{Message: "Network connection error."}}
	a := newTestAgent(search)

	response := a.Ask(context.Background(), "What are the current Azure deals?")

	assert.NotEmpty(t, response)
	assert.NotContains(t, response, "Network connection error",
		"raw provider errors must never reach the user")
}

func TestAsk_ValidationErrorSurfacesRephrase(t *testing.T) {
	search := &fakeSearcher{err: &googlesearch.ValidationError{Message: "search query is too long (maximum 500 characters)"}}
	a := newTestAgent(search)

	response := a.Ask(context.Background(), "What are the latest certification deals?")

	assert.Contains(t, response, "rephrase")
	assert.Contains(t, response, "search query is too long")
}

func TestAsk_NoResultsFallback(t *testing.T) {
	search := &fakeSearcher{results: []googlesearch.SearchResult{}}
	a := newTestAgent(search)

	response := a.Ask(context.Background(), "What are the latest certification deals for an obscure vendor?")

	assert.Contains(t, response, "couldn't find current information")
}

func TestAsk_AllSnippetsUnusable(t *testing.T) {
	search := &fakeSearcher{
		results: []googlesearch.SearchResult{
			{Title: "a", Snippet: "", URL: "https://example.com/1"},
			{Title: "b", Snippet: "No description available", URL: "https://example.com/2"},
		},
	}
	a := newTestAgent(search)

	response := a.Ask(context.Background(), "What are the latest certification deals?")

	assert.Contains(t, response, "weren't very helpful")
	// Combined with the generic static answer body.
	assert.Contains(t, response, "Could you be more specific")
}

func TestAsk_UnexpectedErrorFallback(t *testing.T) {
	search := &fakeSearcher{err: errors.New("boom")}
	a := newTestAgent(search)

	response := a.Ask(context.Background(), "What are the latest certification deals?")

	assert.NotEmpty(t, response)
	assert.NotContains(t, response, "boom")
}

func TestAsk_NilSearcherStillAnswers(t *testing.T) {
	a := New(nil, testLogger())

	response := a.Ask(context.Background(), "What are the latest AWS deals?")

	assert.NotEmpty(t, response, "Ask must always return text")
}

func TestFallbackResponse_SpecificStaticGetsTrailingNote(t *testing.T) {
	a := newTestAgent(&fakeSearcher{})

	// "latest aws certification" matches the AWS static rule, so the reason
	// shows up as a trailing note rather than a lead-in.
	response := a.fallbackResponse("latest aws certification discounts", ReasonRateLimit)

	assert.Contains(t, response, "AWS offers various certification paths")
	assert.Contains(t, response, "Note: I'm currently unable to search for the very latest information due to high demand")
}

func TestFallbackResponse_GenericStaticGetsLeadIn(t *testing.T) {
	a := newTestAgent(&fakeSearcher{})

	response := a.fallbackResponse("latest widget prices", ReasonNoResults)

	assert.True(t, strings.HasPrefix(response, "I couldn't find current information about that specific topic"),
		"generic static answers get a reason-specific lead-in, got %q", response)
}

func TestHardFallback_AllReasonsProduceText(t *testing.T) {
	reasons := []FallbackReason{
		ReasonRateLimit, ReasonNoResults, ReasonNoMeaningfulResults,
		ReasonSearchError, ReasonPoorSummary, ReasonUnexpectedError,
		FallbackReason("something_unmapped"),
	}

	for _, reason := range reasons {
		msg := hardFallback(reason)
		if len(msg) < 10 {
			t.Errorf("hardFallback(%q) = %q, want substantive text", reason, msg)
		}
	}
}

// Package agent routes user questions between static knowledge and live web
// search, synthesising search results into cited answers with a layered
// fallback that guarantees a textual response under every failure mode.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shravya-mutyala/agent-test/internal/googlesearch"
	"github.com/shravya-mutyala/agent-test/internal/synthesis"
	"github.com/sirupsen/logrus"
)

const (
	maxQuestionLength = 1000
	minQuestionLength = 3

	// defaultNumResults is how many results one search requests.
	defaultNumResults = 5
)

// Searcher issues one search request. Implemented by *googlesearch.Client.
type Searcher interface {
	Search(ctx context.Context, query string, numResults int) ([]googlesearch.SearchResult, error)
}

// Agent answers questions by deciding, per question, whether static
// knowledge suffices or a live search is needed.
type Agent struct {
	search     Searcher
	summarizer *synthesis.Summarizer
	logger     *logrus.Logger
	numResults int
}

// New creates an Agent. search must be non-nil; a search-routed question
// with no provider still resolves through the fallback controller.
func New(search Searcher, logger *logrus.Logger) *Agent {
	if logger == nil {
		logger = logrus.New()
	}
	return &Agent{
		search:     search,
		summarizer: synthesis.NewSummarizer(logger),
		logger:     logger,
		numResults: defaultNumResults,
	}
}

// SetNumResults overrides how many results each search requests. Values
// outside the provider's 1-10 range are ignored.
func (a *Agent) SetNumResults(n int) {
	if n >= 1 && n <= 10 {
		a.numResults = n
	}
}

// NewWithSummarizer creates an Agent with custom summarisation tuning.
func NewWithSummarizer(search Searcher, summarizer *synthesis.Summarizer, logger *logrus.Logger) *Agent {
	a := New(search, logger)
	if summarizer != nil {
		a.summarizer = summarizer
	}
	return a
}

// Ask processes one question and always returns a textual answer; it never
// returns an error to the caller. The parameter is typed any so surfaces
// that receive untyped input (JSON bodies, CLI args) can hand it over as-is
// and still get a well-worded response for nil or non-string values.
func (a *Agent) Ask(ctx context.Context, question any) string {
	if question == nil {
		return "I didn't receive a question. Could you please ask me something?"
	}

	text, ok := question.(string)
	if !ok {
		return "I can only process text questions. Please provide your question as text."
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "Your question appears to be empty. Could you please ask me something specific?"
	}
	if len(text) > maxQuestionLength {
		return fmt.Sprintf("Your question is quite long. Could you please make it more concise (under %d characters)?", maxQuestionLength)
	}
	if len(text) < minQuestionLength {
		return "Your question seems very short. Could you provide more details so I can help you better?"
	}

	a.logger.WithField("question", truncateForLog(text)).Info("Processing question")

	if NeedsSearch(text) {
		a.logger.Info("Question requires web search for current information")
		return a.searchAndAnswer(ctx, text)
	}

	a.logger.Info("Question can be answered with static knowledge")
	return StaticAnswer(text)
}

// searchAndAnswer drives the search path: provider call, quality filtering,
// synthesis. Every failure resolves through the fallback controller except a
// validation complaint about the question itself, which is surfaced as a
// rephrase request.
func (a *Agent) searchAndAnswer(ctx context.Context, question string) string {
	if a.search == nil {
		a.logger.Error("No search provider configured")
		return a.fallbackResponse(question, ReasonSearchError)
	}

	results, err := a.search.Search(ctx, question, a.numResults)
	if err != nil {
		return a.handleSearchError(question, err)
	}

	if len(results) == 0 {
		a.logger.Warn("No search results found, attempting fallback response")
		return a.fallbackResponse(question, ReasonNoResults)
	}

	processed, sources, err := synthesis.FilterResults(a.logger, results)
	if err != nil {
		a.logger.Warn("No meaningful search results found, attempting fallback response")
		return a.fallbackResponse(question, ReasonNoMeaningfulResults)
	}

	summary, err := a.summarizer.Summarize(processed, sources, question)
	if err != nil || len(strings.TrimSpace(summary)) < 10 {
		a.logger.Warn("Generated summary is too short, attempting fallback response")
		return a.fallbackResponse(question, ReasonPoorSummary)
	}

	a.logger.Info("Successfully generated answer from search results")
	return summary
}

func (a *Agent) handleSearchError(question string, err error) string {
	var (
		rateErr   *googlesearch.RateLimitError
		valErr    *googlesearch.ValidationError
		searchErr *googlesearch.SearchError
	)

	switch {
	case errors.As(err, &rateErr):
		a.logger.WithError(err).Warn("Rate limit error")
		return a.fallbackResponse(question, ReasonRateLimit)

	case errors.As(err, &valErr):
		a.logger.WithError(err).Warn("Validation error processing question")
		return fmt.Sprintf("I noticed an issue with your question: %s. Could you please rephrase it?", valErr.Message)

	case errors.As(err, &searchErr):
		a.logger.WithError(err).Error("Search error")
		return a.fallbackResponse(question, ReasonSearchError)

	default:
		a.logger.WithError(err).Error("Unexpected error during search")
		return a.fallbackResponse(question, ReasonUnexpectedError)
	}
}

func truncateForLog(text string) string {
	if len(text) > 100 {
		return text[:100] + "..."
	}
	return text
}

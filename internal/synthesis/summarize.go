package synthesis

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shravya-mutyala/agent-test/internal/googlesearch"
	"github.com/sirupsen/logrus"
)

// Options holds the empirically tuned summarisation constants. The defaults
// are load-bearing for output compatibility; they are exposed as
// configuration rather than baked in.
type Options struct {
	// MaxSnippets is how many filtered snippets contribute to one answer.
	MaxSnippets int `yaml:"max_snippets"`
	// MaxSnippetLength is the length beyond which a snippet is truncated.
	MaxSnippetLength int `yaml:"max_snippet_length"`
	// MinBreakPosition rejects sentence breaks that come too early.
	MinBreakPosition int `yaml:"min_break_position"`
	// FallbackTruncateLength bounds the emergency single-snippet answer.
	FallbackTruncateLength int `yaml:"fallback_truncate_length"`
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		MaxSnippets:            3,
		MaxSnippetLength:       250,
		MinBreakPosition:       100,
		FallbackTruncateLength: 200,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxSnippets <= 0 {
		o.MaxSnippets = def.MaxSnippets
	}
	if o.MaxSnippetLength <= 0 {
		o.MaxSnippetLength = def.MaxSnippetLength
	}
	if o.MinBreakPosition <= 0 {
		o.MinBreakPosition = def.MinBreakPosition
	}
	if o.FallbackTruncateLength <= 0 {
		o.FallbackTruncateLength = def.FallbackTruncateLength
	}
	return o
}

// connectorPrefixes keep their capital when a snippet is appended after
// "Additionally, ".
var connectorPrefixes = []string{"The ", "This ", "That ", "These ", "Those "}

// conflictIndicators hint that sources may disagree.
var conflictIndicators = []string{"however", "but", "although", "while", "different", "varies", "depends", "conflicting"}

const (
	minSummaryLength    = 10
	maxCitationSources  = 3
	conflictDisclaimer  = " (Note: Information may vary between sources - please verify with official sources for the most accurate details.)"
	summaryTooShortMsg  = "generated summary is too short or empty"
	minUsableSnippet    = 5
)

// Summarizer combines filtered snippets into one coherent, cited answer.
type Summarizer struct {
	opts   Options
	logger *logrus.Logger
}

// NewSummarizer creates a Summarizer with the default tuning.
func NewSummarizer(logger *logrus.Logger) *Summarizer {
	return NewSummarizerWithOptions(DefaultOptions(), logger)
}

// NewSummarizerWithOptions creates a Summarizer with custom tuning. Zero or
// negative fields fall back to the defaults.
func NewSummarizerWithOptions(opts Options, logger *logrus.Logger) *Summarizer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Summarizer{opts: opts.withDefaults(), logger: logger}
}

// Summarize builds an answer from up to MaxSnippets snippets, in provider
// order, with a citation footer. sources must be parallel to processed, as
// produced by FilterResults. Once at least one snippet is selected the
// method degrades instead of failing: combination problems fall back to the
// first snippet, and a broken citation footer is omitted entirely.
func (s *Summarizer) Summarize(processed []ProcessedInfo, sources []string, originalQuestion string) (string, error) {
	if len(processed) == 0 {
		return "", &googlesearch.ValidationError{Message: "no search results provided for summarization"}
	}
	if strings.TrimSpace(originalQuestion) == "" {
		return "", &googlesearch.ValidationError{Message: "original question is required for context"}
	}

	selected := processed
	if len(selected) > s.opts.MaxSnippets {
		selected = selected[:s.opts.MaxSnippets]
	}

	parts := make([]string, 0, len(selected))
	for _, info := range selected {
		snippet := strings.TrimSpace(info.Snippet)
		if len(snippet) < minUsableSnippet {
			continue
		}
		parts = append(parts, s.truncateSnippet(snippet))
	}

	if len(parts) == 0 {
		// Nothing made it through selection; fall back to the raw first
		// snippet rather than failing the answer outright.
		s.logger.Warn("Could not create summary from any of the search results")
		return s.emergencyAnswer(processed[0])
	}

	summary := s.combine(parts)

	if hasConflictIndicator(summary) && len(processed) > 1 {
		summary += conflictDisclaimer
	}

	if footer := citationFooter(sources); footer != "" {
		summary += footer
	}

	if len(strings.TrimSpace(summary)) < minSummaryLength {
		return "", &googlesearch.ValidationError{Message: summaryTooShortMsg}
	}

	return summary, nil
}

// truncateSnippet shortens a long snippet at a natural boundary: the last
// sentence-ending period before the limit, then other terminal punctuation,
// then a hard cut with an ellipsis. Breaks before MinBreakPosition are
// rejected as too early.
func (s *Summarizer) truncateSnippet(snippet string) string {
	if len(snippet) <= s.opts.MaxSnippetLength {
		return snippet
	}

	window := snippet[:s.opts.MaxSnippetLength]

	if pos := strings.LastIndex(window, "."); pos > s.opts.MinBreakPosition {
		return snippet[:pos+1]
	}

	for _, punct := range []string{";", "!", "?"} {
		if pos := strings.LastIndex(window, punct); pos > s.opts.MinBreakPosition {
			return snippet[:pos+1]
		}
	}

	return snippet[:s.opts.MaxSnippetLength-3] + "..."
}

// combine joins the selected snippets into one paragraph. One snippet is
// used verbatim; two are bridged with "Additionally, "; three or more become
// a lead sentence plus a single trailing sentence.
func (s *Summarizer) combine(parts []string) string {
	var summary string

	switch len(parts) {
	case 1:
		summary = parts[0]

	case 2:
		second := parts[1]
		if second != "" && startsUpper(second) && !hasConnectorPrefix(second) {
			runes := []rune(second)
			runes[0] = unicode.ToLower(runes[0])
			second = string(runes)
		}
		summary = fmt.Sprintf("%s Additionally, %s", parts[0], second)

	default:
		additional := make([]string, 0, len(parts)-1)
		for _, part := range parts[1:] {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			part = strings.TrimSuffix(part, ".")
			additional = append(additional, part)
		}
		if len(additional) > 0 {
			summary = fmt.Sprintf("%s %s.", parts[0], strings.Join(additional, ". "))
		} else {
			summary = parts[0]
		}
	}

	// A degenerate combination falls back to the lead snippet alone.
	if len(strings.TrimSpace(summary)) < minSummaryLength {
		s.logger.Warn("Combined summary too short, falling back to first snippet")
		summary = parts[0]
	}

	return summary
}

// emergencyAnswer is the terminal degradation: the first snippet, hard
// truncated, with its single source.
func (s *Summarizer) emergencyAnswer(info ProcessedInfo) (string, error) {
	snippet := info.Snippet
	if len(snippet) > s.opts.FallbackTruncateLength {
		snippet = snippet[:s.opts.FallbackTruncateLength] + "..."
	}
	answer := fmt.Sprintf("%s\n\nSource: %s", snippet, info.Source)
	if len(strings.TrimSpace(answer)) < minSummaryLength {
		return "", &googlesearch.ValidationError{Message: summaryTooShortMsg}
	}
	return answer, nil
}

func hasConflictIndicator(summary string) bool {
	lower := strings.ToLower(summary)
	for _, indicator := range conflictIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// citationFooter deduplicates the first few sources in encounter order and
// renders them under a "Sources:" label. Sources that could not be resolved
// to a real domain are reported only as a count.
func citationFooter(sources []string) string {
	if len(sources) > maxCitationSources {
		sources = sources[:maxCitationSources]
	}

	seen := make(map[string]bool, len(sources))
	unique := make([]string, 0, len(sources))
	for _, source := range sources {
		if !seen[source] {
			seen[source] = true
			unique = append(unique, source)
		}
	}

	valid := make([]string, 0, len(unique))
	for _, source := range unique {
		if source != "" && source != UnknownSource {
			valid = append(valid, source)
		}
	}

	if len(valid) > 0 {
		return fmt.Sprintf("\n\nSources: %s", strings.Join(valid, ", "))
	}
	if len(unique) > 0 {
		plural := ""
		if len(unique) > 1 {
			plural = "s"
		}
		return fmt.Sprintf("\n\nSources: %d web source%s", len(unique), plural)
	}
	return ""
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func hasConnectorPrefix(s string) bool {
	for _, prefix := range connectorPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

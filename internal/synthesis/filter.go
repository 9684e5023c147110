// Package synthesis turns raw search results into a single cited answer:
// quality filtering, source extraction, and multi-snippet summarisation.
package synthesis

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shravya-mutyala/agent-test/internal/googlesearch"
	"github.com/sirupsen/logrus"
)

// ProcessedInfo is a search result that passed quality filtering, with its
// snippet normalised and a citation-worthy source identifier extracted.
type ProcessedInfo struct {
	Snippet string
	Source  string
	URL     string
	Title   string
}

// UnknownSource is the source identifier used when no valid domain can be
// extracted from a result URL.
const UnknownSource = "Unknown source"

// noDescriptionPlaceholder is what the provider returns for results without
// a snippet.
const noDescriptionPlaceholder = "No description available"

const (
	minSnippetLength      = 10
	lowQualityMaxLength   = 50
	minSourceDomainLength = 3
	maxDiagnosticsShown   = 3
)

// lowQualityMarkers flag boilerplate snippets. A marker alone is not
// disqualifying; only short snippets carrying one are dropped.
var lowQualityMarkers = []string{"...", "click here", "read more", "sign up", "login required"}

// FilterResults discards unusable results and extracts a source identifier
// for each survivor. The returned sources slice is parallel to the processed
// slice; duplicates are preserved here and collapsed at citation time.
// Individual failures are collected as diagnostics and logged but never
// abort the batch; the call fails only when nothing survives.
func FilterResults(logger *logrus.Logger, results []googlesearch.SearchResult) ([]ProcessedInfo, []string, error) {
	var (
		processed   []ProcessedInfo
		sources     []string
		diagnostics []string
	)

	for i, result := range results {
		snippet := strings.TrimSpace(result.Snippet)
		if snippet == "" || result.Snippet == noDescriptionPlaceholder {
			diagnostics = append(diagnostics, fmt.Sprintf("result %d: no useful snippet content", i+1))
			continue
		}

		clean := strings.Join(strings.Fields(snippet), " ")

		if len(clean) < minSnippetLength {
			diagnostics = append(diagnostics, fmt.Sprintf("result %d: snippet too short", i+1))
			continue
		}

		if hasLowQualityMarker(clean) && len(clean) < lowQualityMaxLength {
			diagnostics = append(diagnostics, fmt.Sprintf("result %d: low quality snippet detected", i+1))
			continue
		}

		source := extractSource(result.URL)

		title := result.Title
		if title == "" {
			title = "Untitled"
		}

		processed = append(processed, ProcessedInfo{
			Snippet: clean,
			Source:  source,
			URL:     result.URL,
			Title:   title,
		})
		sources = append(sources, source)
	}

	if len(diagnostics) > 0 && logger != nil {
		logger.WithField("issues", strings.Join(diagnostics, "; ")).Warn("Search result processing issues")
	}

	if len(processed) == 0 {
		if len(diagnostics) > 0 {
			shown := diagnostics
			if len(shown) > maxDiagnosticsShown {
				shown = shown[:maxDiagnosticsShown]
			}
			return nil, nil, &googlesearch.ValidationError{
				Message: fmt.Sprintf("could not process any search results: %s", strings.Join(shown, "; ")),
			}
		}
		return nil, nil, &googlesearch.ValidationError{Message: "no usable information found in search results"}
	}

	return processed, sources, nil
}

func hasLowQualityMarker(snippet string) bool {
	lower := strings.ToLower(snippet)
	for _, marker := range lowQualityMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// extractSource returns the host portion of a result URL with any leading
// "www." stripped. Malformed hosts (no dot, fewer than 3 characters) and
// unparseable URLs yield UnknownSource.
func extractSource(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return UnknownSource
	}

	host := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		host = parsed.Host
	}
	if host == "" && !strings.Contains(rawURL, "/") {
		// Bare hostnames without a scheme parse into the path component.
		host = rawURL
	}

	host = strings.TrimPrefix(host, "www.")

	if !strings.Contains(host, ".") || len(host) < minSourceDomainLength {
		return UnknownSource
	}
	return host
}

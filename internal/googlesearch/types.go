package googlesearch

// SearchResult is one item returned by the Custom Search API, reduced to the
// fields the agent consumes. Immutable once constructed.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// searchResponse mirrors the wire format of the Custom Search API.
type searchResponse struct {
	Items []searchItem   `json:"items"`
	Error *responseError `json:"error,omitempty"`
}

type searchItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// responseError is the error envelope Google returns alongside non-200
// statuses (and occasionally inside a 200 body).
type responseError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  []responseErrItem `json:"errors"`
}

type responseErrItem struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// reason returns the first error reason, or an empty string.
func (e *responseError) reason() string {
	if e == nil || len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Reason
}

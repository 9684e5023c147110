package googlesearch

// ValidationError indicates that caller-supplied input (a query, a result
// count, or a credential) was rejected before any network activity.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SearchError indicates a provider-side failure: bad credentials, a bad
// request, an unavailable service, or a network failure.
type SearchError struct {
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// RateLimitError is a specialisation of a provider failure that specifically
// means "retry later": the API returned 429 or reported an exhausted quota.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// Unwrap lets errors.As callers that only check for *SearchError still catch
// rate limit failures.
func (e *RateLimitError) Unwrap() error {
	return &SearchError{Message: e.Message}
}

package agent

import "strings"

// FallbackReason classifies why the search path failed. It is consumed only
// by the fallback controller to select wording.
type FallbackReason string

const (
	ReasonRateLimit           FallbackReason = "rate_limit"
	ReasonNoResults           FallbackReason = "no_results"
	ReasonNoMeaningfulResults FallbackReason = "no_meaningful_results"
	ReasonSearchError         FallbackReason = "search_error"
	ReasonPoorSummary         FallbackReason = "poor_summary"
	ReasonUnexpectedError     FallbackReason = "unexpected_error"
)

// leadIns prefix the generic static answer with a reason-specific framing
// sentence. Unmapped reasons share the default with unexpected_error.
var leadIns = map[FallbackReason]string{
	ReasonRateLimit:           "I'm currently experiencing high demand and can't search for the latest information right now. However, I can share some general knowledge: ",
	ReasonNoResults:           "I couldn't find current information about that specific topic, but here's what I can tell you: ",
	ReasonNoMeaningfulResults: "The search results weren't very helpful, but I can provide some general information: ",
	ReasonSearchError:         "I'm having trouble accessing current information right now, but here's what I know: ",
	ReasonPoorSummary:         "I found some information but had trouble summarizing it clearly, so let me share what I can: ",
}

const defaultLeadIn = "I encountered an issue searching for current information, but let me share what I can: "

// trailingNotes follow a specific static answer instead of a lead-in.
var trailingNotes = map[FallbackReason]string{
	ReasonRateLimit:           "\n\nNote: I'm currently unable to search for the very latest information due to high demand, but the above should still be helpful.",
	ReasonNoResults:           "\n\nNote: I couldn't find current information about your specific question, but this general information should help.",
	ReasonNoMeaningfulResults: "\n\nNote: I couldn't find current information about your specific question, but this general information should help.",
}

const defaultTrailingNote = "\n\nNote: I'm currently unable to search for the latest information, but this should give you a good starting point."

// hardFallbackMessages are the terminal guarantee: returned when even the
// static answerer produces nothing usable.
var hardFallbackMessages = map[FallbackReason]string{
	ReasonRateLimit:           "I'm experiencing high demand right now and need to wait before searching. Please try again in a few moments, or feel free to ask a different question.",
	ReasonNoResults:           "I couldn't find any current information about that topic. You might want to try rephrasing your question or checking official sources directly.",
	ReasonNoMeaningfulResults: "I found some results but couldn't extract useful information from them. Could you try rephrasing your question or being more specific?",
	ReasonSearchError:         "I'm having trouble accessing search services right now. Please try again later, or feel free to ask about something else.",
	ReasonPoorSummary:         "I found some information but had trouble summarizing it clearly. You might want to try a more specific question or check the sources directly.",
	ReasonUnexpectedError:     "I encountered an unexpected issue while processing your question. Please try again or rephrase your question.",
}

const defaultHardFallback = "I'm having trouble processing your question right now. Please try again later or rephrase your question."

// fallbackResponse is a two-state machine: AttemptStatic answers from the
// knowledge table with reason-specific framing; HardFallback is entered only
// when the static answerer yields nothing usable, and always returns text.
func (a *Agent) fallbackResponse(question string, reason FallbackReason) string {
	a.logger.WithField("reason", string(reason)).Info("Providing fallback response")

	if response, ok := attemptStatic(question, reason); ok {
		return response
	}
	return hardFallback(reason)
}

// attemptStatic is the first state. ok is false when the static answer is
// unusable and the controller must transition to the hard fallback.
func attemptStatic(question string, reason FallbackReason) (string, bool) {
	static := StaticAnswer(question)
	if strings.TrimSpace(static) == "" {
		return "", false
	}

	if isGenericStatic(static) {
		leadIn, mapped := leadIns[reason]
		if !mapped {
			leadIn = defaultLeadIn
		}
		return leadIn + static, true
	}

	note, mapped := trailingNotes[reason]
	if !mapped {
		note = defaultTrailingNote
	}
	return static + note, true
}

// hardFallback is the second state: a canned message keyed by reason.
func hardFallback(reason FallbackReason) string {
	if msg, ok := hardFallbackMessages[reason]; ok {
		return msg
	}
	return defaultHardFallback
}

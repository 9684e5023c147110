package agent

import "strings"

// searchKeywords strongly indicate a need for current or commercial
// information. Any hit routes the question to live search, even when a
// general-knowledge phrase is also present.
var searchKeywords = []string{
	"latest", "current", "recent", "today", "this month", "this year",
	"now", "discount", "price", "pricing", "cost", "deal", "deals",
	"new", "updated", "announcement", "news", "breaking", "just",
	"voucher", "promotion", "sale", "availability", "available",
	"release", "launched", "upcoming",
}

var pricingPhrases = []string{"how much", "what does it cost", "what is the cost"}

var timingPhrases = []string{"when is", "when will", "when can"}

// generalPhrases mark questions answerable from static knowledge. They are
// checked after the keyword rules, so a time-sensitive keyword still wins:
// "tell me about the latest AWS benefits" searches, "tell me about AWS
// benefits" does not.
var generalPhrases = []string{"tell me about", "what is", "what are", "explain", "describe"}

// NeedsSearch decides whether a question requires a live web search. It is
// a flat ordered rule table evaluated top-down; rule order is load-bearing
// and must not change.
func NeedsSearch(question string) bool {
	lower := strings.ToLower(question)

	for _, keyword := range searchKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	for _, phrase := range pricingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, phrase := range timingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	// General knowledge questions never escalate to search on their own.
	for _, phrase := range generalPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}

	return false
}

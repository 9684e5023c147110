package agent

import "strings"

// genericStaticMarkers identify the catch-all static answer. The fallback
// controller uses them to decide between a lead-in and a trailing note.
var genericStaticMarkers = []string{"I can help with that", "Could you be more specific"}

// staticRule is one entry of the static knowledge table: if any keyword
// matches, the answer is returned. Table order is significant.
type staticRule struct {
	keywords []string
	answer   string
}

// staticPairRule requires both keywords to be present.
type staticPairRule struct {
	first, second string
	answer        string
}

var staticGreetingHelp = []staticRule{
	{
		keywords: []string{"hello", "hi", "hey"},
		answer:   "Hello! I'm the Strands Agent. I can help you with questions about technology, certifications, and current information. What would you like to know?",
	},
	{
		keywords: []string{"help", "what can you do"},
		answer:   "I can help you with questions about technology topics, especially when you need current information. I can search the web for the latest pricing, deals, certification information, and more. Just ask me anything!",
	},
}

var staticCertifications = []staticPairRule{
	{
		first:  "aws",
		second: "certification",
		answer: "AWS offers various certification paths including Cloud Practitioner, Solutions Architect, Developer, and SysOps Administrator at the Associate level, plus Professional and Specialty certifications. For current pricing and exam details, I'd need to search for the latest information.",
	},
	{
		first:  "azure",
		second: "certification",
		answer: "Microsoft Azure certifications include Fundamentals, Associate, and Expert levels covering roles like Administrator, Developer, Solutions Architect, and more. For current exam information and pricing, I can search for the latest details.",
	},
	{
		first:  "google cloud",
		second: "certification",
		answer: "Google Cloud offers certifications for Cloud Engineer, Cloud Architect, Data Engineer, and other specialized roles. For current exam information and pricing, I can search for the latest details.",
	},
}

const genericStaticAnswer = "I can help with that, but I might need to search for current information to give you the most accurate answer. Could you be more specific about what you're looking for?"

// StaticAnswer answers a question from the fixed knowledge table. It always
// succeeds; questions with no matching rule get the generic catch-all.
func StaticAnswer(question string) string {
	lower := strings.ToLower(question)

	for _, rule := range staticGreetingHelp {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.answer
			}
		}
	}

	for _, rule := range staticCertifications {
		if strings.Contains(lower, rule.first) && strings.Contains(lower, rule.second) {
			return rule.answer
		}
	}

	return genericStaticAnswer
}

// isGenericStatic reports whether a static answer is the catch-all rather
// than a specific fact.
func isGenericStatic(answer string) bool {
	for _, marker := range genericStaticMarkers {
		if strings.Contains(answer, marker) {
			return true
		}
	}
	return false
}

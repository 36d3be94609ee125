package intent

import (
	"strings"
)

type Intent string

const (
	IntentStaticFAQ    Intent = "static_faq"
	IntentImageRequest Intent = "image_request"
	IntentGenericText  Intent = "generic_text"
)

// imageKeywords mark a query as a visual-content request. Checked first;
// a single case-insensitive substring hit wins.
var imageKeywords = []string{
	"image", "images", "picture", "pictures", "photo", "photos",
	"show me", "generate image", "create image", "visual", "illustration",
	"diagram", "chart", "graph", "draw", "sketch",
}

// faqTriggers mark a query as answerable from the static knowledge table.
var faqTriggers = []string{
	"why jisce",
	"fees",
	"location", "address", "where is jisce",
}

// Classify decides how a raw query should be routed. Image keywords take
// priority over FAQ triggers; anything else is a generic text request.
func Classify(rawText string) Intent {
	lower := strings.ToLower(rawText)

	for _, kw := range imageKeywords {
		if strings.Contains(lower, kw) {
			return IntentImageRequest
		}
	}
	for _, trigger := range faqTriggers {
		if strings.Contains(lower, trigger) {
			return IntentStaticFAQ
		}
	}
	return IntentGenericText
}

// DefaultImageTerm is substituted when stripping leaves nothing to search for.
const DefaultImageTerm = "abstract art"

// stopWords are the request verbs, articles and media words removed from
// an image request to isolate the subject being asked for.
var stopWords = map[string]bool{
	"show": true, "me": true, "generate": true, "create": true,
	"image": true, "images": true, "picture": true, "pictures": true,
	"photo": true, "photos": true,
	"of": true, "a": true, "an": true, "the": true,
}

// ExtractImageTerm derives the search term for an image request by
// dropping stop words from the lowercased text. The result is never
// empty: DefaultImageTerm fills in when nothing survives.
func ExtractImageTerm(rawText string) string {
	var kept []string
	for _, word := range strings.Fields(strings.ToLower(rawText)) {
		if !stopWords[strings.Trim(word, ".,!?\"'")] {
			kept = append(kept, word)
		}
	}
	term := strings.TrimSpace(strings.Join(kept, " "))
	if term == "" {
		return DefaultImageTerm
	}
	return term
}

// Package sentiment labels visitor comments.
//
// Two independent classifiers live here: a keyword counter tuned for the
// French comments left at the event, and a lexicon analyzer backed by VADER
// whose dominant label is chosen by a named Policy.
package sentiment

import "strings"

type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Labels lists every label in display order.
var Labels = []Label{Positive, Neutral, Negative}

const (
	positiveRating = 8
	negativeRating = 4
)

var positiveWords = []string{
	"excellent", "génial", "super", "fantastique", "parfait", "impressionnant",
	"intéressant", "passionnant", "merveilleux", "extraordinaire", "bien",
	"bonne", "bon", "cool", "top", "formidable", "adoré", "fascinant",
}

// "décevant" is listed twice and therefore weighs double.
var negativeWords = []string{
	"mauvais", "nul", "ennuyeux", "décevant", "difficile", "complexe",
	"confus", "incompréhensible", "fade", "pas terrible", "décevant",
}

// ClassifyKeywords labels a comment from keyword counts and the rating.
// Counts and rating thresholds are each sufficient on their own, and the
// positive rule is checked first.
func ClassifyKeywords(text string, rating int) Label {
	lower := strings.ToLower(text)
	pos := countContained(lower, positiveWords)
	neg := countContained(lower, negativeWords)

	switch {
	case pos > neg || rating >= positiveRating:
		return Positive
	case neg > pos || rating <= negativeRating:
		return Negative
	default:
		return Neutral
	}
}

func countContained(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

package sentiment

import (
	"fmt"
	"sort"

	"github.com/jonreiter/govader"
)

// Scores are the polarity scores of a text. Field order matches the order
// the analyzer reports them in and is kept in the JSON output.
type Scores struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

type Scorer interface {
	PolarityScores(text string) Scores
}

type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) PolarityScores(text string) Scores {
	s := v.analyzer.PolarityScores(text)
	return Scores{
		Neg:      s.Negative,
		Neu:      s.Neutral,
		Pos:      s.Positive,
		Compound: s.Compound,
	}
}

// Policy picks the dominant label ("pos", "neu" or "neg") from scores.
type Policy func(Scores) string

const (
	PolicyCompound        = "compound"
	PolicyMaxOfFirstThree = "max_of_first_three"

	compoundThreshold = 0.05
)

// CompoundThreshold labels by the compound score alone.
func CompoundThreshold(s Scores) string {
	switch {
	case s.Compound >= compoundThreshold:
		return "pos"
	case s.Compound <= -compoundThreshold:
		return "neg"
	default:
		return "neu"
	}
}

// MaxOfFirstThree returns the label of the largest of neg, neu and pos,
// earliest first on ties. The compound score is not consulted, and since
// neu usually dominates short texts this rule rarely yields pos or neg.
func MaxOfFirstThree(s Scores) string {
	label, best := "neg", s.Neg
	if s.Neu > best {
		label, best = "neu", s.Neu
	}
	if s.Pos > best {
		label = "pos"
	}
	return label
}

var policies = map[string]Policy{
	PolicyCompound:        CompoundThreshold,
	PolicyMaxOfFirstThree: MaxOfFirstThree,
}

func PolicyByName(name string) (Policy, error) {
	p, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown sentiment policy %q (known: %v)", name, PolicyNames())
	}
	return p, nil
}

func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Analysis struct {
	SentimentScore    Scores `json:"sentiment_score"`
	DominantSentiment string `json:"dominant_sentiment"`
}

type LexiconAnalyzer struct {
	scorer Scorer
	policy Policy
}

func NewLexiconAnalyzer(scorer Scorer, policy Policy) *LexiconAnalyzer {
	return &LexiconAnalyzer{scorer: scorer, policy: policy}
}

func (a *LexiconAnalyzer) Analyze(text string) Analysis {
	scores := a.scorer.PolarityScores(text)
	return Analysis{
		SentimentScore:    scores,
		DominantSentiment: a.policy(scores),
	}
}

// AnalyzeBatch scores every text in order.
func (a *LexiconAnalyzer) AnalyzeBatch(texts []string) []Analysis {
	out := make([]Analysis, len(texts))
	for i, text := range texts {
		out[i] = a.Analyze(text)
	}
	return out
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/nuitfeedback/internal/sentiment"
)

type fixedScorer sentiment.Scores

func (f fixedScorer) PolarityScores(string) sentiment.Scores {
	return sentiment.Scores(f)
}

func TestHandleAnalyze(t *testing.T) {
	scores := fixedScorer{Neg: 0.1, Neu: 0.6, Pos: 0.3, Compound: 0.7}

	tests := []struct {
		name   string
		policy string
		path   string
		want   string
	}{
		{name: "compound policy", policy: sentiment.PolicyCompound, path: "/analyze", want: "pos"},
		{name: "max of first three policy", policy: sentiment.PolicyMaxOfFirstThree, path: "/analyze", want: "neu"},
		{name: "root path", policy: sentiment.PolicyCompound, path: "/", want: "pos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := sentiment.PolicyByName(tt.policy)
			require.NoError(t, err)
			router := NewAnalyzerRouter(NewAnalyzeHandler(sentiment.NewLexiconAnalyzer(scores, policy), tt.policy))

			w := doRequest(t, router, http.MethodPost, tt.path, `{"text":"anything"}`)
			require.Equal(t, http.StatusOK, w.Code)

			got := decode[sentiment.Analysis](t, w)
			assert.Equal(t, tt.want, got.DominantSentiment)
			assert.Equal(t, sentiment.Scores(scores), got.SentimentScore)
		})
	}
}

func TestHandleAnalyze_Errors(t *testing.T) {
	router := NewAnalyzerRouter(NewAnalyzeHandler(
		sentiment.NewLexiconAnalyzer(fixedScorer{}, sentiment.CompoundThreshold),
		sentiment.PolicyCompound,
	))

	w := doRequest(t, router, http.MethodPost, "/analyze", `not json`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "error", decode[map[string]string](t, w)["status"])

	w = doRequest(t, router, http.MethodOptions, "/analyze", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleBatch(t *testing.T) {
	router := NewAnalyzerRouter(NewAnalyzeHandler(
		sentiment.NewLexiconAnalyzer(fixedScorer{Neg: 0.1, Neu: 0.6, Pos: 0.3, Compound: 0.7}, sentiment.CompoundThreshold),
		sentiment.PolicyCompound,
	))

	w := doRequest(t, router, http.MethodPost, "/analyze/batch", `{"texts":["great","fine"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count   int `json:"count"`
		Results []struct {
			Input             string           `json:"input"`
			SentimentScore    sentiment.Scores `json:"sentiment_score"`
			DominantSentiment string           `json:"dominant_sentiment"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "great", resp.Results[0].Input)
	assert.Equal(t, "fine", resp.Results[1].Input)
	assert.Equal(t, "pos", resp.Results[1].DominantSentiment)
	assert.Equal(t, 0.7, resp.Results[0].SentimentScore.Compound)

	testCases := []struct {
		name string
		body string
	}{
		{name: "missing texts", body: `{}`},
		{name: "texts not an array", body: `{"texts":"great"}`},
		{name: "too many texts", body: `{"texts":[` + strings.TrimSuffix(strings.Repeat(`"a",`, 101), ",") + `]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/analyze/batch", tc.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "error", decode[map[string]string](t, w)["status"])
		})
	}
}

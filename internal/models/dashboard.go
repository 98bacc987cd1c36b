package models

type SentimentBreakdown struct {
	Positive float64 `json:"positive" toml:"positive"`
	Neutral  float64 `json:"neutral" toml:"neutral"`
	Negative float64 `json:"negative" toml:"negative"`
}

type TopActivity struct {
	Name         string  `json:"name"`
	Participants int64   `json:"participants"`
	Satisfaction float64 `json:"satisfaction"`
}

type RecentFeedback struct {
	ID        int    `json:"id"`
	Activity  string `json:"activity"`
	Comment   string `json:"comment"`
	Sentiment string `json:"sentiment"`
	Time      string `json:"time"`
}

type Dashboard struct {
	TotalParticipants int64              `json:"totalParticipants"`
	SatisfactionRate  float64            `json:"satisfactionRate"`
	Sentiment         SentimentBreakdown `json:"sentiment"`
	TopActivities     []TopActivity      `json:"topActivities"`
	RecentFeedback    []RecentFeedback   `json:"recentFeedback"`
}

type HourlyStat struct {
	Hour         string  `json:"hour"`
	Participants int64   `json:"participants"`
	Satisfaction float64 `json:"satisfaction"`
}

type Stats struct {
	HourlyStats     []HourlyStat `json:"hourlyStats"`
	Recommendations []string     `json:"recommendations"`
}

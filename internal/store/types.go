package store

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
)

type DBConfig struct {
	DSN  string
	Type DatabaseType
}

type SentimentCount struct {
	Sentiment string `db:"sentiment"`
	Total     int64  `db:"total"`
}

type ActivityStat struct {
	Activity     string  `db:"activity"`
	Participants int64   `db:"participants"`
	AvgRating    float64 `db:"avg_rating"`
}

// HourStat is the feedback left during one hour of the day.
// AvgRating is nil when nobody left feedback in that hour.
type HourStat struct {
	Participants int64    `db:"participants"`
	AvgRating    *float64 `db:"avg_rating"`
}

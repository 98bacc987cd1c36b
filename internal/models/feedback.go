package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// TimestampLayout is how creation times are written to the feedback table.
// The hour sits at characters 12-13, which the hourly stats rely on.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// DefaultRating is used when a submission carries no rating.
const DefaultRating = 5

var validate = validator.New()

type Feedback struct {
	ID        int64  `db:"id" json:"id"`
	Activity  string `db:"activity" json:"activity"`
	Comment   string `db:"comment" json:"comment"`
	Rating    int    `db:"rating" json:"rating"`
	Sentiment string `db:"sentiment" json:"sentiment"`
	Timestamp string `db:"timestamp" json:"timestamp"`
	QRCode    string `db:"qr_code" json:"qr_code"`
}

// FeedbackRequest is the body of a submission, real or simulated.
type FeedbackRequest struct {
	Activity string `json:"activity" validate:"max=200"`
	Comment  string `json:"comment"`
	Rating   *int   `json:"rating" validate:"omitempty,min=1,max=10"`
	QRCode   string `json:"qr_code" validate:"max=64"`
}

func (r *FeedbackRequest) Validate() error {
	return validate.Struct(r)
}

// RatingOrDefault returns the submitted rating, or DefaultRating when absent.
func (r *FeedbackRequest) RatingOrDefault() int {
	if r.Rating == nil {
		return DefaultRating
	}
	return *r.Rating
}

// NewFeedback builds the record stored for a request once its label is known.
func NewFeedback(req FeedbackRequest, sentiment string, now time.Time) *Feedback {
	return &Feedback{
		Activity:  req.Activity,
		Comment:   req.Comment,
		Rating:    req.RatingOrDefault(),
		Sentiment: sentiment,
		Timestamp: now.Format(TimestampLayout),
		QRCode:    req.QRCode,
	}
}

// SimulatedFeedback echoes what the simulator generated.
type SimulatedFeedback struct {
	Activity string `json:"activity"`
	Comment  string `json:"comment"`
	Rating   int    `json:"rating"`
	QRCode   string `json:"qr_code"`
}

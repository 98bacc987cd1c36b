package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/nuitfeedback/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

type FeedbackStore interface {
	Close() error
	// Reset drops the feedback table and recreates it empty.
	Reset(ctx context.Context) error
	ApplyMigrations(ctx context.Context) error

	CreateFeedback(ctx context.Context, feedback *models.Feedback) error
	ListFeedback(ctx context.Context, limit int) ([]models.Feedback, error)

	CountFeedback(ctx context.Context) (int64, error)
	AverageRating(ctx context.Context) (*float64, error)
	SentimentCounts(ctx context.Context) ([]SentimentCount, error)
	ActivityStats(ctx context.Context) ([]ActivityStat, error)
	RecentComments(ctx context.Context, limit int) ([]models.Feedback, error)
	HourStats(ctx context.Context, hour int) (*HourStat, error)
}

// BaseStore provides common functionality for different DB implementations.
// Every operation runs on its own connection, taken from DB for the
// duration of the call and handed back before returning.
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
	// TranslateSQL rewrites the Postgres-flavoured migrations, nil keeps them as is
	TranslateSQL func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *BaseStore) WithConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := s.DB.Connx(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// ApplyMigrations applies the embedded SQL migrations in name order,
// translating dialect if needed
func (s *BaseStore) ApplyMigrations(ctx context.Context) error {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	return s.WithConn(ctx, func(conn *sqlx.Conn) error {
		for _, file := range files {
			content, err := migrations.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read migration %s: %w", file, err)
			}

			sql := string(content)
			if s.TranslateSQL != nil {
				sql = s.TranslateSQL(sql)
			}

			logger.Debug.Printf("Applying migration: %s", file)
			for _, stmt := range strings.Split(sql, ";") {
				if strings.TrimSpace(stmt) == "" {
					continue
				}
				if _, err := conn.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to apply migration %s: %w", file, err)
				}
			}
		}
		return nil
	})
}

func (s *BaseStore) Reset(ctx context.Context) error {
	err := s.WithConn(ctx, func(conn *sqlx.Conn) error {
		_, err := conn.ExecContext(ctx, `DROP TABLE IF EXISTS feedback`)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to drop feedback table: %w", err)
	}
	return s.ApplyMigrations(ctx)
}

func (s *BaseStore) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	query := s.Converter(`
		INSERT INTO feedback (activity, comment, rating, sentiment, timestamp, qr_code)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := s.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &feedback.ID, query,
			feedback.Activity,
			feedback.Comment,
			feedback.Rating,
			feedback.Sentiment,
			feedback.Timestamp,
			feedback.QRCode,
		)
	})
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

const feedbackColumns = `
	id,
	activity,
	COALESCE(comment, '') AS comment,
	rating,
	sentiment,
	timestamp,
	COALESCE(qr_code, '') AS qr_code
`

func (s *BaseStore) ListFeedback(ctx context.Context, limit int) ([]models.Feedback, error) {
	query := s.Converter(`
		SELECT ` + feedbackColumns + `
		FROM feedback
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`)

	entries := []models.Feedback{}
	err := s.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &entries, query, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return entries, nil
}

func (s *BaseStore) CountFeedback(ctx context.Context) (int64, error) {
	var total int64
	err := s.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &total, `SELECT COUNT(*) FROM feedback`)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return total, nil
}

func (s *BaseStore) AverageRating(ctx context.Context) (*float64, error) {
	var avg sql.NullFloat64
	err := s.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &avg, `SELECT CAST(AVG(rating) AS DOUBLE PRECISION) FROM feedback`)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (s *BaseStore) SentimentCounts(ctx context.Context) ([]SentimentCount, error) {
	var counts []SentimentCount
	err := s.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &counts, `
			SELECT sentiment, COUNT(*) AS total
			FROM feedback
			GROUP BY sentiment
		`)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count sentiments: %w", err)
	}
	return counts, nil
}

func (s *BaseStore) ActivityStats(ctx context.Context) ([]ActivityStat, error) {
	var stats []ActivityStat
	err := s.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &stats, `
			SELECT
				activity,
				COUNT(*) AS participants,
				CAST(AVG(rating) AS DOUBLE PRECISION) AS avg_rating
			FROM feedback
			GROUP BY activity
			ORDER BY avg_rating DESC, activity ASC
		`)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity stats: %w", err)
	}
	return stats, nil
}

func (s *BaseStore) RecentComments(ctx context.Context, limit int) ([]models.Feedback, error) {
	query := s.Converter(`
		SELECT ` + feedbackColumns + `
		FROM feedback
		WHERE comment IS NOT NULL AND comment != ''
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`)

	var entries []models.Feedback
	err := s.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &entries, query, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent comments: %w", err)
	}
	return entries, nil
}

// HourStats matches on the hour digits of the stored timestamp, so rows
// with malformed timestamps are never counted.
func (s *BaseStore) HourStats(ctx context.Context, hour int) (*HourStat, error) {
	query := s.Converter(`
		SELECT
			COUNT(*) AS participants,
			CAST(AVG(rating) AS DOUBLE PRECISION) AS avg_rating
		FROM feedback
		WHERE substr(timestamp, 12, 2) = ?
	`)

	var stat HourStat
	err := s.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &stat, query, fmt.Sprintf("%02d", hour))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats for hour %d: %w", hour, err)
	}
	return &stat, nil
}

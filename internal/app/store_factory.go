package app

import (
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/nuitfeedback/internal/store"
	"github.com/shrimpsizemoose/nuitfeedback/internal/store/postgres"
	"github.com/shrimpsizemoose/nuitfeedback/internal/store/sqlite"
)

func NewStore(dsn string) (store.FeedbackStore, error) {
	config := &store.DBConfig{DSN: dsn, Type: store.DBTypeSQLite}
	if strings.HasPrefix(dsn, "postgres") {
		config.Type = store.DBTypePostgres
	}

	switch config.Type {
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(config)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(config)
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", dsn)
	}
}

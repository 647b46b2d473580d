package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/press_radar/internal/conf"
)

type Data struct {
	db *sql.DB
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}

	helper := log.NewHelper(logger)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analyses (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			suggestions TEXT[] NOT NULL DEFAULT '{}',
			missing_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return nil, nil, fmt.Errorf("failed to init analyses table: %w", err)
	}

	// pg_trgm powers the similar-title lookup. Creating the extension needs
	// elevated privileges on some hosts, so a failure only disables the
	// feature instead of blocking startup.
	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`); err != nil {
		helper.Warnf("pg_trgm unavailable, similar-title lookup disabled: %v", err)
	} else if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS analyses_title_trgm
		ON analyses USING gin (title gin_trgm_ops)
	`); err != nil {
		helper.Warnf("failed to create trigram index: %v", err)
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}

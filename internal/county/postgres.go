package county

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	"go.uber.org/multierr"

	"explore-islands/pkg/model"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// countyRow is one row of the counties table. Data holds the full record.
type countyRow struct {
	Slug string `db:"slug"`
	Data []byte `db:"data"`
}

// LoadPostgres reads every county from the given table, ordered by position.
//
// Expected schema:
//
//	CREATE TABLE counties (
//	    position SERIAL PRIMARY KEY,
//	    slug     TEXT NOT NULL UNIQUE,
//	    data     JSONB NOT NULL
//	);
func LoadPostgres(ctx context.Context, db *sqlx.DB, table string) ([]model.County, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid county table name %q", table)
	}

	var rows []countyRow
	query := fmt.Sprintf("SELECT slug, data FROM %s ORDER BY position", table)
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query counties: %w", err)
	}

	raws := make([]json.RawMessage, len(rows))
	for i, row := range rows {
		raws[i] = row.Data
	}

	counties, err := Build(raws)
	if err != nil {
		return nil, fmt.Errorf("invalid counties in table %s: %w", table, err)
	}

	// Build keeps source order, so rows and counties line up
	var errs error
	for i, c := range counties {
		if c.Slug != rows[i].Slug {
			errs = multierr.Append(errs, &ValidationError{
				Index:   i,
				Message: fmt.Sprintf("slug column %q does not match record slug %q", rows[i].Slug, c.Slug),
			})
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid counties in table %s: %w", table, errs)
	}

	return counties, nil
}

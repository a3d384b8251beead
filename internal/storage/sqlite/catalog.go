package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sandevgo/partsbot/internal/core"
	"github.com/sandevgo/partsbot/pkg/log"
)

const defaultCandidateLimit = 200

// Catalog implements core.CatalogRepository over the parts table. The
// search pipeline builds the predicate; this layer only turns it into
// case-insensitive LIKE filters.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) FindCandidates(ctx context.Context, filter core.CatalogFilter) ([]core.Part, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultCandidateLimit
	}

	var (
		where string
		args  []any
	)

	switch {
	case filter.Reference != "":
		where = `reference LIKE ? COLLATE NOCASE`
		args = append(args, "%"+filter.Reference+"%")
	case len(filter.Terms) > 0:
		clauses := make([]string, 0, len(filter.Terms))
		for _, term := range filter.Terms {
			clauses = append(clauses, `designation LIKE ? COLLATE NOCASE`)
			args = append(args, "%"+term+"%")
		}
		where = "(" + strings.Join(clauses, " OR ") + ")"
	default:
		return nil, nil
	}

	query := `SELECT id, designation, reference, stock, unit_price FROM parts WHERE ` + where + ` LIMIT ?`
	args = append(args, limit)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parts: %w", err)
	}
	defer rows.Close()

	var parts []core.Part
	for rows.Next() {
		var (
			part  core.Part
			price sql.NullFloat64
		)
		if err := rows.Scan(&part.ID, &part.Designation, &part.Reference, &part.Stock, &price); err != nil {
			return nil, fmt.Errorf("failed to scan part: %w", err)
		}
		if price.Valid {
			part.UnitPrice = &price.Float64
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(parts)).Msg("loaded catalog candidates")
	return parts, nil
}

// InsertPart adds one catalog row; used by the CSV importer.
func (c *Catalog) InsertPart(ctx context.Context, part core.Part) error {
	var price any
	if part.UnitPrice != nil {
		price = *part.UnitPrice
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO parts (designation, reference, stock, unit_price) VALUES (?, ?, ?, ?)`,
		part.Designation, part.Reference, part.Stock, price,
	)
	if err != nil {
		return fmt.Errorf("failed to insert part: %w", err)
	}
	return nil
}

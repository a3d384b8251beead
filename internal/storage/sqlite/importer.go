package sqlite

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sandevgo/partsbot/internal/core"
	"github.com/sandevgo/partsbot/pkg/log"
)

// ImportCSV loads catalog rows from a CSV file with the columns
// designation,reference,stock,unit_price. A header row is skipped when the
// stock column does not parse. Returns the number of imported rows.
func ImportCSV(ctx context.Context, catalog *Catalog, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	imported := 0
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("failed to read csv line %d: %w", line+1, err)
		}
		line++

		part, ok := parseRecord(record)
		if !ok {
			if line == 1 {
				continue // header
			}
			log.FromCtx(ctx).Warn().Int("line", line).Msg("skipping malformed catalog row")
			continue
		}

		if err := catalog.InsertPart(ctx, part); err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		imported++
	}

	log.FromCtx(ctx).Info().Int("imported", imported).Str("path", path).Msg("catalog import finished")
	return imported, nil
}

func parseRecord(record []string) (core.Part, bool) {
	if len(record) < 3 {
		return core.Part{}, false
	}

	designation := strings.TrimSpace(record[0])
	if designation == "" {
		return core.Part{}, false
	}

	stock, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil || stock < 0 {
		return core.Part{}, false
	}

	part := core.Part{
		Designation: designation,
		Reference:   strings.TrimSpace(record[1]),
		Stock:       stock,
	}

	if len(record) > 3 {
		if price, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64); err == nil {
			part.UnitPrice = &price
		}
	}
	return part, true
}

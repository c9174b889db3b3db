package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"williampedia/internal/observability/metrics"
)

// ImportSpacing separates the default creation times of consecutive imported
// articles so that file order becomes creation order.
const ImportSpacing = time.Millisecond

// Import outcomes, also used as the import metric status label.
const (
	ImportCreated = "created"
	ImportSkipped = "skipped"
	ImportInvalid = "invalid"
)

// ImportResult is the outcome of one input record.
type ImportResult struct {
	Index  int // position in the input, 0-based
	Slug   string
	Status string
	Err    error
}

// ImportReport summarizes an import run.
type ImportReport struct {
	Results []ImportResult
	Created int
	Skipped int
	Invalid int
}

// Import validates and stores inputs in order. Records without CreatedAt
// get now + i*ImportSpacing. Invalid records and taken slugs are reported
// and skipped; any other store error aborts the run. With dryRun nothing is
// written and every valid record is reported as created.
func (s *Service) Import(ctx context.Context, inputs []CreateInput, dryRun bool) (*ImportReport, error) {
	base := s.now()
	report := &ImportReport{Results: make([]ImportResult, 0, len(inputs))}

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := ImportResult{Index: i, Status: ImportCreated}
		art, err := s.prepare(in, base.Add(time.Duration(i)*ImportSpacing))
		switch {
		case err != nil:
			res.Status, res.Err = ImportInvalid, err
		case !dryRun:
			res.Slug = art.Slug
			if err := s.store(ctx, art); err != nil {
				if !errors.Is(err, ErrDuplicateSlug) {
					return report, fmt.Errorf("import record %d: %w", i, err)
				}
				res.Status, res.Err = ImportSkipped, err
			}
		default:
			res.Slug = art.Slug
		}

		switch res.Status {
		case ImportCreated:
			report.Created++
		case ImportSkipped:
			report.Skipped++
			slog.WarnContext(ctx, "import: slug already exists, skipped", slog.Int("index", i), slog.String("slug", res.Slug))
		case ImportInvalid:
			report.Invalid++
			slog.WarnContext(ctx, "import: invalid record, skipped", slog.Int("index", i), slog.Any("error", res.Err))
		}
		if !dryRun {
			metrics.RecordImport(res.Status)
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

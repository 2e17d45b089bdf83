package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
	"github.com/timohermans/rabo-overview/pkg/observability"
	"github.com/timohermans/rabo-overview/pkg/statement"
	"github.com/timohermans/rabo-overview/pkg/store"
)

// Import parses the statement exports at paths, in order, into repo and
// returns the combined report. Files are imported one after another: an
// account seen as receiver in a later file is marked as owned even if an
// earlier file created it as a counterparty.
//
// On error the report covers the files imported so far.
func (r *Runner) Import(ctx context.Context, repo store.Repository, paths ...string) (*statement.CreationReport, error) {
	for _, path := range paths {
		if err := apperrors.ValidateStatementPath(path); err != nil {
			return &statement.CreationReport{}, err
		}
	}

	total := &statement.CreationReport{}
	for _, path := range paths {
		report, err := r.importFile(ctx, repo, path)
		total.Merge(report)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (r *Runner) importFile(ctx context.Context, repo store.Repository, path string) (*statement.CreationReport, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "statement not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	report, err := r.ImportReader(ctx, repo, path, f)
	if err != nil {
		return report, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

// ImportReader imports one statement read from src. name is used for
// logging only.
func (r *Runner) ImportReader(ctx context.Context, repo store.Repository, name string, src io.Reader) (*statement.CreationReport, error) {
	hooks := observability.Pipeline()
	hooks.OnImportStart(ctx, name)
	start := time.Now()

	report, err := statement.NewParser(repo, r.Logger.With("file", name)).Parse(ctx, src)
	created, failed := 0, 0
	if report != nil {
		created, failed = report.AmountSuccess, report.AmountFailed
	}
	hooks.OnImportComplete(ctx, name, created, failed, time.Since(start), err)
	if err != nil {
		return report, err
	}
	r.Logger.Info("imported statement",
		"file", name,
		"success", report.AmountSuccess,
		"duplicate", report.AmountDuplicate,
		"failed", report.AmountFailed)
	return report, nil
}

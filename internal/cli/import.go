package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timohermans/rabo-overview/pkg/ledger"
	"github.com/timohermans/rabo-overview/pkg/pipeline"
	"github.com/timohermans/rabo-overview/pkg/statement"
	"github.com/timohermans/rabo-overview/pkg/store"
)

// maxListedFailures caps the failed rows printed after an import.
const maxListedFailures = 10

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <statement.csv>...",
		Short: "Import Rabobank statement exports into storage",
		Long: `Import Rabobank CSV statement exports into the configured storage.

Rows already imported are skipped, so overlapping exports can be imported
safely. Rows that cannot be parsed are reported and skipped. Files are
imported in the given order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args)
		},
	}
}

func (c *CLI) runImport(ctx context.Context, paths []string) error {
	repo, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer repo.Close(ctx)

	if _, ok := repo.(*store.MemoryStore); ok {
		printWarning("Storage backend is memory; imported transactions are not kept")
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	prog := newProgress(c.Logger)
	report, err := runner.Import(ctx, repo, paths...)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Imported %d statement(s)", len(paths)))

	printReport(report)
	printNextStep("Show the overview", appName+" summary --month YYYY-MM")
	return nil
}

// printReport prints the outcome of an import.
func printReport(report *statement.CreationReport) {
	printSuccess("%d new transactions", report.AmountSuccess)
	printKeyValue("Duplicates", fmt.Sprint(report.AmountDuplicate))
	printKeyValue("Failed", fmt.Sprint(report.AmountFailed))
	printKeyValue("New accounts", fmt.Sprintf("%d (%d owned)", len(report.Accounts), len(ledger.OwnedAccounts(report.Accounts))))

	if len(report.Failures) == 0 {
		return
	}
	printWarning("%d rows could not be imported", len(report.Failures))
	for i, f := range report.Failures {
		if i == maxListedFailures {
			printDetail("... and %d more", len(report.Failures)-maxListedFailures)
			break
		}
		printDetail("%v", f)
	}
}

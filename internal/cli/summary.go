package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timohermans/rabo-overview/pkg/ledger"
	"github.com/timohermans/rabo-overview/pkg/pipeline"
	"github.com/timohermans/rabo-overview/pkg/summary"
)

// summaryOpts holds the flags of the summary command.
type summaryOpts struct {
	month   string
	top     int
	asJSON  bool
	noCache bool
}

// summaryCommand creates the summary command.
func (c *CLI) summaryCommand() *cobra.Command {
	var opts summaryOpts

	cmd := &cobra.Command{
		Use:   "summary [statement.csv]...",
		Short: "Show totals and the largest expenses and incomes",
		Long: `Show the period covered, the owned accounts, money in and out and the
largest expenses and incomes.

With CSV files, only those files are summarized. Without, the transactions
in the configured storage are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("top") {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				opts.top = cfg.Report.Top
			}
			return c.runSummary(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.month, "month", "m", "", "only summarize this month (YYYY-MM)")
	cmd.Flags().IntVarP(&opts.top, "top", "n", 0, "number of expenses and incomes to list (default from config)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runSummary(ctx context.Context, paths []string, opts summaryOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	repo, _, err := c.openRepository(ctx, runner, paths)
	if err != nil {
		return err
	}
	defer repo.Close(ctx)

	s, err := runner.Summarize(ctx, repo, pipeline.Options{Month: opts.month})
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	if s.Empty() {
		printInfo("No transactions found")
		return nil
	}
	fmt.Print(renderSummary(s, opts.top))
	printMonthSteps(opts.month)
	return nil
}

// printMonthSteps suggests the adjacent months of a month filter.
func printMonthSteps(month string) {
	if month == "" {
		return
	}
	t, err := ledger.ParseMonth(month)
	if err != nil {
		return
	}
	fmt.Println()
	printNextStep("Previous month", appName+" summary -m "+ledger.PreviousMonth(t).Format(ledger.MonthLayout))
	printNextStep("Next month", appName+" summary -m "+ledger.NextMonth(t).Format(ledger.MonthLayout))
}

// renderSummary formats s for the terminal, listing top expenses and
// incomes.
func renderSummary(s *summary.Summary, top int) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Overview"))
	b.WriteString("\n")
	for _, kv := range [][2]string{
		{"Period", s.DateFirst.Format("2006-01-02") + " to " + s.DateLast.Format("2006-01-02")},
		{"Transactions", fmt.Sprint(len(s.Transactions()))},
		{"Accounts", fmt.Sprint(s.AmountOfReceivers)},
		{"Incomes", formatAmount(s.IncomesFromOutside)},
		{"Expenses", formatAmount(s.ExpensesToOutside)},
		{"Balance", formatAmount(s.TotalBalance)},
	} {
		b.WriteString(keyValue(kv[0], kv[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(section("Accounts", accountTable(s.Receivers)))
	b.WriteString("\n")
	b.WriteString(section("Top expenses", transactionTable(s.TopExpenses(top))))
	b.WriteString("\n")
	b.WriteString(section("Top incomes", transactionTable(s.TopIncomes(top))))

	if n := len(s.SuppressedLinks); n > 0 {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d flow links were dropped to break cycles", n)))
		b.WriteString("\n")
	}
	return b.String()
}

func accountTable(accounts []*ledger.Account) string {
	rows := make([][]string, len(accounts))
	for i, a := range accounts {
		rows[i] = []string{a.Name, a.AccountNumber}
	}
	return renderTable([]string{"Name", "Account"}, rows)
}

func transactionTable(txs []*ledger.Transaction) string {
	if len(txs) == 0 {
		return StyleDim.Render("  none")
	}
	rows := make([][]string, len(txs))
	for i, t := range txs {
		other := ""
		if t.OtherParty != nil {
			other = t.OtherParty.Name
		}
		rows[i] = []string{t.Date.Format("2006-01-02"), formatAmount(t.Amount), other, truncate(t.Memo, 40)}
	}
	return renderTable([]string{"Date", "Amount", "Counterparty", "Description"}, rows, 1)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

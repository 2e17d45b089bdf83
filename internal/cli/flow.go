package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/timohermans/rabo-overview/pkg/flow"
	"github.com/timohermans/rabo-overview/pkg/pipeline"
)

// flowOpts holds the flags of the flow command.
type flowOpts struct {
	formats string
	output  string
	noCache bool
	pipeline.Options
}

// flowCommand creates the flow command.
func (c *CLI) flowCommand() *cobra.Command {
	var opts flowOpts

	cmd := &cobra.Command{
		Use:   "flow [statement.csv]...",
		Short: "Build the money-flow graph",
		Long: `Build the money-flow graph: one node per party and one link per pair of
parties that exchanged money, carrying the net amount.

Output formats:
  json  nodes and links for Sankey charts (default)
  dot   Graphviz source
  svg   node-link diagram rendered with Graphviz

Links that only close a cycle through an owned account are dropped; pass
--acyclic to also break any cycle that remains. Use -o - to write a single
format to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(opts.formats, pipeline.DefaultFormats...)
			if err := validateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runFlow(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json (default), dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.Month, "month", "m", "", "only include this month (YYYY-MM)")
	cmd.Flags().BoolVar(&opts.Acyclic, "acyclic", false, "break every remaining cycle")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label links with their amount (dot, svg)")
	cmd.Flags().StringVar(&opts.Currency, "currency", "EUR", "currency shown in link labels")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runFlow(ctx context.Context, paths []string, opts flowOpts) error {
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

	spinner := newSpinnerWithContext(ctx, "Building flow graph...")
	spinner.Start()

	opts.Logger = c.Logger
	result, err := runner.Execute(ctx, repo, opts.Options)
	if err != nil {
		spinner.StopWithError("Flow graph failed")
		return err
	}
	spinner.Stop()

	base := "flow"
	if opts.Month != "" {
		base += "-" + opts.Month
	}
	err = writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		base:      base,
		output:    opts.output,
		nodes:     result.Stats.NodeCount,
		links:     result.Stats.LinkCount,
		cacheHit:  result.CacheInfo.RenderHit,
	})
	if err != nil {
		return err
	}
	if opts.output != stdoutPath {
		if msg := cycleNotice(result.Summary.FlowGraph, opts.Acyclic); msg != "" {
			printInfo("%s", msg)
		}
	}
	return nil
}

// cycleNotice explains how to remove cycles that survived suppression.
// It is empty when the graph is acyclic or --acyclic was given.
func cycleNotice(g flow.Graph, acyclic bool) string {
	if acyclic || !flow.HasCycle(g.Links) {
		return ""
	}
	return "The flow graph still has cycles between owned accounts; pass --acyclic to break them"
}

package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	flowio "github.com/timohermans/rabo-overview/pkg/io"
	"github.com/timohermans/rabo-overview/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	formats  string
	output   string
	detailed bool
	currency string
	noCache  bool
}

// renderCommand creates the render command for drawing an exported flow graph.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <flow.json>",
		Short: "Render an exported flow graph",
		Long: `Render a flow graph exported with 'flow -f json' as a Graphviz diagram.

Output files are named after the input unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats, pipeline.FormatSVG)
			if err := validateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", true, "label links with their amount")
	cmd.Flags().StringVar(&opts.currency, "currency", "EUR", "currency shown in link labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, formats []string, opts renderOpts) error {
	g, err := flowio.ImportJSON(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, g, pipeline.Options{
		Formats:  formats,
		Detailed: opts.detailed,
		Currency: opts.currency,
		Logger:   c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   formats,
		base:      strings.TrimSuffix(input, filepath.Ext(input)),
		output:    opts.output,
		nodes:     len(g.Nodes),
		links:     len(g.Links),
		cacheHit:  cacheHit,
	})
}

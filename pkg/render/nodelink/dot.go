package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/shopspring/decimal"

	"github.com/timohermans/rabo-overview/pkg/flow"
)

// Colors used for links and external nodes.
const (
	colorOutflow  = "#c0392b"
	colorInflow   = "#27ae60"
	colorExternal = "#fdecea"
)

// Pen widths of the thinnest and thickest link.
const (
	minPenWidth = 1.0
	maxPenWidth = 8.0
)

// Options configures flow diagram rendering.
type Options struct {
	// Detailed labels each link with its amount.
	Detailed bool
	// Currency is appended to link amounts, e.g. "EUR".
	Currency string
}

// ToDOT converts a flow graph to Graphviz DOT source. Money flows left to
// right. Links to external targets are drawn red and other links green;
// pen width grows with the link value.
func ToDOT(g flow.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	external := make(map[string]bool)
	for _, l := range g.Links {
		if l.IsTargetExternal {
			external[l.Target] = true
		}
	}

	for _, n := range g.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", n.Name)}
		if external[n.Name] {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorExternal))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	top := maxValue(g.Links)
	for _, l := range g.Links {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.Source, l.Target, strings.Join(linkAttrs(l, top, opts), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func linkAttrs(l flow.Link, top decimal.Decimal, opts Options) []string {
	color := colorInflow
	if l.IsTargetExternal {
		color = colorOutflow
	}
	attrs := []string{
		fmt.Sprintf("color=%q", color),
		fmt.Sprintf("penwidth=%.2f", penWidth(l.Value, top)),
	}
	if opts.Detailed {
		attrs = append(attrs, fmt.Sprintf("label=%q", FormatAmount(l.Value, opts.Currency)))
	}
	return attrs
}

// FormatAmount formats v with two decimals and an optional currency suffix.
func FormatAmount(v decimal.Decimal, currency string) string {
	s := v.StringFixed(2)
	if currency != "" {
		s += " " + currency
	}
	return s
}

func maxValue(links []flow.Link) decimal.Decimal {
	top := decimal.Zero
	for _, l := range links {
		if l.Value.GreaterThan(top) {
			top = l.Value
		}
	}
	return top
}

// penWidth scales v linearly between minPenWidth and maxPenWidth.
func penWidth(v, top decimal.Decimal) float64 {
	if !top.IsPositive() {
		return minPenWidth
	}
	ratio, _ := v.Div(top).Float64()
	return minPenWidth + ratio*(maxPenWidth-minPenWidth)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one whose viewBox starts at
// the origin and whose size matches it, so the diagram scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

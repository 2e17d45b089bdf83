// Package nodelink draws flow graphs as node-link diagrams with Graphviz.
//
// Convert a graph to DOT, then render it to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true, Currency: "EUR"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools. Diagrams run left to right (rankdir=LR) so money reads as flowing
// from incomes, through the owned accounts, to expenses.
//
// SVG rendering runs in-process through [github.com/goccy/go-graphviz].
package nodelink

// Package render holds the renderers for flow graphs.
//
// The [nodelink] subpackage draws a graph as a Graphviz node-link diagram
// and renders it to SVG. JSON output for Sankey charts lives in package io.
package render

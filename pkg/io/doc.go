// Package io reads and writes flow graphs as JSON.
//
// # JSON Format
//
// The format is the one Sankey chart libraries consume: a "nodes" array of
// named parties and a "links" array of amounts between them.
//
//	{
//	  "nodes": [
//	    {"name": "Betaalrekening"},
//	    {"name": "Hema"}
//	  ],
//	  "links": [
//	    {"source": "Hema", "target": "Betaalrekening", "value": "150", "is_target_external": false}
//	  ]
//	}
//
// Values are decimal strings so amounts survive the round trip exactly.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Both reject duplicate node names, links that refer to
// unknown nodes, and negative values.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. [MarshalGraph] returns the compact encoding used for cache keys.
package io

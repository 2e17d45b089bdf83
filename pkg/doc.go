// Package pkg provides the libraries behind rabo, the Rabobank statement
// overview.
//
// # Overview
//
// Rabo reads CSV statement exports, stores each transaction once and shows
// where money came from and where it went. The pkg directory is organized
// by concern:
//
//  1. [ledger] - Domain types: accounts, transactions, months
//  2. [statement] - CSV parsing, deduplication and account classification
//  3. [store] - Repositories (memory, MongoDB)
//  4. [flow] - Money-flow graph construction and cycle suppression
//  5. [summary] - Totals, top expenses and incomes
//  6. [pipeline] - Orchestration (import → summarize → render)
//  7. [render] - Graphviz output of flow graphs
//  8. [cache] - Flow and artifact caching (file, Redis)
//
// # Data Flow
//
//	Statement CSV
//	     ↓
//	statement.Parser → store.Repository
//	     ↓
//	summary.New → flow.Graph
//	     ↓
//	io.WriteJSON / render/nodelink (DOT, SVG)
//
// Supporting packages: [config] for the TOML configuration, [errors] for
// coded errors, [io] for flow graph JSON, [digraph] for cycle detection,
// [observability] for instrumentation hooks and [buildinfo] for version
// metadata.
package pkg

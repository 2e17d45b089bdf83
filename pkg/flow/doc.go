// Package flow derives a money-flow graph from bank transactions.
//
// # Overview
//
// The graph has one [Node] per party and one [Link] per pair of parties that
// exchanged money, carrying the net amount in the direction it actually
// moved. It is shaped for Sankey-style charts: nodes are addressed by name
// and links carry a source name, a target name and a non-negative value.
//
// [Build] runs the four stages in order:
//
//  1. [BuildNodes] collects every party, qualifying names that are shared by
//     several accounts with their account number.
//  2. [AggregateLinks] folds transactions into links, netting transfers in
//     both directions between the same two parties.
//  3. [SuppressCycles] removes links to external targets that close a cycle.
//  4. [Assemble] packs the result into a [Graph].
//
// # Internal transfers
//
// A transfer between two owned accounts appears twice in a statement that
// covers both: once as an expense on the paying account and once as an
// income on the receiving one. Only the income side is kept; see
// [IsInternalExpense].
//
// # Determinism
//
// Output depends only on the input order of transactions. Nodes are sorted
// by name; links keep the order in which their party pair first appeared.
package flow

// Package statement imports Rabobank CSV statement exports.
//
// # Records
//
// [Records] turns a CSV export into a sequence of [Record] values keyed by
// the header row. A UTF-8 byte order mark in front of the header is
// dropped. Malformed lines are reported as [*RowError] and reading goes on
// with the next line; read failures end the sequence.
//
// # Parsing
//
// [Parser] stores each record through a [store.Repository]:
//
//	p := statement.NewParser(repo, logger)
//	report, err := p.Parse(ctx, file)
//
// Every row ends up counted once in the [CreationReport]: as a success, as
// a duplicate (its code was stored before), or as a failure (a field is
// missing or cannot be parsed). Failed rows never stop the import; errors
// from the repository do.
//
// The transaction code is the statement IBAN followed by the row's
// sequence number, which is unique per account at the bank.
package statement

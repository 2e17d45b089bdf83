package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
)

// Record is one data row of a statement, keyed by column name.
type Record struct {
	Line   int
	Fields map[string]string
}

// Get returns the value of a column and whether the row has it.
func (r Record) Get(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// RowError describes a row that could not be read or parsed.
type RowError struct {
	Line int
	Err  error
}

// Error implements the error interface.
func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

// Unwrap returns the underlying error.
func (e *RowError) Unwrap() error { return e.Err }

// Records reads a comma-separated, double-quoted statement export. The first
// row names the columns. Rows may be shorter or longer than the header;
// missing columns are absent from Fields and extra values are ignored.
func Records(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder())))
		cr.FieldsPerRecord = -1

		header, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(Record{}, fmt.Errorf("read header: %w", err))
			return
		}
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}

		for {
			values, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var pe *csv.ParseError
				if !errors.As(err, &pe) {
					yield(Record{}, fmt.Errorf("read: %w", err))
					return
				}
				rowErr := apperrors.Wrap(apperrors.ErrCodeInvalidRow, pe.Err, "malformed row")
				if !yield(Record{}, &RowError{Line: pe.StartLine, Err: rowErr}) {
					return
				}
				continue
			}

			line, _ := cr.FieldPos(0)
			rec := Record{Line: line, Fields: make(map[string]string, len(header))}
			for i, v := range values {
				if i < len(header) {
					rec.Fields[header[i]] = v
				}
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

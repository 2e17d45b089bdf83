package statement

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
)

func collect(t *testing.T, input string) ([]Record, []error) {
	t.Helper()
	var recs []Record
	var errs []error
	for rec, err := range Records(strings.NewReader(input)) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, errs
}

func TestRecords(t *testing.T) {
	input := "\"IBAN/BBAN\",\"Bedrag\"\n" +
		"\"NL11RABO0104955555\",\"+2,50\"\n" +
		"\"NL11RABO0104955555\",\"-1,00\"\n"

	recs, errs := collect(t, input)

	if len(errs) != 0 {
		t.Fatalf("Records() errors = %v, want none", errs)
	}
	if len(recs) != 2 {
		t.Fatalf("Records() returned %d records, want 2", len(recs))
	}
	if got, _ := recs[0].Get("Bedrag"); got != "+2,50" {
		t.Errorf("Bedrag = %q, want %q", got, "+2,50")
	}
	if recs[0].Line != 2 || recs[1].Line != 3 {
		t.Errorf("lines = %d, %d, want 2, 3", recs[0].Line, recs[1].Line)
	}
}

func TestRecords_ByteOrderMark(t *testing.T) {
	input := "\ufeff\"IBAN/BBAN\",\"Volgnr\"\n\"NL11RABO0104955555\",\"1\"\n"

	recs, errs := collect(t, input)

	if len(errs) != 0 || len(recs) != 1 {
		t.Fatalf("Records() = %d records, %v errors, want 1 record", len(recs), errs)
	}
	if _, ok := recs[0].Get("IBAN/BBAN"); !ok {
		t.Errorf("first column should be named IBAN/BBAN, got %v", recs[0].Fields)
	}
}

func TestRecords_UnevenRows(t *testing.T) {
	input := "a,b,c\n1,2\n1,2,3,4\n"

	recs, errs := collect(t, input)

	if len(errs) != 0 || len(recs) != 2 {
		t.Fatalf("Records() = %d records, %v errors, want 2 records", len(recs), errs)
	}
	if _, ok := recs[0].Get("c"); ok {
		t.Error("short row should not have column c")
	}
	if len(recs[1].Fields) != 3 {
		t.Errorf("long row has %d fields, want 3", len(recs[1].Fields))
	}
}

func TestRecords_MalformedLineContinues(t *testing.T) {
	input := "a,b\n1,2\n\"bad\"quote,3\n4,5\n"

	recs, errs := collect(t, input)

	if len(errs) != 1 {
		t.Fatalf("Records() errors = %v, want 1", errs)
	}
	var rowErr *RowError
	if !errors.As(errs[0], &rowErr) {
		t.Fatalf("error %v is not a *RowError", errs[0])
	}
	if rowErr.Line != 3 {
		t.Errorf("RowError.Line = %d, want 3", rowErr.Line)
	}
	if !apperrors.Is(errs[0], apperrors.ErrCodeInvalidRow) {
		t.Errorf("malformed row error %v should carry INVALID_ROW", errs[0])
	}
	if len(recs) != 2 {
		t.Errorf("Records() returned %d records, want 2", len(recs))
	}
}

func TestRecords_Empty(t *testing.T) {
	recs, errs := collect(t, "")

	if len(recs) != 0 || len(errs) != 0 {
		t.Errorf("Records(\"\") = %d records, %d errors, want none", len(recs), len(errs))
	}
}

func TestRecords_StopEarly(t *testing.T) {
	input := "a\n1\n2\n3\n"
	n := 0
	for range Records(strings.NewReader(input)) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d times, want 2", n)
	}
}

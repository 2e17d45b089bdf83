package errors

import (
	"strings"
	"testing"
)

func TestValidateStatementPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"transactions.csv", false},
		{"/home/me/Downloads/CSV_A_20190901.CSV", false},
		{"", true},
		{"statement.pdf", true},
		{"bad\x00.csv", true},
		{strings.Repeat("a", 5000) + ".csv", true},
	}
	for _, tt := range tests {
		err := ValidateStatementPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStatementPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidPath) {
			t.Errorf("ValidateStatementPath(%q) code = %v, want %v", tt.path, GetCode(err), ErrCodeInvalidPath)
		}
	}
}

func TestValidateMonth(t *testing.T) {
	tests := []struct {
		month   string
		wantErr bool
	}{
		{"", false},
		{"2019-09", false},
		{"2019-12", false},
		{"2019-13", true},
		{"2019-9", true},
		{"september", true},
	}
	for _, tt := range tests {
		if err := ValidateMonth(tt.month); (err != nil) != tt.wantErr {
			t.Errorf("ValidateMonth(%q) error = %v, wantErr %v", tt.month, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	supported := map[string]bool{"json": true, "svg": true}

	if err := ValidateFormats([]string{"json", "svg"}, supported); err != nil {
		t.Errorf("ValidateFormats() error = %v, want nil", err)
	}
	if err := ValidateFormats([]string{"png"}, supported); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats(png) = %v, want %v", err, ErrCodeInvalidFormat)
	}
	if err := ValidateFormats(nil, supported); err == nil {
		t.Error("ValidateFormats(nil) should fail")
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput, ErrCodeInvalidRow, ErrCodeMissingField, ErrCodeInvalidAmount,
		ErrCodeInvalidDate, ErrCodeInvalidMonth, ErrCodeInvalidFormat, ErrCodeInvalidPath,
		ErrCodeInvalidConfig, ErrCodeFileNotFound, ErrCodeStorage,
		ErrCodeCache, ErrCodeTimeout, ErrCodeInternal, ErrCodeUnsupported,
	}
	seen := make(map[Code]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate error code %s", c)
		}
		seen[c] = true
	}
}

// Package tabular turns uploaded attendance files into normalized row
// mappings. Upload sources are uncontrolled spreadsheet exports, so the
// package deals with byte-order marks, UTF-16 encodings, locale-dependent
// delimiters and inconsistent header capitalization before any business
// logic sees a row.
package tabular

import (
	"fmt"
	"regexp"
	"strings"
)

// FormatError reports a file that could not be parsed at all. It aborts an
// import before any writes; row-level problems never use it.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "unreadable file: " + e.Reason
}

// Row maps a normalized header key to the row's trimmed cell value. Cells
// missing from a short row have no key at all; present-but-empty cells map
// to "".
type Row map[string]string

// Table is the parsed form of an uploaded file.
type Table struct {
	Headers []string
	Rows    []Row
}

// Ingest parses raw upload bytes according to the declared extension.
// Supported extensions are csv, xls and xlsx; the handler validates the
// extension before calling, so anything else is a FormatError here too.
func Ingest(data []byte, ext string) (*Table, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		return ingestDelimited(data)
	case "xls":
		return ingestXLS(data)
	case "xlsx":
		return ingestXLSX(data)
	default:
		return nil, &FormatError{Reason: fmt.Sprintf("unsupported extension %q", ext)}
	}
}

var headerKeyPattern = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeHeader produces a stable lookup key from a raw header cell:
// trimmed, lowercased, with every run of non-alphanumerics collapsed to a
// single underscore. "Emp #" and "emp_" normalize identically.
func NormalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return headerKeyPattern.ReplaceAllString(s, "_")
}

// Value returns the first non-empty cell among the alias keys, in alias
// order. The second result reports whether any alias matched.
func (r Row) Value(aliases ...string) (string, bool) {
	for _, key := range aliases {
		if v, ok := r[key]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

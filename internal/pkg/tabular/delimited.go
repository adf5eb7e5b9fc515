package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// candidateDelimiters is scored in declaration order; on a tied average
// field count the earlier candidate wins, so comma beats semicolon.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

const sampleLineCount = 5

func ingestDelimited(data []byte) (*Table, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, &FormatError{Reason: err.Error()}
	}

	delimiter, err := detectDelimiter(text)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = false

	// The header is the first record with any non-blank cell; fully blank
	// leading lines are skipped.
	var headerRow []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, &FormatError{Reason: "header row not found"}
		}
		if err != nil {
			return nil, &FormatError{Reason: "malformed delimited data: " + err.Error()}
		}
		if !isBlankRow(record) {
			headerRow = record
			break
		}
	}

	headers := make([]string, len(headerRow))
	for i, cell := range headerRow {
		headers[i] = NormalizeHeader(cell)
	}

	table := &Table{Headers: headers}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Reason: "malformed delimited data: " + err.Error()}
		}
		if isBlankRow(record) {
			continue
		}
		row := make(Row, len(headers))
		for i, key := range headers {
			if i < len(record) {
				row[key] = strings.TrimSpace(record[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// decodeText strips a UTF-8 BOM or transcodes UTF-16 (either byte order)
// into UTF-8 before any parsing.
func decodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:]), nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return transcodeUTF16(data, unicode.LittleEndian)
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return transcodeUTF16(data, unicode.BigEndian)
	default:
		return string(data), nil
	}
}

func transcodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.ExpectBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// detectDelimiter samples up to five non-blank leading lines and, for each
// candidate delimiter, computes the average field count those lines would
// split into. The highest average wins; the candidate order breaks ties.
// Exports with locale-dependent separators make anything cleverer fragile.
func detectDelimiter(text string) (rune, error) {
	var samples []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		samples = append(samples, line)
		if len(samples) == sampleLineCount {
			break
		}
	}
	if len(samples) == 0 {
		return 0, &FormatError{Reason: "empty file"}
	}

	best := candidateDelimiters[0]
	bestScore := -1.0
	for _, candidate := range candidateDelimiters {
		total := 0
		for _, line := range samples {
			fields := splitSample(line, candidate)
			if fields < 1 {
				fields = 1
			}
			total += fields
		}
		score := float64(total) / float64(len(samples))
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	return best, nil
}

// splitSample counts the fields a single line yields under a candidate
// delimiter, quote-aware like the real parse.
func splitSample(line string, delimiter rune) int {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	record, err := reader.Read()
	if err != nil {
		return strings.Count(line, string(delimiter)) + 1
	}
	return len(record)
}

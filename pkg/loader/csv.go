package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/graphloom/graphloom/pkg/common"
)

// ParseCSV turns tabular CSV data into narrative text. The first row is
// treated as the header; every following row becomes one "header: value"
// sentence so the extraction model sees prose instead of a table.
func ParseCSV(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var header []string
	var output strings.Builder

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		if isEmptyRecord(record) {
			continue
		}

		if header == nil {
			header = record
			continue
		}

		sentence := recordSentence(header, record)
		if sentence == "" {
			continue
		}
		if output.Len() > 0 {
			output.WriteString("\n\n")
		}
		output.WriteString(sentence)
	}

	if output.Len() == 0 {
		return "", fmt.Errorf("%w: CSV file contains no data rows", common.ErrValidation)
	}
	return output.String(), nil
}

// recordSentence renders one data row as "col: val, col: val." using the
// header for column names. Blank cells are skipped; surplus cells get a
// positional name.
func recordSentence(header, record []string) string {
	parts := make([]string, 0, len(record))
	for i, field := range record {
		value := strings.TrimSpace(field)
		if value == "" {
			continue
		}

		name := fmt.Sprintf("column %d", i+1)
		if i < len(header) {
			if h := strings.TrimSpace(header[i]); h != "" {
				name = h
			}
		}
		parts = append(parts, name+": "+value)
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ") + "."
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

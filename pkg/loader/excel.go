package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/graphloom/graphloom/pkg/common"
	"github.com/xuri/excelize/v2"
)

// ParseXLSX renders every sheet in the same narrative form as ParseCSV.
// Multi-sheet workbooks get a sheet name header above each block.
func ParseXLSX(data []byte) (string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	var output strings.Builder

	for _, sheet := range sheets {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			continue
		}

		text := rowsNarrative(rows)
		if text == "" {
			continue
		}

		if output.Len() > 0 {
			output.WriteString("\n\n")
		}
		if len(sheets) > 1 {
			output.WriteString("--- " + sheet + " ---\n\n")
		}
		output.WriteString(text)
	}

	if output.Len() == 0 {
		return "", fmt.Errorf("%w: workbook contains no data", common.ErrValidation)
	}
	return output.String(), nil
}

// rowsNarrative applies the CSV sentence rendering to in-memory rows: the
// first non-empty row is the header, the rest become sentences.
func rowsNarrative(rows [][]string) string {
	var header []string
	var output strings.Builder

	for _, row := range rows {
		if isEmptyRecord(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}

		sentence := recordSentence(header, row)
		if sentence == "" {
			continue
		}
		if output.Len() > 0 {
			output.WriteString("\n\n")
		}
		output.WriteString(sentence)
	}

	return output.String()
}

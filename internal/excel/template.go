// Package excel is the spreadsheet boundary: it renders import templates and
// reads uploaded workbooks into plain string grids.
package excel

import (
	"fmt"
	"strings"

	"github.com/maithilikosh/api/internal/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Words"

const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ContentType is the xlsx MIME type for download responses.
func ContentType() string {
	return contentType
}

// DefaultHeaders is the fixed 12-column layout used when a dictionary has no
// custom column definitions.
var DefaultHeaders = []string{
	"Word (Maithili)",
	"Word (Romanized)",
	"Pronunciation",
	"Word Type",
	"Meaning (English)",
	"Meaning (Hindi)",
	"Example (English)",
	"Example (Hindi)",
	"Example (Maithili)",
	"Synonyms",
	"Antonyms",
	"Related Words",
}

var defaultExampleRows = [][]string{
	{
		"नमस्कार",
		"namaskar",
		"/nəməskɑːr/",
		"noun",
		"Greeting, Hello",
		"नमस्कार",
		"Namaskar is a common greeting in Maithili.",
		"नमस्कार मैथिली में एक सामान्य अभिवादन है।",
		"नमस्कार मैथिली मे एक सामान्य अभिवादन अछि।",
		"अभिवादन, प्रणाम",
		"",
		"स्वागत, बधाई",
	},
	{
		"धन्यवाद",
		"dhanyavad",
		"/dʰənjəvɑːd/",
		"noun",
		"Thank you, Thanks",
		"धन्यवाद",
		"Dhanyavad for your help.",
		"आपकी मदद के लिए धन्यवाद।",
		"अहाँक मदद लेल धन्यवाद।",
		"आभार, कृतज्ञता",
		"",
		"सहायता, उपकार",
	},
}

var defaultColWidths = []float64{20, 18, 18, 12, 25, 20, 40, 40, 40, 20, 20, 20}

const blankRows = 3

// BuildTemplate renders a blank import workbook. With active column
// definitions the header row follows their order and one example row comes
// from each column's exampleValue; otherwise the fixed default layout with
// two illustrative rows is used. Both end with a few blank rows to fill in.
func BuildTemplate(columns []model.DictionaryColumnDefinition) ([]byte, error) {
	if len(columns) > 0 {
		return buildCustomTemplate(columns)
	}
	return buildDefaultTemplate()
}

func buildCustomTemplate(columns []model.DictionaryColumnDefinition) ([]byte, error) {
	headers := make([]string, len(columns))
	example := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.ColumnName
		if col.ExampleValue != nil {
			example[i] = *col.ExampleValue
		}
	}

	rows := [][]string{headers, example}
	for i := 0; i < blankRows; i++ {
		rows = append(rows, make([]string, len(columns)))
	}

	return writeSheet(rows, uniformWidths(len(columns), 20))
}

func buildDefaultTemplate() ([]byte, error) {
	rows := [][]string{DefaultHeaders}
	rows = append(rows, defaultExampleRows...)
	for i := 0; i < blankRows; i++ {
		rows = append(rows, make([]string, len(DefaultHeaders)))
	}

	return writeSheet(rows, defaultColWidths)
}

func writeSheet(rows [][]string, widths []float64) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return nil, err
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func uniformWidths(n int, w float64) []float64 {
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = w
	}
	return widths
}

// TemplateFilename builds the download filename for a dictionary's template.
func TemplateFilename(dictionaryName string) string {
	if dictionaryName == "" {
		return "maithili-dictionary-template.xlsx"
	}
	slug := strings.ToLower(strings.Join(strings.Fields(dictionaryName), "-"))
	return fmt.Sprintf("maithili-dictionary-%s-template.xlsx", slug)
}

package excel

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
)

var ErrNoSheets = errors.New("workbook has no sheets")

// ReadGrid reads the first sheet of an uploaded workbook as a grid of string
// cells. Trailing empty cells within a row are already trimmed by the codec;
// callers decide what an empty row means.
func ReadGrid(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	return f.GetRows(sheets[0])
}

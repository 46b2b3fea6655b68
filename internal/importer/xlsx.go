package importer

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadGrid extracts the first sheet of an uploaded xlsx workbook as the raw
// annual plan grid fed into Validate and Import.
func ReadGrid(r io.Reader) ([][]string, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("importer: workbook contains no sheets")
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("importer: first sheet is empty")
	}

	return rows, nil
}

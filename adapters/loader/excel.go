package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readExcel reads the given sheet of an xlsx workbook. The "sheet" option
// selects the sheet, defaulting to the workbook's first one.
func readExcel(path string, opts Options) (*rawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := optString(opts, "sheet", "sheet_name")
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s of %s has no header row", sheet, path)
	}
	return &rawTable{headers: rows[0], rows: rows[1:]}, nil
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// writeXLSX streams a single-sheet workbook to the response. rows does not
// include the header row. Uses a StreamWriter so large exports stay cheap.
func writeXLSX(c *gin.Context, filename, sheetName string, headers []interface{}, rows [][]interface{}) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to create Excel file")
		return
	}

	if err := sw.SetRow("A1", headers); err != nil {
		Error(c, http.StatusInternalServerError, "Failed to write Excel file")
		return
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			Error(c, http.StatusInternalServerError, "Failed to write Excel file")
			return
		}
	}

	if err := sw.Flush(); err != nil {
		Error(c, http.StatusInternalServerError, "Failed to write Excel file")
		return
	}

	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; nothing left to report to the client.
		return
	}
}

// sanitizeForExcel guards exported user input against formula injection in
// Excel/LibreOffice.
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Characters that start a formula: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

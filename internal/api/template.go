package api

import (
	"fmt"
	"net/http"

	"school-import-service/internal/schema"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// Template streams a downloadable xlsx for the requested category: a Data
// sheet with the expected headers and one example row.
func (h *Handler) Template(c *gin.Context) {
	category := c.Param("category")
	cs, err := h.registry.Lookup(category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := buildTemplate(cs)
	if err != nil {
		h.log.Error().Err(err).Str("category", category).Msg("Failed to build template workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.log.Error().Err(err).Str("category", category).Msg("Failed to serialize template workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	fileName := fmt.Sprintf("%s_template.xlsx", category)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

func buildTemplate(cs *schema.CategorySchema) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Data"
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}

	headers := []interface{}{schema.RowIndexColumn}
	example := []interface{}{1}
	for _, col := range cs.Columns {
		headers = append(headers, col.Header)
		example = append(example, col.Example)
	}

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

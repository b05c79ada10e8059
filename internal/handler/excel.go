package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maithilikosh/api/internal/catalog"
	"github.com/maithilikosh/api/internal/columns"
	"github.com/maithilikosh/api/internal/excel"
	"github.com/maithilikosh/api/internal/importer"
	"github.com/maithilikosh/api/internal/middleware"
	"github.com/maithilikosh/api/internal/model"
)

// 10 MB is plenty for a word list upload.
const maxUploadBytes = 10 << 20

type ExcelHandler struct {
	db       *gorm.DB
	columns  *columns.Service
	catalog  *catalog.Service
	importer *importer.Processor
}

func NewExcelHandler(db *gorm.DB, columnsSvc *columns.Service, catalogSvc *catalog.Service, proc *importer.Processor) *ExcelHandler {
	return &ExcelHandler{db: db, columns: columnsSvc, catalog: catalogSvc, importer: proc}
}

// Template serves the dictionary's xlsx upload template: its custom column
// layout when one is defined, otherwise the standard one.
func (h *ExcelHandler) Template(c *gin.Context) {
	dictionaryID := c.Param("id")

	var dict model.Dictionary
	if err := h.db.First(&dict, "id = ?", dictionaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dictionary not found"})
			return
		}
		respondError(c, err)
		return
	}

	cols, err := h.columns.List(c.Request.Context(), dictionaryID, true)
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := excel.BuildTemplate(cols)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := excel.TemplateFilename(dict.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, excel.ContentType(), data)
}

// Import ingests an uploaded xlsx file into the dictionary. Each row is
// processed independently; the response reports created words and per-row
// errors.
func (h *ExcelHandler) Import(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	dictionaryID := c.Param("id")

	var dictCount int64
	h.db.Model(&model.Dictionary{}).Where("id = ?", dictionaryID).Count(&dictCount)
	if dictCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "dictionary not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	grid, err := excel.ReadGrid(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read spreadsheet: " + err.Error()})
		return
	}

	cols, err := h.columns.List(c.Request.Context(), dictionaryID, true)
	if err != nil {
		respondError(c, err)
		return
	}

	defs, err := h.catalogByKey(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.importer.Process(c.Request.Context(), dictionaryID, grid, cols, defs, identity.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ExcelHandler) catalogByKey(c *gin.Context) (map[string]model.ParameterDefinition, error) {
	defs, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]model.ParameterDefinition, len(defs))
	for _, def := range defs {
		byKey[def.ParameterKey] = def
	}
	return byKey, nil
}

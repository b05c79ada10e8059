package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maithilikosh/api/internal/columns"
	"github.com/maithilikosh/api/internal/model"
)

type ColumnHandler struct {
	columns *columns.Service
}

func NewColumnHandler(svc *columns.Service) *ColumnHandler {
	return &ColumnHandler{columns: svc}
}

// List returns a dictionary's column layout ordered by position. Pass
// ?includeInactive=true to include retired columns.
func (h *ColumnHandler) List(c *gin.Context) {
	activeOnly := c.Query("includeInactive") != "true"
	cols, err := h.columns.List(c.Request.Context(), c.Param("id"), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": cols})
}

type columnRequest struct {
	ColumnName         string  `json:"columnName"`
	ColumnNameMaithili *string `json:"columnNameMaithili"`
	FieldMapping       string  `json:"fieldMapping"`
	ColumnOrder        int     `json:"columnOrder"`
	IsRequired         bool    `json:"isRequired"`
	DataType           string  `json:"dataType"`
	DefaultValue       *string `json:"defaultValue"`
	ValidationRule     *string `json:"validationRule"`
	HelpText           *string `json:"helpText"`
	ExampleValue       *string `json:"exampleValue"`
	IsActive           *bool   `json:"isActive"`
}

func (h *ColumnHandler) Create(c *gin.Context) {
	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	col := model.DictionaryColumnDefinition{
		DictionaryID:       c.Param("dictionaryId"),
		ColumnName:         req.ColumnName,
		ColumnNameMaithili: req.ColumnNameMaithili,
		FieldMapping:       req.FieldMapping,
		ColumnOrder:        req.ColumnOrder,
		IsRequired:         req.IsRequired,
		DataType:           req.DataType,
		DefaultValue:       req.DefaultValue,
		ValidationRule:     req.ValidationRule,
		HelpText:           req.HelpText,
		ExampleValue:       req.ExampleValue,
	}

	if err := h.columns.Create(c.Request.Context(), &col); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"column": col})
}

func (h *ColumnHandler) Update(c *gin.Context) {
	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	col, err := h.columns.Update(c.Request.Context(), c.Param("id"), columns.UpdateInput{
		ColumnName:         req.ColumnName,
		ColumnNameMaithili: req.ColumnNameMaithili,
		FieldMapping:       req.FieldMapping,
		ColumnOrder:        req.ColumnOrder,
		IsRequired:         req.IsRequired,
		DataType:           req.DataType,
		DefaultValue:       req.DefaultValue,
		ValidationRule:     req.ValidationRule,
		HelpText:           req.HelpText,
		ExampleValue:       req.ExampleValue,
		IsActive:           isActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"column": col})
}

func (h *ColumnHandler) Delete(c *gin.Context) {
	if err := h.columns.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "column deleted"})
}

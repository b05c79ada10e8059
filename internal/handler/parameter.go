package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/maithilikosh/api/internal/catalog"
	"github.com/maithilikosh/api/internal/model"
)

type ParameterHandler struct {
	catalog *catalog.Service
}

func NewParameterHandler(svc *catalog.Service) *ParameterHandler {
	return &ParameterHandler{catalog: svc}
}

// ListActive returns the active catalog, the shape public entry forms render.
func (h *ParameterHandler) ListActive(c *gin.Context) {
	defs, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parameters": defs})
}

// ListAll returns every definition, inactive ones included.
func (h *ParameterHandler) ListAll(c *gin.Context) {
	defs, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parameters": defs})
}

func (h *ParameterHandler) Get(c *gin.Context) {
	def, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parameter": def})
}

type parameterRequest struct {
	ParameterKey          string   `json:"parameterKey"`
	ParameterName         string   `json:"parameterName"`
	ParameterNameMaithili *string  `json:"parameterNameMaithili"`
	ParameterType         string   `json:"parameterType"`
	IsMultilingual        bool     `json:"isMultilingual"`
	SupportedLanguages    []string `json:"supportedLanguages"`
	IsRequired            bool     `json:"isRequired"`
	OrderIndex            int      `json:"orderIndex"`
	IsActive              *bool    `json:"isActive"`
	CanEdit               string   `json:"canEdit"`
}

func (h *ParameterHandler) Create(c *gin.Context) {
	var req parameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	def := model.ParameterDefinition{
		ParameterKey:          req.ParameterKey,
		ParameterName:         req.ParameterName,
		ParameterNameMaithili: req.ParameterNameMaithili,
		ParameterType:         req.ParameterType,
		IsMultilingual:        req.IsMultilingual,
		SupportedLanguages:    pq.StringArray(req.SupportedLanguages),
		IsRequired:            req.IsRequired,
		OrderIndex:            req.OrderIndex,
		IsActive:              true,
		CanEdit:               req.CanEdit,
	}
	if req.IsActive != nil {
		def.IsActive = *req.IsActive
	}

	if err := h.catalog.Create(c.Request.Context(), &def); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"parameter": def})
}

func (h *ParameterHandler) Update(c *gin.Context) {
	var req parameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	def, err := h.catalog.Update(c.Request.Context(), c.Param("id"), catalog.UpdateInput{
		ParameterName:         req.ParameterName,
		ParameterNameMaithili: req.ParameterNameMaithili,
		ParameterType:         req.ParameterType,
		IsMultilingual:        req.IsMultilingual,
		SupportedLanguages:    req.SupportedLanguages,
		IsRequired:            req.IsRequired,
		OrderIndex:            req.OrderIndex,
		IsActive:              isActive,
		CanEdit:               req.CanEdit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parameter": def})
}

func (h *ParameterHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "parameter deleted"})
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/maithilikosh/api/internal/middleware"
	"github.com/maithilikosh/api/internal/model"
	"github.com/maithilikosh/api/internal/suggestion"
)

type SuggestionHandler struct {
	suggestions *suggestion.Service
}

func NewSuggestionHandler(svc *suggestion.Service) *SuggestionHandler {
	return &SuggestionHandler{suggestions: svc}
}

type suggestionRequest struct {
	WordID               *string           `json:"wordId"`
	DictionaryID         string            `json:"dictionaryId"`
	SuggestionType       string            `json:"suggestionType"`
	Email                string            `json:"email"`
	Phone                string            `json:"phone"`
	Name                 *string           `json:"name"`
	SuggestionData       json.RawMessage   `json:"suggestionData"`
	ParameterSuggestions map[string]string `json:"parameterSuggestions"`
}

// Create accepts a public suggestion; no authentication required.
func (h *SuggestionHandler) Create(c *gin.Context) {
	var req suggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sug := model.EditSuggestion{
		WordID:         req.WordID,
		DictionaryID:   req.DictionaryID,
		SuggestionType: req.SuggestionType,
		Email:          req.Email,
		Phone:          req.Phone,
		Name:           req.Name,
		SuggestionData: datatypes.JSON(req.SuggestionData),
	}
	if len(req.ParameterSuggestions) > 0 {
		data, err := json.Marshal(req.ParameterSuggestions)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parameterSuggestions"})
			return
		}
		sug.ParameterSuggestions = datatypes.JSON(data)
	}

	if err := h.suggestions.Create(c.Request.Context(), &sug); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"suggestion": sug})
}

// List returns suggestions for moderators, optionally filtered by ?status=.
func (h *SuggestionHandler) List(c *gin.Context) {
	sugs, err := h.suggestions.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": sugs})
}

func (h *SuggestionHandler) Get(c *gin.Context) {
	sug, err := h.suggestions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": sug})
}

type reviewRequest struct {
	Action string `json:"action" binding:"required"`
	Notes  string `json:"notes"`
}

// Review applies a moderation decision: approve, reject or under_review.
func (h *SuggestionHandler) Review(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	switch req.Action {
	case "approve":
		sug, err := h.suggestions.Approve(ctx, id, identity.ID, req.Notes)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"suggestion": sug})

	case "reject":
		sug, err := h.suggestions.Reject(ctx, id, identity.ID, req.Notes)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"suggestion": sug})

	case "under_review":
		sug, err := h.suggestions.MarkUnderReview(ctx, id, identity.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"suggestion": sug})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + req.Action})
	}
}

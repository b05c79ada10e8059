package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/maithilikosh/api/internal/middleware"
	"github.com/maithilikosh/api/internal/model"
)

type DictionaryHandler struct {
	db *gorm.DB
}

func NewDictionaryHandler(db *gorm.DB) *DictionaryHandler {
	return &DictionaryHandler{db: db}
}

// List returns dictionaries with per-dictionary word counts, main dictionary
// first. Admins see inactive dictionaries too; everyone else only active ones.
func (h *DictionaryHandler) List(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	q := h.db.Order("is_main DESC, created_at ASC")
	if identity == nil || !model.IsAdminRole(identity.Role) {
		q = q.Where("is_active = ?", true)
	}

	var dictionaries []model.Dictionary
	if err := q.Find(&dictionaries).Error; err != nil {
		respondError(c, err)
		return
	}

	var counts []dictionaryCount
	if err := h.db.Model(&model.Word{}).
		Select("dictionary_id, COUNT(*) AS count").
		Group("dictionary_id").
		Scan(&counts).Error; err != nil {
		respondError(c, err)
		return
	}
	countByID := indexWordCounts(counts)

	type withCount struct {
		model.Dictionary
		WordCount int64 `json:"wordCount"`
	}
	out := make([]withCount, 0, len(dictionaries))
	for _, d := range dictionaries {
		out = append(out, withCount{Dictionary: d, WordCount: countByID[d.ID]})
	}

	c.JSON(http.StatusOK, gin.H{"dictionaries": out})
}

// dictionaryCount is one row of the grouped word-count query. All counts come
// back in a single query instead of one count per dictionary.
type dictionaryCount struct {
	DictionaryID string
	Count        int64
}

func indexWordCounts(counts []dictionaryCount) map[string]int64 {
	byID := make(map[string]int64, len(counts))
	for _, row := range counts {
		byID[row.DictionaryID] = row.Count
	}
	return byID
}

func (h *DictionaryHandler) Get(c *gin.Context) {
	var dict model.Dictionary
	if err := h.db.First(&dict, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dictionary not found"})
			return
		}
		respondError(c, err)
		return
	}

	var wordCount int64
	h.db.Model(&model.Word{}).Where("dictionary_id = ?", dict.ID).Count(&wordCount)

	c.JSON(http.StatusOK, gin.H{"dictionary": dict, "wordCount": wordCount})
}

type dictionaryRequest struct {
	Name            string   `json:"name" binding:"required"`
	NameMaithili    *string  `json:"nameMaithili"`
	Description     string   `json:"description"`
	SourceLanguage  string   `json:"sourceLanguage"`
	TargetLanguages []string `json:"targetLanguages"`
	IsMain          bool     `json:"isMain"`
	IsActive        *bool    `json:"isActive"`
}

func (h *DictionaryHandler) Create(c *gin.Context) {
	var req dictionaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	dict := model.Dictionary{
		Name:            req.Name,
		NameMaithili:    req.NameMaithili,
		Description:     req.Description,
		SourceLanguage:  req.SourceLanguage,
		TargetLanguages: pq.StringArray(req.TargetLanguages),
		IsMain:          req.IsMain,
		IsActive:        true,
	}
	if dict.SourceLanguage == "" {
		dict.SourceLanguage = "maithili"
	}
	if req.IsActive != nil {
		dict.IsActive = *req.IsActive
	}

	if err := h.db.Create(&dict).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"dictionary": dict})
}

func (h *DictionaryHandler) Update(c *gin.Context) {
	var dict model.Dictionary
	if err := h.db.First(&dict, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dictionary not found"})
			return
		}
		respondError(c, err)
		return
	}

	var req dictionaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	dict.Name = req.Name
	dict.NameMaithili = req.NameMaithili
	dict.Description = req.Description
	if req.SourceLanguage != "" {
		dict.SourceLanguage = req.SourceLanguage
	}
	dict.TargetLanguages = pq.StringArray(req.TargetLanguages)
	dict.IsMain = req.IsMain
	if req.IsActive != nil {
		dict.IsActive = *req.IsActive
	}

	if err := h.db.Save(&dict).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dictionary": dict})
}

// Delete deactivates a dictionary. The main dictionary cannot be removed and
// entries are kept; the dictionary just stops being served.
func (h *DictionaryHandler) Delete(c *gin.Context) {
	var dict model.Dictionary
	if err := h.db.First(&dict, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dictionary not found"})
			return
		}
		respondError(c, err)
		return
	}

	if dict.IsMain {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete main dictionary"})
		return
	}

	if err := h.db.Model(&dict).Update("is_active", false).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "dictionary deactivated"})
}

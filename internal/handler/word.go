package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maithilikosh/api/internal/cache"
	"github.com/maithilikosh/api/internal/catalog"
	"github.com/maithilikosh/api/internal/middleware"
	"github.com/maithilikosh/api/internal/model"
)

type WordHandler struct {
	db      *gorm.DB
	cache   *cache.RedisCache
	catalog *catalog.Service
}

func NewWordHandler(db *gorm.DB, redisCache *cache.RedisCache, catalogSvc *catalog.Service) *WordHandler {
	return &WordHandler{db: db, cache: redisCache, catalog: catalogSvc}
}

// List returns words with filters and pagination. Anonymous and PUBLIC
// callers only see approved entries; staff see everything the filters allow.
func (h *WordHandler) List(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := h.db.Model(&model.Word{})

	if dictID := c.Query("dictionaryId"); dictID != "" {
		q = q.Where("dictionary_id = ?", dictID)
	}
	if identity == nil || identity.Role == model.RolePublic {
		q = q.Where("status = ?", model.WordStatusApproved)
	} else if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("word_maithili ILIKE ? OR word_romanized ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var words []model.Word
	err := q.Preload("Parameters", "is_primary = ?", true).
		Preload("Parameters.ParameterDefinition").
		Order("word_maithili ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&words).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"words": words,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// Get returns one word with all parameters and sub-words. Public hits are
// served from cache when possible; the view counter is bumped off-request.
func (h *WordHandler) Get(c *gin.Context) {
	wordID := c.Param("id")
	identity := middleware.CurrentIdentity(c)

	cacheable := identity == nil && h.cache != nil
	if cacheable {
		if data, err := h.cache.Get(c.Request.Context(), cache.WordKey(wordID)); err == nil {
			h.bumpViewCount(wordID)
			c.Data(http.StatusOK, "application/json", data)
			return
		}
	}

	var word model.Word
	err := h.db.
		Preload("Dictionary").
		Preload("Parameters", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Parameters.ParameterDefinition").
		Preload("SubWords", func(db *gorm.DB) *gorm.DB { return db.Order("sub_word_order ASC") }).
		First(&word, "id = ?", wordID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
			return
		}
		respondError(c, err)
		return
	}

	if identity == nil && word.Status != model.WordStatusApproved {
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
		return
	}

	h.bumpViewCount(wordID)

	payload := gin.H{"word": word}
	if cacheable {
		if data, err := json.Marshal(payload); err == nil {
			h.cache.Set(c.Request.Context(), cache.WordKey(wordID), data, cache.SearchTTL)
		}
	}
	c.JSON(http.StatusOK, payload)
}

// bumpViewCount increments off the request path; a lost increment is fine.
func (h *WordHandler) bumpViewCount(wordID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.db.WithContext(ctx).Model(&model.Word{}).
			Where("id = ?", wordID).
			Update("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			log.Printf("Failed to bump view count for %s: %v", wordID, err)
		}
	}()
}

type wordParameterInput struct {
	ParameterKey    string          `json:"parameterKey"`
	Language        *string         `json:"language"`
	ContentText     *string         `json:"contentText"`
	ContentJSON     json.RawMessage `json:"contentJson"`
	ContentRichText *string         `json:"contentRichText"`
	IsPrimary       bool            `json:"isPrimary"`
	OrderIndex      int             `json:"orderIndex"`
}

type wordRequest struct {
	DictionaryID  string               `json:"dictionaryId"`
	WordMaithili  string               `json:"wordMaithili"`
	WordRomanized *string              `json:"wordRomanized"`
	Pronunciation *string              `json:"pronunciation"`
	WordType      *string              `json:"wordType"`
	ParentWordID  *string              `json:"parentWordId"`
	SubWordOrder  int                  `json:"subWordOrder"`
	Parameters    []wordParameterInput `json:"parameters"`
}

// Create inserts a draft word with its parameter values in one transaction.
// Parameter entries whose key is not in the catalog are dropped.
func (h *WordHandler) Create(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.DictionaryID == "" || req.WordMaithili == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dictionaryId and wordMaithili are required"})
		return
	}

	var dictCount int64
	h.db.Model(&model.Dictionary{}).Where("id = ?", req.DictionaryID).Count(&dictCount)
	if dictCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "dictionary not found"})
		return
	}

	params, err := h.resolveParameters(c.Request.Context(), req.Parameters)
	if err != nil {
		respondError(c, err)
		return
	}

	word := model.Word{
		DictionaryID:  req.DictionaryID,
		WordMaithili:  req.WordMaithili,
		WordRomanized: req.WordRomanized,
		Pronunciation: req.Pronunciation,
		WordType:      req.WordType,
		Status:        model.WordStatusDraft,
		VersionNumber: 1,
		ParentWordID:  req.ParentWordID,
		SubWordOrder:  req.SubWordOrder,
		CreatedByID:   &identity.ID,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&word).Error; err != nil {
			return err
		}
		for i := range params {
			params[i].WordID = word.ID
		}
		if len(params) > 0 {
			return tx.Create(&params).Error
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"word": word})
}

// Update rewrites a word's core fields and replaces its parameter set,
// bumping the version number. Cached copies are invalidated.
func (h *WordHandler) Update(c *gin.Context) {
	wordID := c.Param("id")

	var word model.Word
	if err := h.db.First(&word, "id = ?", wordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
			return
		}
		respondError(c, err)
		return
	}

	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.WordMaithili == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wordMaithili is required"})
		return
	}

	params, err := h.resolveParameters(c.Request.Context(), req.Parameters)
	if err != nil {
		respondError(c, err)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		word.WordMaithili = req.WordMaithili
		word.WordRomanized = req.WordRomanized
		word.Pronunciation = req.Pronunciation
		word.WordType = req.WordType
		word.ParentWordID = req.ParentWordID
		word.SubWordOrder = req.SubWordOrder
		word.VersionNumber++

		if err := tx.Save(&word).Error; err != nil {
			return err
		}
		if err := tx.Where("word_id = ?", word.ID).Delete(&model.WordParameter{}).Error; err != nil {
			return err
		}
		for i := range params {
			params[i].WordID = word.ID
		}
		if len(params) > 0 {
			return tx.Create(&params).Error
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		h.cache.Delete(c.Request.Context(), cache.WordKey(wordID))
	}

	c.JSON(http.StatusOK, gin.H{"word": word})
}

func (h *WordHandler) resolveParameters(ctx context.Context, inputs []wordParameterInput) ([]model.WordParameter, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(inputs))
	for _, in := range inputs {
		keys = append(keys, in.ParameterKey)
	}
	defs, err := h.catalog.DefinitionsByKey(ctx, keys)
	if err != nil {
		return nil, err
	}

	var params []model.WordParameter
	for _, in := range inputs {
		def, ok := defs[in.ParameterKey]
		if !ok {
			continue
		}
		params = append(params, model.WordParameter{
			ParameterDefinitionID: def.ID,
			ParameterKey:          in.ParameterKey,
			Language:              in.Language,
			ContentText:           in.ContentText,
			ContentJSON:           datatypes.JSON(in.ContentJSON),
			ContentRichText:       in.ContentRichText,
			IsPrimary:             in.IsPrimary,
			OrderIndex:            in.OrderIndex,
		})
	}
	return params, nil
}

// Delete removes a word and everything hanging off it. Only admins or the
// word's creator may delete.
func (h *WordHandler) Delete(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	wordID := c.Param("id")

	var word model.Word
	if err := h.db.First(&word, "id = ?", wordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
			return
		}
		respondError(c, err)
		return
	}

	isOwner := word.CreatedByID != nil && *word.CreatedByID == identity.ID
	if !model.IsAdminRole(identity.Role) && !isOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "only admins or the creator can delete a word"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("word_id = ?", wordID).Delete(&model.WordParameter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("word_id = ?", wordID).Delete(&model.WordWorkflow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&word).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		h.cache.Delete(c.Request.Context(), cache.WordKey(wordID))
	}

	c.JSON(http.StatusOK, gin.H{"message": "word deleted"})
}

// MyWords returns the words created by the current user, newest first.
func (h *WordHandler) MyWords(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	var words []model.Word
	err := h.db.
		Preload("Dictionary").
		Where("created_by_id = ?", identity.ID).
		Order("created_at DESC").
		Find(&words).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"words": words})
}

// BulkCreate inserts multiple draft words in one request, skipping headwords
// already present in their dictionary.
func (h *WordHandler) BulkCreate(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	var req struct {
		DictionaryID string        `json:"dictionaryId" binding:"required"`
		Words        []wordRequest `json:"words" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dictionaryId and words are required"})
		return
	}

	created := 0
	skipped := 0
	for _, w := range req.Words {
		if w.WordMaithili == "" {
			skipped++
			continue
		}

		var count int64
		h.db.Model(&model.Word{}).
			Where("dictionary_id = ? AND word_maithili = ?", req.DictionaryID, w.WordMaithili).
			Count(&count)
		if count > 0 {
			skipped++
			continue
		}

		params, err := h.resolveParameters(c.Request.Context(), w.Parameters)
		if err != nil {
			respondError(c, err)
			return
		}

		word := model.Word{
			DictionaryID:  req.DictionaryID,
			WordMaithili:  w.WordMaithili,
			WordRomanized: w.WordRomanized,
			Pronunciation: w.Pronunciation,
			WordType:      w.WordType,
			Status:        model.WordStatusDraft,
			VersionNumber: 1,
			CreatedByID:   &identity.ID,
		}

		err = h.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&word).Error; err != nil {
				return err
			}
			for i := range params {
				params[i].WordID = word.ID
			}
			if len(params) > 0 {
				return tx.Create(&params).Error
			}
			return nil
		})
		if err != nil {
			respondError(c, err)
			return
		}
		created++
	}

	c.JSON(http.StatusOK, gin.H{"created": created, "skipped": skipped})
}

package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maithilikosh/api/internal/cache"
	"github.com/maithilikosh/api/internal/middleware"
	"github.com/maithilikosh/api/internal/model"
)

type SearchHandler struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

func NewSearchHandler(db *gorm.DB, redisCache *cache.RedisCache) *SearchHandler {
	return &SearchHandler{db: db, cache: redisCache}
}

// Search looks up approved words by headword or romanization. Results are
// cached briefly; every query is logged off-request for the trending list.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	dictionaryID := c.Query("dictionaryId")
	limit := clampLimit(c.Query("limit"), 10, 50)

	cacheKey := cache.SearchKey(query, dictionaryID, limit)
	if h.cache != nil {
		if data, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
			middleware.RecordWordSearch(true)
			h.logSearch(query, dictionaryID)
			c.Data(http.StatusOK, "application/json", data)
			return
		}
	}

	pattern := "%" + query + "%"
	q := h.db.Model(&model.Word{}).
		Where("status = ?", model.WordStatusApproved).
		Where("word_maithili ILIKE ? OR word_romanized ILIKE ?", pattern, pattern)
	if dictionaryID != "" {
		q = q.Where("dictionary_id = ?", dictionaryID)
	}

	var words []model.Word
	err := q.Preload("Dictionary").
		Preload("Parameters", "is_primary = ?", true).
		Preload("Parameters.ParameterDefinition").
		Order("word_maithili ASC").
		Limit(limit).
		Find(&words).Error
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.RecordWordSearch(false)
	h.logSearch(query, dictionaryID)
	h.bumpSearchCounts(words)

	payload := gin.H{"query": query, "results": words, "count": len(words)}
	if h.cache != nil {
		if data, err := json.Marshal(payload); err == nil {
			h.cache.Set(c.Request.Context(), cacheKey, data, cache.SearchTTL)
		}
	}
	c.JSON(http.StatusOK, payload)
}

// Autocomplete returns approved headwords with the given prefix, default 8
// capped at 20.
func (h *SearchHandler) Autocomplete(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"suggestions": []string{}})
		return
	}
	dictionaryID := c.Query("dictionaryId")
	limit := clampLimit(c.Query("limit"), 8, 20)

	cacheKey := cache.AutocompleteKey(query, dictionaryID, limit)
	if h.cache != nil {
		if data, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
			c.Data(http.StatusOK, "application/json", data)
			return
		}
	}

	q := h.db.Model(&model.Word{}).
		Where("status = ?", model.WordStatusApproved).
		Where("word_maithili ILIKE ?", query+"%")
	if dictionaryID != "" {
		q = q.Where("dictionary_id = ?", dictionaryID)
	}

	var suggestions []string
	if err := q.Order("word_maithili ASC").Limit(limit).Pluck("word_maithili", &suggestions).Error; err != nil {
		respondError(c, err)
		return
	}

	payload := gin.H{"suggestions": suggestions}
	if h.cache != nil {
		if data, err := json.Marshal(payload); err == nil {
			h.cache.Set(c.Request.Context(), cacheKey, data, cache.SearchTTL)
		}
	}
	c.JSON(http.StatusOK, payload)
}

// Trending returns the most searched queries of the last 7 days.
func (h *SearchHandler) Trending(c *gin.Context) {
	type trendingRow struct {
		QueryText string `json:"queryText"`
		Count     int64  `json:"count"`
	}

	var rows []trendingRow
	err := h.db.Model(&model.SearchHistory{}).
		Select("query_text, COUNT(*) AS count").
		Where("created_at > ?", time.Now().AddDate(0, 0, -7)).
		Group("query_text").
		Order("count DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trending": rows})
}

// clampLimit parses a limit query value, falling back to def and capping at max.
func clampLimit(raw string, def, max int) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// logSearch records the query off the request path.
func (h *SearchHandler) logSearch(query, dictionaryID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		entry := model.SearchHistory{QueryText: query}
		if dictionaryID != "" {
			entry.DictionaryID = &dictionaryID
		}
		if err := h.db.WithContext(ctx).Create(&entry).Error; err != nil {
			log.Printf("Failed to log search %q: %v", query, err)
		}
	}()
}

func (h *SearchHandler) bumpSearchCounts(words []model.Word) {
	if len(words) == 0 {
		return
	}
	ids := make([]string, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.db.WithContext(ctx).Model(&model.Word{}).
			Where("id IN ?", ids).
			Update("search_count", gorm.Expr("search_count + 1")).Error; err != nil {
			log.Printf("Failed to bump search counts: %v", err)
		}
	}()
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maithilikosh/api/internal/model"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

type PlatformStats struct {
	TotalWords         int64            `json:"totalWords"`
	TotalUsers         int64            `json:"totalUsers"`
	TotalDictionaries  int64            `json:"totalDictionaries"`
	PendingSuggestions int64            `json:"pendingSuggestions"`
	WordsByStatus      map[string]int64 `json:"wordsByStatus"`
	UsersByRole        map[string]int64 `json:"usersByRole"`
	TopViewedWords     []WordCount      `json:"topViewedWords"`
	TopSearchedQueries []WordCount      `json:"topSearchedQueries"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// GetStats returns platform-wide dashboard statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	var stats PlatformStats

	h.db.Model(&model.Word{}).Count(&stats.TotalWords)
	h.db.Model(&model.User{}).Count(&stats.TotalUsers)
	h.db.Model(&model.Dictionary{}).Count(&stats.TotalDictionaries)
	h.db.Model(&model.EditSuggestion{}).
		Where("status = ?", model.SuggestionStatusPending).
		Count(&stats.PendingSuggestions)

	type groupCount struct {
		Key   string
		Count int64
	}

	stats.WordsByStatus = make(map[string]int64)
	var statusCounts []groupCount
	h.db.Model(&model.Word{}).
		Select("status as key, count(*) as count").
		Group("status").
		Scan(&statusCounts)
	for _, gc := range statusCounts {
		stats.WordsByStatus[gc.Key] = gc.Count
	}

	stats.UsersByRole = make(map[string]int64)
	var roleCounts []groupCount
	h.db.Model(&model.User{}).
		Select("role as key, count(*) as count").
		Group("role").
		Scan(&roleCounts)
	for _, gc := range roleCounts {
		stats.UsersByRole[gc.Key] = gc.Count
	}

	h.db.Model(&model.Word{}).
		Select("word_maithili as word, view_count as count").
		Order("view_count DESC").
		Limit(10).
		Scan(&stats.TopViewedWords)

	// Top searched queries (last 30 days)
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	h.db.Model(&model.SearchHistory{}).
		Select("query_text as word, count(*) as count").
		Where("created_at > ?", thirtyDaysAgo).
		Group("query_text").
		Order("count DESC").
		Limit(10).
		Scan(&stats.TopSearchedQueries)

	c.JSON(http.StatusOK, stats)
}

// ListUsers returns all users with pagination and filters
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&model.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("email ILIKE ? OR full_name ILIKE ?", pattern, pattern)
	}

	var totalCount int64
	query.Count(&totalCount)

	var users []model.User
	query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users)

	c.JSON(http.StatusOK, gin.H{
		"data":       users,
		"page":       page,
		"limit":      limit,
		"totalCount": totalCount,
		"totalPages": int((totalCount + int64(limit) - 1) / int64(limit)),
	})
}

var validRoles = map[string]bool{
	model.RolePublic:          true,
	model.RoleFieldResearcher: true,
	model.RoleEditor:          true,
	model.RoleSeniorEditor:    true,
	model.RoleEditorInChief:   true,
	model.RoleAdmin:           true,
	model.RoleSuperAdmin:      true,
}

// UpdateUserRole changes a user's role. Only SUPER_ADMIN may grant admin
// roles.
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}
	if !validRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	var user model.User
	if err := h.db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user.Role = req.Role
	if err := h.db.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SetUserActive activates or deactivates an account.
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isActive is required"})
		return
	}

	var user model.User
	if err := h.db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.db.Model(&user).Update("is_active", *req.IsActive).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetSearchAnalytics returns search frequency analytics
func (h *AdminHandler) GetSearchAnalytics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if days < 1 || days > 365 {
		days = 30
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	startDate := time.Now().AddDate(0, 0, -days)

	var results []WordCount
	h.db.Model(&model.SearchHistory{}).
		Select("query_text as word, count(*) as count").
		Where("created_at > ?", startDate).
		Group("query_text").
		Order("count DESC").
		Limit(limit).
		Scan(&results)

	c.JSON(http.StatusOK, gin.H{
		"days":    days,
		"queries": results,
	})
}

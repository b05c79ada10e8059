package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maithilikosh/api/internal/middleware"
	"github.com/maithilikosh/api/internal/model"
	"github.com/maithilikosh/api/internal/workflow"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Stats summarises the current user's contributions by status, plus the size
// of their review queue when their role reviews a stage.
func (h *DashboardHandler) Stats(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var byStatus []statusCount
	err := h.db.Model(&model.Word{}).
		Select("status, COUNT(*) AS count").
		Where("created_by_id = ?", identity.ID).
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		respondError(c, err)
		return
	}

	var total int64
	for _, sc := range byStatus {
		total += sc.Count
	}

	pendingReviews := int64(0)
	if stage, ok := workflow.StageForRole(identity.Role); ok {
		h.db.Model(&model.WordWorkflow{}).
			Where("current_stage = ? AND status IN ?", stage,
				[]string{model.WorkflowStatusPending, model.WorkflowStatusInProgress}).
			Count(&pendingReviews)
	}

	var openAssignments int64
	h.db.Model(&model.WorkAssignment{}).
		Where("assigned_to_id = ? AND status = ?", identity.ID, model.AssignmentStatusPending).
		Count(&openAssignments)

	c.JSON(http.StatusOK, gin.H{
		"totalWords":      total,
		"wordsByStatus":   byStatus,
		"pendingReviews":  pendingReviews,
		"openAssignments": openAssignments,
	})
}

// PendingReviews lists the words waiting on the current user's role, oldest
// submission first.
func (h *DashboardHandler) PendingReviews(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	stage, ok := workflow.StageForRole(identity.Role)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"words": []model.Word{}})
		return
	}

	var wordIDs []string
	err := h.db.Model(&model.WordWorkflow{}).
		Where("current_stage = ? AND status IN ?", stage,
			[]string{model.WorkflowStatusPending, model.WorkflowStatusInProgress}).
		Order("created_at ASC").
		Pluck("word_id", &wordIDs).Error
	if err != nil {
		respondError(c, err)
		return
	}

	words := []model.Word{}
	if len(wordIDs) > 0 {
		err = h.db.
			Preload("Dictionary").
			Preload("Parameters", "is_primary = ?", true).
			Where("id IN ?", wordIDs).
			Find(&words).Error
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"words": words})
}

// Assignments lists work assignments given to the current user.
func (h *DashboardHandler) Assignments(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	q := h.db.Preload("Word").Where("assigned_to_id = ?", identity.ID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var assignments []model.WorkAssignment
	if err := q.Order("created_at DESC").Find(&assignments).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

type assignmentRequest struct {
	WordID       string     `json:"wordId" binding:"required"`
	AssignedToID string     `json:"assignedToId" binding:"required"`
	TaskType     string     `json:"taskType" binding:"required"`
	DueDate      *time.Time `json:"dueDate"`
	Notes        string     `json:"notes"`
}

// CreateAssignment hands a word-related task to a contributor.
func (h *DashboardHandler) CreateAssignment(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wordId, assignedToId and taskType are required"})
		return
	}

	var wordCount int64
	h.db.Model(&model.Word{}).Where("id = ?", req.WordID).Count(&wordCount)
	if wordCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
		return
	}

	assignment := model.WorkAssignment{
		WordID:       req.WordID,
		AssignedByID: identity.ID,
		AssignedToID: req.AssignedToID,
		TaskType:     req.TaskType,
		Status:       model.AssignmentStatusPending,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
	}
	if err := h.db.Create(&assignment).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assignment": assignment})
}

// CompleteAssignment marks one of the current user's assignments done.
func (h *DashboardHandler) CompleteAssignment(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	var assignment model.WorkAssignment
	err := h.db.First(&assignment, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		respondError(c, err)
		return
	}

	if assignment.AssignedToID != identity.ID && !model.IsAdminRole(identity.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your assignment"})
		return
	}

	if err := h.db.Model(&assignment).Update("status", model.AssignmentStatusCompleted).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

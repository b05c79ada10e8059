package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maithilikosh/api/internal/middleware"
	"github.com/maithilikosh/api/internal/workflow"
)

type WorkflowHandler struct {
	engine *workflow.Engine
}

func NewWorkflowHandler(engine *workflow.Engine) *WorkflowHandler {
	return &WorkflowHandler{engine: engine}
}

type workflowActionRequest struct {
	Action       string  `json:"action" binding:"required"`
	AssignedToID *string `json:"assignedToId"`
	Priority     string  `json:"priority"`
	Comments     string  `json:"comments"`
}

// Act performs one review action on a word: submit, approve, reject or
// return_for_revision.
func (h *WorkflowHandler) Act(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	wordID := c.Param("id")

	var req workflowActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case "submit":
		wf, err := h.engine.Submit(ctx, wordID, identity, workflow.SubmitOptions{
			AssignedToID: req.AssignedToID,
			Priority:     req.Priority,
			Comments:     req.Comments,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"workflow": wf})

	case "approve":
		wf, err := h.engine.Approve(ctx, wordID, identity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"workflow": wf})

	case "reject":
		if err := h.engine.Reject(ctx, wordID, req.Comments); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "word rejected"})

	case "return_for_revision":
		if err := h.engine.ReturnForRevision(ctx, wordID, req.Comments); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "word returned for revision"})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + req.Action})
	}
}

// History lists every review cycle of a word, newest first.
func (h *WorkflowHandler) History(c *gin.Context) {
	workflows, err := h.engine.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workflows": workflows})
}

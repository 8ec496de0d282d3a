package handler

import (
	"complaintbox/backend/internal/complaint"
	"complaintbox/backend/internal/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createComplaintRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Category    models.Category   `json:"category" binding:"required"`
	Department  models.Department `json:"department" binding:"required"`
	IsAnonymous bool              `json:"isAnonymous"`
}

type statusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

type responseRequest struct {
	Content string `json:"content" binding:"required"`
}

type feedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateComplaint приймає нову скаргу від поточного користувача
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.Complaints.Create(c.Request.Context(), currentUser(c).Identity(), complaint.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Department:  req.Department,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint.NewView(created))
}

// ListComplaints returns the caller's visible complaints, newest first.
func (h *Handler) ListComplaints(c *gin.Context) {
	status := models.Status(c.Query("status_filter"))

	complaints, err := h.Complaints.List(c.Request.Context(), currentUser(c).Identity(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint.NewViews(complaints))
}

func (h *Handler) GetComplaint(c *gin.Context) {
	found, err := h.Complaints.Get(c.Request.Context(), currentUser(c).Identity(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint.NewView(found))
}

// UpdateStatus takes the new status from ?new_status= or, if absent, from a
// JSON body {"status": ...}.
func (h *Handler) UpdateStatus(c *gin.Context) {
	status := models.Status(c.Query("new_status"))
	if status == "" {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		status = req.Status
	}

	updated, err := h.Complaints.SetStatus(c.Request.Context(), currentUser(c).Identity(), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint.NewView(updated))
}

func (h *Handler) AddResponse(c *gin.Context) {
	var req responseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.Complaints.AppendResponse(c.Request.Context(), currentUser(c).Identity(), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint.NewView(updated))
}

// AddFeedback замінює попередній відгук власника скарги
func (h *Handler) AddFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.Complaints.SetFeedback(c.Request.Context(), currentUser(c).Identity(), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint.NewView(updated))
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

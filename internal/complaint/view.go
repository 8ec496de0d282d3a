package complaint

import (
	"complaintbox/backend/internal/models"
	"time"
)

// View is the outward JSON shape of a complaint.
type View struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    models.Category   `json:"category"`
	Department  models.Department `json:"department"`
	IsAnonymous bool              `json:"isAnonymous"`
	Status      models.Status     `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	StudentID   string            `json:"studentId"`
	StudentName *string           `json:"studentName"`
	Responses   []ResponseView    `json:"responses"`
	Feedback    *models.Feedback  `json:"feedback"`
}

// ResponseView is one admin reply in a View.
type ResponseView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	AdminName string    `json:"adminName"`
	AdminID   string    `json:"adminId"`
}

// NewView serializes c. The owner's name is withheld for anonymous complaints;
// the owner id stays because it drives authorization on the client too.
func NewView(c *models.Complaint) View {
	v := View{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Department:  c.Department,
		IsAnonymous: c.IsAnonymous,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		StudentID:   c.OwnerID,
		Responses:   make([]ResponseView, 0, len(c.Responses)),
		Feedback:    c.Feedback(),
	}
	if !c.IsAnonymous {
		name := c.OwnerName
		v.StudentName = &name
	}
	for _, r := range c.Responses {
		v.Responses = append(v.Responses, ResponseView{
			ID:        r.ID,
			Content:   r.Content,
			CreatedAt: r.CreatedAt,
			AdminName: r.AdminName,
			AdminID:   r.AdminID,
		})
	}
	return v
}

// NewViews serializes a list of complaints in order.
func NewViews(cs []models.Complaint) []View {
	views := make([]View, 0, len(cs))
	for i := range cs {
		views = append(views, NewView(&cs[i]))
	}
	return views
}

// Package complaint provides the complaint lifecycle: submission, admin triage
// (status changes and responses), owner feedback and the read paths.
package complaint

import (
	"complaintbox/backend/internal/apperror"
	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/policy"
	"complaintbox/backend/internal/storage"
	"context"
	"log"
	"strings"
	"time"
)

// Service handles the business logic for complaints.
type Service struct {
	Storage storage.ComplaintStore
	Policy  *policy.Policy
	now     func() time.Time
}

// NewService creates a new complaint service.
func NewService(s storage.ComplaintStore, p *policy.Policy) *Service {
	return &Service{
		Storage: s,
		Policy:  p,
		now:     defaultNow,
	}
}

// PostgreSQL зберігає час з точністю до мікросекунд.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// WithClock replaces the time source used for createdAt/updatedAt.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateInput is the student-supplied payload of a new complaint.
type CreateInput struct {
	Title       string
	Description string
	Category    models.Category
	Department  models.Department
	IsAnonymous bool
}

// Create stores a new pending complaint owned by actor.
func (s *Service) Create(ctx context.Context, actor models.Identity, in CreateInput) (*models.Complaint, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	if !s.Policy.Can(actor, policy.ActionCreateComplaint, nil) {
		return nil, apperror.Forbidden("Not authorized to create complaints")
	}

	now := s.now()
	c := &models.Complaint{
		OwnerID:     actor.ID,
		OwnerName:   actor.Name,
		IsAnonymous: in.IsAnonymous,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Department:  in.Department,
		Status:      models.StatusPending,
		Responses:   []models.ComplaintResponse{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Storage.CreateComplaint(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("INFO: Complaint %s submitted by %s.", c.ID, actor.ID)
	return c, nil
}

func validateCreate(in CreateInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return apperror.Validation("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return apperror.Validation("description is required")
	}
	if !in.Category.Valid() {
		return apperror.Validation("unknown category %q", in.Category)
	}
	if !in.Department.Valid() {
		return apperror.Validation("unknown department %q", in.Department)
	}
	return nil
}

// SetStatus moves the complaint to status. Any of the five statuses may follow
// any other; only admins may change it.
func (s *Service) SetStatus(ctx context.Context, actor models.Identity, id string, status models.Status) (*models.Complaint, error) {
	if !status.Valid() {
		return nil, apperror.Validation("unknown status %q", status)
	}
	// Рішення залежить лише від ролі, тому документ не завантажуємо.
	if !s.Policy.Can(actor, policy.ActionUpdateStatus, nil) {
		return nil, apperror.Forbidden("Admin privileges required")
	}

	c, err := s.Storage.UpdateComplaintStatus(ctx, id, status, s.now())
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Complaint %s moved to %s by %s.", id, status, actor.ID)
	return c, nil
}

// AppendResponse adds an admin reply to the end of the complaint's thread.
func (s *Service) AppendResponse(ctx context.Context, actor models.Identity, id, content string) (*models.Complaint, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("content is required")
	}
	if !s.Policy.Can(actor, policy.ActionAddResponse, nil) {
		return nil, apperror.Forbidden("Admin privileges required")
	}

	return s.Storage.AppendComplaintResponse(ctx, id, models.ComplaintResponse{
		Content:   content,
		AdminID:   actor.ID,
		AdminName: actor.Name,
		CreatedAt: s.now(),
	})
}

// SetFeedback replaces the owner's feedback on the complaint.
//
// Existence is checked before ownership, so a non-owner learns whether the
// complaint exists (404 vs 403).
func (s *Service) SetFeedback(ctx context.Context, actor models.Identity, id string, rating int, comment string) (*models.Complaint, error) {
	feedback := models.Feedback{Rating: rating, Comment: comment}
	if !feedback.Valid() {
		return nil, apperror.Validation("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}

	c, err := s.Storage.FindComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.Policy.Can(actor, policy.ActionAddFeedback, c) {
		return nil, apperror.Forbidden("Only the complaint owner can add feedback")
	}

	return s.Storage.SetComplaintFeedback(ctx, id, feedback, s.now())
}

// List returns the complaints visible to actor, newest first, optionally
// narrowed to one status. An empty status means no status filter.
func (s *Service) List(ctx context.Context, actor models.Identity, status models.Status) ([]models.Complaint, error) {
	if status != "" && !status.Valid() {
		return nil, apperror.Validation("unknown status %q", status)
	}
	ownerID, ok := s.Policy.ListScope(actor)
	if !ok {
		return nil, apperror.Forbidden("Not authorized to list complaints")
	}
	return s.Storage.ListComplaints(ctx, storage.ComplaintFilter{
		OwnerID: ownerID,
		Status:  status,
	})
}

// Get returns a single complaint if actor may read it.
func (s *Service) Get(ctx context.Context, actor models.Identity, id string) (*models.Complaint, error) {
	c, err := s.Storage.FindComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.Policy.Can(actor, policy.ActionReadComplaint, c) {
		return nil, apperror.Forbidden("Not authorized to view this complaint")
	}
	return c, nil
}

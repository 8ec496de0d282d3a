package storage

import (
	"complaintbox/backend/internal/apperror"
	"complaintbox/backend/internal/models"
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
)

func (s *Service) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	if err := s.DB.WithContext(ctx).Create(complaint).Error; err != nil {
		log.Printf("ERROR: Failed to save complaint for student %s: %v", complaint.OwnerID, err)
		return err
	}
	if complaint.Responses == nil {
		complaint.Responses = []models.ComplaintResponse{}
	}
	return nil
}

// FindComplaint returns the complaint with its responses in chronological order.
func (s *Service) FindComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	return findComplaint(s.DB.WithContext(ctx), id)
}

// ListComplaints returns matching complaints, most recently created first.
func (s *Service) ListComplaints(ctx context.Context, filter ComplaintFilter) ([]models.Complaint, error) {
	tx := s.DB.WithContext(ctx).Preload("Responses", orderResponses)
	if filter.OwnerID != "" {
		tx = tx.Where("student_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var complaints []models.Complaint
	if err := tx.Order("created_at DESC").Order("id DESC").Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	for i := range complaints {
		if complaints[i].Responses == nil {
			complaints[i].Responses = []models.ComplaintResponse{}
		}
	}
	return complaints, nil
}

// UpdateComplaintStatus sets status and updated_at only, so a concurrent
// response append or feedback write on the same complaint is preserved.
func (s *Service) UpdateComplaintStatus(ctx context.Context, id string, status models.Status, at time.Time) (*models.Complaint, error) {
	return s.mutateComplaint(ctx, id, func(tx *gorm.DB) error {
		return updateComplaintColumns(tx, id, map[string]interface{}{
			"status":     string(status),
			"updated_at": at,
		})
	})
}

// AppendComplaintResponse inserts a response row and bumps updated_at to the
// response's creation time. The counter increment locks the complaint row, so
// concurrent appends get distinct, gap-free sequence numbers.
func (s *Service) AppendComplaintResponse(ctx context.Context, id string, response models.ComplaintResponse) (*models.Complaint, error) {
	return s.mutateComplaint(ctx, id, func(tx *gorm.DB) error {
		if err := updateComplaintColumns(tx, id, map[string]interface{}{
			"response_count": gorm.Expr("response_count + 1"),
			"updated_at":     response.CreatedAt,
		}); err != nil {
			return err
		}

		var seq int
		if err := tx.Model(&models.Complaint{}).Select("response_count").Where("id = ?", id).Row().Scan(&seq); err != nil {
			return err
		}
		response.ComplaintID = id
		response.Seq = seq
		return tx.Create(&response).Error
	})
}

// SetComplaintFeedback replaces any previous feedback.
func (s *Service) SetComplaintFeedback(ctx context.Context, id string, feedback models.Feedback, at time.Time) (*models.Complaint, error) {
	return s.mutateComplaint(ctx, id, func(tx *gorm.DB) error {
		return updateComplaintColumns(tx, id, map[string]interface{}{
			"feedback_rating":  feedback.Rating,
			"feedback_comment": feedback.Comment,
			"updated_at":       at,
		})
	})
}

// mutateComplaint runs apply and re-reads the complaint in one transaction.
func (s *Service) mutateComplaint(ctx context.Context, id string, apply func(tx *gorm.DB) error) (*models.Complaint, error) {
	var updated *models.Complaint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := apply(tx); err != nil {
			return err
		}
		c, err := findComplaint(tx, id)
		if err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			log.Printf("ERROR: Failed to update complaint %s: %v", id, err)
		}
		return nil, err
	}
	return updated, nil
}

func updateComplaintColumns(tx *gorm.DB, id string, columns map[string]interface{}) error {
	result := tx.Model(&models.Complaint{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func findComplaint(tx *gorm.DB, id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := tx.Preload("Responses", orderResponses).Where("id = ?", id).First(&complaint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if complaint.Responses == nil {
		complaint.Responses = []models.ComplaintResponse{}
	}
	return &complaint, nil
}

func orderResponses(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

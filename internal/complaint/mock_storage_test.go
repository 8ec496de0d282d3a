package complaint_test

import (
	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/storage"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockStorage) FindComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Complaint)
	return c, args.Error(1)
}

func (m *MockStorage) ListComplaints(ctx context.Context, filter storage.ComplaintFilter) ([]models.Complaint, error) {
	args := m.Called(ctx, filter)
	cs, _ := args.Get(0).([]models.Complaint)
	return cs, args.Error(1)
}

func (m *MockStorage) UpdateComplaintStatus(ctx context.Context, id string, status models.Status, at time.Time) (*models.Complaint, error) {
	args := m.Called(ctx, id, status, at)
	c, _ := args.Get(0).(*models.Complaint)
	return c, args.Error(1)
}

func (m *MockStorage) AppendComplaintResponse(ctx context.Context, id string, response models.ComplaintResponse) (*models.Complaint, error) {
	args := m.Called(ctx, id, response)
	c, _ := args.Get(0).(*models.Complaint)
	return c, args.Error(1)
}

func (m *MockStorage) SetComplaintFeedback(ctx context.Context, id string, feedback models.Feedback, at time.Time) (*models.Complaint, error) {
	args := m.Called(ctx, id, feedback, at)
	c, _ := args.Get(0).(*models.Complaint)
	return c, args.Error(1)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a complaint. Any status may follow any other.
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under-review"
	StatusInProgress  Status = "in-progress"
	StatusResolved    Status = "resolved"
	StatusRejected    Status = "rejected"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusUnderReview, StatusInProgress, StatusResolved, StatusRejected}

// Valid reports whether s is one of the five known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Category classifies what a complaint is about.
type Category string

const (
	CategoryAcademic       Category = "academic"
	CategoryAdministrative Category = "administrative"
	CategoryFacilities     Category = "facilities"
	CategoryTechnical      Category = "technical"
	CategoryOther          Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAcademic, CategoryAdministrative, CategoryFacilities, CategoryTechnical, CategoryOther:
		return true
	}
	return false
}

// Department is the university unit a complaint is addressed to.
type Department string

const (
	DepartmentComputerScience      Department = "computer-science"
	DepartmentEngineering          Department = "engineering"
	DepartmentBusiness             Department = "business"
	DepartmentArts                 Department = "arts"
	DepartmentSciences             Department = "sciences"
	DepartmentStudentAffairs       Department = "student-affairs"
	DepartmentFacilitiesManagement Department = "facilities-management"
	DepartmentITServices           Department = "it-services"
	DepartmentOther                Department = "other"
)

func (d Department) Valid() bool {
	switch d {
	case DepartmentComputerScience, DepartmentEngineering, DepartmentBusiness, DepartmentArts,
		DepartmentSciences, DepartmentStudentAffairs, DepartmentFacilitiesManagement,
		DepartmentITServices, DepartmentOther:
		return true
	}
	return false
}

// Complaint is a student's submission together with admin responses and
// the student's optional feedback.
//
// OwnerName is always stored; it is withheld on output when IsAnonymous is set.
// Feedback is kept in two nullable columns so it can be replaced with a single UPDATE.
type Complaint struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)"`
	OwnerID     string     `gorm:"column:student_id;type:varchar(36);not null;index"`
	OwnerName   string     `gorm:"column:student_name"`
	IsAnonymous bool       `gorm:"not null;default:false"`
	Title       string     `gorm:"not null"`
	Description string     `gorm:"type:text;not null"`
	Category    Category   `gorm:"type:varchar(32);not null"`
	Department  Department `gorm:"type:varchar(32);not null"`
	Status      Status     `gorm:"type:varchar(16);not null;index"`

	// Responses are ordered by Seq; rows are only ever inserted.
	Responses []ComplaintResponse `gorm:"foreignKey:ComplaintID"`
	// ResponseCount is bumped by the same UPDATE that appends a response and
	// numbers it.
	ResponseCount int `gorm:"not null;default:0"`

	FeedbackRating  *int
	FeedbackComment *string

	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// BeforeCreate assigns a UUID when the caller has not set one.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// Feedback returns the student's feedback, or nil when none has been left.
func (c *Complaint) Feedback() *Feedback {
	if c.FeedbackRating == nil {
		return nil
	}
	fb := &Feedback{Rating: *c.FeedbackRating}
	if c.FeedbackComment != nil {
		fb.Comment = *c.FeedbackComment
	}
	return fb
}

// Feedback is the owner's rating of how a complaint was handled.
type Feedback struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// Valid reports whether the rating is within [MinRating, MaxRating].
func (f Feedback) Valid() bool {
	return f.Rating >= MinRating && f.Rating <= MaxRating
}

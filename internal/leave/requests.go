package leave

import (
	"context"
	"time"

	"campus-backend/internal/models"
	"campus-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestService handles employee-facing leave entries: filing, listing and
// the approve/reject workflow.
type RequestService struct {
	DB *gorm.DB
}

// ApplyInput is the request body for filing leave. Dates are YYYY-MM-DD.
type ApplyInput struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// Apply files a new Pending leave entry for the user's profile. TotalDays is
// the inclusive day count of the range.
func (s *RequestService) Apply(ctx context.Context, userIdentity string, in ApplyInput) (*models.LeaveEntry, error) {
	if userIdentity == "" {
		return nil, ErrIdentityRequired
	}
	var profile models.EmployeeProfile
	if err := s.DB.WithContext(ctx).Where("userid = ?", userIdentity).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var lt models.LeaveType
	if err := s.DB.WithContext(ctx).Where("code = ?", in.LeaveType).First(&lt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrLeaveTypeUnknown
		}
		return nil, err
	}

	start, err := validation.ParseDate(in.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := validation.ParseDate(in.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	entry := &models.LeaveEntry{
		EmployeeCode: profile.EmployeeCode,
		LeaveType:    lt.Code,
		StartDate:    start,
		EndDate:      end,
		TotalDays:    float64(daysInclusive(start, end)),
		Status:       models.LeaveStatusPending,
	}
	if in.Reason != "" {
		entry.Reason = &in.Reason
	}
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListMine returns the user's leave entries, newest first.
func (s *RequestService) ListMine(ctx context.Context, userIdentity string) ([]models.LeaveEntry, error) {
	if userIdentity == "" {
		return nil, ErrIdentityRequired
	}
	var profile models.EmployeeProfile
	if err := s.DB.WithContext(ctx).Where("userid = ?", userIdentity).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	var entries []models.LeaveEntry
	if err := s.DB.WithContext(ctx).
		Where("employee_code = ?", profile.EmployeeCode).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListPending returns all entries awaiting review, oldest first.
func (s *RequestService) ListPending(ctx context.Context) ([]models.LeaveEntry, error) {
	var entries []models.LeaveEntry
	if err := s.DB.WithContext(ctx).
		Where("status = ?", models.LeaveStatusPending).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ReviewInput is the approve/reject request body.
type ReviewInput struct {
	EntryID string `json:"entry_id"`
	Action  string `json:"action"` // approve | reject
	Remark  string `json:"remark"`
}

// Review approves or rejects a Pending entry. Reviewed entries are final.
func (s *RequestService) Review(ctx context.Context, reviewerID string, in ReviewInput) (*models.LeaveEntry, error) {
	entryID, err := uuid.Parse(in.EntryID)
	if err != nil {
		return nil, ErrEntryNotFound
	}

	var status string
	switch in.Action {
	case "approve":
		status = models.LeaveStatusApproved
	case "reject":
		status = models.LeaveStatusRejected
	default:
		return nil, ErrInvalidAction
	}

	var entry models.LeaveEntry
	if err := s.DB.WithContext(ctx).Where("entry_id = ?", entryID).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if entry.Status != models.LeaveStatusPending {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now().UTC()
	entry.Status = status
	entry.ReviewedBy = &reviewerID
	entry.ReviewedAt = &now
	if in.Remark != "" {
		entry.ReviewRemark = &in.Remark
	}
	if err := s.DB.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

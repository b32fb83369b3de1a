package leave

import (
	"context"

	"campus-backend/internal/models"
	"campus-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminService covers the HR-side setup: periods, leave types, allocations,
// snapshots and employee profiles.
type AdminService struct {
	DB *gorm.DB
}

// CreatePeriodInput holds YYYY-MM-DD bounds. Periods are created inactive;
// rollover happens through ActivatePeriod.
type CreatePeriodInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *AdminService) CreatePeriod(ctx context.Context, in CreatePeriodInput) (*models.LeavePeriod, error) {
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
	period := &models.LeavePeriod{StartDate: start, EndDate: end, IsActive: false}
	if err := s.DB.WithContext(ctx).Create(period).Error; err != nil {
		return nil, err
	}
	return period, nil
}

// ActivatePeriod marks one period active and every other period inactive, in
// a single transaction so the single-active-period invariant holds across
// rollover.
func (s *AdminService) ActivatePeriod(ctx context.Context, periodID string) (*models.LeavePeriod, error) {
	id, err := uuid.Parse(periodID)
	if err != nil {
		return nil, ErrPeriodNotFound
	}
	var period models.LeavePeriod
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("period_id = ?", id).First(&period).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrPeriodNotFound
			}
			return err
		}
		if err := tx.Model(&models.LeavePeriod{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		period.IsActive = true
		return tx.Save(&period).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &period, nil
}

// CreateLeaveTypeInput for a new leave category.
type CreateLeaveTypeInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (s *AdminService) CreateLeaveType(ctx context.Context, in CreateLeaveTypeInput) (*models.LeaveType, error) {
	if in.Code == "" || in.Name == "" {
		return nil, ErrLeaveTypeUnknown
	}
	var existing models.LeaveType
	if err := s.DB.WithContext(ctx).Where("code = ?", in.Code).First(&existing).Error; err == nil {
		return nil, ErrLeaveTypeExists
	}
	lt := &models.LeaveType{Code: in.Code, Name: in.Name}
	if err := s.DB.WithContext(ctx).Create(lt).Error; err != nil {
		return nil, err
	}
	return lt, nil
}

// CreateAllocationInput grants days of one leave type to a profile for a period.
type CreateAllocationInput struct {
	ProfileID     string  `json:"profile_id"`
	PeriodID      string  `json:"period_id"`
	LeaveTypeCode string  `json:"leave_type_code"`
	Allocated     float64 `json:"allocated"`
}

func (s *AdminService) CreateAllocation(ctx context.Context, in CreateAllocationInput) (*models.LeaveAllocation, error) {
	profileID, err := uuid.Parse(in.ProfileID)
	if err != nil {
		return nil, ErrAllocationInvalid
	}
	periodID, err := uuid.Parse(in.PeriodID)
	if err != nil {
		return nil, ErrAllocationInvalid
	}

	var profile models.EmployeeProfile
	if err := s.DB.WithContext(ctx).Where("profile_id = ?", profileID).First(&profile).Error; err != nil {
		return nil, ErrAllocationInvalid
	}
	var period models.LeavePeriod
	if err := s.DB.WithContext(ctx).Where("period_id = ?", periodID).First(&period).Error; err != nil {
		return nil, ErrAllocationInvalid
	}
	var lt models.LeaveType
	if err := s.DB.WithContext(ctx).Where("code = ?", in.LeaveTypeCode).First(&lt).Error; err != nil {
		return nil, ErrAllocationInvalid
	}

	alloc := &models.LeaveAllocation{
		ProfileID:   profileID,
		PeriodID:    periodID,
		LeaveTypeID: lt.LeaveTypeID,
		Allocated:   in.Allocated,
	}
	if err := s.DB.WithContext(ctx).Create(alloc).Error; err != nil {
		return nil, err
	}
	return alloc, nil
}

// ListAllocations returns a profile's allocations for a period, leave type joined.
func (s *AdminService) ListAllocations(ctx context.Context, profileID, periodID string) ([]models.LeaveAllocation, error) {
	pid, err := uuid.Parse(profileID)
	if err != nil {
		return nil, ErrAllocationInvalid
	}
	prd, err := uuid.Parse(periodID)
	if err != nil {
		return nil, ErrAllocationInvalid
	}
	var allocations []models.LeaveAllocation
	if err := s.DB.WithContext(ctx).
		Preload("LeaveType").
		Where("profile_id = ? AND period_id = ?", pid, prd).
		Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// RecordSnapshotInput freezes a profile's per-category balances as of a date.
type RecordSnapshotInput struct {
	ProfileID       string  `json:"profile_id"`
	BalanceDate     string  `json:"balance_date"`
	ElBalance       float64 `json:"el_balance"`
	SlBalance       float64 `json:"sl_balance"`
	ClBalance       float64 `json:"cl_balance"`
	VacationBalance float64 `json:"vacation_balance"`
}

func (s *AdminService) RecordSnapshot(ctx context.Context, in RecordSnapshotInput) (*models.LeaveBalanceSnapshot, error) {
	profileID, err := uuid.Parse(in.ProfileID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	var profile models.EmployeeProfile
	if err := s.DB.WithContext(ctx).Where("profile_id = ?", profileID).First(&profile).Error; err != nil {
		return nil, ErrProfileNotFound
	}
	date, err := validation.ParseDate(in.BalanceDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	snap := &models.LeaveBalanceSnapshot{
		ProfileID:       profileID,
		BalanceDate:     date,
		ElBalance:       in.ElBalance,
		SlBalance:       in.SlBalance,
		ClBalance:       in.ClBalance,
		VacationBalance: in.VacationBalance,
	}
	if err := s.DB.WithContext(ctx).Create(snap).Error; err != nil {
		return nil, err
	}
	return snap, nil
}

// CreateProfileInput registers a person as leave-eligible and links their login.
type CreateProfileInput struct {
	EmployeeCode  string   `json:"employee_code"`
	UserID        string   `json:"userid"`
	Designation   string   `json:"designation"`
	Department    string   `json:"department"`
	ActualJoining string   `json:"actual_joining"` // optional, YYYY-MM-DD
	JoinEl        *float64 `json:"join_el_allocation"`
	JoinSl        *float64 `json:"join_sl_allocation"`
	JoinCl        *float64 `json:"join_cl_allocation"`
	JoinVacation  *float64 `json:"join_vacation_allocation"`
}

func (s *AdminService) CreateProfile(ctx context.Context, in CreateProfileInput) (*models.EmployeeProfile, error) {
	if in.EmployeeCode == "" || in.UserID == "" {
		return nil, ErrProfileInvalid
	}
	var existing models.EmployeeProfile
	if err := s.DB.WithContext(ctx).Where("employee_code = ?", in.EmployeeCode).First(&existing).Error; err == nil {
		return nil, ErrProfileExists
	}

	profile := &models.EmployeeProfile{
		EmployeeCode:           in.EmployeeCode,
		UserID:                 in.UserID,
		JoinElAllocation:       in.JoinEl,
		JoinSlAllocation:       in.JoinSl,
		JoinClAllocation:       in.JoinCl,
		JoinVacationAllocation: in.JoinVacation,
	}
	if in.Designation != "" {
		profile.Designation = &in.Designation
	}
	if in.Department != "" {
		profile.Department = &in.Department
	}
	if in.ActualJoining != "" {
		aj, err := validation.ParseDate(in.ActualJoining)
		if err != nil {
			return nil, ErrInvalidDate
		}
		profile.ActualJoining = &aj
	}
	if err := s.DB.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfileByUser returns the profile linked to a login identity.
func (s *AdminService) GetProfileByUser(ctx context.Context, userIdentity string) (*models.EmployeeProfile, error) {
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
	return &profile, nil
}

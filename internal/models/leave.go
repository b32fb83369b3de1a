package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeavePeriod is a fiscal/leave year window. Exactly one period is expected
// to be active at a time; rollover flips the flags, never the dates.
type LeavePeriod struct {
	PeriodID  uuid.UUID      `gorm:"column:period_id;type:uuid;primaryKey" json:"period_id"`
	StartDate time.Time      `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate   time.Time      `gorm:"column:end_date;type:date;not null" json:"end_date"`
	IsActive  bool           `gorm:"column:is_active;not null;default:false;index" json:"is_active"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LeavePeriod) TableName() string {
	return "LeavePeriods"
}

func (p *LeavePeriod) BeforeCreate(tx *gorm.DB) error {
	if p.PeriodID == uuid.Nil {
		p.PeriodID = uuid.New()
	}
	return nil
}

// LeaveType is a category of leave. Code drives category matching (el/sl/cl
// prefixes, anything else falls in the vacation bucket).
type LeaveType struct {
	LeaveTypeID uuid.UUID      `gorm:"column:leave_type_id;type:uuid;primaryKey" json:"leave_type_id"`
	Code        string         `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LeaveType) TableName() string {
	return "LeaveTypes"
}

func (t *LeaveType) BeforeCreate(tx *gorm.DB) error {
	if t.LeaveTypeID == uuid.Nil {
		t.LeaveTypeID = uuid.New()
	}
	return nil
}

// LeaveAllocation is the per-(profile, period, leave-type) grant, created by
// HR when a period is set up. Read-only to the balance calculator.
type LeaveAllocation struct {
	AllocationID uuid.UUID  `gorm:"column:allocation_id;type:uuid;primaryKey" json:"allocation_id"`
	ProfileID    uuid.UUID  `gorm:"column:profile_id;type:uuid;not null;index:idx_alloc_profile_period" json:"profile_id"`
	PeriodID     uuid.UUID  `gorm:"column:period_id;type:uuid;not null;index:idx_alloc_profile_period" json:"period_id"`
	LeaveTypeID  uuid.UUID  `gorm:"column:leave_type_id;type:uuid;not null" json:"leave_type_id"`
	Allocated    float64    `gorm:"column:allocated;type:decimal(6,2);not null;default:0" json:"allocated"`
	LeaveType    *LeaveType `gorm:"foreignKey:LeaveTypeID;references:LeaveTypeID" json:"leave_type,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LeaveAllocation) TableName() string {
	return "LeaveAllocations"
}

func (a *LeaveAllocation) BeforeCreate(tx *gorm.DB) error {
	if a.AllocationID == uuid.Nil {
		a.AllocationID = uuid.New()
	}
	return nil
}

// LeaveBalanceSnapshot is a recorded balance as of a date, written by the
// period-rollover process and used as the carry-forward baseline.
type LeaveBalanceSnapshot struct {
	SnapshotID      uuid.UUID      `gorm:"column:snapshot_id;type:uuid;primaryKey" json:"snapshot_id"`
	ProfileID       uuid.UUID      `gorm:"column:profile_id;type:uuid;not null;index" json:"profile_id"`
	BalanceDate     time.Time      `gorm:"column:balance_date;type:date;not null" json:"balance_date"`
	ElBalance       float64        `gorm:"column:el_balance;type:decimal(6,2);not null;default:0" json:"el_balance"`
	SlBalance       float64        `gorm:"column:sl_balance;type:decimal(6,2);not null;default:0" json:"sl_balance"`
	ClBalance       float64        `gorm:"column:cl_balance;type:decimal(6,2);not null;default:0" json:"cl_balance"`
	VacationBalance float64        `gorm:"column:vacation_balance;type:decimal(6,2);not null;default:0" json:"vacation_balance"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LeaveBalanceSnapshot) TableName() string {
	return "LeaveBalanceSnapshots"
}

func (s *LeaveBalanceSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.SnapshotID == uuid.Nil {
		s.SnapshotID = uuid.New()
	}
	return nil
}

// LeaveEntry is a leave usage record filed by an employee. It references the
// external employee code, not the profile id, so usage aggregation joins
// through EmployeeProfile.
type LeaveEntry struct {
	EntryID      uuid.UUID  `gorm:"column:entry_id;type:uuid;primaryKey" json:"entry_id"`
	EmployeeCode string     `gorm:"column:employee_code;not null;index" json:"employee_code"`
	LeaveType    string     `gorm:"column:leave_type;not null" json:"leave_type"`
	StartDate    time.Time  `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate      time.Time  `gorm:"column:end_date;type:date;not null" json:"end_date"`
	TotalDays    float64    `gorm:"column:total_days;type:decimal(6,2);not null" json:"total_days"`
	Reason       *string    `gorm:"column:reason" json:"reason"`
	Status       string     `gorm:"column:status;not null;default:Pending;index" json:"status"`
	ReviewedBy   *string    `gorm:"column:reviewed_by" json:"reviewed_by"`
	ReviewRemark *string    `gorm:"column:review_remark" json:"review_remark"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LeaveEntry) TableName() string {
	return "LeaveEntries"
}

func (e *LeaveEntry) BeforeCreate(tx *gorm.DB) error {
	if e.EntryID == uuid.Nil {
		e.EntryID = uuid.New()
	}
	return nil
}

// Leave entry statuses.
const (
	LeaveStatusPending  = "Pending"
	LeaveStatusApproved = "Approved"
	LeaveStatusRejected = "Rejected"
)

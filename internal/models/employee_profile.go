package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeProfile is the HR record of a person eligible for leave. It links a
// login identity (user_id string) to the external employee code that leave
// entries are filed under. The Join* columns hold the special joining-year
// allocation per leave category; ActualJoining drives proration for staff who
// joined mid-period.
type EmployeeProfile struct {
	ProfileID     uuid.UUID  `gorm:"column:profile_id;type:uuid;primaryKey" json:"profile_id"`
	EmployeeCode  string     `gorm:"column:employee_code;not null;uniqueIndex" json:"employee_code"`
	UserID        string     `gorm:"column:userid;not null;index" json:"userid"`
	Designation   *string    `gorm:"column:designation" json:"designation"`
	Department    *string    `gorm:"column:department" json:"department"`
	ActualJoining *time.Time `gorm:"column:actual_joining;type:date" json:"actual_joining"`

	JoinElAllocation       *float64 `gorm:"column:join_el_allocation;type:decimal(6,2)" json:"join_el_allocation"`
	JoinSlAllocation       *float64 `gorm:"column:join_sl_allocation;type:decimal(6,2)" json:"join_sl_allocation"`
	JoinClAllocation       *float64 `gorm:"column:join_cl_allocation;type:decimal(6,2)" json:"join_cl_allocation"`
	JoinVacationAllocation *float64 `gorm:"column:join_vacation_allocation;type:decimal(6,2)" json:"join_vacation_allocation"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (EmployeeProfile) TableName() string {
	return "EmployeeProfiles"
}

func (p *EmployeeProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ProfileID == uuid.Nil {
		p.ProfileID = uuid.New()
	}
	return nil
}

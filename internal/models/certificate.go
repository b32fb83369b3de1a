package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate is a migration or provisional certificate record. SerialNo is
// generated as <TYPE>/<year>/<seq> when the record is created. Details holds
// the free-form certificate body fields (course, board, remarks) as JSON.
type Certificate struct {
	CertificateID uuid.UUID      `gorm:"column:certificate_id;type:uuid;primaryKey" json:"certificate_id"`
	StudentName   string         `gorm:"column:student_name;not null" json:"student_name"`
	RollNumber    string         `gorm:"column:roll_number;not null;index" json:"roll_number"`
	CertType      string         `gorm:"column:cert_type;not null;index" json:"cert_type"`
	SerialNo      string         `gorm:"column:serial_no;not null;uniqueIndex" json:"serial_no"`
	Status        string         `gorm:"column:status;not null;default:issued" json:"status"`
	Details       datatypes.JSON `gorm:"column:details;type:jsonb" json:"details,omitempty"`
	IssuedBy      string         `gorm:"column:issued_by;not null" json:"issued_by"`
	IssuedAt      time.Time      `gorm:"column:issued_at;not null" json:"issued_at"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Certificate) TableName() string {
	return "Certificates"
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.CertificateID == uuid.Nil {
		c.CertificateID = uuid.New()
	}
	return nil
}

// Certificate types and statuses.
const (
	CertTypeMigration   = "MIGRATION"
	CertTypeProvisional = "PROVISIONAL"

	CertStatusIssued    = "issued"
	CertStatusCancelled = "cancelled"
)

package certificates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campus-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service issues and tracks student certificates.
type Service struct {
	DB *gorm.DB
}

// CreateInput for issuing a certificate.
type CreateInput struct {
	StudentName string         `json:"student_name"`
	RollNumber  string         `json:"roll_number"`
	CertType    string         `json:"cert_type"`
	Details     datatypes.JSON `json:"details"`
}

// Create issues a certificate with a serial of the form <TYPE>/<year>/<seq>,
// where seq counts certificates of that type issued in the same year. The
// count and insert run in one transaction so concurrent issues cannot collide
// on the unique serial.
func (s *Service) Create(ctx context.Context, issuedBy uuid.UUID, in CreateInput) (*models.Certificate, error) {
	name := strings.TrimSpace(in.StudentName)
	if name == "" {
		return nil, ErrStudentNameRequired
	}
	roll := strings.TrimSpace(in.RollNumber)
	if roll == "" {
		return nil, ErrRollNumberRequired
	}
	certType := strings.ToUpper(strings.TrimSpace(in.CertType))
	switch certType {
	case models.CertTypeMigration, models.CertTypeProvisional:
	default:
		return nil, ErrUnknownCertType
	}

	now := time.Now().UTC()
	cert := &models.Certificate{
		StudentName: name,
		RollNumber:  roll,
		CertType:    certType,
		Status:      models.CertStatusIssued,
		Details:     in.Details,
		IssuedBy:    issuedBy.String(),
		IssuedAt:    now,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		if err := tx.Model(&models.Certificate{}).
			Where("cert_type = ? AND issued_at >= ?", certType, yearStart).
			Count(&count).Error; err != nil {
			return err
		}
		cert.SerialNo = fmt.Sprintf("%s/%d/%04d", certType, now.Year(), count+1)
		return tx.Create(cert).Error
	})
	if err != nil {
		return nil, err
	}
	return cert, nil
}

// ListByRoll returns every certificate issued for a roll number, newest first.
func (s *Service) ListByRoll(ctx context.Context, rollNumber string) ([]models.Certificate, error) {
	roll := strings.TrimSpace(rollNumber)
	if roll == "" {
		return nil, ErrRollNumberRequired
	}
	var certs []models.Certificate
	if err := s.DB.WithContext(ctx).
		Where("roll_number = ?", roll).
		Order("issued_at DESC").
		Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

// UpdateStatus moves a certificate between issued and cancelled.
func (s *Service) UpdateStatus(ctx context.Context, certID string, status string) (*models.Certificate, error) {
	switch status {
	case models.CertStatusIssued, models.CertStatusCancelled:
	default:
		return nil, ErrUnknownStatus
	}
	id, err := uuid.Parse(certID)
	if err != nil {
		return nil, ErrCertificateNotFound
	}
	var cert models.Certificate
	if err := s.DB.WithContext(ctx).Where("certificate_id = ?", id).First(&cert).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&cert).Update("status", status).Error; err != nil {
		return nil, err
	}
	cert.Status = status
	return &cert, nil
}

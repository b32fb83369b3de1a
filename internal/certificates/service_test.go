package certificates

import (
	"context"
	"fmt"
	"testing"
	"time"

	"campus-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCertTest(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Certificate{}))
	return &Service{DB: db}
}

func TestCreate_SerialFormatAndSequencing(t *testing.T) {
	svc := setupCertTest(t)
	ctx := context.Background()
	issuer := uuid.New()
	year := time.Now().UTC().Year()

	first, err := svc.Create(ctx, issuer, CreateInput{
		StudentName: "Asha Verma",
		RollNumber:  "CS-2020-014",
		CertType:    "migration",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("MIGRATION/%d/0001", year), first.SerialNo)
	assert.Equal(t, models.CertStatusIssued, first.Status)
	assert.Equal(t, models.CertTypeMigration, first.CertType)

	second, err := svc.Create(ctx, issuer, CreateInput{
		StudentName: "Rohit Sen",
		RollNumber:  "CS-2020-031",
		CertType:    "MIGRATION",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("MIGRATION/%d/0002", year), second.SerialNo)

	// A different type sequences independently.
	prov, err := svc.Create(ctx, issuer, CreateInput{
		StudentName: "Asha Verma",
		RollNumber:  "CS-2020-014",
		CertType:    "provisional",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PROVISIONAL/%d/0001", year), prov.SerialNo)
}

func TestCreate_Validation(t *testing.T) {
	svc := setupCertTest(t)
	ctx := context.Background()
	issuer := uuid.New()

	_, err := svc.Create(ctx, issuer, CreateInput{RollNumber: "R1", CertType: "migration"})
	assert.ErrorIs(t, err, ErrStudentNameRequired)

	_, err = svc.Create(ctx, issuer, CreateInput{StudentName: "A", CertType: "migration"})
	assert.ErrorIs(t, err, ErrRollNumberRequired)

	_, err = svc.Create(ctx, issuer, CreateInput{StudentName: "A", RollNumber: "R1", CertType: "degree"})
	assert.ErrorIs(t, err, ErrUnknownCertType)
}

func TestListByRoll(t *testing.T) {
	svc := setupCertTest(t)
	ctx := context.Background()
	issuer := uuid.New()

	_, err := svc.Create(ctx, issuer, CreateInput{StudentName: "A", RollNumber: "R1", CertType: "migration"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, issuer, CreateInput{StudentName: "A", RollNumber: "R1", CertType: "provisional"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, issuer, CreateInput{StudentName: "B", RollNumber: "R2", CertType: "migration"})
	require.NoError(t, err)

	certs, err := svc.ListByRoll(ctx, "R1")
	require.NoError(t, err)
	assert.Len(t, certs, 2)

	_, err = svc.ListByRoll(ctx, "  ")
	assert.ErrorIs(t, err, ErrRollNumberRequired)
}

func TestUpdateStatus(t *testing.T) {
	svc := setupCertTest(t)
	ctx := context.Background()
	issuer := uuid.New()

	cert, err := svc.Create(ctx, issuer, CreateInput{StudentName: "A", RollNumber: "R1", CertType: "migration"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, cert.CertificateID.String(), models.CertStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.CertStatusCancelled, updated.Status)

	_, err = svc.UpdateStatus(ctx, cert.CertificateID.String(), "shredded")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = svc.UpdateStatus(ctx, uuid.NewString(), models.CertStatusIssued)
	assert.ErrorIs(t, err, ErrCertificateNotFound)
}

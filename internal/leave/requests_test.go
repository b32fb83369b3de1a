package leave

import (
	"context"
	"testing"

	"campus-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRequestTest(t *testing.T) (*RequestService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.EmployeeProfile{},
		&models.LeaveType{},
		&models.LeaveEntry{},
	))
	require.NoError(t, db.Create(&models.EmployeeProfile{EmployeeCode: "EMP100", UserID: "user-100"}).Error)
	require.NoError(t, db.Create(&models.LeaveType{Code: "CL", Name: "Casual Leave"}).Error)
	return &RequestService{DB: db}, db
}

func TestApply_CreatesPendingEntryWithInclusiveDays(t *testing.T) {
	svc, _ := setupRequestTest(t)

	entry, err := svc.Apply(context.Background(), "user-100", ApplyInput{
		LeaveType: "CL",
		StartDate: "2024-02-05",
		EndDate:   "2024-02-07",
		Reason:    "family function",
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP100", entry.EmployeeCode)
	assert.Equal(t, models.LeaveStatusPending, entry.Status)
	assert.Equal(t, 3.0, entry.TotalDays) // 5th..7th inclusive
	require.NotNil(t, entry.Reason)
	assert.Equal(t, "family function", *entry.Reason)
}

func TestApply_SingleDayCountsOne(t *testing.T) {
	svc, _ := setupRequestTest(t)

	entry, err := svc.Apply(context.Background(), "user-100", ApplyInput{
		LeaveType: "CL",
		StartDate: "2024-02-05",
		EndDate:   "2024-02-05",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, entry.TotalDays)
	assert.Nil(t, entry.Reason)
}

func TestApply_Validation(t *testing.T) {
	svc, _ := setupRequestTest(t)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "missing-user", ApplyInput{LeaveType: "CL", StartDate: "2024-02-05", EndDate: "2024-02-06"})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = svc.Apply(ctx, "user-100", ApplyInput{LeaveType: "XX", StartDate: "2024-02-05", EndDate: "2024-02-06"})
	assert.ErrorIs(t, err, ErrLeaveTypeUnknown)

	_, err = svc.Apply(ctx, "user-100", ApplyInput{LeaveType: "CL", StartDate: "05-02-2024", EndDate: "2024-02-06"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.Apply(ctx, "user-100", ApplyInput{LeaveType: "CL", StartDate: "2024-02-06", EndDate: "2024-02-05"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestReview_ApproveThenFinal(t *testing.T) {
	svc, _ := setupRequestTest(t)
	ctx := context.Background()

	entry, err := svc.Apply(ctx, "user-100", ApplyInput{LeaveType: "CL", StartDate: "2024-02-05", EndDate: "2024-02-06"})
	require.NoError(t, err)

	reviewed, err := svc.Review(ctx, "hr-user", ReviewInput{
		EntryID: entry.EntryID.String(),
		Action:  "approve",
		Remark:  "ok",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LeaveStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, "hr-user", *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)

	// Second review of the same entry fails.
	_, err = svc.Review(ctx, "hr-user", ReviewInput{EntryID: entry.EntryID.String(), Action: "reject"})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReview_InvalidInputs(t *testing.T) {
	svc, _ := setupRequestTest(t)
	ctx := context.Background()

	_, err := svc.Review(ctx, "hr-user", ReviewInput{EntryID: "not-a-uuid", Action: "approve"})
	assert.ErrorIs(t, err, ErrEntryNotFound)

	entry, err := svc.Apply(ctx, "user-100", ApplyInput{LeaveType: "CL", StartDate: "2024-02-05", EndDate: "2024-02-06"})
	require.NoError(t, err)

	_, err = svc.Review(ctx, "hr-user", ReviewInput{EntryID: entry.EntryID.String(), Action: "escalate"})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestListMineAndPending(t *testing.T) {
	svc, _ := setupRequestTest(t)
	ctx := context.Background()

	first, err := svc.Apply(ctx, "user-100", ApplyInput{LeaveType: "CL", StartDate: "2024-02-05", EndDate: "2024-02-06"})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, "user-100", ApplyInput{LeaveType: "CL", StartDate: "2024-03-05", EndDate: "2024-03-06"})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "user-100")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = svc.Review(ctx, "hr-user", ReviewInput{EntryID: first.EntryID.String(), Action: "reject"})
	require.NoError(t, err)

	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

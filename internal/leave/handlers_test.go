package leave

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"campus-backend/internal/models"
	"campus-backend/internal/pkg/response"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLeaveApp(t *testing.T, user map[string]interface{}) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.EmployeeProfile{},
		&models.LeavePeriod{},
		&models.LeaveType{},
		&models.LeaveAllocation{},
		&models.LeaveBalanceSnapshot{},
		&models.LeaveEntry{},
	))

	h := &Handlers{
		Balance:  &BalanceService{DB: db},
		Requests: &RequestService{DB: db},
		Admin:    &AdminService{DB: db},
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals("user", user)
		}
		return c.Next()
	})
	app.Get("/api/v1/leave/my-balance", h.MyBalance)
	app.Post("/api/v1/leave/apply", h.Apply)
	app.Get("/api/v1/leave/my-entries", h.MyEntries)
	app.Post("/api/v1/leave/periods", h.CreatePeriod)
	app.Patch("/api/v1/leave/periods/:id/activate", h.ActivatePeriod)
	return app, db
}

func sessionUser(id string) map[string]interface{} {
	return map[string]interface{}{"user_id": id, "role": "employee"}
}

func TestMyBalance_Unauthorized(t *testing.T) {
	app, _ := setupLeaveApp(t, nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/leave/my-balance", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMyBalance_NoProfile(t *testing.T) {
	app, _ := setupLeaveApp(t, sessionUser(uuid.New().String()))
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/leave/my-balance", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMyBalance_ReturnsLines(t *testing.T) {
	userID := uuid.New().String()
	app, db := setupLeaveApp(t, sessionUser(userID))

	period := &models.LeavePeriod{StartDate: d(2024, 1, 1), EndDate: d(2024, 12, 31), IsActive: true}
	require.NoError(t, db.Create(period).Error)
	profile := &models.EmployeeProfile{EmployeeCode: "EMP300", UserID: userID}
	require.NoError(t, db.Create(profile).Error)
	seedLeaveType(t, db, profile, period, "EL", "Earned Leave", 12)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/leave/my-balance", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body response.SuccessBody
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	lines, ok := body.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "EL", line["leave_type"])
	assert.Equal(t, 12.0, line["final_balance"])
}

func TestApplyEndpoint_CreatesEntry(t *testing.T) {
	userID := uuid.New().String()
	app, db := setupLeaveApp(t, sessionUser(userID))

	require.NoError(t, db.Create(&models.EmployeeProfile{EmployeeCode: "EMP301", UserID: userID}).Error)
	require.NoError(t, db.Create(&models.LeaveType{Code: "SL", Name: "Sick Leave"}).Error)

	payload, _ := json.Marshal(ApplyInput{LeaveType: "SL", StartDate: "2024-02-05", EndDate: "2024-02-06"})
	req := httptest.NewRequest("POST", "/api/v1/leave/apply", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	db.Model(&models.LeaveEntry{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestApplyEndpoint_UnknownType(t *testing.T) {
	userID := uuid.New().String()
	app, db := setupLeaveApp(t, sessionUser(userID))
	require.NoError(t, db.Create(&models.EmployeeProfile{EmployeeCode: "EMP302", UserID: userID}).Error)

	payload, _ := json.Marshal(ApplyInput{LeaveType: "NOPE", StartDate: "2024-02-05", EndDate: "2024-02-06"})
	req := httptest.NewRequest("POST", "/api/v1/leave/apply", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestActivatePeriod_DeactivatesOthers(t *testing.T) {
	app, db := setupLeaveApp(t, sessionUser(uuid.New().String()))

	older := &models.LeavePeriod{StartDate: d(2023, 1, 1), EndDate: d(2023, 12, 31), IsActive: true}
	require.NoError(t, db.Create(older).Error)
	newer := &models.LeavePeriod{StartDate: d(2024, 1, 1), EndDate: d(2024, 12, 31)}
	require.NoError(t, db.Create(newer).Error)

	req := httptest.NewRequest("PATCH", "/api/v1/leave/periods/"+newer.PeriodID.String()+"/activate", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var active []models.LeavePeriod
	require.NoError(t, db.Where("is_active = ?", true).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, newer.PeriodID, active[0].PeriodID)
}

func TestActivatePeriod_NotFound(t *testing.T) {
	app, _ := setupLeaveApp(t, sessionUser(uuid.New().String()))
	req := httptest.NewRequest("PATCH", "/api/v1/leave/periods/"+uuid.New().String()+"/activate", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

package leave

import (
	"context"
	"math"
	"strings"
	"time"

	"campus-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Leave categories derived from a leave type code.
const (
	categoryEL       = "el"
	categorySL       = "sl"
	categoryCL       = "cl"
	categoryVacation = "vacation"
)

// defaultUsageStatuses is the policy for which entry statuses consume balance.
// Pending entries count so an employee cannot over-request while approval is
// in flight. Overridable via LEAVE_USAGE_STATUSES.
var defaultUsageStatuses = []string{models.LeaveStatusApproved, models.LeaveStatusPending}

// BalanceService computes live per-leave-type balances for an employee
// against the active leave period. It only ever reads; allocations, snapshots
// and entries are written elsewhere.
type BalanceService struct {
	DB *gorm.DB

	// UsageStatuses is the set of entry statuses that count toward usage.
	// Empty means the default {Approved, Pending}.
	UsageStatuses []string
}

// BalanceLine is one computed row per allocation, returned to the caller and
// never persisted.
//
// FinalBalance sums the nominal (unprorated) period allocation even when a
// prorated figure is computed for display. That matches the historical
// behavior this service replaces; see the balance tests before "fixing" it.
type BalanceLine struct {
	LeaveType          string  `json:"leave_type"`
	LeaveTypeName      string  `json:"leave_type_name"`
	PreviousBalance    float64 `json:"previous_balance"`
	JoiningAllocation  float64 `json:"joining_allocation"`
	PeriodAllocation   float64 `json:"period_allocation"`
	ProratedAllocation float64 `json:"prorated_allocation"`
	Used               float64 `json:"used"`
	FinalBalance       float64 `json:"final_balance"`
}

// ComputeBalances resolves the user's employee profile and the active period,
// then emits one BalanceLine per allocation:
//
//	final = round2(previous + joining + allocated - used)
//
// Lookups inside the per-allocation loop (snapshot, usage) degrade to zero
// instead of failing, so one missing snapshot never aborts the whole result.
func (s *BalanceService) ComputeBalances(ctx context.Context, userIdentity string) ([]BalanceLine, error) {
	if strings.TrimSpace(userIdentity) == "" {
		return nil, ErrIdentityRequired
	}

	var profile models.EmployeeProfile
	if err := s.DB.WithContext(ctx).Where("userid = ?", userIdentity).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	period, err := s.activePeriod(ctx)
	if err != nil {
		return nil, err
	}

	var allocations []models.LeaveAllocation
	if err := s.DB.WithContext(ctx).
		Preload("LeaveType").
		Where("profile_id = ? AND period_id = ?", profile.ProfileID, period.PeriodID).
		Find(&allocations).Error; err != nil {
		return nil, err
	}

	periodDays := daysInclusive(period.StartDate, period.EndDate)
	lines := make([]BalanceLine, 0, len(allocations))
	for _, alloc := range allocations {
		if alloc.LeaveType == nil {
			log.Warn().Str("allocation_id", alloc.AllocationID.String()).Msg("allocation without leave type, skipped")
			continue
		}
		code := alloc.LeaveType.Code
		cat := category(code)

		previous := s.previousBalance(ctx, profile.ProfileID, period.StartDate, cat)
		joining := joiningAllocation(&profile, code)

		prorated := alloc.Allocated
		if aj := profile.ActualJoining; aj != nil && aj.After(period.StartDate) && !aj.After(period.EndDate) {
			remaining := daysInclusive(*aj, period.EndDate)
			prorated = round2(alloc.Allocated * float64(remaining) / float64(periodDays))
		}

		used := s.GetUsedDays(ctx, profile.ProfileID, code, period.PeriodID)

		lines = append(lines, BalanceLine{
			LeaveType:          code,
			LeaveTypeName:      alloc.LeaveType.Name,
			PreviousBalance:    previous,
			JoiningAllocation:  joining,
			PeriodAllocation:   alloc.Allocated,
			ProratedAllocation: prorated,
			Used:               used,
			FinalBalance:       round2(previous + joining + alloc.Allocated - used),
		})
	}
	return lines, nil
}

// GetUsedDays sums total_days of leave entries for the profile's employee
// code, exact leave code, within the period window, restricted to the usage
// status set. A missing period or profile yields 0, never an error — callers
// must treat 0 as ambiguous between "no usage" and "not found".
func (s *BalanceService) GetUsedDays(ctx context.Context, profileID uuid.UUID, leaveCode string, periodID uuid.UUID) float64 {
	var period models.LeavePeriod
	if err := s.DB.WithContext(ctx).Where("period_id = ?", periodID).First(&period).Error; err != nil {
		return 0
	}
	var profile models.EmployeeProfile
	if err := s.DB.WithContext(ctx).Where("profile_id = ?", profileID).First(&profile).Error; err != nil {
		return 0
	}

	var total float64
	err := s.DB.WithContext(ctx).
		Model(&models.LeaveEntry{}).
		Select("COALESCE(SUM(total_days), 0)").
		Where("employee_code = ? AND leave_type = ? AND start_date >= ? AND end_date <= ? AND status IN ?",
			profile.EmployeeCode, leaveCode, period.StartDate, period.EndDate, s.statuses()).
		Scan(&total).Error
	if err != nil {
		return 0
	}
	return total
}

// activePeriod returns the single active period. More than one active period
// is a data-integrity violation upstream; the newest one wins and a warning
// is logged so operators can repair the flags.
func (s *BalanceService) activePeriod(ctx context.Context) (*models.LeavePeriod, error) {
	var periods []models.LeavePeriod
	if err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, ErrNoActivePeriod
	}
	if len(periods) > 1 {
		log.Warn().Int("count", len(periods)).
			Str("picked", periods[0].PeriodID.String()).
			Msg("multiple active leave periods, using most recently created")
	}
	return &periods[0], nil
}

// previousBalance reads the category field of the latest snapshot at or
// before asOf. No snapshot means no carried balance.
func (s *BalanceService) previousBalance(ctx context.Context, profileID uuid.UUID, asOf time.Time, cat string) float64 {
	var snap models.LeaveBalanceSnapshot
	err := s.DB.WithContext(ctx).
		Where("profile_id = ? AND balance_date <= ?", profileID, asOf).
		Order("balance_date DESC").
		First(&snap).Error
	if err != nil {
		return 0
	}
	switch cat {
	case categoryEL:
		return snap.ElBalance
	case categorySL:
		return snap.SlBalance
	case categoryCL:
		return snap.ClBalance
	default:
		return snap.VacationBalance
	}
}

func (s *BalanceService) statuses() []string {
	if len(s.UsageStatuses) == 0 {
		return defaultUsageStatuses
	}
	return s.UsageStatuses
}

// category maps a leave type code to its category by case-insensitive prefix.
func category(code string) string {
	lc := strings.ToLower(code)
	switch {
	case strings.HasPrefix(lc, categoryEL):
		return categoryEL
	case strings.HasPrefix(lc, categorySL):
		return categorySL
	case strings.HasPrefix(lc, categoryCL):
		return categoryCL
	default:
		return categoryVacation
	}
}

// joiningAllocation reads the profile's joining-year grant for a code.
// This matches by substring while category() matches by prefix — the
// asymmetry is inherited from the system this replaces and is kept so
// existing data keeps reading the same; see the asymmetry test.
func joiningAllocation(p *models.EmployeeProfile, code string) float64 {
	lc := strings.ToLower(code)
	switch {
	case strings.Contains(lc, categoryEL):
		return deref(p.JoinElAllocation)
	case strings.Contains(lc, categorySL):
		return deref(p.JoinSlAllocation)
	case strings.Contains(lc, categoryCL):
		return deref(p.JoinClAllocation)
	default:
		return deref(p.JoinVacationAllocation)
	}
}

// daysInclusive counts whole days from a through b, both included. Dates are
// stored at midnight UTC, so hour arithmetic is exact.
func daysInclusive(a, b time.Time) int {
	return int(b.Sub(a).Hours()/24) + 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

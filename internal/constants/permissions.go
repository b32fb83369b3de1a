package constants

const (
	ViewRecords       = "view_records"
	ApplyLeave        = "apply_leave"
	ApproveLeave      = "approve_leave"
	ManagePeriods     = "manage_periods"
	ManageAllocations = "manage_allocations"
	RecordSnapshot    = "record_snapshot"
	ManageProfiles    = "manage_profiles"
	IssueCertificate  = "issue_certificate"
	CreateUser        = "create_user"
	RemoveUser        = "remove_user"
	AssignRole        = "assign_role"
)

package constants

// PermissionRoles maps each permission to roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewRecords:       {Employee, Faculty, HR, Admin},
	ApplyLeave:        {Employee, Faculty, HR, Admin},
	ApproveLeave:      {HR, Admin},
	ManagePeriods:     {HR, Admin},
	ManageAllocations: {HR, Admin},
	RecordSnapshot:    {HR, Admin},
	ManageProfiles:    {HR, Admin},
	IssueCertificate:  {HR, Admin},
	CreateUser:        {Admin},
	RemoveUser:        {Admin},
	AssignRole:        {Admin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

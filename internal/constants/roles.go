package constants

// Roles, lowest to highest privilege.
const (
	Employee = "employee"
	Faculty  = "faculty"
	HR       = "hr"
	Admin    = "admin"
)

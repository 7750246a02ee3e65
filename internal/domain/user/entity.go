package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // HR operations, including payroll runs
	RoleEmployee Role = "employee" // Self-service only
)

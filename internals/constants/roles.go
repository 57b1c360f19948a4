package constants

const (
	RoleAdmin = "admin"
	RoleTutor = "tutor"
	RoleOwner = "owner"
)

// Roles allowed on the admin API group.
var AdminRoles = []string{RoleOwner, RoleAdmin}

// Roles allowed to enter lesson reports.
var ReportRoles = []string{RoleOwner, RoleAdmin, RoleTutor}

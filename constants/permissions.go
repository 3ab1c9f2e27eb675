package constants

// Token permissions
const (
	// Create, update and delete hajj packages
	PermHajjPackageManage = "hajj-packages.manage"
	// Full access to every protected route
	PermSuperAdminFull = "abdullateef.super-admin.full-permit"
)

// Permission groups for convenience
var (
	HajjPackageWritePermissions = []string{
		PermHajjPackageManage,
		PermSuperAdminFull,
	}
)

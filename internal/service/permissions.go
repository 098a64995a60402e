package service

import "github.com/smiley-shop/smiley/internal/constants"

// rolePermissions is the single source of truth for what each back-office
// role may do. Roles never gain permissions anywhere else.
var rolePermissions = map[string][]string{
	constants.AdminRoleAdmin: {
		constants.PermProductsRead,
		constants.PermProductsWrite,
		constants.PermOrdersRead,
		constants.PermOrdersWrite,
		constants.PermContentRead,
		constants.PermContentWrite,
		constants.PermAnalyticsRead,
	},
	constants.AdminRoleSuperAdmin: {
		constants.PermProductsRead,
		constants.PermProductsWrite,
		constants.PermProductsDelete,
		constants.PermOrdersRead,
		constants.PermOrdersWrite,
		constants.PermOrdersDelete,
		constants.PermContentRead,
		constants.PermContentWrite,
		constants.PermContentDelete,
		constants.PermUsersRead,
		constants.PermUsersWrite,
		constants.PermUsersDelete,
		constants.PermSettingsRead,
		constants.PermSettingsWrite,
		constants.PermAnalyticsRead,
	},
}

// PermissionsForRole returns a copy of the role's permission set
func PermissionsForRole(role string) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// RoleHasPermission checks one permission against the table
func RoleHasPermission(role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// IsValidAdminRole reports whether a role is part of the table
func IsValidAdminRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

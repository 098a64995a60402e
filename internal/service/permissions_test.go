package service

import (
	"testing"

	"github.com/smiley-shop/smiley/internal/constants"
)

func TestAdminRoleNeverManagesUsersOrSettings(t *testing.T) {
	denied := []string{
		constants.PermUsersRead,
		constants.PermUsersWrite,
		constants.PermUsersDelete,
		constants.PermSettingsRead,
		constants.PermSettingsWrite,
		constants.PermProductsDelete,
		constants.PermOrdersDelete,
		constants.PermContentDelete,
	}
	for _, perm := range denied {
		if RoleHasPermission(constants.AdminRoleAdmin, perm) {
			t.Fatalf("admin role must not have %s", perm)
		}
	}
}

func TestAdminRoleDayToDayPermissions(t *testing.T) {
	granted := []string{
		constants.PermProductsRead,
		constants.PermProductsWrite,
		constants.PermOrdersRead,
		constants.PermOrdersWrite,
		constants.PermContentRead,
		constants.PermContentWrite,
		constants.PermAnalyticsRead,
	}
	for _, perm := range granted {
		if !RoleHasPermission(constants.AdminRoleAdmin, perm) {
			t.Fatalf("admin role missing %s", perm)
		}
	}
}

func TestSuperAdminHasEveryPermission(t *testing.T) {
	for _, perm := range []string{
		constants.PermProductsRead, constants.PermProductsWrite, constants.PermProductsDelete,
		constants.PermOrdersRead, constants.PermOrdersWrite, constants.PermOrdersDelete,
		constants.PermContentRead, constants.PermContentWrite, constants.PermContentDelete,
		constants.PermUsersRead, constants.PermUsersWrite, constants.PermUsersDelete,
		constants.PermSettingsRead, constants.PermSettingsWrite,
		constants.PermAnalyticsRead,
	} {
		if !RoleHasPermission(constants.AdminRoleSuperAdmin, perm) {
			t.Fatalf("super_admin missing %s", perm)
		}
	}
}

func TestUnknownRoleHasNothing(t *testing.T) {
	if RoleHasPermission("editor", constants.PermProductsRead) {
		t.Fatalf("unknown role must have no permissions")
	}
	if perms := PermissionsForRole("editor"); perms != nil {
		t.Fatalf("unknown role want nil permissions got %v", perms)
	}
	if IsValidAdminRole("editor") {
		t.Fatalf("unknown role must not validate")
	}
}

func TestPermissionsForRoleReturnsCopy(t *testing.T) {
	perms := PermissionsForRole(constants.AdminRoleAdmin)
	if len(perms) == 0 {
		t.Fatalf("admin role has no permissions")
	}
	perms[0] = "tampered"
	if RoleHasPermission(constants.AdminRoleAdmin, "tampered") {
		t.Fatalf("mutating the returned slice must not change the table")
	}
}

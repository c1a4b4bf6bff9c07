package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbac-admin/rbac-admin/internal/admin/admintest"
	"github.com/rbac-admin/rbac-admin/internal/admin/role"
	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/db/dbtest"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
	"github.com/rbac-admin/rbac-admin/internal/db/store"
)

func setup(t *testing.T) (*admintest.Env, *role.Service) {
	t.Helper()

	env := admintest.New(t)

	return env, role.New(env.Store, env.Gate, env.Validator)
}

func roleByName(t *testing.T, env *admintest.Env, name string) *models.Role {
	t.Helper()

	r, err := env.Store.RoleByName(t.Context(), name)
	require.NoError(t, err)

	return r
}

func TestCreateRole(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermRolesCreate, auth.PermRolesIndex)
	perms := dbtest.Permissions(t, env.Store, "reports view", "reports export")

	res, err := svc.Create(t.Context(), admin, role.Input{Name: "auditor", Permissions: dbtest.IDs(perms)})
	require.NoError(t, err)
	assert.Equal(t, role.Path, res.Redirect)

	list, err := svc.List(t.Context(), admin, store.ListQuery{Search: "audit", Page: 1})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	got := list.Items[0]
	assert.Equal(t, "auditor", got.Name)
	require.Len(t, got.Permissions, 2)
	assert.Equal(t, "reports export", got.Permissions[0].Name, "permissions are eager loaded by name")
}

func TestCreateRoleValidation(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermRolesCreate)
	perms := dbtest.Permissions(t, env.Store, "reports view")
	dbtest.Role(t, env.Store, "auditor", "reports view")

	tests := []struct {
		name   string
		input  role.Input
		field  string
		reason string
	}{
		{name: "missing permissions", input: role.Input{Name: "viewer"}, field: "permissions", reason: apperr.ReasonRequired},
		{name: "empty permissions", input: role.Input{Name: "viewer", Permissions: []uint{}}, field: "permissions", reason: apperr.ReasonRequired},
		{name: "unknown permission", input: role.Input{Name: "viewer", Permissions: []uint{perms[0].ID, 777}}, field: "permissions", reason: apperr.ReasonExists},
		{name: "name taken", input: role.Input{Name: "auditor", Permissions: dbtest.IDs(perms)}, field: "name", reason: apperr.ReasonUnique},
		{name: "short name", input: role.Input{Name: "ab", Permissions: dbtest.IDs(perms)}, field: "name", reason: apperr.ReasonMin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(t.Context(), admin, tt.input)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has(tt.field, tt.reason), verr.Error())
		})
	}

	_, err := env.Store.RoleByName(t.Context(), "viewer")
	assert.True(t, apperr.IsNotFound(err), "no role is created on a validation failure")
}

// Creating a role and a user holding it gives the user exactly the role's permissions.
func TestRoleGrantsPermissionsToUsers(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermRolesCreate)
	perms := dbtest.Permissions(t, env.Store, "reports view")

	_, err := svc.Create(t.Context(), admin, role.Input{Name: "auditor", Permissions: dbtest.IDs(perms)})
	require.NoError(t, err)

	u := dbtest.User(t, env.Store, "audit@example.com", roleByName(t, env, "auditor"))

	set, err := env.Resolver.Effective(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"reports view"}, set.Names())
}

// Syncing a role to an empty permission set is rejected and leaves the set untouched.
func TestUpdateRoleRejectsEmptySelection(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermRolesEdit)
	auditor := dbtest.Role(t, env.Store, "auditor", "reports view")

	_, err := svc.Update(t.Context(), admin, auditor.ID, role.Input{Name: "auditor", Permissions: []uint{}})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("permissions", apperr.ReasonRequired))

	ids, err := env.Store.RolePermissionIDs(t.Context(), auditor.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestUpdateRoleSyncs(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermRolesEdit)
	perms := dbtest.Permissions(t, env.Store, "reports view", "reports export", "reports delete")
	auditor := dbtest.Role(t, env.Store, "auditor", "reports view", "reports export")

	want := []uint{perms[1].ID, perms[2].ID}

	for range 2 {
		_, err := svc.Update(t.Context(), admin, auditor.ID, role.Input{Name: "auditor", Permissions: want})
		require.NoError(t, err)

		ids, err := env.Store.RolePermissionIDs(t.Context(), auditor.ID)
		require.NoError(t, err)
		assert.Equal(t, want, ids)
	}

	_, err := svc.Update(t.Context(), admin, auditor.ID, role.Input{Name: "chief auditor", Permissions: want})
	require.NoError(t, err)
	assert.Equal(t, "chief auditor", roleByName(t, env, "chief auditor").Name)

	_, err = svc.Update(t.Context(), admin, 999, role.Input{Name: "ghost", Permissions: want})
	assert.True(t, apperr.IsNotFound(err))
}

// Deleting a role recomputes the effective set of its former users.
func TestDeleteRoleRevokesPermissions(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermRolesDelete)
	auditor := dbtest.Role(t, env.Store, "auditor", "reports view")
	u := dbtest.User(t, env.Store, "audit@example.com", auditor)

	ok, err := env.Principal(u.ID).Can(t.Context(), "reports view")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Delete(t.Context(), admin, auditor.ID)
	require.NoError(t, err)

	ok, err = env.Principal(u.ID).Can(t.Context(), "reports view")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := env.Store.UserRoleIDs(t.Context(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDeleteRoleRequiresPermission(t *testing.T) {
	env, svc := setup(t)
	auditor := dbtest.Role(t, env.Store, "auditor", "reports view")

	viewer := env.Actor(t, auth.PermRolesIndex)

	_, err := svc.Delete(t.Context(), viewer, auditor.ID)
	assert.True(t, apperr.IsAuthorization(err))

	_, err = env.Store.GetRole(t.Context(), auditor.ID)
	require.NoError(t, err, "the role survives a denied delete")

	deleter := env.Actor(t, auth.PermRolesDelete)

	_, err = svc.Delete(t.Context(), deleter, auditor.ID)
	require.NoError(t, err)
}

func TestForms(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermRolesCreate, auth.PermRolesEdit)
	dbtest.Permissions(t, env.Store, "users index", "reports view", "reports export")
	auditor := dbtest.Role(t, env.Store, "auditor", "reports view")

	form, err := svc.CreateForm(t.Context(), admin)
	require.NoError(t, err)
	assert.Nil(t, form.Role)

	groupNames := make([]string, 0, len(form.Groups))
	for _, g := range form.Groups {
		groupNames = append(groupNames, g.Group)
	}

	assert.Equal(t, []string{"reports", "roles", "users"}, groupNames)
	assert.Equal(t, "reports export", form.Groups[0].Permissions[0].Name)

	form, err = svc.Get(t.Context(), admin, auditor.ID)
	require.NoError(t, err)
	require.NotNil(t, form.Role)
	assert.Equal(t, "auditor", form.Role.Name)
	assert.Len(t, form.PermissionIDs, 1)

	_, err = svc.Get(t.Context(), admin, 999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGroupPermissions(t *testing.T) {
	groups := role.GroupPermissions([]models.Permission{
		{Name: "roles create"},
		{Name: "roles delete"},
		{Name: "single"},
		{Name: "users index"},
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "roles", groups[0].Group)
	assert.Len(t, groups[0].Permissions, 2)
	assert.Equal(t, "single", groups[1].Group, "a name without space is its own group")
	assert.Equal(t, "users", groups[2].Group)
}

package permission_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbac-admin/rbac-admin/internal/admin/admintest"
	"github.com/rbac-admin/rbac-admin/internal/admin/permission"
	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
	"github.com/rbac-admin/rbac-admin/internal/db/store"
)

func setup(t *testing.T) (*admintest.Env, *permission.Service) {
	t.Helper()

	env := admintest.New(t)

	return env, permission.New(env.Store, env.Gate, env.Validator)
}

func TestCreateThenSearch(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermPermissionsCreate, auth.PermPermissionsIndex)

	res, err := svc.Create(t.Context(), admin, permission.Input{Name: "reports view"})
	require.NoError(t, err)
	assert.Equal(t, permission.Path, res.Redirect)
	assert.NotEmpty(t, res.Message)

	list, err := svc.List(t.Context(), admin, store.ListQuery{Search: "reports", Page: 1})
	require.NoError(t, err)

	require.Len(t, list.Items, 1)
	assert.Equal(t, "reports view", list.Items[0].Name)
	assert.Equal(t, "reports", list.Filters.Search)
	assert.Equal(t, 1, list.Pagination.Page)
	assert.Equal(t, store.PageSize, list.Pagination.PageSize)
	assert.Equal(t, int64(1), list.Pagination.Total)
}

func TestCreateValidation(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermPermissionsCreate)

	_, err := svc.Create(t.Context(), admin, permission.Input{Name: "reports view"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{name: "empty", input: "", reason: apperr.ReasonRequired},
		{name: "only spaces", input: "   ", reason: apperr.ReasonRequired},
		{name: "too short", input: "ab", reason: apperr.ReasonMin},
		{name: "too long", input: strings.Repeat("x", 256), reason: apperr.ReasonMax},
		{name: "taken", input: "reports view", reason: apperr.ReasonUnique},
		{name: "taken after trimming", input: " reports view ", reason: apperr.ReasonUnique},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(t.Context(), admin, permission.Input{Name: tt.input})

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has("name", tt.reason), verr.Error())
		})
	}
}

func TestUpdate(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermPermissionsCreate, auth.PermPermissionsEdit)

	for _, n := range []string{"reports view", "reports export"} {
		_, err := svc.Create(t.Context(), admin, permission.Input{Name: n})
		require.NoError(t, err)
	}

	var p models.Permission
	require.NoError(t, env.Store.DB().Where("name = ?", "reports view").First(&p).Error)

	_, err := svc.Update(t.Context(), admin, p.ID, permission.Input{Name: "reports view"})
	require.NoError(t, err, "keeping the own name is not a collision")

	_, err = svc.Update(t.Context(), admin, p.ID, permission.Input{Name: "reports export"})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Update(t.Context(), admin, p.ID, permission.Input{Name: "reports read"})
	require.NoError(t, err)

	got, err := svc.Get(t.Context(), admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "reports read", got.Name)

	_, err = svc.Update(t.Context(), admin, 999, permission.Input{Name: "whatever"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteRemovesGrants(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermPermissionsDelete)

	holder := env.Actor(t, "reports view")

	ok, err := holder.Can(t.Context(), "reports view")
	require.NoError(t, err)
	require.True(t, ok)

	var p models.Permission
	require.NoError(t, env.Store.DB().Where("name = ?", "reports view").First(&p).Error)

	_, err = svc.Delete(t.Context(), admin, p.ID)
	require.NoError(t, err)

	ok, err = env.Principal(holder.UserID).Can(t.Context(), "reports view")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Delete(t.Context(), admin, p.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGate(t *testing.T) {
	env, svc := setup(t)
	nobody := env.Actor(t)

	_, err := svc.List(t.Context(), nobody, store.ListQuery{})
	assert.True(t, apperr.IsAuthorization(err))

	_, err = svc.Create(t.Context(), nobody, permission.Input{Name: "reports view"})
	assert.True(t, apperr.IsAuthorization(err))

	var count int64
	require.NoError(t, env.Store.DB().Model(&models.Permission{}).Where("name = ?", "reports view").Count(&count).Error)
	assert.Zero(t, count, "nothing is written when the gate denies")

	_, err = svc.Get(t.Context(), nobody, 1)
	assert.True(t, apperr.IsAuthorization(err), "the gate runs before the lookup")

	_, err = svc.Update(t.Context(), nobody, 1, permission.Input{})
	assert.True(t, apperr.IsAuthorization(err))

	_, err = svc.Delete(t.Context(), nobody, 1)
	assert.True(t, apperr.IsAuthorization(err))

	_, err = svc.List(t.Context(), nil, store.ListQuery{})
	assert.True(t, apperr.IsAuthorization(err))
}

func TestListPages(t *testing.T) {
	env, svc := setup(t)
	admin := env.Actor(t, auth.PermPermissionsIndex, auth.PermPermissionsCreate)

	for i := range 10 {
		_, err := svc.Create(t.Context(), admin, permission.Input{Name: fmt.Sprintf("bulk %02d", i)})
		require.NoError(t, err)
	}

	list, err := svc.List(t.Context(), admin, store.ListQuery{Search: "bulk", Page: 2})
	require.NoError(t, err)
	assert.Len(t, list.Items, 4)
	assert.Equal(t, int64(10), list.Pagination.Total)
	assert.Equal(t, "bulk 03", list.Items[0].Name)

	list, err = svc.List(t.Context(), admin, store.ListQuery{Search: "bulk", Page: 3})
	require.NoError(t, err)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
}

// Package role implements the role management screens.
package role

import (
	"context"
	"errors"
	"strings"

	"github.com/rbac-admin/rbac-admin/internal/admin"
	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
	"github.com/rbac-admin/rbac-admin/internal/db/store"
	"github.com/rbac-admin/rbac-admin/internal/validation"
)

// Path is the list route the mutations redirect to.
const Path = "/admin/roles"

// Input is the create and edit form.
type Input struct {
	Name        string `json:"name" validate:"required,min=3,max=255"`
	Permissions []uint `json:"permissions" validate:"required,min=1"`
}

// PermissionGroup lists the permissions sharing a resource prefix.
type PermissionGroup struct {
	Group       string              `json:"group"`
	Permissions []models.Permission `json:"permissions"`
}

// Form is the data of the create and edit screens.
type Form struct {
	Role          *models.Role      `json:"role,omitempty"`
	PermissionIDs []uint            `json:"permission_ids"`
	Groups        []PermissionGroup `json:"groups"`
}

// Service manages roles.
type Service struct {
	store     *store.Store
	gate      *auth.Gate
	validator *validation.Validator
}

// New creates the role service.
func New(s *store.Store, gate *auth.Gate, v *validation.Validator) *Service {
	return &Service{store: s, gate: gate, validator: v}
}

// List returns one page of roles with their permissions.
func (s *Service) List(ctx context.Context, p *auth.Principal, q store.ListQuery) (admin.ListResult[models.Role], error) {
	if err := s.gate.Authorize(ctx, p, auth.PermRolesIndex); err != nil {
		return admin.ListResult[models.Role]{}, err
	}

	page, err := s.store.ListRoles(ctx, q)
	if err != nil {
		return admin.ListResult[models.Role]{}, err
	}

	return admin.NewListResult(page, q, page.Items), nil
}

// CreateForm returns the grouped permissions to choose from.
func (s *Service) CreateForm(ctx context.Context, p *auth.Principal) (Form, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermRolesCreate); err != nil {
		return Form{}, err
	}

	groups, err := s.PermissionGroups(ctx)
	if err != nil {
		return Form{}, err
	}

	return Form{PermissionIDs: []uint{}, Groups: groups}, nil
}

// Get returns the role, its permission ids and the grouped permissions for the edit form.
func (s *Service) Get(ctx context.Context, p *auth.Principal, id uint) (Form, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermRolesEdit); err != nil {
		return Form{}, err
	}

	r, err := s.store.GetRole(ctx, id)
	if err != nil {
		return Form{}, err
	}

	ids, err := s.store.RolePermissionIDs(ctx, id)
	if err != nil {
		return Form{}, err
	}

	groups, err := s.PermissionGroups(ctx)
	if err != nil {
		return Form{}, err
	}

	if ids == nil {
		ids = []uint{}
	}

	return Form{Role: r, PermissionIDs: ids, Groups: groups}, nil
}

// PermissionGroups returns all permissions ordered by name, grouped by their resource prefix.
func (s *Service) PermissionGroups(ctx context.Context) ([]PermissionGroup, error) {
	permissions, err := s.store.AllPermissions(ctx)
	if err != nil {
		return nil, err
	}

	return GroupPermissions(permissions), nil
}

// GroupPermissions groups permissions by prefix, keeping the input order inside and across groups.
func GroupPermissions(permissions []models.Permission) []PermissionGroup {
	groups := []PermissionGroup{}
	index := map[string]int{}

	for _, perm := range permissions {
		name := perm.Group()

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, PermissionGroup{Group: name})
		}

		groups[i].Permissions = append(groups[i].Permissions, perm)
	}

	return groups
}

// Create adds a role with its initial permissions.
func (s *Service) Create(ctx context.Context, p *auth.Principal, in Input) (admin.Result, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermRolesCreate); err != nil {
		return admin.Result{}, err
	}

	in.Name = strings.TrimSpace(in.Name)

	if err := s.validate(ctx, in, 0); err != nil {
		return admin.Result{}, err
	}

	if err := s.store.CreateRole(ctx, &models.Role{Name: in.Name}, in.Permissions); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "Role created successfully.", Redirect: Path}, nil
}

// Update renames role id and replaces its permissions in one transaction.
func (s *Service) Update(ctx context.Context, p *auth.Principal, id uint, in Input) (admin.Result, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermRolesEdit); err != nil {
		return admin.Result{}, err
	}

	if _, err := s.store.GetRole(ctx, id); err != nil {
		return admin.Result{}, err
	}

	in.Name = strings.TrimSpace(in.Name)

	if err := s.validate(ctx, in, id); err != nil {
		return admin.Result{}, err
	}

	if _, err := s.store.UpdateRole(ctx, id, in.Name, in.Permissions); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "Role updated successfully.", Redirect: Path}, nil
}

// Delete removes role id. Its users lose the permissions it granted with the next request.
func (s *Service) Delete(ctx context.Context, p *auth.Principal, id uint) (admin.Result, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermRolesDelete); err != nil {
		return admin.Result{}, err
	}

	if err := s.store.DeleteRole(ctx, id); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "Role deleted successfully.", Redirect: Path}, nil
}

// validate checks the form, the uniqueness of the name and the existence of the permissions.
func (s *Service) validate(ctx context.Context, in Input, exceptID uint) error {
	verr, err := s.validator.Fields(in)
	if err != nil {
		return err
	}

	if !verr.Has("name", apperr.ReasonRequired) {
		taken, err := s.store.RoleNameTaken(ctx, in.Name, exceptID)
		if err != nil {
			return err
		}

		if taken {
			verr.Merge(apperr.Unique("name"))
		}
	}

	if len(in.Permissions) > 0 {
		err = s.store.RequirePermissions(ctx, in.Permissions)

		var missing *apperr.ValidationError
		if errors.As(err, &missing) {
			verr.Merge(missing)
		} else if err != nil {
			return err
		}
	}

	return verr.OrNil()
}

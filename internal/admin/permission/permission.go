// Package permission implements the permission management screens.
package permission

import (
	"context"
	"strings"

	"github.com/rbac-admin/rbac-admin/internal/admin"
	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
	"github.com/rbac-admin/rbac-admin/internal/db/store"
	"github.com/rbac-admin/rbac-admin/internal/validation"
)

// Path is the list route the mutations redirect to.
const Path = "/admin/permissions"

// Input is the create and edit form.
type Input struct {
	Name string `json:"name" validate:"required,min=3,max=255"`
}

// Service manages permissions.
type Service struct {
	store     *store.Store
	gate      *auth.Gate
	validator *validation.Validator
}

// New creates the permission service.
func New(s *store.Store, gate *auth.Gate, v *validation.Validator) *Service {
	return &Service{store: s, gate: gate, validator: v}
}

// List returns one page of permissions.
func (s *Service) List(ctx context.Context, p *auth.Principal, q store.ListQuery) (admin.ListResult[models.Permission], error) {
	if err := s.gate.Authorize(ctx, p, auth.PermPermissionsIndex); err != nil {
		return admin.ListResult[models.Permission]{}, err
	}

	page, err := s.store.ListPermissions(ctx, q)
	if err != nil {
		return admin.ListResult[models.Permission]{}, err
	}

	return admin.NewListResult(page, q, page.Items), nil
}

// Get returns the permission for the edit form.
func (s *Service) Get(ctx context.Context, p *auth.Principal, id uint) (*models.Permission, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermPermissionsEdit); err != nil {
		return nil, err
	}

	return s.store.GetPermission(ctx, id)
}

// Create adds a permission.
func (s *Service) Create(ctx context.Context, p *auth.Principal, in Input) (admin.Result, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermPermissionsCreate); err != nil {
		return admin.Result{}, err
	}

	in.Name = strings.TrimSpace(in.Name)

	if err := s.validate(ctx, in, 0); err != nil {
		return admin.Result{}, err
	}

	if err := s.store.CreatePermission(ctx, &models.Permission{Name: in.Name}); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "Permission created successfully.", Redirect: Path}, nil
}

// Update renames permission id.
func (s *Service) Update(ctx context.Context, p *auth.Principal, id uint, in Input) (admin.Result, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermPermissionsEdit); err != nil {
		return admin.Result{}, err
	}

	if _, err := s.store.GetPermission(ctx, id); err != nil {
		return admin.Result{}, err
	}

	in.Name = strings.TrimSpace(in.Name)

	if err := s.validate(ctx, in, id); err != nil {
		return admin.Result{}, err
	}

	if _, err := s.store.RenamePermission(ctx, id, in.Name); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "Permission updated successfully.", Redirect: Path}, nil
}

// Delete removes permission id. Roles and users holding it lose it with the next request.
func (s *Service) Delete(ctx context.Context, p *auth.Principal, id uint) (admin.Result, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermPermissionsDelete); err != nil {
		return admin.Result{}, err
	}

	if err := s.store.DeletePermission(ctx, id); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "Permission deleted successfully.", Redirect: Path}, nil
}

// validate checks the form and the uniqueness of the name, ignoring the permission being edited.
func (s *Service) validate(ctx context.Context, in Input, exceptID uint) error {
	verr, err := s.validator.Fields(in)
	if err != nil {
		return err
	}

	if !verr.Has("name", apperr.ReasonRequired) {
		taken, err := s.store.PermissionNameTaken(ctx, in.Name, exceptID)
		if err != nil {
			return err
		}

		if taken {
			verr.Merge(apperr.Unique("name"))
		}
	}

	return verr.OrNil()
}

// Package user implements the user management screens.
package user

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
const Path = "/admin/users"

// CreateInput is the create form.
type CreateInput struct {
	Name                 string `json:"name" validate:"required,min=3,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=4,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`
	Roles                []uint `json:"roles" validate:"required,min=1"`
}

// UpdateInput is the edit form. The password is not changed here.
type UpdateInput struct {
	Name  string `json:"name" validate:"required,min=3,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Roles []uint `json:"roles" validate:"required,min=1"`
}

// PermissionsInput replaces the direct grants of a user. An empty list removes them all.
type PermissionsInput struct {
	Permissions []uint `json:"permissions"`
}

// Form is the data of the create and edit screens.
type Form struct {
	User          *View         `json:"user,omitempty"`
	RoleIDs       []uint        `json:"role_ids"`
	PermissionIDs []uint        `json:"permission_ids"`
	Roles         []models.Role `json:"roles"`
}

// Service manages users.
type Service struct {
	store     *store.Store
	gate      *auth.Gate
	validator *validation.Validator
}

// New creates the user service.
func New(s *store.Store, gate *auth.Gate, v *validation.Validator) *Service {
	return &Service{store: s, gate: gate, validator: v}
}

// List returns one page of users with their role names.
func (s *Service) List(ctx context.Context, p *auth.Principal, q store.ListQuery) (admin.ListResult[View], error) {
	if err := s.gate.Authorize(ctx, p, auth.PermUsersIndex); err != nil {
		return admin.ListResult[View]{}, err
	}

	page, err := s.store.ListUsers(ctx, q)
	if err != nil {
		return admin.ListResult[View]{}, err
	}

	views, err := NewViews(page.Items)
	if err != nil {
		return admin.ListResult[View]{}, err
	}

	return admin.NewListResult(page, q, views), nil
}

// CreateForm returns every role, most recent first.
func (s *Service) CreateForm(ctx context.Context, p *auth.Principal) (Form, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermUsersCreate); err != nil {
		return Form{}, err
	}

	roles, err := s.AssignableRoles(ctx)
	if err != nil {
		return Form{}, err
	}

	return Form{RoleIDs: []uint{}, PermissionIDs: []uint{}, Roles: roles}, nil
}

// AssignableRoles returns the roles offered on the create screen.
func (s *Service) AssignableRoles(ctx context.Context) ([]models.Role, error) {
	return s.store.AllRoles(ctx)
}

// EditableRoles returns the roles offered on the edit screen: all but the super admin role.
func (s *Service) EditableRoles(ctx context.Context) ([]models.Role, error) {
	return s.store.AllRoles(ctx, models.SuperAdminRole)
}

// Get returns the user with its role and permission ids and the editable roles.
func (s *Service) Get(ctx context.Context, p *auth.Principal, id uint64) (Form, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermUsersEdit); err != nil {
		return Form{}, err
	}

	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return Form{}, err
	}

	view, err := NewView(u)
	if err != nil {
		return Form{}, err
	}

	roles, err := s.EditableRoles(ctx)
	if err != nil {
		return Form{}, err
	}

	form := Form{User: &view, RoleIDs: []uint{}, PermissionIDs: []uint{}, Roles: roles}

	for _, r := range u.Roles {
		form.RoleIDs = append(form.RoleIDs, r.ID)
	}

	for _, perm := range u.Permissions {
		form.PermissionIDs = append(form.PermissionIDs, perm.ID)
	}

	return form, nil
}

// Create adds a user with its initial roles. The password is stored as an Argon2id hash.
func (s *Service) Create(ctx context.Context, p *auth.Principal, in CreateInput) (admin.Result, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermUsersCreate); err != nil {
		return admin.Result{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	verr, err := s.validator.Fields(in)
	if err != nil {
		return admin.Result{}, err
	}

	if err = s.checkEmailAndRoles(ctx, verr, in.Email, 0, in.Roles); err != nil {
		return admin.Result{}, err
	}

	if err = verr.OrNil(); err != nil {
		return admin.Result{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return admin.Result{}, err
	}

	u := &models.User{Name: in.Name, Email: in.Email, Password: hash}
	if err = s.store.CreateUser(ctx, u, in.Roles); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "User created successfully.", Redirect: Path}, nil
}

// Update stores name and email and replaces the roles of user id in one transaction.
func (s *Service) Update(ctx context.Context, p *auth.Principal, id uint64, in UpdateInput) (admin.Result, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermUsersEdit); err != nil {
		return admin.Result{}, err
	}

	if _, err := s.store.GetUser(ctx, id); err != nil {
		return admin.Result{}, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	verr, err := s.validator.Fields(in)
	if err != nil {
		return admin.Result{}, err
	}

	if err = s.checkEmailAndRoles(ctx, verr, in.Email, id, in.Roles); err != nil {
		return admin.Result{}, err
	}

	if err = verr.OrNil(); err != nil {
		return admin.Result{}, err
	}

	if _, err = s.store.UpdateUser(ctx, id, store.UserProfile{Name: in.Name, Email: in.Email}, in.Roles); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "User updated successfully.", Redirect: Path}, nil
}

// SyncPermissions replaces the direct grants of user id.
func (s *Service) SyncPermissions(ctx context.Context, p *auth.Principal, id uint64, in PermissionsInput) (admin.Result, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermUsersEdit); err != nil {
		return admin.Result{}, err
	}

	if _, err := s.store.GetUser(ctx, id); err != nil {
		return admin.Result{}, err
	}

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		return tx.SyncUserPermissions(ctx, id, in.Permissions)
	})
	if err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "User permissions updated successfully.", Redirect: Path}, nil
}

// Delete removes user id. Users can not delete their own account here; the profile screen does that.
func (s *Service) Delete(ctx context.Context, p *auth.Principal, id uint64) (admin.Result, error) {
	if err := s.gate.Authorize(ctx, p, auth.PermUsersDelete); err != nil {
		return admin.Result{}, err
	}

	if p.UserID == id {
		return admin.Result{}, apperr.Invalid("id", apperr.ReasonInvalid, "You can not delete your own account here.")
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "User deleted successfully.", Redirect: Path}, nil
}

// checkEmailAndRoles adds uniqueness and existence reasons to verr.
func (s *Service) checkEmailAndRoles(ctx context.Context, verr *apperr.ValidationError, email string, exceptID uint64, roles []uint) error {
	if email != "" && !verr.Has("email", apperr.ReasonEmail) {
		taken, err := s.store.EmailTaken(ctx, email, exceptID)
		if err != nil {
			return err
		}

		if taken {
			verr.Merge(apperr.Unique("email"))
		}
	}

	if len(roles) > 0 {
		err := s.store.RequireRoles(ctx, roles)

		var missing *apperr.ValidationError
		if errors.As(err, &missing) {
			verr.Merge(missing)
		} else if err != nil {
			return err
		}
	}

	return nil
}

// Package profile lets the signed in user edit and delete their own account.
// It needs no permission: every authenticated user may manage their own profile.
package profile

import (
	"context"
	"strings"

	"github.com/rbac-admin/rbac-admin/internal/admin"
	"github.com/rbac-admin/rbac-admin/internal/admin/user"
	"github.com/rbac-admin/rbac-admin/internal/apperr"
	"github.com/rbac-admin/rbac-admin/internal/auth"
	"github.com/rbac-admin/rbac-admin/internal/db/store"
	"github.com/rbac-admin/rbac-admin/internal/validation"
)

// Path of the profile screen.
const Path = "/profile"

// UpdateInput is the profile form.
type UpdateInput struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,lowercase,email,max=255"`
}

// DeleteInput confirms the account deletion.
type DeleteInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
}

// Service manages the profile of the current user.
type Service struct {
	store     *store.Store
	validator *validation.Validator
}

// New creates the profile service.
func New(s *store.Store, v *validation.Validator) *Service {
	return &Service{store: s, validator: v}
}

// Get returns the current user.
func (s *Service) Get(ctx context.Context, p *auth.Principal) (user.View, error) {
	if p == nil {
		return user.View{}, apperr.ErrUnauthenticated
	}

	u, err := s.store.GetUser(ctx, p.UserID)
	if err != nil {
		return user.View{}, err
	}

	return user.NewView(u)
}

// Update stores name and email of the current user. A new email must be verified again.
func (s *Service) Update(ctx context.Context, p *auth.Principal, in UpdateInput) (admin.Result, error) {
	if p == nil {
		return admin.Result{}, apperr.ErrUnauthenticated
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	verr, err := s.validator.Fields(in)
	if err != nil {
		return admin.Result{}, err
	}

	if in.Email != "" {
		taken, err := s.store.EmailTaken(ctx, in.Email, p.UserID)
		if err != nil {
			return admin.Result{}, err
		}

		if taken {
			verr.Merge(apperr.Unique("email"))
		}
	}

	if err = verr.OrNil(); err != nil {
		return admin.Result{}, err
	}

	if _, err = s.store.UpdateProfile(ctx, p.UserID, store.UserProfile{Name: in.Name, Email: in.Email}); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "Profile updated successfully.", Redirect: Path}, nil
}

// Delete removes the account of the current user after checking the password.
// The caller ends the session.
func (s *Service) Delete(ctx context.Context, p *auth.Principal, in DeleteInput) (admin.Result, error) {
	if p == nil {
		return admin.Result{}, apperr.ErrUnauthenticated
	}

	if err := s.validator.Struct(in); err != nil {
		return admin.Result{}, err
	}

	u, err := s.store.GetUser(ctx, p.UserID)
	if err != nil {
		return admin.Result{}, err
	}

	if !auth.CheckPassword(u, in.CurrentPassword) {
		return admin.Result{}, apperr.Invalid("current_password", apperr.ReasonCurrentPassword, "The password is incorrect.")
	}

	if err = s.store.DeleteUser(ctx, u.ID); err != nil {
		return admin.Result{}, err
	}

	return admin.Result{Message: "Your account has been deleted.", Redirect: "/"}, nil
}

package user

import (
	"time"

	"github.com/jinzhu/copier"

	"github.com/rbac-admin/rbac-admin/internal/db/models"
)

// RoleRef names a role assigned to a user.
type RoleRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// View is the outward representation of a user. It never carries the password hash.
type View struct {
	ID              uint64     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	Roles           []RoleRef  `json:"roles"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewView copies the public fields of u.
func NewView(u *models.User) (View, error) {
	var v View

	if err := copier.Copy(&v, u); err != nil {
		return View{}, err
	}

	if v.Roles == nil {
		v.Roles = []RoleRef{}
	}

	return v, nil
}

// NewViews converts a list of users.
func NewViews(users []models.User) ([]View, error) {
	out := make([]View, 0, len(users))

	for i := range users {
		v, err := NewView(&users[i])
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

package auth

import (
	"slices"
	"strings"
)

// Resources protected by permissions.
const (
	ResourceUsers       = "users"
	ResourceRoles       = "roles"
	ResourcePermissions = "permissions"
)

// Verbs of the CRUD screens.
const (
	VerbIndex  = "index"
	VerbCreate = "create"
	VerbEdit   = "edit"
	VerbDelete = "delete"
)

// Permission names checked by the admin services.
const (
	PermUsersIndex  = ResourceUsers + " " + VerbIndex
	PermUsersCreate = ResourceUsers + " " + VerbCreate
	PermUsersEdit   = ResourceUsers + " " + VerbEdit
	PermUsersDelete = ResourceUsers + " " + VerbDelete

	PermRolesIndex  = ResourceRoles + " " + VerbIndex
	PermRolesCreate = ResourceRoles + " " + VerbCreate
	PermRolesEdit   = ResourceRoles + " " + VerbEdit
	PermRolesDelete = ResourceRoles + " " + VerbDelete

	PermPermissionsIndex  = ResourcePermissions + " " + VerbIndex
	PermPermissionsCreate = ResourcePermissions + " " + VerbCreate
	PermPermissionsEdit   = ResourcePermissions + " " + VerbEdit
	PermPermissionsDelete = ResourcePermissions + " " + VerbDelete
)

// All returns every permission name the application checks, grouped by resource.
func All() []string {
	resources := []string{ResourceUsers, ResourceRoles, ResourcePermissions}
	verbs := []string{VerbIndex, VerbCreate, VerbEdit, VerbDelete}

	out := make([]string, 0, len(resources)*len(verbs))

	for _, r := range resources {
		for _, v := range verbs {
			out = append(out, r+" "+v)
		}
	}

	return out
}

// PermissionSet is a set of permission names.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from the given name lists.
func NewPermissionSet(lists ...[]string) PermissionSet {
	set := make(PermissionSet)

	for _, names := range lists {
		for _, n := range names {
			set[n] = struct{}{}
		}
	}

	return set
}

// Has reports whether name is in the set. Names are compared exactly.
func (s PermissionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// HasAny reports whether at least one of names is in the set.
func (s PermissionSet) HasAny(names ...string) bool {
	for _, n := range names {
		if s.Has(n) {
			return true
		}
	}

	return false
}

// HasAll reports whether every one of names is in the set.
func (s PermissionSet) HasAll(names ...string) bool {
	for _, n := range names {
		if !s.Has(n) {
			return false
		}
	}

	return true
}

// Names returns the sorted permission names.
func (s PermissionSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}

	slices.Sort(out)

	return out
}

// Resource returns the resource part of a permission name.
func Resource(permission string) string {
	resource, _, _ := strings.Cut(permission, " ")
	return resource
}

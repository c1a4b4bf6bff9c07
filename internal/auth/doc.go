// Package auth provides authentication and authorization for the admin application.
//
// # Permissions
//
// Permissions are plain names of the form "<resource> <verb>", for example "users index".
// A user holds a permission when it is granted directly (user_permissions) or through any
// assigned role (user_roles and role_permissions). The union of both is the effective set.
//
// # Authorization
//
// The Resolver computes the effective set of a user from the database. A Principal carries the
// authenticated user of one request and memoizes the set for that request only, so grant and
// role changes take effect with the next request.
//
// Every admin service operation starts with Gate.Authorize:
//
//	if err := gate.Authorize(ctx, principal, auth.PermUsersEdit); err != nil {
//		return err // *apperr.AuthorizationError
//	}
//
// # Authentication
//
// LocalProvider checks email and password against the users table. Passwords are hashed
// with Argon2id; bcrypt hashes imported from the previous system are still accepted and
// replaced by an Argon2id hash on the next successful login.
package auth

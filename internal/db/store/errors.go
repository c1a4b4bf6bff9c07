package store

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/rbac-admin/rbac-admin/internal/apperr"
)

const (
	mysqlDuplicateEntry   = 1062
	postgresUniqueViolate = "23505"
	sqliteUniqueFailed    = "UNIQUE constraint failed"
)

// Entity names used in not found errors.
const (
	EntityPermission = "permission"
	EntityRole       = "role"
	EntityUser       = "user"
)

// IsUniqueViolation reports whether err is a unique index collision of any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == postgresUniqueViolate
	}

	return strings.Contains(err.Error(), sqliteUniqueFailed)
}

// normalize turns a unique collision on field into a validation error and leaves other errors as they are.
func normalize(err error, field string) error {
	if IsUniqueViolation(err) {
		return apperr.Unique(field)
	}

	return err
}

// notFound maps gorm.ErrRecordNotFound to an apperr.NotFoundError.
func notFound(err error, entity string, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}

	return err
}

package session

import (
	"time"

	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/rbac-admin/rbac-admin/internal/config"
	"github.com/rbac-admin/rbac-admin/internal/db/dsn"
)

// redisTimeout bounds every redis round trip.
const redisTimeout = 3 * time.Second

// NewStorage opens the storage selected by Webserver.Session.Driver.
// The sql drivers connect to the application database and create their table on first use.
func NewStorage(cfg *config.Config) (Storage, error) {
	s := cfg.Webserver.Session

	switch s.Driver {
	case config.SessionMemory, "":
		return NewMemoryStorage(), nil
	case config.SessionMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(&cfg.DB),
			Table:         s.Table,
		}), nil
	case config.SessionPostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(&cfg.DB),
			Table:         s.Table,
		}), nil
	case config.SessionRedis:
		return NewRedisStorage(redis.NewClient(&redis.Options{Addr: s.RedisAddr}), redisTimeout), nil
	default:
		return nil, errors.Wrap(config.ErrUnknownSessionDriver, s.Driver)
	}
}

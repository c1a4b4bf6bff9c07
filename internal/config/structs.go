package config

import (
	"time"

	"github.com/rbac-admin/rbac-admin/internal/logger"
)

// Supported session storage drivers.
const (
	SessionMemory   = "memory"
	SessionMySQL    = "mysql"
	SessionPostgres = "postgres"
	SessionRedis    = "redis"
)

// Session settings.
type Session struct {
	ExpiryTime   time.Duration
	Driver       string // memory, mysql, postgres or redis
	Table        string // table used by the mysql and postgres drivers
	RedisAddr    string
	CookieSecure bool
}

// Seed holds the initial admin account created on an empty users table.
type Seed struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

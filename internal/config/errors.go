package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormEngine is not one of mysql, postgres or sqlite.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be mysql, postgres or sqlite")

	// ErrUnknownSessionDriver error if config webserver.session.driver is not supported.
	ErrUnknownSessionDriver = errors.New("toml config webserver.session.driver must be memory, mysql, postgres or redis")

	// ErrSessionDriverNeedsDB error if a sql session driver does not match the configured db engine.
	ErrSessionDriverNeedsDB = errors.New("toml config webserver.session.driver mysql/postgres requires the same db.gormEngine")
)

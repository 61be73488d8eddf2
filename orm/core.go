package orm

import "github.com/rs/zerolog"

type core struct {
	dialect Dialect
	mdls    []Middleware
	logger  zerolog.Logger
}

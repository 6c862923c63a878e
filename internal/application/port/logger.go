package port

import (
	"context"

	"github.com/rs/zerolog"
)

// LoggerFromContext resolves the logger of one layout operation.
// The orchestrator depends on this instead of the logging package so hosts
// and tests can route or silence its output.
type LoggerFromContext func(ctx context.Context) *zerolog.Logger

package irys

import (
	"log/slog"

	"github.com/davissekai/irys/mapper"
	"github.com/davissekai/irys/tables"
)

// ExtractOptions holds configuration for one extraction.
type ExtractOptions struct {
	// Desired output columns, in caller order. Empty means "keep the
	// extracted headers as-is".
	columns []string

	// Geometric row clustering tolerance in pixels.
	yTolerance float64

	// Whether to split rows the upstream source merged together.
	unzip bool

	// Optional semantic-matching collaborator. Nil means the local
	// heuristic maps columns on its own.
	mapper mapper.Mapper

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		columns:    nil,
		yTolerance: tables.DefaultConfig().YTolerance,
		unzip:      false,
		mapper:     nil,
		logger:     nil, // slog.Default() at use
	}
}

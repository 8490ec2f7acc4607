package progress

import (
	"github.com/everdragons2/deployer/internal/usecase"
)

// NewNopSink creates a no-op progress sink, used for JSON output
func NewNopSink() usecase.ProgressSink {
	return usecase.NopProgress{}
}

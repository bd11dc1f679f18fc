// Package classifier provides adapters for the external AI text
// classification capability consumed by the textual checks.
package classifier

import (
	"context"
	"log/slog"

	"github.com/akashent3/redflags-sub001/internal/domain/port"
)

// Stub implements port.TextClassifier for development and tests. It never
// triggers, so textual checks resolve to NOT_TRIGGERED rather than SKIPPED
// and the rest of the pipeline stays exercisable without a model backend.
type Stub struct {
	logger *slog.Logger
}

// NewStub creates a stub classifier.
func NewStub(logger *slog.Logger) *Stub {
	return &Stub{logger: logger}
}

// Classify returns a confident negative verdict.
func (s *Stub) Classify(ctx context.Context, req port.ClassifyRequest) (port.Classification, error) {
	if err := ctx.Err(); err != nil {
		return port.Classification{}, err
	}

	s.logger.Debug("stub classification requested",
		slog.String("check_id", req.CheckID),
		slog.Int("excerpt_len", len(req.Excerpt)),
	)

	return port.Classification{
		Triggered:  false,
		Confidence: 0.9,
		Rationale:  "stub classifier: no signal",
	}, nil
}

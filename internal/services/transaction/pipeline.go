package transaction

import (
	"context"

	"go.uber.org/zap"
)

// Stage is one step of the processing pipeline. A stage may mutate the
// request (fee calculation) or abort it by returning an error; errors
// propagate to the caller unmodified so they keep their type.
type Stage interface {
	Name() string
	Handle(ctx context.Context, req *Request) error
}

// Pipeline runs an ordered, fixed list of stages over a request,
// short-circuiting on the first failure. The canonical order is fee,
// limit, fraud, balance: the fee must exist before solvency can be
// checked, and the balance gate runs last.
type Pipeline struct {
	stages []Stage
	logger *zap.Logger
}

// NewPipeline creates a pipeline over the given stages.
func NewPipeline(logger *zap.Logger, stages ...Stage) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{stages: stages, logger: logger}
}

// Run executes the stages in order against the request.
func (p *Pipeline) Run(ctx context.Context, req *Request) error {
	for _, stage := range p.stages {
		if err := stage.Handle(ctx, req); err != nil {
			p.logger.Info("pipeline stage rejected request",
				zap.String("stage", stage.Name()),
				zap.String("kind", string(req.Kind)),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

package fee

import (
	"context"

	"paylink/internal/models"
	"paylink/internal/services/transaction"
)

// Stage applies pricing as the first pipeline step. Fees are charged on
// transfers only; every other kind settles with a zero fee.
type Stage struct{}

// NewStage creates the fee stage.
func NewStage() Stage { return Stage{} }

func (Stage) Name() string { return "calculate_fee" }

func (Stage) Handle(_ context.Context, req *transaction.Request) error {
	if req.Kind != models.TypeTransfer {
		return nil
	}
	f, err := Calculate(req.Amount, req.Config.Fee)
	if err != nil {
		return err
	}
	req.Fee = f
	return nil
}

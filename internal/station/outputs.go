package station

import (
	"context"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/event"
	"github.com/Yumichan48/foxrunner/internal/logger"
)

// CreditOutputs returns an event handler that deposits produced currency
// outputs into the wallet, closing the loop from crafting income to upgrade
// costs. Equipment outputs belong to an external collaborator and pass
// through untouched.
func CreditOutputs(wallet Wallet) event.Handler {
	return func(ctx context.Context, evt event.Event) error {
		payload, ok := evt.Payload.(event.OutputProducedPayloadV1)
		if !ok || payload.Kind != domain.ResultCurrency {
			return nil
		}

		if err := wallet.Credit(ctx, payload.TargetID, payload.Amount); err != nil {
			return err
		}
		logger.FromContext(ctx).Debug("Currency output credited",
			"currency", payload.TargetID, "amount", payload.Amount)
		return nil
	}
}

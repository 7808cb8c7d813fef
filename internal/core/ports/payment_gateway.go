package ports

import "context"

// PaymentGateway is the narrow interface to the external payment provider.
// The amount is in major currency units; conversion to minor units happens
// inside the adapter, at the provider boundary.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, taskTitle string, amount int, successURL, cancelURL string) (string, error)
}

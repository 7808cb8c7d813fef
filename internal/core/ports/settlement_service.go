package ports

import "context"

// Settlement callback statuses delivered by the gateway redirect.
const (
	SettlementSuccess = "success"
	SettlementCancel  = "cancel"
)

// SettlementInput is the payload of the gateway's redirect callback. The task
// title and acting username are the only correlation keys the gateway echoes
// back.
type SettlementInput struct {
	Status    string
	Username  string
	TaskTitle string
}

// SettlementService applies asynchronous payment confirmations to the ledger.
type SettlementService interface {
	Process(ctx context.Context, input SettlementInput) error
}

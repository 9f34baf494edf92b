package response

import "github.com/fleetdepot/depot/internal/domain"

type HoldingTransferResponse struct {
	Source domain.Holding `json:"source"`
	Moved  domain.Holding `json:"moved"`
}

type TransferResponse struct {
	From domain.BinStock `json:"from"`
	To   domain.BinStock `json:"to"`
}

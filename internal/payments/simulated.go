package payments

import (
	"context"
	"strconv"
	"time"

	"velora_back_end/internal/models"

	"github.com/google/uuid"
)

// Simulated approuve tout. Les métadonnées bancaires sont des valeurs
// fixes, jamais issues d'un vrai réseau de paiement.
type Simulated struct {
	merchantID string
}

func NewSimulated(merchantID string) *Simulated {
	return &Simulated{merchantID: merchantID}
}

func (s *Simulated) Process(_ context.Context, req Request) (*models.Payment, error) {
	now := time.Now()

	return &models.Payment{
		OrderID:   "oid" + uuid.NewString(),
		TxnID:     uuid.NewString(),
		TxnAmount: strconv.FormatFloat(req.Amount, 'f', -1, 64),
		ResultInfo: models.ResultInfo{
			ResultStatus: "TXN_SUCCESS",
			ResultCode:   "01",
			ResultMsg:    "Transaction Successful",
		},
		BankTxnID:   uuid.NewString(),
		TxnType:     "Online",
		GatewayName: "JazzCash",
		BankName:    "Fake Bank",
		MID:         s.merchantID,
		PaymentMode: "JazzCash Wallet",
		RefundAmt:   "0.00",
		TxnDate:     now.Format(time.RFC3339),
		CreatedAt:   now,
	}, nil
}

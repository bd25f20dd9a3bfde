package payments

import (
	"context"
	"log"
	"strconv"
	"time"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripeGateway crée un vrai PaymentIntent. Même contrat que la variante
// simulée : l'enregistrement renvoyé porte l'id de l'intent comme txnId.
type StripeGateway struct {
	merchantID string
}

func NewStripeGateway(cfg *config.Config) *StripeGateway {
	return &StripeGateway{merchantID: cfg.MerchantID}
}

func (g *StripeGateway) Process(_ context.Context, req Request) (*models.Payment, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(req.Amount * 100)),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		ReceiptEmail: stripe.String(req.Email),
		Metadata: map[string]string{
			"email":   req.Email,
			"phoneNo": req.PhoneNo,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("❌ Erreur Stripe:", err)
		return nil, err
	}

	log.Printf("💳 PaymentIntent créé : %s (%.2f€) pour %s", intent.ID, req.Amount, req.Email)

	now := time.Now()
	return &models.Payment{
		OrderID:   "oid" + uuid.NewString(),
		TxnID:     intent.ID,
		TxnAmount: strconv.FormatFloat(req.Amount, 'f', -1, 64),
		ResultInfo: models.ResultInfo{
			ResultStatus: "TXN_SUCCESS",
			ResultCode:   "01",
			ResultMsg:    "Transaction Successful",
		},
		BankTxnID:   uuid.NewString(),
		TxnType:     "Online",
		GatewayName: "Stripe",
		BankName:    "Stripe",
		MID:         g.merchantID,
		PaymentMode: "card",
		RefundAmt:   "0.00",
		TxnDate:     now.Format(time.RFC3339),
		CreatedAt:   now,
	}, nil
}

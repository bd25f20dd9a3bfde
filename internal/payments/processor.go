package payments

import (
	"context"
	"log"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
)

// Request est la demande de paiement telle que reçue du front.
// Le sélecteur de méthode est accepté mais n'influence pas le résultat.
type Request struct {
	Amount  float64 `json:"amount"`
	Email   string  `json:"email"`
	PhoneNo string  `json:"phoneNo"`
	Method  string  `json:"method"`
}

// Processor isole la passerelle de paiement derrière une capacité : les
// handlers de commande et de paiement ne savent pas quelle variante tourne.
type Processor interface {
	Process(ctx context.Context, req Request) (*models.Payment, error)
}

// NewFromConfig choisit la variante selon PAYMENT_GATEWAY.
func NewFromConfig(cfg *config.Config) Processor {
	if cfg.PaymentGateway == "stripe" && cfg.StripeSecretKey != "" {
		log.Println("💳 Passerelle de paiement : Stripe")
		return NewStripeGateway(cfg)
	}
	log.Println("💳 Passerelle de paiement : simulée")
	return NewSimulated(cfg.MerchantID)
}

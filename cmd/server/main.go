package main

import (
	"log"

	"velora_back_end/internal/config"
	"velora_back_end/internal/database"
	"velora_back_end/internal/handlers/order"
	"velora_back_end/internal/handlers/payment"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/payments"
	"velora_back_end/internal/routes"
	"velora_back_end/internal/store"
	"velora_back_end/internal/utils"

	"github.com/stripe/stripe-go/v83"
)

func main() {
	cfg := config.Load()

	stripe.Key = cfg.StripeSecretKey

	database.Connect(cfg)
	defer database.CloseScylla()

	usersSession, err := database.GetUsersSession()
	if err != nil {
		log.Fatal("❌ Session users indisponible:", err)
	}
	productsSession, err := database.GetProductsSession()
	if err != nil {
		log.Fatal("❌ Session products indisponible:", err)
	}
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		log.Fatal("❌ Session orders indisponible:", err)
	}

	users := store.NewScyllaUserStore(usersSession)
	products := store.NewScyllaProductStore(productsSession)
	orders := store.NewScyllaOrderStore(ordersSession)
	paymentsStore := store.NewScyllaPaymentStore(ordersSession)

	mailer := utils.NewMailer(cfg)
	processor := payments.NewFromConfig(cfg)

	user.InitOAuthProviders(cfg)

	r := routes.Setup(routes.Deps{
		Cfg:     cfg,
		Auth:    user.NewAuthHandler(users, cfg),
		Order:   order.NewHandler(orders, products, users, mailer),
		Payment: payment.NewHandler(paymentsStore, processor),
		Product: product.NewHandler(products, cfg),
	})

	log.Printf("🚀 Serveur démarré sur le port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Erreur démarrage serveur:", err)
	}
}

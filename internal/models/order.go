package models

import (
	"errors"
	"regexp"
	"time"
)

// Statuts de commande
const (
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// Statuts de paiement acceptés sur une commande entrante
const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentFailed  = "Failed"
)

var phoneRegex = regexp.MustCompile(`^\d{7,15}$`)

type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pincode int    `json:"pincode"`
	PhoneNo string `json:"phoneNo"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
	Product  string  `json:"product"`
}

type PaymentInfo struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Order struct {
	ID           string       `json:"id"`
	ShippingInfo ShippingInfo `json:"shippingInfo"`
	OrderItems   []OrderItem  `json:"orderItems"`
	UserID       string       `json:"user"`
	PaymentInfo  PaymentInfo  `json:"paymentInfo"`
	PaidAt       *time.Time   `json:"paidAt"`
	TotalPrice   float64      `json:"totalPrice"`
	OrderStatus  string       `json:"orderStatus"`
	ShippedAt    *time.Time   `json:"shippedAt,omitempty"`
	DeliveredAt  *time.Time   `json:"deliveredAt,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Validate applique les mêmes règles que le schéma d'origine : tous les
// champs d'adresse requis, pincode >= 10000, téléphone de 7 à 15 chiffres.
func (s ShippingInfo) Validate() error {
	if s.Address == "" {
		return errors.New("Address is required")
	}
	if s.City == "" {
		return errors.New("City is required")
	}
	if s.State == "" {
		return errors.New("State is required")
	}
	if s.Country == "" {
		return errors.New("Country is required")
	}
	if s.Pincode < 10000 {
		return errors.New("Invalid pincode")
	}
	if !phoneRegex.MatchString(s.PhoneNo) {
		return errors.New("Invalid phone number format")
	}
	return nil
}

func (i OrderItem) Validate() error {
	if i.Name == "" {
		return errors.New("Product name is required")
	}
	if i.Price <= 0 {
		return errors.New("Product price is required")
	}
	if i.Quantity < 1 {
		return errors.New("Quantity must be at least 1")
	}
	if i.Image == "" {
		return errors.New("Product image is required")
	}
	if i.Product == "" {
		return errors.New("Product ID is required")
	}
	return nil
}

// Validate vérifie une commande entrante avant insertion. Le statut de
// paiement n'est contrôlé que s'il vient du client ; un statut synthétisé
// par le serveur est posé après validation.
func (o *Order) Validate() error {
	if len(o.OrderItems) == 0 {
		return errors.New("Order items are required!")
	}
	if err := o.ShippingInfo.Validate(); err != nil {
		return err
	}
	for _, item := range o.OrderItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	if o.TotalPrice < 0 {
		return errors.New("Total price cannot be negative")
	}
	if o.PaymentInfo.Status != "" && !ValidPaymentStatus(o.PaymentInfo.Status) {
		return errors.New("Payment status is invalid")
	}
	return nil
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

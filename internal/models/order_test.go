package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping() ShippingInfo {
	return ShippingInfo{
		Address: "12 rue des Lilas",
		City:    "Bruxelles",
		State:   "Bruxelles-Capitale",
		Country: "Belgique",
		Pincode: 10500,
		PhoneNo: "0471234567",
	}
}

func validItem() OrderItem {
	return OrderItem{
		Name:     "Casque audio",
		Price:    79.99,
		Quantity: 1,
		Image:    "http://img/casque.jpg",
		Product:  "f47ac10b-58cc-4372-a567-0e02b2c3d479",
	}
}

func validOrder() *Order {
	return &Order{
		ID:           "order-1",
		ShippingInfo: validShipping(),
		OrderItems:   []OrderItem{validItem()},
		UserID:       "user-1",
		TotalPrice:   79.99,
		OrderStatus:  OrderProcessing,
	}
}

func TestShippingInfoValidate(t *testing.T) {
	require.NoError(t, validShipping().Validate())

	tests := []struct {
		name    string
		mutate  func(*ShippingInfo)
		wantErr string
	}{
		{"adresse manquante", func(s *ShippingInfo) { s.Address = "" }, "Address is required"},
		{"ville manquante", func(s *ShippingInfo) { s.City = "" }, "City is required"},
		{"état manquant", func(s *ShippingInfo) { s.State = "" }, "State is required"},
		{"pays manquant", func(s *ShippingInfo) { s.Country = "" }, "Country is required"},
		{"pincode trop court", func(s *ShippingInfo) { s.Pincode = 9999 }, "Invalid pincode"},
		{"téléphone trop court", func(s *ShippingInfo) { s.PhoneNo = "123456" }, "Invalid phone number format"},
		{"téléphone trop long", func(s *ShippingInfo) { s.PhoneNo = "1234567890123456" }, "Invalid phone number format"},
		{"téléphone non numérique", func(s *ShippingInfo) { s.PhoneNo = "04-7123456" }, "Invalid phone number format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validShipping()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestOrderItemValidate(t *testing.T) {
	require.NoError(t, validItem().Validate())

	tests := []struct {
		name    string
		mutate  func(*OrderItem)
		wantErr string
	}{
		{"nom manquant", func(i *OrderItem) { i.Name = "" }, "Product name is required"},
		{"prix nul", func(i *OrderItem) { i.Price = 0 }, "Product price is required"},
		{"quantité nulle", func(i *OrderItem) { i.Quantity = 0 }, "Quantity must be at least 1"},
		{"image manquante", func(i *OrderItem) { i.Image = "" }, "Product image is required"},
		{"produit manquant", func(i *OrderItem) { i.Product = "" }, "Product ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := validItem()
			tt.mutate(&i)
			err := i.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestOrderValidate(t *testing.T) {
	require.NoError(t, validOrder().Validate())

	t.Run("sans articles", func(t *testing.T) {
		o := validOrder()
		o.OrderItems = nil
		err := o.Validate()
		require.Error(t, err)
		assert.Equal(t, "Order items are required!", err.Error())
	})

	t.Run("article invalide", func(t *testing.T) {
		o := validOrder()
		o.OrderItems[0].Image = ""
		require.Error(t, o.Validate())
	})

	t.Run("statut de paiement client invalide", func(t *testing.T) {
		o := validOrder()
		o.PaymentInfo = PaymentInfo{ID: "txn-1", Status: "Approved"}
		err := o.Validate()
		require.Error(t, err)
		assert.Equal(t, "Payment status is invalid", err.Error())
	})

	t.Run("statut de paiement client valide", func(t *testing.T) {
		o := validOrder()
		o.PaymentInfo = PaymentInfo{ID: "txn-1", Status: PaymentPaid}
		assert.NoError(t, o.Validate())
	})

	t.Run("statut de paiement vide accepté", func(t *testing.T) {
		o := validOrder()
		o.PaymentInfo = PaymentInfo{}
		assert.NoError(t, o.Validate())
	})
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("Refunded"))
	assert.False(t, ValidOrderStatus(""))
}

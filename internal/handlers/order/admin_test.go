package order

import (
	"net/http"
	"testing"
	"time"

	"velora_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(env *testEnv, id string, stock, threshold int) {
	uuid, _ := gocql.ParseUUID(id)
	env.products.products[id] = &models.Product{
		ID: uuid, Name: "Produit " + id, Stock: stock, LowStockThreshold: threshold,
	}
}

func seedOrder(env *testEnv, id, status string, items ...models.OrderItem) *models.Order {
	o := &models.Order{
		ID:          id,
		UserID:      "user-1",
		OrderItems:  items,
		OrderStatus: status,
		TotalPrice:  100,
		CreatedAt:   time.Now(),
	}
	env.orders.orders[id] = o
	return o
}

const prodID = "f47ac10b-58cc-4372-a567-0e02b2c3d479"

func TestAllOrders(t *testing.T) {
	t.Run("aucune commande", func(t *testing.T) {
		env := newTestEnv()
		w := doJSON(env.router("admin-1"), http.MethodGet, "/admin/orders", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "No Orders Found", decode(t, w)["error"])
	})

	t.Run("chiffre d'affaires cumulé", func(t *testing.T) {
		env := newTestEnv()
		env.orders.orders["o1"] = &models.Order{ID: "o1", UserID: "u1", TotalPrice: 100.5}
		env.orders.orders["o2"] = &models.Order{ID: "o2", UserID: "u2", TotalPrice: 49.5}
		w := doJSON(env.router("admin-1"), http.MethodGet, "/admin/orders", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		assert.Len(t, resp["orders"].([]interface{}), 2)
		assert.InDelta(t, 150.0, resp["totalAmount"].(float64), 0.001)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	item := models.OrderItem{
		Name: "Casque", Price: 79.99, Quantity: 2,
		Image: "http://img/c.jpg", Product: prodID,
	}

	t.Run("statut requis", func(t *testing.T) {
		env := newTestEnv()
		seedOrder(env, "o1", models.OrderProcessing, item)
		w := doJSON(env.router("admin-1"), http.MethodPut, "/admin/order/o1", map[string]string{})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Status is required", decode(t, w)["error"])
	})

	t.Run("commande inconnue", func(t *testing.T) {
		env := newTestEnv()
		w := doJSON(env.router("admin-1"), http.MethodPut, "/admin/order/nope",
			map[string]string{"status": models.OrderShipped})

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("expédition décrémente le stock et pose shippedAt", func(t *testing.T) {
		env := newTestEnv()
		seedProduct(env, prodID, 10, 2)
		seedOrder(env, "o1", models.OrderProcessing, item)

		w := doJSON(env.router("admin-1"), http.MethodPut, "/admin/order/o1",
			map[string]string{"status": models.OrderShipped})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		assert.Equal(t, true, resp["success"])
		assert.NotContains(t, resp, "stockWarnings")

		assert.Equal(t, 8, env.products.stockOf(prodID))
		updated := env.orders.orders["o1"]
		assert.Equal(t, models.OrderShipped, updated.OrderStatus)
		assert.NotNil(t, updated.ShippedAt)
	})

	t.Run("échec stock remonté en avertissement", func(t *testing.T) {
		env := newTestEnv()
		env.products.failIDs[prodID] = true
		seedOrder(env, "o1", models.OrderProcessing, item)

		w := doJSON(env.router("admin-1"), http.MethodPut, "/admin/order/o1",
			map[string]string{"status": models.OrderShipped})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		warnings := resp["stockWarnings"].([]interface{})
		require.Len(t, warnings, 1)
		assert.Equal(t, prodID, warnings[0])

		// La commande avance quand même
		assert.Equal(t, models.OrderShipped, env.orders.orders["o1"].OrderStatus)
	})

	t.Run("livraison pose deliveredAt", func(t *testing.T) {
		env := newTestEnv()
		seedOrder(env, "o1", models.OrderShipped, item)

		w := doJSON(env.router("admin-1"), http.MethodPut, "/admin/order/o1",
			map[string]string{"status": models.OrderDelivered})

		require.Equal(t, http.StatusOK, w.Code)
		updated := env.orders.orders["o1"]
		assert.Equal(t, models.OrderDelivered, updated.OrderStatus)
		assert.NotNil(t, updated.DeliveredAt)
	})

	t.Run("livrée est terminal", func(t *testing.T) {
		env := newTestEnv()
		seedOrder(env, "o1", models.OrderDelivered, item)

		w := doJSON(env.router("admin-1"), http.MethodPut, "/admin/order/o1",
			map[string]string{"status": models.OrderProcessing})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Already Delivered", decode(t, w)["error"])
		assert.Equal(t, models.OrderDelivered, env.orders.orders["o1"].OrderStatus)
	})

	t.Run("annulation après expédition restitue le stock", func(t *testing.T) {
		env := newTestEnv()
		seedProduct(env, prodID, 8, 2)
		now := time.Now()
		o := seedOrder(env, "o1", models.OrderShipped, item)
		o.ShippedAt = &now

		w := doJSON(env.router("admin-1"), http.MethodPut, "/admin/order/o1",
			map[string]string{"status": models.OrderCancelled})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 10, env.products.stockOf(prodID))
		assert.Equal(t, models.OrderCancelled, env.orders.orders["o1"].OrderStatus)
	})

	t.Run("échec de restitution remonté en avertissement", func(t *testing.T) {
		env := newTestEnv()
		env.products.failIDs[prodID] = true
		now := time.Now()
		o := seedOrder(env, "o1", models.OrderShipped, item)
		o.ShippedAt = &now

		w := doJSON(env.router("admin-1"), http.MethodPut, "/admin/order/o1",
			map[string]string{"status": models.OrderCancelled})

		require.Equal(t, http.StatusOK, w.Code)
		warnings := decode(t, w)["stockWarnings"].([]interface{})
		require.Len(t, warnings, 1)
		assert.Equal(t, prodID, warnings[0])
	})

	t.Run("annulation avant expédition ne touche pas le stock", func(t *testing.T) {
		env := newTestEnv()
		seedProduct(env, prodID, 8, 2)
		seedOrder(env, "o1", models.OrderProcessing, item)

		w := doJSON(env.router("admin-1"), http.MethodPut, "/admin/order/o1",
			map[string]string{"status": models.OrderCancelled})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 8, env.products.stockOf(prodID))
	})
}

func TestDeleteOrder(t *testing.T) {
	t.Run("commande inconnue", func(t *testing.T) {
		env := newTestEnv()
		w := doJSON(env.router("admin-1"), http.MethodDelete, "/admin/order/nope", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Order Not Found", decode(t, w)["error"])
	})

	t.Run("suppression sans condition de statut", func(t *testing.T) {
		env := newTestEnv()
		seedOrder(env, "o1", models.OrderDelivered)

		w := doJSON(env.router("admin-1"), http.MethodDelete, "/admin/order/o1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, env.orders.orders)
	})
}

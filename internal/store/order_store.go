package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"velora_back_end/internal/models"

	"github.com/gocql/gocql"
)

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	// Update réécrit la ligne telle quelle, sans revalider les champs
	// imbriqués (équivalent du validateBeforeSave:false d'origine).
	Update(ctx context.Context, o *models.Order) error
	Delete(ctx context.Context, o *models.Order) error
}

// ScyllaOrderStore persiste les commandes dans le keyspace orders.
// Les blocs imbriqués (adresse, articles, paiement) sont stockés en JSON,
// comme le panier Redis. La table orders_by_user duplique les ids pour la
// lecture par client, sur le modèle users/users_by_email.
type ScyllaOrderStore struct {
	session *gocql.Session
}

func NewScyllaOrderStore(session *gocql.Session) *ScyllaOrderStore {
	return &ScyllaOrderStore{session: session}
}

func (s *ScyllaOrderStore) Insert(ctx context.Context, o *models.Order) error {
	shipping, err := json.Marshal(o.ShippingInfo)
	if err != nil {
		return err
	}
	items, err := json.Marshal(o.OrderItems)
	if err != nil {
		return err
	}
	payment, err := json.Marshal(o.PaymentInfo)
	if err != nil {
		return err
	}

	if err := s.session.Query(`
		INSERT INTO orders (order_id, user_id, shipping_info, order_items, payment_info,
			paid_at, total_price, order_status, shipped_at, delivered_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, string(shipping), string(items), string(payment),
		o.PaidAt, o.TotalPrice, o.OrderStatus, o.ShippedAt, o.DeliveredAt,
		o.CreatedAt, o.UpdatedAt,
	).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("insertion commande: %w", err)
	}

	return s.session.Query(`
		INSERT INTO orders_by_user (user_id, created_at, order_id) VALUES (?, ?, ?)`,
		o.UserID, o.CreatedAt, o.ID,
	).WithContext(ctx).Exec()
}

func (s *ScyllaOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var (
		o        models.Order
		shipping string
		items    string
		payment  string
		paidAt   time.Time
		shipped  time.Time
		deliv    time.Time
	)

	err := s.session.Query(`
		SELECT order_id, user_id, shipping_info, order_items, payment_info,
			paid_at, total_price, order_status, shipped_at, delivered_at, created_at, updated_at
		FROM orders WHERE order_id = ?`, id,
	).WithContext(ctx).Scan(
		&o.ID, &o.UserID, &shipping, &items, &payment,
		&paidAt, &o.TotalPrice, &o.OrderStatus, &shipped, &deliv,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := decodeOrderBlobs(&o, shipping, items, payment); err != nil {
		return nil, err
	}
	o.PaidAt = timePtr(paidAt)
	o.ShippedAt = timePtr(shipped)
	o.DeliveredAt = timePtr(deliv)

	return &o, nil
}

func (s *ScyllaOrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	iter := s.session.Query(`
		SELECT order_id FROM orders_by_user WHERE user_id = ?`, userID,
	).WithContext(ctx).Iter()

	var ids []string
	var id string
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(ids))
	for _, oid := range ids {
		o, err := s.GetByID(ctx, oid)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (s *ScyllaOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	iter := s.session.Query(`
		SELECT order_id, user_id, shipping_info, order_items, payment_info,
			paid_at, total_price, order_status, shipped_at, delivered_at, created_at, updated_at
		FROM orders`,
	).WithContext(ctx).Iter()

	var orders []models.Order
	var (
		o        models.Order
		shipping string
		items    string
		payment  string
		paidAt   time.Time
		shipped  time.Time
		deliv    time.Time
	)
	for iter.Scan(&o.ID, &o.UserID, &shipping, &items, &payment,
		&paidAt, &o.TotalPrice, &o.OrderStatus, &shipped, &deliv,
		&o.CreatedAt, &o.UpdatedAt) {
		row := o
		if err := decodeOrderBlobs(&row, shipping, items, payment); err != nil {
			return nil, err
		}
		row.PaidAt = timePtr(paidAt)
		row.ShippedAt = timePtr(shipped)
		row.DeliveredAt = timePtr(deliv)
		orders = append(orders, row)
		o = models.Order{}
		paidAt, shipped, deliv = time.Time{}, time.Time{}, time.Time{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *ScyllaOrderStore) Update(ctx context.Context, o *models.Order) error {
	items, err := json.Marshal(o.OrderItems)
	if err != nil {
		return err
	}
	payment, err := json.Marshal(o.PaymentInfo)
	if err != nil {
		return err
	}

	return s.session.Query(`
		UPDATE orders SET order_items = ?, payment_info = ?, paid_at = ?, order_status = ?,
			shipped_at = ?, delivered_at = ?, updated_at = ?
		WHERE order_id = ?`,
		string(items), string(payment), o.PaidAt, o.OrderStatus,
		o.ShippedAt, o.DeliveredAt, o.UpdatedAt, o.ID,
	).WithContext(ctx).Exec()
}

func (s *ScyllaOrderStore) Delete(ctx context.Context, o *models.Order) error {
	if err := s.session.Query(`DELETE FROM orders WHERE order_id = ?`, o.ID).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	return s.session.Query(`
		DELETE FROM orders_by_user WHERE user_id = ? AND created_at = ? AND order_id = ?`,
		o.UserID, o.CreatedAt, o.ID,
	).WithContext(ctx).Exec()
}

func decodeOrderBlobs(o *models.Order, shipping, items, payment string) error {
	if shipping != "" {
		if err := json.Unmarshal([]byte(shipping), &o.ShippingInfo); err != nil {
			return fmt.Errorf("décodage shipping_info: %w", err)
		}
	}
	if items != "" {
		if err := json.Unmarshal([]byte(items), &o.OrderItems); err != nil {
			return fmt.Errorf("décodage order_items: %w", err)
		}
	}
	if payment != "" {
		if err := json.Unmarshal([]byte(payment), &o.PaymentInfo); err != nil {
			return fmt.Errorf("décodage payment_info: %w", err)
		}
	}
	return nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

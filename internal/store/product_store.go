package store

import (
	"context"
	"errors"
	"time"

	"velora_back_end/internal/models"

	"github.com/gocql/gocql"
)

type ProductStore interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	// AdjustStock applique delta (négatif pour une expédition) et renvoie
	// le produit après ajustement. Lecture puis écriture, exécuté de façon
	// synchrone par l'appelant qui agrège les échecs item par item.
	AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error)
}

type ScyllaProductStore struct {
	session *gocql.Session
}

func NewScyllaProductStore(session *gocql.Session) *ScyllaProductStore {
	return &ScyllaProductStore{session: session}
}

const productColumns = `product_id, name, description, price, stock, low_stock_threshold,
	category, image_urls, tags, is_active, created_at, updated_at`

func scanProduct(scan func(...interface{}) error) (*models.Product, error) {
	var p models.Product
	err := scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.LowStockThreshold,
		&p.Category, &p.ImageURLs, &p.Tags, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ScyllaProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	uuid, err := gocql.ParseUUID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	q := s.session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, uuid).
		WithContext(ctx)
	p, err := scanProduct(q.Scan)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ScyllaProductStore) List(ctx context.Context) ([]models.Product, error) {
	iter := s.session.Query(`SELECT ` + productColumns + ` FROM products`).
		WithContext(ctx).Iter()

	var products []models.Product
	for {
		var p models.Product
		if !iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.LowStockThreshold,
			&p.Category, &p.ImageURLs, &p.Tags, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
			break
		}
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ScyllaProductStore) Insert(ctx context.Context, p *models.Product) error {
	return s.session.Query(`
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.LowStockThreshold,
		p.Category, p.ImageURLs, p.Tags, p.IsActive, p.CreatedAt, p.UpdatedAt,
	).WithContext(ctx).Exec()
}

func (s *ScyllaProductStore) Update(ctx context.Context, p *models.Product) error {
	return s.session.Query(`
		UPDATE products SET name = ?, description = ?, price = ?, stock = ?,
			low_stock_threshold = ?, category = ?, image_urls = ?, tags = ?,
			is_active = ?, updated_at = ?
		WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Stock, p.LowStockThreshold,
		p.Category, p.ImageURLs, p.Tags, p.IsActive, p.UpdatedAt, p.ID,
	).WithContext(ctx).Exec()
}

func (s *ScyllaProductStore) Delete(ctx context.Context, id string) error {
	uuid, err := gocql.ParseUUID(id)
	if err != nil {
		return ErrNotFound
	}
	return s.session.Query(`DELETE FROM products WHERE product_id = ?`, uuid).
		WithContext(ctx).Exec()
}

func (s *ScyllaProductStore) AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	p.UpdatedAt = time.Now()

	if err := s.session.Query(`
		UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ?`,
		p.Stock, p.UpdatedAt, p.ID,
	).WithContext(ctx).Exec(); err != nil {
		return nil, err
	}
	return p, nil
}

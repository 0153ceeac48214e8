package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sidhant-sriv/expiry-tracker/models"
)

// ProductStore reads and writes the products table. Every method is a single
// atomic operation.
type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// Insert appends p. The id and collection time are assigned by storage and
// written back into p.
func (s *ProductStore) Insert(ctx context.Context, p *models.Product) error {
	p.ID = 0
	p.Deleted = false
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// ListAll returns every row, soft-deleted ones included, in id order.
func (s *ProductStore) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// MarkDeleted flags one row as deleted. A missing id is not an error.
func (s *ProductStore) MarkDeleted(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("deleted", true).Error
	if err != nil {
		return fmt.Errorf("mark product %d deleted: %w", id, err)
	}
	return nil
}

// DeletePermanently removes every row whose id is in ids, all or none.
// Unknown ids are ignored.
func (s *ProductStore) DeletePermanently(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id IN ?", ids).Delete(&models.Product{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	return nil
}

func (s *ProductStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *ProductStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	orderModel "github.com/icecoffie/astrommerce-sub000/internals/features/orders/model"
	installmentModel "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/model"
)

// GormOrderStore: implementasi OrderStore di atas Postgres.
type GormOrderStore struct {
	DB *gorm.DB
}

func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{DB: db}
}

func (s *GormOrderStore) CreateOrder(ctx context.Context, order *orderModel.OrderModel, installments []installmentModel.OrderInstallmentModel) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items
		if len(installments) > 0 {
			if err := tx.Create(&installments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteOrder: aksi kompensasi saga sekaligus backing DELETE /orders/delete/:order_code.
// Menghapus order berikut item dan jadwal cicilannya.
func (s *GormOrderStore) DeleteOrder(ctx context.Context, orderCode string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order orderModel.OrderModel
		if err := tx.Where("order_code = ?", orderCode).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("order_installment_order_id = ?", order.OrderID).
			Delete(&installmentModel.OrderInstallmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_item_order_id = ?", order.OrderID).
			Delete(&orderModel.OrderItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

func (s *GormOrderStore) SaveSnapToken(ctx context.Context, orderCode, token string) error {
	return s.DB.WithContext(ctx).
		Model(&orderModel.OrderModel{}).
		Where("order_code = ?", orderCode).
		Update("order_snap_token", token).Error
}

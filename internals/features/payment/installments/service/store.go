package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	verificationModel "github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/model"
	"github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/model"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderInstallmentModel, error) {
	var row model.OrderInstallmentModel
	err := s.DB.WithContext(ctx).
		Where("order_installment_id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) GetByOrderCodeAndPeriod(ctx context.Context, orderCode string, period int) (*model.OrderInstallmentModel, error) {
	var row model.OrderInstallmentModel
	err := s.DB.WithContext(ctx).
		Joins("JOIN orders ON orders.order_id = order_installments.order_installment_order_id").
		Where("orders.order_code = ? AND order_installments.order_installment_period = ?", orderCode, period).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) VerificationStatus(ctx context.Context, orderID uuid.UUID) (verificationModel.VerificationStatus, error) {
	var row verificationModel.CreditVerificationModel
	err := s.DB.WithContext(ctx).
		Where("credit_verification_order_id = ?", orderID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return verificationModel.VerificationPending, nil
		}
		return "", err
	}
	return row.CreditVerificationStatus, nil
}

// SetProofCAS hanya menulis kalau bukti masih kosong dan belum lunas.
func (s *GormStore) SetProofCAS(ctx context.Context, id uuid.UUID, proofURL string) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.OrderInstallmentModel{}).
		Where("order_installment_id = ? AND order_installment_proof_url IS NULL AND order_installment_paid_at IS NULL", id).
		Update("order_installment_proof_url", proofURL)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkPaidCAS: transisi ke lunas hanya dari "ada bukti, belum lunas".
func (s *GormStore) MarkPaidCAS(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.OrderInstallmentModel{}).
		Where("order_installment_id = ? AND order_installment_paid_at IS NULL AND order_installment_proof_url IS NOT NULL", id).
		Update("order_installment_paid_at", paidAt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

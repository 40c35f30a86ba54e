package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/model"
	orderService "github.com/icecoffie/astrommerce-sub000/internals/features/orders/service"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetByOrderCode(ctx context.Context, orderCode string) (*model.CreditVerificationModel, error) {
	var row model.CreditVerificationModel
	err := s.DB.WithContext(ctx).
		Where("credit_verification_order_code = ?", orderCode).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orderService.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) Create(ctx context.Context, row *model.CreditVerificationModel) error {
	return s.DB.WithContext(ctx).Create(row).Error
}

// UpdateStatusCAS: UPDATE ... WHERE status = from. RowsAffected 0 berarti
// state sudah digeser request lain.
func (s *GormStore) UpdateStatusCAS(ctx context.Context, orderCode string, from, to model.VerificationStatus, decidedAt *time.Time) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.CreditVerificationModel{}).
		Where("credit_verification_order_code = ? AND credit_verification_status = ?", orderCode, from).
		Updates(map[string]interface{}{
			"credit_verification_status":     to,
			"credit_verification_decided_at": decidedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

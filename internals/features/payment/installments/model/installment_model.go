package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Satu periode cicilan milik satu order kredit.
// Identitas bisnis = (order, periode 1..tenor), dijaga unique index.
// Progresi state: tanpa bukti → bukti terupload → lunas; tidak ada jalan mundur,
// paid_at sekali terisi tidak pernah diubah.
type OrderInstallmentModel struct {
	OrderInstallmentID      uuid.UUID `gorm:"column:order_installment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"order_installment_id"`
	OrderInstallmentOrderID uuid.UUID `gorm:"column:order_installment_order_id;type:uuid;not null;uniqueIndex:uq_order_installments_order_period" json:"order_installment_order_id"`
	OrderInstallmentPeriod  int16     `gorm:"column:order_installment_period;type:smallint;not null;uniqueIndex:uq_order_installments_order_period;check:order_installment_period > 0" json:"order_installment_period"`

	// Nominal dipersist saat jadwal dibuat; pembacaan tidak menghitung ulang.
	OrderInstallmentAmountIDR int64 `gorm:"column:order_installment_amount_idr;not null;check:order_installment_amount_idr > 0" json:"order_installment_amount_idr"`

	OrderInstallmentDueDate  time.Time  `gorm:"column:order_installment_due_date;type:date;not null" json:"order_installment_due_date"`
	OrderInstallmentPaidAt   *time.Time `gorm:"column:order_installment_paid_at" json:"order_installment_paid_at,omitempty"`
	OrderInstallmentProofURL *string    `gorm:"column:order_installment_proof_url;type:text" json:"order_installment_proof_url,omitempty"`

	OrderInstallmentCreatedAt time.Time      `gorm:"column:order_installment_created_at;autoCreateTime" json:"order_installment_created_at"`
	OrderInstallmentUpdatedAt *time.Time     `gorm:"column:order_installment_updated_at;autoUpdateTime" json:"order_installment_updated_at,omitempty"`
	OrderInstallmentDeletedAt gorm.DeletedAt `gorm:"column:order_installment_deleted_at;index" json:"order_installment_deleted_at,omitempty"`
}

func (OrderInstallmentModel) TableName() string { return "order_installments" }

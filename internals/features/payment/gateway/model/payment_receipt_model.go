package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Ringkasan pembayaran yang di-cache untuk layar konfirmasi
// setelah widget selesai. Satu order satu receipt (upsert by order code).
type PaymentReceiptModel struct {
	PaymentReceiptID        uuid.UUID `gorm:"column:payment_receipt_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_receipt_id"`
	PaymentReceiptOrderCode string    `gorm:"column:payment_receipt_order_code;type:varchar(100);not null;unique" json:"payment_receipt_order_code"`

	PaymentReceiptTransactionID string `gorm:"column:payment_receipt_transaction_id;type:varchar(100)" json:"payment_receipt_transaction_id"`
	PaymentReceiptPaymentType   string `gorm:"column:payment_receipt_payment_type;type:varchar(50)" json:"payment_receipt_payment_type"`

	// Label metode pembayaran siap tampil, mis. "BCA Virtual Account 1234567890"
	PaymentReceiptInstrumentLabel string `gorm:"column:payment_receipt_instrument_label;type:varchar(150)" json:"payment_receipt_instrument_label"`

	PaymentReceiptGrossIDR        int64      `gorm:"column:payment_receipt_gross_idr;not null" json:"payment_receipt_gross_idr"`
	PaymentReceiptTransactionTime *time.Time `gorm:"column:payment_receipt_transaction_time" json:"payment_receipt_transaction_time,omitempty"`

	// Payload mentah dari gateway, untuk audit
	PaymentReceiptRawPayload datatypes.JSON `gorm:"column:payment_receipt_raw_payload;type:jsonb" json:"payment_receipt_raw_payload,omitempty"`

	PaymentReceiptCreatedAt time.Time `gorm:"column:payment_receipt_created_at;autoCreateTime" json:"payment_receipt_created_at"`
}

func (PaymentReceiptModel) TableName() string { return "payment_receipts" }

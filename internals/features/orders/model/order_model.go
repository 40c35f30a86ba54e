package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentTrack: jalur pembayaran yang dipilih saat checkout.
type PaymentTrack string

const (
	TrackCash   PaymentTrack = "cash"
	TrackCredit PaymentTrack = "credit"
)

// PaymentStatus: status pembayaran yang dipersist di kolom order.
// Label tampilan diturunkan StatusReconciler, bukan dari kolom ini langsung.
type PaymentStatus string

const (
	PaymentUnpaid    PaymentStatus = "unpaid"
	PaymentPaid      PaymentStatus = "paid"
	PaymentPending   PaymentStatus = "pending"
	PaymentCancelled PaymentStatus = "cancelled"
)

type OrderModel struct {
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;default:gen_random_uuid();primaryKey" json:"order_id"`

	// Kode bisnis yang dilihat customer & dipakai Midtrans sebagai order_id
	OrderCode string `gorm:"column:order_code;type:varchar(100);not null;unique" json:"order_code"`

	OrderUserID *uuid.UUID `gorm:"column:order_user_id;type:uuid;index:idx_orders_user" json:"order_user_id,omitempty"`

	OrderCustomerName  string `gorm:"column:order_customer_name;type:varchar(100);not null" json:"order_customer_name"`
	OrderCustomerEmail string `gorm:"column:order_customer_email;type:varchar(100);not null" json:"order_customer_email"`
	OrderCustomerPhone string `gorm:"column:order_customer_phone;type:varchar(30);not null" json:"order_customer_phone"`

	OrderPaymentTrack  PaymentTrack  `gorm:"column:order_payment_track;type:varchar(10);not null" json:"order_payment_track"`
	OrderPaymentStatus PaymentStatus `gorm:"column:order_payment_status;type:varchar(20);not null;default:'unpaid'" json:"order_payment_status"`

	// Sub-alasan hasil gateway terakhir ("expired" dsb.). Status tetap unpaid
	// supaya customer masih bisa retry; label tampilan membaca kolom ini.
	OrderFailureReason *string `gorm:"column:order_failure_reason;type:varchar(30)" json:"order_failure_reason,omitempty"`

	OrderTotalIDR int64 `gorm:"column:order_total_idr;not null;check:order_total_idr >= 0" json:"order_total_idr"`

	// Khusus jalur kredit. Invariant: remaining + down == total, tenor > 0.
	OrderDownPaymentIDR int64  `gorm:"column:order_down_payment_idr;not null;default:0;check:order_down_payment_idr >= 0" json:"order_down_payment_idr"`
	OrderRemainingIDR   int64  `gorm:"column:order_remaining_idr;not null;default:0;check:order_remaining_idr >= 0" json:"order_remaining_idr"`
	OrderTenor          int16  `gorm:"column:order_tenor;type:smallint;not null;default:0" json:"order_tenor"`
	OrderSnapToken      string `gorm:"column:order_snap_token;type:text" json:"order_snap_token,omitempty"`

	OrderCreatedAt time.Time      `gorm:"column:order_created_at;autoCreateTime" json:"order_created_at"`
	OrderUpdatedAt *time.Time     `gorm:"column:order_updated_at;autoUpdateTime" json:"order_updated_at,omitempty"`
	OrderDeletedAt gorm.DeletedAt `gorm:"column:order_deleted_at;index" json:"order_deleted_at,omitempty"`

	Items []OrderItemModel `gorm:"foreignKey:OrderItemOrderID;references:OrderID" json:"items,omitempty"`
}

func (OrderModel) TableName() string { return "orders" }

func (o OrderModel) IsCredit() bool { return o.OrderPaymentTrack == TrackCredit }

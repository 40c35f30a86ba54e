package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderItemModel struct {
	OrderItemID      uuid.UUID `gorm:"column:order_item_id;type:uuid;default:gen_random_uuid();primaryKey" json:"order_item_id"`
	OrderItemOrderID uuid.UUID `gorm:"column:order_item_order_id;type:uuid;not null;index:idx_order_items_order" json:"order_item_order_id"`

	// Referensi produk/paket (salah satu terisi)
	OrderItemProductID      *uuid.UUID `gorm:"column:order_item_product_id;type:uuid" json:"order_item_product_id,omitempty"`
	OrderItemVariantID      *uuid.UUID `gorm:"column:order_item_variant_id;type:uuid" json:"order_item_variant_id,omitempty"`
	OrderItemUmrohPackageID *uuid.UUID `gorm:"column:order_item_umroh_package_id;type:uuid" json:"order_item_umroh_package_id,omitempty"`

	OrderItemName         string `gorm:"column:order_item_name;type:varchar(150);not null" json:"order_item_name"`
	OrderItemUnitPriceIDR int64  `gorm:"column:order_item_unit_price_idr;not null;check:order_item_unit_price_idr >= 0" json:"order_item_unit_price_idr"`
	OrderItemQuantity     int    `gorm:"column:order_item_quantity;not null;check:order_item_quantity > 0" json:"order_item_quantity"`

	// subtotal = unit price * qty, dihitung sekali saat checkout
	OrderItemSubtotalIDR int64 `gorm:"column:order_item_subtotal_idr;not null;check:order_item_subtotal_idr >= 0" json:"order_item_subtotal_idr"`

	OrderItemCreatedAt time.Time `gorm:"column:order_item_created_at;autoCreateTime" json:"order_item_created_at"`
}

func (OrderItemModel) TableName() string { return "order_items" }

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Katalog dikelola aplikasi lain; service ini hanya membaca harga
// untuk membentuk line item saat checkout.
type ProductModel struct {
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;default:gen_random_uuid();primaryKey" json:"product_id"`
	ProductName     string    `gorm:"column:product_name;type:varchar(100);not null" json:"product_name"`
	ProductPriceIDR int64     `gorm:"column:product_price_idr;not null;check:product_price_idr >= 0" json:"product_price_idr"`

	ProductCreatedAt time.Time      `gorm:"column:product_created_at;autoCreateTime" json:"product_created_at"`
	ProductUpdatedAt *time.Time     `gorm:"column:product_updated_at;autoUpdateTime" json:"product_updated_at,omitempty"`
	ProductDeletedAt gorm.DeletedAt `gorm:"column:product_deleted_at;index" json:"product_deleted_at,omitempty"`
}

func (ProductModel) TableName() string { return "products" }

type ProductVariantModel struct {
	ProductVariantID        uuid.UUID `gorm:"column:product_variant_id;type:uuid;default:gen_random_uuid();primaryKey" json:"product_variant_id"`
	ProductVariantProductID uuid.UUID `gorm:"column:product_variant_product_id;type:uuid;not null;index:idx_product_variants_product" json:"product_variant_product_id"`
	ProductVariantName      string    `gorm:"column:product_variant_name;type:varchar(100);not null" json:"product_variant_name"`
	// Harga varian menimpa harga produk kalau diisi
	ProductVariantPriceIDR *int64 `gorm:"column:product_variant_price_idr;check:product_variant_price_idr >= 0" json:"product_variant_price_idr,omitempty"`

	ProductVariantCreatedAt time.Time      `gorm:"column:product_variant_created_at;autoCreateTime" json:"product_variant_created_at"`
	ProductVariantDeletedAt gorm.DeletedAt `gorm:"column:product_variant_deleted_at;index" json:"product_variant_deleted_at,omitempty"`
}

func (ProductVariantModel) TableName() string { return "product_variants" }

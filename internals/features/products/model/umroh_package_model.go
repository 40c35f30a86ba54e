package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UmrohPackageModel struct {
	UmrohPackageID       uuid.UUID `gorm:"column:umroh_package_id;type:uuid;default:gen_random_uuid();primaryKey" json:"umroh_package_id"`
	UmrohPackageName     string    `gorm:"column:umroh_package_name;type:varchar(150);not null" json:"umroh_package_name"`
	UmrohPackagePriceIDR int64     `gorm:"column:umroh_package_price_idr;not null;check:umroh_package_price_idr >= 0" json:"umroh_package_price_idr"`

	UmrohPackageDepartureDate *time.Time `gorm:"column:umroh_package_departure_date;type:date" json:"umroh_package_departure_date,omitempty"`
	UmrohPackageDurationDays  int16      `gorm:"column:umroh_package_duration_days;type:smallint" json:"umroh_package_duration_days"`

	UmrohPackageCreatedAt time.Time      `gorm:"column:umroh_package_created_at;autoCreateTime" json:"umroh_package_created_at"`
	UmrohPackageDeletedAt gorm.DeletedAt `gorm:"column:umroh_package_deleted_at;index" json:"umroh_package_deleted_at,omitempty"`
}

func (UmrohPackageModel) TableName() string { return "umroh_packages" }

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Decided() bool {
	return s == VerificationApproved || s == VerificationRejected
}

// Satu-satu dengan order kredit. Dibuat saat checkout kredit,
// hanya berubah lewat keputusan admin.
type CreditVerificationModel struct {
	CreditVerificationID        uuid.UUID `gorm:"column:credit_verification_id;type:uuid;default:gen_random_uuid();primaryKey" json:"credit_verification_id"`
	CreditVerificationOrderID   uuid.UUID `gorm:"column:credit_verification_order_id;type:uuid;not null;unique" json:"credit_verification_order_id"`
	CreditVerificationOrderCode string    `gorm:"column:credit_verification_order_code;type:varchar(100);not null;unique" json:"credit_verification_order_code"`

	// Data pemohon (KYC)
	CreditVerificationApplicantName string `gorm:"column:credit_verification_applicant_name;type:varchar(100);not null" json:"credit_verification_applicant_name"`
	CreditVerificationNIK           string `gorm:"column:credit_verification_nik;type:varchar(20);not null" json:"credit_verification_nik"`
	CreditVerificationPhone         string `gorm:"column:credit_verification_phone;type:varchar(30);not null" json:"credit_verification_phone"`
	CreditVerificationAddress       string `gorm:"column:credit_verification_address;type:text;not null" json:"credit_verification_address"`
	CreditVerificationOccupation    string `gorm:"column:credit_verification_occupation;type:varchar(100)" json:"credit_verification_occupation"`
	CreditVerificationIncomeIDR     int64  `gorm:"column:credit_verification_income_idr;check:credit_verification_income_idr >= 0" json:"credit_verification_income_idr"`

	// Dokumen wajib
	CreditVerificationIDCardURL     string `gorm:"column:credit_verification_id_card_url;type:text;not null" json:"credit_verification_id_card_url"`
	CreditVerificationSalarySlipURL string `gorm:"column:credit_verification_salary_slip_url;type:text;not null" json:"credit_verification_salary_slip_url"`
	CreditVerificationFamilyCardURL string `gorm:"column:credit_verification_family_card_url;type:text;not null" json:"credit_verification_family_card_url"`

	// Dokumen pendukung opsional
	CreditVerificationExtraDocURLs pq.StringArray `gorm:"column:credit_verification_extra_doc_urls;type:text[]" json:"credit_verification_extra_doc_urls,omitempty"`

	CreditVerificationStatus    VerificationStatus `gorm:"column:credit_verification_status;type:varchar(20);not null;default:'pending'" json:"credit_verification_status"`
	CreditVerificationDecidedAt *time.Time         `gorm:"column:credit_verification_decided_at" json:"credit_verification_decided_at,omitempty"`

	CreditVerificationCreatedAt time.Time      `gorm:"column:credit_verification_created_at;autoCreateTime" json:"credit_verification_created_at"`
	CreditVerificationUpdatedAt *time.Time     `gorm:"column:credit_verification_updated_at;autoUpdateTime" json:"credit_verification_updated_at,omitempty"`
	CreditVerificationDeletedAt gorm.DeletedAt `gorm:"column:credit_verification_deleted_at;index" json:"credit_verification_deleted_at,omitempty"`
}

func (CreditVerificationModel) TableName() string { return "credit_verifications" }

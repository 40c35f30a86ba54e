package dto

import (
	"time"

	orderModel "github.com/icecoffie/astrommerce-sub000/internals/features/orders/model"
	orderService "github.com/icecoffie/astrommerce-sub000/internals/features/orders/service"
	installmentModel "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/model"
	installmentService "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/service"
)

// CheckoutRequest: body checkout produk. Jalur kredit dikirim sebagai
// multipart (field + dokumen KYC), jalur cash boleh JSON biasa.
type CheckoutRequest struct {
	PaymentTrack string `json:"payment_track" form:"payment_track" validate:"required,oneof=cash credit"`
	Quantity     int    `json:"quantity" form:"quantity" validate:"required,gt=0"`

	CustomerName  string `json:"customer_name" form:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" form:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" form:"customer_phone" validate:"required"`

	// khusus kredit
	DownPaymentIDR int64 `json:"down_payment_idr" form:"down_payment_idr" validate:"omitempty,gte=0"`
	Tenor          int   `json:"tenor" form:"tenor" validate:"omitempty,gt=0"`

	// data pemohon KYC (multipart, khusus kredit)
	ApplicantName string `json:"applicant_name" form:"applicant_name"`
	ApplicantNIK  string `json:"applicant_nik" form:"applicant_nik"`
	Address       string `json:"address" form:"address"`
	Occupation    string `json:"occupation" form:"occupation"`
	IncomeIDR     int64  `json:"income_idr" form:"income_idr"`
}

// UmrohOrderRequest: checkout paket umroh.
type UmrohOrderRequest struct {
	PackageID string `json:"package_id" form:"package_id" validate:"required,uuid"`
	CheckoutRequest
}

type CheckoutResponse struct {
	OrderCode string `json:"order_code"`
	SnapToken string `json:"snap_token,omitempty"`
	ClientKey string `json:"client_key,omitempty"`
}

type InstallmentResponse struct {
	InstallmentID        string     `json:"installment_id"`
	Period               int        `json:"period"`
	AmountIDR            int64      `json:"amount_idr"`
	DueDate              time.Time  `json:"due_date"`
	PaidAt               *time.Time `json:"paid_at,omitempty"`
	ProofURL             *string    `json:"proof_url,omitempty"`
	Status               string     `json:"status"`
	StatusLabel          string     `json:"status_label"`
	AwaitingConfirmation bool       `json:"awaiting_confirmation"`
}

type OrderItemResponse struct {
	Name         string `json:"name"`
	UnitPriceIDR int64  `json:"unit_price_idr"`
	Quantity     int    `json:"quantity"`
	SubtotalIDR  int64  `json:"subtotal_idr"`
}

type OrderResponse struct {
	OrderCode      string                           `json:"order_code"`
	PaymentTrack   string                           `json:"payment_track"`
	CustomerName   string                           `json:"customer_name"`
	TotalIDR       int64                            `json:"total_idr"`
	DownPaymentIDR int64                            `json:"down_payment_idr,omitempty"`
	RemainingIDR   int64                            `json:"remaining_idr,omitempty"`
	Tenor          int                              `json:"tenor,omitempty"`
	CreatedAt      time.Time                        `json:"created_at"`
	Status         orderService.OrderDisplayStatus  `json:"status"`
	Items          []OrderItemResponse              `json:"items,omitempty"`
	Installments   []InstallmentResponse            `json:"installments,omitempty"`
}

// NewInstallmentResponse menurunkan status tampilan saat membentuk DTO.
// Setiap read path menghitung ulang, tidak ada status cicilan yang di-cache.
func NewInstallmentResponse(row installmentModel.OrderInstallmentModel, now time.Time) InstallmentResponse {
	status := installmentService.DeriveStatus(row.OrderInstallmentPaidAt, row.OrderInstallmentDueDate, now)
	return InstallmentResponse{
		InstallmentID:        row.OrderInstallmentID.String(),
		Period:               int(row.OrderInstallmentPeriod),
		AmountIDR:            row.OrderInstallmentAmountIDR,
		DueDate:              row.OrderInstallmentDueDate,
		PaidAt:               row.OrderInstallmentPaidAt,
		ProofURL:             row.OrderInstallmentProofURL,
		Status:               string(status),
		StatusLabel:          status.Label(),
		AwaitingConfirmation: installmentService.AwaitingConfirmation(row.OrderInstallmentProofURL, row.OrderInstallmentPaidAt),
	}
}

func NewOrderItemResponse(row orderModel.OrderItemModel) OrderItemResponse {
	return OrderItemResponse{
		Name:         row.OrderItemName,
		UnitPriceIDR: row.OrderItemUnitPriceIDR,
		Quantity:     row.OrderItemQuantity,
		SubtotalIDR:  row.OrderItemSubtotalIDR,
	}
}

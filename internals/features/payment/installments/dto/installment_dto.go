package dto

import (
	"time"

	"github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/model"
	"github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/service"
)

type InstallmentDetail struct {
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

func NewInstallmentDetail(row model.OrderInstallmentModel, now time.Time) InstallmentDetail {
	status := service.DeriveStatus(row.OrderInstallmentPaidAt, row.OrderInstallmentDueDate, now)
	return InstallmentDetail{
		InstallmentID:        row.OrderInstallmentID.String(),
		Period:               int(row.OrderInstallmentPeriod),
		AmountIDR:            row.OrderInstallmentAmountIDR,
		DueDate:              row.OrderInstallmentDueDate,
		PaidAt:               row.OrderInstallmentPaidAt,
		ProofURL:             row.OrderInstallmentProofURL,
		Status:               string(status),
		StatusLabel:          status.Label(),
		AwaitingConfirmation: service.AwaitingConfirmation(row.OrderInstallmentProofURL, row.OrderInstallmentPaidAt),
	}
}

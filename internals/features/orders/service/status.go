package service

import (
	"github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/model"
	orderModel "github.com/icecoffie/astrommerce-sub000/internals/features/orders/model"
	gatewayService "github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/service"
)

// OrderDisplayStatus: status order siap tampil, diturunkan ulang di setiap
// read path dari record mentah, tidak pernah di-cache.
type OrderDisplayStatus struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	// Order kredit baru bisa dicicil setelah verifikasi disetujui
	InstallmentsPayable bool `json:"installments_payable"`
}

// StatusInput: potret mentah yang dibutuhkan derivasi. Semua field dibaca
// apa adanya dari record; fungsi ini tidak menyentuh DB.
type StatusInput struct {
	Track         orderModel.PaymentTrack
	PaymentStatus orderModel.PaymentStatus
	FailureReason *string

	// nil untuk order cash
	VerificationStatus *model.VerificationStatus
	TotalPeriods       int
	PaidPeriods        int
}

func DeriveOrderStatus(in StatusInput) OrderDisplayStatus {
	if in.Track == orderModel.TrackCredit {
		return deriveCreditStatus(in)
	}
	return deriveCashStatus(in)
}

func deriveCashStatus(in StatusInput) OrderDisplayStatus {
	switch in.PaymentStatus {
	case orderModel.PaymentPaid:
		return OrderDisplayStatus{Code: "paid", Label: "Lunas"}
	case orderModel.PaymentPending:
		return OrderDisplayStatus{Code: "pending", Label: "Menunggu Validasi Admin"}
	case orderModel.PaymentCancelled:
		return OrderDisplayStatus{Code: "failed", Label: "Gagal"}
	default: // unpaid
		if in.FailureReason != nil && *in.FailureReason == gatewayService.SubReasonExpired {
			return OrderDisplayStatus{Code: "expired", Label: "Kedaluwarsa"}
		}
		return OrderDisplayStatus{Code: "unpaid", Label: "Belum Dibayar"}
	}
}

func deriveCreditStatus(in StatusInput) OrderDisplayStatus {
	vs := model.VerificationPending
	if in.VerificationStatus != nil {
		vs = *in.VerificationStatus
	}

	switch vs {
	case model.VerificationRejected:
		return OrderDisplayStatus{Code: "rejected", Label: "Pengajuan Ditolak"}
	case model.VerificationPending:
		// cicilan belum bisa dibayar sebelum aktivasi
		return OrderDisplayStatus{Code: "awaiting_activation", Label: "Menunggu Aktivasi"}
	}

	if in.TotalPeriods > 0 && in.PaidPeriods >= in.TotalPeriods {
		return OrderDisplayStatus{Code: "paid", Label: "Lunas", InstallmentsPayable: true}
	}
	return OrderDisplayStatus{Code: "installments_active", Label: "Cicilan Berjalan", InstallmentsPayable: true}
}

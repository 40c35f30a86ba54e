package dto

// SubmitRequest: field multipart pengajuan verifikasi kredit.
// Dokumen (id_card, salary_slip, family_card, additional_documents) dibaca
// dari form file, bukan struct ini.
type SubmitRequest struct {
	OrderCode     string `form:"order_code" validate:"required"`
	ApplicantName string `form:"applicant_name" validate:"required"`
	ApplicantNIK  string `form:"applicant_nik" validate:"required"`
	Phone         string `form:"phone" validate:"required"`
	Address       string `form:"address" validate:"required"`
	Occupation    string `form:"occupation"`
	IncomeIDR     int64  `form:"income_idr" validate:"omitempty,gte=0"`
}

type ReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	// Konfirmasi eksplisit untuk mengubah keputusan yang sudah dibuat
	Reopen bool `json:"reopen"`
}

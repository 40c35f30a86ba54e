package service

import (
	"time"
)

// DisplayStatus adalah status cicilan yang dilihat user.
// Murni turunan dari (paid_at, due_date, now), tidak pernah dipersist.
type DisplayStatus string

const (
	StatusPaid    DisplayStatus = "paid"
	StatusOverdue DisplayStatus = "overdue"
	StatusUnpaid  DisplayStatus = "unpaid"
)

func (s DisplayStatus) Label() string {
	switch s {
	case StatusPaid:
		return "Lunas"
	case StatusOverdue:
		return "Terlambat"
	default:
		return "Belum Dibayar"
	}
}

// DeriveStatus: Lunas kalau paid_at terisi; lewat jatuh tempo tanpa paid_at = Terlambat
// (ada/tidaknya bukti transfer tidak mengubah ini); sisanya Belum Dibayar.
func DeriveStatus(paidAt *time.Time, dueDate time.Time, now time.Time) DisplayStatus {
	if paidAt != nil {
		return StatusPaid
	}
	if now.After(dueDate) {
		return StatusOverdue
	}
	return StatusUnpaid
}

// AwaitingConfirmation: bukti sudah diupload tapi admin belum konfirmasi.
// Ini affordance untuk tombol admin, bukan status tersendiri.
func AwaitingConfirmation(proofURL *string, paidAt *time.Time) bool {
	return proofURL != nil && paidAt == nil
}

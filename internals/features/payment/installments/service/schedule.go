package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/model"
)

var ErrInvalidScheduleInput = errors.New("jumlah tenor harus > 0 dan sisa pokok >= 0")

// ComputeSchedule menghitung nominal cicilan per periode dari sisa pokok dan tenor.
//
// Rumus warisan: tiap periode = floor(sisa/tenor/1000)*1000 + 1000.
// Pembulatan ke bawah per 1000 lalu ditambah buffer tetap 1000, berlaku sama
// untuk SEMUA periode. Tidak ada penyerapan sisa di periode terakhir, sehingga
// total tagihan sengaja sedikit di atas sisa pokok.
func ComputeSchedule(remainingPrincipal int64, periods int) ([]int64, error) {
	if periods <= 0 || remainingPrincipal < 0 {
		return nil, ErrInvalidScheduleInput
	}

	perPeriod := remainingPrincipal/int64(periods)/1000*1000 + 1000

	amounts := make([]int64, periods)
	for i := range amounts {
		amounts[i] = perPeriod
	}
	return amounts, nil
}

// BuildInstallments membentuk baris periode 1..tenor dengan jatuh tempo bulanan
// dari tanggal order. Nominal dipersist di sini; pembacaan tidak menghitung ulang.
func BuildInstallments(orderID uuid.UUID, orderCreatedAt time.Time, remainingPrincipal int64, periods int) ([]model.OrderInstallmentModel, error) {
	amounts, err := ComputeSchedule(remainingPrincipal, periods)
	if err != nil {
		return nil, err
	}

	rows := make([]model.OrderInstallmentModel, periods)
	for i, amount := range amounts {
		rows[i] = model.OrderInstallmentModel{
			OrderInstallmentOrderID:   orderID,
			OrderInstallmentPeriod:    int16(i + 1),
			OrderInstallmentAmountIDR: amount,
			OrderInstallmentDueDate:   orderCreatedAt.AddDate(0, i+1, 0),
		}
	}
	return rows, nil
}

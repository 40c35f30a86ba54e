package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	verificationModel "github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/model"
	"github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/model"
	helper "github.com/icecoffie/astrommerce-sub000/internals/helpers"
)

var (
	ErrNotFound             = errors.New("cicilan tidak ditemukan")
	ErrConflict             = errors.New("data cicilan sudah berubah, muat ulang dan coba lagi")
	ErrAlreadyPaid          = errors.New("cicilan sudah lunas")
	ErrProofAlreadyUploaded = errors.New("bukti pembayaran sudah diupload, menunggu konfirmasi admin")
	ErrProofRequired        = errors.New("belum ada bukti pembayaran untuk dikonfirmasi")
	ErrNotPayable           = errors.New("cicilan belum bisa dibayar, verifikasi kredit belum disetujui")
	ErrProofFileRequired    = errors.New("file bukti pembayaran wajib diisi")
)

// Store: persistence cicilan. Progresi state dijaga lewat compare-and-swap
// di level query, bukan cek-lalu-tulis.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderInstallmentModel, error)
	GetByOrderCodeAndPeriod(ctx context.Context, orderCode string, period int) (*model.OrderInstallmentModel, error)
	VerificationStatus(ctx context.Context, orderID uuid.UUID) (verificationModel.VerificationStatus, error)
	SetProofCAS(ctx context.Context, id uuid.UUID, proofURL string) (bool, error)
	MarkPaidCAS(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error)
}

// Workflow: upload bukti oleh customer + konfirmasi manual oleh admin.
// Konfirmasi admin adalah SATU-SATUNYA jalan cicilan jadi lunas;
// tidak ada approval otomatis.
type Workflow struct {
	Store  Store
	Upload helper.Uploader
}

func NewWorkflow(store Store, upload helper.Uploader) *Workflow {
	return &Workflow{Store: store, Upload: upload}
}

// UploadProof menempelkan bukti transfer ke satu periode cicilan.
// Hanya boleh saat belum ada bukti dan belum lunas; paid_at tidak disentuh.
func (w *Workflow) UploadProof(ctx context.Context, installmentID uuid.UUID, file *multipart.FileHeader) (*model.OrderInstallmentModel, error) {
	if file == nil {
		return nil, ErrProofFileRequired
	}

	inst, err := w.Store.GetByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if inst.OrderInstallmentPaidAt != nil {
		return nil, ErrAlreadyPaid
	}
	if inst.OrderInstallmentProofURL != nil {
		return nil, ErrProofAlreadyUploaded
	}

	vs, err := w.Store.VerificationStatus(ctx, inst.OrderInstallmentOrderID)
	if err != nil {
		return nil, err
	}
	if vs != verificationModel.VerificationApproved {
		return nil, ErrNotPayable
	}

	folder := fmt.Sprintf("installment-proof/%s", inst.OrderInstallmentOrderID)
	proofURL, err := w.Upload(folder, file)
	if err != nil {
		return nil, fmt.Errorf("upload bukti pembayaran: %w", err)
	}

	ok, err := w.Store.SetProofCAS(ctx, installmentID, proofURL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}

	inst.OrderInstallmentProofURL = &proofURL
	return inst, nil
}

// ConfirmPayment: admin menyatakan satu periode lunas. Syarat: bukti sudah
// ada dan paid_at masih kosong. paid_at sekali terisi tidak pernah berubah;
// percobaan kedua (admin lain) dapat ErrConflict, bukan double-count.
func (w *Workflow) ConfirmPayment(ctx context.Context, orderCode string, period int) (*model.OrderInstallmentModel, error) {
	inst, err := w.Store.GetByOrderCodeAndPeriod(ctx, orderCode, period)
	if err != nil {
		return nil, err
	}
	if inst.OrderInstallmentPaidAt != nil {
		return nil, ErrConflict
	}
	if inst.OrderInstallmentProofURL == nil {
		return nil, ErrProofRequired
	}

	now := time.Now()
	ok, err := w.Store.MarkPaidCAS(ctx, inst.OrderInstallmentID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}

	log.Printf("[INFO] Cicilan %s periode %d dikonfirmasi lunas", orderCode, period)
	inst.OrderInstallmentPaidAt = &now
	return inst, nil
}

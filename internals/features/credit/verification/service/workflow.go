package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/model"
	orderService "github.com/icecoffie/astrommerce-sub000/internals/features/orders/service"
	helper "github.com/icecoffie/astrommerce-sub000/internals/helpers"
)

var (
	// Tiga dokumen wajib: KTP, slip gaji, kartu keluarga
	ErrIncompleteDocuments = errors.New("dokumen wajib belum lengkap (KTP, slip gaji, kartu keluarga)")

	// Keputusan sudah dibuat; ubah status butuh konfirmasi buka-ulang eksplisit
	ErrDecisionLocked = errors.New("pengajuan sudah diputuskan, buka ulang dulu untuk mengubah keputusan")
)

// Store: persistence verifikasi kredit. Mutasi status memakai compare-and-swap
// supaya dua admin yang menekan tombol bersamaan tidak saling menimpa.
type Store interface {
	GetByOrderCode(ctx context.Context, orderCode string) (*model.CreditVerificationModel, error)
	Create(ctx context.Context, row *model.CreditVerificationModel) error
	UpdateStatusCAS(ctx context.Context, orderCode string, from, to model.VerificationStatus, decidedAt *time.Time) (bool, error)
}

// Workflow mengelola intake dokumen KYC, keputusan admin, dan buka-ulang.
type Workflow struct {
	Store  Store
	Upload helper.Uploader
}

func NewWorkflow(store Store, upload helper.Uploader) *Workflow {
	return &Workflow{Store: store, Upload: upload}
}

type SubmitInput struct {
	OrderID   uuid.UUID
	OrderCode string

	ApplicantName string
	NIK           string
	Phone         string
	Address       string
	Occupation    string
	IncomeIDR     int64

	IDCard     *multipart.FileHeader
	SalarySlip *multipart.FileHeader
	FamilyCard *multipart.FileHeader
	Extra      []*multipart.FileHeader
}

// Submit memvalidasi kelengkapan dokumen, mengupload, lalu membuat record
// verifikasi berstatus pending. Validasi kelengkapan dilakukan SEBELUM ada
// efek samping apa pun.
func (w *Workflow) Submit(ctx context.Context, in SubmitInput) (*model.CreditVerificationModel, error) {
	if in.IDCard == nil || in.SalarySlip == nil || in.FamilyCard == nil {
		return nil, ErrIncompleteDocuments
	}

	folder := "credit-verification/" + in.OrderCode

	idCardURL, err := w.Upload(folder, in.IDCard)
	if err != nil {
		return nil, fmt.Errorf("upload KTP: %w", err)
	}
	salarySlipURL, err := w.Upload(folder, in.SalarySlip)
	if err != nil {
		return nil, fmt.Errorf("upload slip gaji: %w", err)
	}
	familyCardURL, err := w.Upload(folder, in.FamilyCard)
	if err != nil {
		return nil, fmt.Errorf("upload kartu keluarga: %w", err)
	}

	var extraURLs []string
	for _, fh := range in.Extra {
		url, err := w.Upload(folder, fh)
		if err != nil {
			return nil, fmt.Errorf("upload dokumen tambahan: %w", err)
		}
		extraURLs = append(extraURLs, url)
	}

	row := &model.CreditVerificationModel{
		CreditVerificationOrderID:       in.OrderID,
		CreditVerificationOrderCode:     in.OrderCode,
		CreditVerificationApplicantName: in.ApplicantName,
		CreditVerificationNIK:           in.NIK,
		CreditVerificationPhone:         in.Phone,
		CreditVerificationAddress:       in.Address,
		CreditVerificationOccupation:    in.Occupation,
		CreditVerificationIncomeIDR:     in.IncomeIDR,
		CreditVerificationIDCardURL:     idCardURL,
		CreditVerificationSalarySlipURL: salarySlipURL,
		CreditVerificationFamilyCardURL: familyCardURL,
		CreditVerificationExtraDocURLs:  extraURLs,
		CreditVerificationStatus:        model.VerificationPending,
	}

	if err := w.Store.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Review menerapkan keputusan admin.
//   - dari pending: langsung diputuskan
//   - keputusan sama diulang: no-op (idempotent)
//   - dari approved/rejected ke keputusan lain: hanya kalau reopenConfirmed
//     (gesture dua langkah, cegah salah pencet)
//
// Semua transisi CAS pada status sebelumnya; kalah balapan → ErrConflict.
func (w *Workflow) Review(ctx context.Context, orderCode string, decision model.VerificationStatus, reopenConfirmed bool) error {
	if decision != model.VerificationApproved && decision != model.VerificationRejected {
		return fmt.Errorf("%w: keputusan harus approved/rejected", orderService.ErrValidation)
	}

	row, err := w.Store.GetByOrderCode(ctx, orderCode)
	if err != nil {
		return err
	}

	current := row.CreditVerificationStatus
	if current == decision {
		return nil // idempotent
	}

	if current.Decided() {
		if !reopenConfirmed {
			return ErrDecisionLocked
		}
		if err := w.Reopen(ctx, orderCode); err != nil {
			return err
		}
		current = model.VerificationPending
	}

	now := time.Now()
	ok, err := w.Store.UpdateStatusCAS(ctx, orderCode, current, decision, &now)
	if err != nil {
		return err
	}
	if !ok {
		return orderService.ErrConflict
	}

	log.Printf("[INFO] Verifikasi kredit %s: %s -> %s", orderCode, current, decision)
	return nil
}

// Reopen mengembalikan pengajuan yang sudah diputuskan ke state pending
// yang bisa diedit; keputusan baru wajib menyusul.
func (w *Workflow) Reopen(ctx context.Context, orderCode string) error {
	row, err := w.Store.GetByOrderCode(ctx, orderCode)
	if err != nil {
		return err
	}

	current := row.CreditVerificationStatus
	if current == model.VerificationPending {
		return nil
	}

	ok, err := w.Store.UpdateStatusCAS(ctx, orderCode, current, model.VerificationPending, nil)
	if err != nil {
		return err
	}
	if !ok {
		return orderService.ErrConflict
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/model"
	orderService "github.com/icecoffie/astrommerce-sub000/internals/features/orders/service"
)

type fakeVerificationStore struct {
	rows      map[string]*model.CreditVerificationModel
	casDenied bool
}

func newFakeVerificationStore() *fakeVerificationStore {
	return &fakeVerificationStore{rows: map[string]*model.CreditVerificationModel{}}
}

func (s *fakeVerificationStore) GetByOrderCode(_ context.Context, orderCode string) (*model.CreditVerificationModel, error) {
	row, ok := s.rows[orderCode]
	if !ok {
		return nil, orderService.ErrNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *fakeVerificationStore) Create(_ context.Context, row *model.CreditVerificationModel) error {
	s.rows[row.CreditVerificationOrderCode] = row
	return nil
}

func (s *fakeVerificationStore) UpdateStatusCAS(_ context.Context, orderCode string, from, to model.VerificationStatus, decidedAt *time.Time) (bool, error) {
	if s.casDenied {
		return false, nil
	}
	row, ok := s.rows[orderCode]
	if !ok || row.CreditVerificationStatus != from {
		return false, nil
	}
	row.CreditVerificationStatus = to
	row.CreditVerificationDecidedAt = decidedAt
	return true, nil
}

type countingUploader struct {
	calls   int
	failOn  int // 1-based; 0 = tidak pernah gagal
	baseURL string
}

func (u *countingUploader) upload(folder string, fh *multipart.FileHeader) (string, error) {
	u.calls++
	if u.failOn != 0 && u.calls == u.failOn {
		return "", errors.New("storage timeout")
	}
	return u.baseURL + "/" + folder + "/" + fh.Filename, nil
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

func submitInput() SubmitInput {
	return SubmitInput{
		OrderID:       uuid.New(),
		OrderCode:     "UMR-1001",
		ApplicantName: "Siti Rahma",
		NIK:           "3175064501900002",
		Phone:         "0813000222",
		Address:       "Jl. Melati No. 7, Depok",
		Occupation:    "Karyawan swasta",
		IncomeIDR:     8_500_000,
		IDCard:        fileHeader("ktp.jpg"),
		SalarySlip:    fileHeader("slip.pdf"),
		FamilyCard:    fileHeader("kk.jpg"),
	}
}

func TestSubmitHappyPath(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	up := &countingUploader{baseURL: "https://cdn.example.com"}
	w := NewWorkflow(store, up.upload)

	row, err := w.Submit(context.Background(), submitInput())
	require.NoError(t, err)
	require.Equal(t, model.VerificationPending, row.CreditVerificationStatus)
	require.Equal(t, 3, up.calls)
	require.Contains(t, row.CreditVerificationIDCardURL, "credit-verification/UMR-1001")

	stored, err := store.GetByOrderCode(context.Background(), "UMR-1001")
	require.NoError(t, err)
	require.Nil(t, stored.CreditVerificationDecidedAt)
}

func TestSubmitMissingMandatoryDocument(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	up := &countingUploader{}
	w := NewWorkflow(store, up.upload)

	for _, tc := range []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"tanpa KTP", func(in *SubmitInput) { in.IDCard = nil }},
		{"tanpa slip gaji", func(in *SubmitInput) { in.SalarySlip = nil }},
		{"tanpa kartu keluarga", func(in *SubmitInput) { in.FamilyCard = nil }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			in := submitInput()
			tc.mutate(&in)
			_, err := w.Submit(context.Background(), in)
			require.ErrorIs(t, err, ErrIncompleteDocuments)
		})
	}

	// validasi kelengkapan terjadi sebelum efek samping apa pun
	require.Zero(t, up.calls)
	require.Empty(t, store.rows)
}

func TestSubmitUploadFailureStopsEarly(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	up := &countingUploader{failOn: 2}
	w := NewWorkflow(store, up.upload)

	_, err := w.Submit(context.Background(), submitInput())
	require.Error(t, err)
	require.Contains(t, err.Error(), "slip gaji")
	require.Empty(t, store.rows) // record tidak dibuat kalau upload gagal
}

func TestSubmitWithExtraDocuments(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	up := &countingUploader{baseURL: "https://cdn.example.com"}
	w := NewWorkflow(store, up.upload)

	in := submitInput()
	in.Extra = []*multipart.FileHeader{fileHeader("npwp.pdf"), fileHeader("rekening.pdf")}

	row, err := w.Submit(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, row.CreditVerificationExtraDocURLs, 2)
	require.Equal(t, 5, up.calls)
}

func seedVerification(store *fakeVerificationStore, status model.VerificationStatus) {
	var decidedAt *time.Time
	if status.Decided() {
		now := time.Now()
		decidedAt = &now
	}
	store.rows["UMR-1001"] = &model.CreditVerificationModel{
		CreditVerificationOrderID:   uuid.New(),
		CreditVerificationOrderCode: "UMR-1001",
		CreditVerificationStatus:    status,
		CreditVerificationDecidedAt: decidedAt,
	}
}

func TestReviewFromPending(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	seedVerification(store, model.VerificationPending)
	w := NewWorkflow(store, nil)

	require.NoError(t, w.Review(context.Background(), "UMR-1001", model.VerificationApproved, false))
	require.Equal(t, model.VerificationApproved, store.rows["UMR-1001"].CreditVerificationStatus)
	require.NotNil(t, store.rows["UMR-1001"].CreditVerificationDecidedAt)
}

func TestReviewSameDecisionIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	seedVerification(store, model.VerificationApproved)
	decidedAt := store.rows["UMR-1001"].CreditVerificationDecidedAt
	w := NewWorkflow(store, nil)

	// approve dua kali berturut-turut: no-op, tanpa error
	require.NoError(t, w.Review(context.Background(), "UMR-1001", model.VerificationApproved, false))
	require.Equal(t, model.VerificationApproved, store.rows["UMR-1001"].CreditVerificationStatus)
	require.Equal(t, decidedAt, store.rows["UMR-1001"].CreditVerificationDecidedAt)
}

func TestReviewFlipRequiresReopen(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	seedVerification(store, model.VerificationApproved)
	w := NewWorkflow(store, nil)

	err := w.Review(context.Background(), "UMR-1001", model.VerificationRejected, false)
	require.ErrorIs(t, err, ErrDecisionLocked)
	require.Equal(t, model.VerificationApproved, store.rows["UMR-1001"].CreditVerificationStatus)
}

func TestReviewFlipWithReopenConfirmed(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	seedVerification(store, model.VerificationApproved)
	w := NewWorkflow(store, nil)

	require.NoError(t, w.Review(context.Background(), "UMR-1001", model.VerificationRejected, true))
	require.Equal(t, model.VerificationRejected, store.rows["UMR-1001"].CreditVerificationStatus)
}

func TestReviewInvalidDecision(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	seedVerification(store, model.VerificationPending)
	w := NewWorkflow(store, nil)

	err := w.Review(context.Background(), "UMR-1001", model.VerificationPending, false)
	require.ErrorIs(t, err, orderService.ErrValidation)
}

func TestReviewLostRace(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	seedVerification(store, model.VerificationPending)
	store.casDenied = true
	w := NewWorkflow(store, nil)

	err := w.Review(context.Background(), "UMR-1001", model.VerificationApproved, false)
	require.ErrorIs(t, err, orderService.ErrConflict)
}

func TestReopen(t *testing.T) {
	t.Parallel()

	store := newFakeVerificationStore()
	seedVerification(store, model.VerificationRejected)
	w := NewWorkflow(store, nil)

	require.NoError(t, w.Reopen(context.Background(), "UMR-1001"))
	require.Equal(t, model.VerificationPending, store.rows["UMR-1001"].CreditVerificationStatus)
	require.Nil(t, store.rows["UMR-1001"].CreditVerificationDecidedAt)

	// sudah pending: no-op
	require.NoError(t, w.Reopen(context.Background(), "UMR-1001"))
}

package service

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	verificationModel "github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/model"
	"github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/model"
)

type fakeInstallmentStore struct {
	rows         map[uuid.UUID]*model.OrderInstallmentModel
	byOrderCode  map[string]uuid.UUID
	verification verificationModel.VerificationStatus
	casDenied    bool
}

func newFakeInstallmentStore() *fakeInstallmentStore {
	return &fakeInstallmentStore{
		rows:         map[uuid.UUID]*model.OrderInstallmentModel{},
		byOrderCode:  map[string]uuid.UUID{},
		verification: verificationModel.VerificationApproved,
	}
}

func (s *fakeInstallmentStore) add(orderCode string, row *model.OrderInstallmentModel) {
	s.rows[row.OrderInstallmentID] = row
	s.byOrderCode[orderCode] = row.OrderInstallmentID
}

func (s *fakeInstallmentStore) GetByID(_ context.Context, id uuid.UUID) (*model.OrderInstallmentModel, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *fakeInstallmentStore) GetByOrderCodeAndPeriod(_ context.Context, orderCode string, period int) (*model.OrderInstallmentModel, error) {
	id, ok := s.byOrderCode[orderCode]
	if !ok {
		return nil, ErrNotFound
	}
	row := s.rows[id]
	if int(row.OrderInstallmentPeriod) != period {
		return nil, ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *fakeInstallmentStore) VerificationStatus(_ context.Context, _ uuid.UUID) (verificationModel.VerificationStatus, error) {
	return s.verification, nil
}

func (s *fakeInstallmentStore) SetProofCAS(_ context.Context, id uuid.UUID, proofURL string) (bool, error) {
	row, ok := s.rows[id]
	if !ok || s.casDenied || row.OrderInstallmentProofURL != nil || row.OrderInstallmentPaidAt != nil {
		return false, nil
	}
	row.OrderInstallmentProofURL = &proofURL
	return true, nil
}

func (s *fakeInstallmentStore) MarkPaidCAS(_ context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	row, ok := s.rows[id]
	if !ok || s.casDenied || row.OrderInstallmentPaidAt != nil || row.OrderInstallmentProofURL == nil {
		return false, nil
	}
	row.OrderInstallmentPaidAt = &paidAt
	return true, nil
}

func fakeUploader(uploaded *int) func(string, *multipart.FileHeader) (string, error) {
	return func(folder string, fh *multipart.FileHeader) (string, error) {
		*uploaded++
		return "https://storage.example.com/" + folder + "/" + fh.Filename, nil
	}
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name}
}

func newInstallment(period int16) *model.OrderInstallmentModel {
	return &model.OrderInstallmentModel{
		OrderInstallmentID:        uuid.New(),
		OrderInstallmentOrderID:   uuid.New(),
		OrderInstallmentPeriod:    period,
		OrderInstallmentAmountIDR: 2_001_000,
		OrderInstallmentDueDate:   time.Now().AddDate(0, 1, 0),
	}
}

func TestUploadProofHappyPath(t *testing.T) {
	t.Parallel()

	store := newFakeInstallmentStore()
	inst := newInstallment(1)
	store.add("ORD-1", inst)

	var uploads int
	w := NewWorkflow(store, fakeUploader(&uploads))

	got, err := w.UploadProof(context.Background(), inst.OrderInstallmentID, fileHeader("bukti.jpg"))
	require.NoError(t, err)
	require.Equal(t, 1, uploads)
	require.NotNil(t, got.OrderInstallmentProofURL)
	// upload bukti tidak menyentuh paid_at
	require.Nil(t, got.OrderInstallmentPaidAt)
	require.NotNil(t, store.rows[inst.OrderInstallmentID].OrderInstallmentProofURL)
}

func TestUploadProofRejectsSecondProof(t *testing.T) {
	t.Parallel()

	store := newFakeInstallmentStore()
	inst := newInstallment(1)
	proof := "https://storage.example.com/sudah-ada.jpg"
	inst.OrderInstallmentProofURL = &proof
	store.add("ORD-1", inst)

	var uploads int
	w := NewWorkflow(store, fakeUploader(&uploads))

	_, err := w.UploadProof(context.Background(), inst.OrderInstallmentID, fileHeader("bukti.jpg"))
	require.ErrorIs(t, err, ErrProofAlreadyUploaded)
	require.Zero(t, uploads)
}

func TestUploadProofRejectsPaidInstallment(t *testing.T) {
	t.Parallel()

	store := newFakeInstallmentStore()
	inst := newInstallment(1)
	now := time.Now()
	inst.OrderInstallmentPaidAt = &now
	store.add("ORD-1", inst)

	var uploads int
	w := NewWorkflow(store, fakeUploader(&uploads))

	_, err := w.UploadProof(context.Background(), inst.OrderInstallmentID, fileHeader("bukti.jpg"))
	require.ErrorIs(t, err, ErrAlreadyPaid)
	require.Zero(t, uploads)
}

func TestUploadProofRequiresApprovedVerification(t *testing.T) {
	t.Parallel()

	store := newFakeInstallmentStore()
	store.verification = verificationModel.VerificationPending
	inst := newInstallment(1)
	store.add("ORD-1", inst)

	var uploads int
	w := NewWorkflow(store, fakeUploader(&uploads))

	_, err := w.UploadProof(context.Background(), inst.OrderInstallmentID, fileHeader("bukti.jpg"))
	require.ErrorIs(t, err, ErrNotPayable)
	require.Zero(t, uploads)
}

func TestConfirmPaymentHappyPath(t *testing.T) {
	t.Parallel()

	store := newFakeInstallmentStore()
	inst := newInstallment(2)
	proof := "https://storage.example.com/bukti.jpg"
	inst.OrderInstallmentProofURL = &proof
	store.add("ORD-2", inst)

	w := NewWorkflow(store, fakeUploader(new(int)))

	got, err := w.ConfirmPayment(context.Background(), "ORD-2", 2)
	require.NoError(t, err)
	require.NotNil(t, got.OrderInstallmentPaidAt)
	require.NotNil(t, store.rows[inst.OrderInstallmentID].OrderInstallmentPaidAt)
}

func TestConfirmPaymentRequiresProof(t *testing.T) {
	t.Parallel()

	store := newFakeInstallmentStore()
	inst := newInstallment(1)
	store.add("ORD-1", inst)

	w := NewWorkflow(store, fakeUploader(new(int)))

	_, err := w.ConfirmPayment(context.Background(), "ORD-1", 1)
	require.ErrorIs(t, err, ErrProofRequired)
}

func TestConfirmPaymentTwiceConflicts(t *testing.T) {
	t.Parallel()

	store := newFakeInstallmentStore()
	inst := newInstallment(1)
	proof := "https://storage.example.com/bukti.jpg"
	inst.OrderInstallmentProofURL = &proof
	store.add("ORD-1", inst)

	w := NewWorkflow(store, fakeUploader(new(int)))

	first, err := w.ConfirmPayment(context.Background(), "ORD-1", 1)
	require.NoError(t, err)
	firstPaidAt := *first.OrderInstallmentPaidAt

	// admin kedua menekan tombol yang sama
	_, err = w.ConfirmPayment(context.Background(), "ORD-1", 1)
	require.ErrorIs(t, err, ErrConflict)

	// paid_at tidak bergeser
	require.Equal(t, firstPaidAt, *store.rows[inst.OrderInstallmentID].OrderInstallmentPaidAt)
}

func TestConfirmPaymentLosesRace(t *testing.T) {
	t.Parallel()

	store := newFakeInstallmentStore()
	inst := newInstallment(1)
	proof := "https://storage.example.com/bukti.jpg"
	inst.OrderInstallmentProofURL = &proof
	store.add("ORD-1", inst)
	store.casDenied = true // request lain menang duluan

	w := NewWorkflow(store, fakeUploader(new(int)))

	_, err := w.ConfirmPayment(context.Background(), "ORD-1", 1)
	require.ErrorIs(t, err, ErrConflict)
}

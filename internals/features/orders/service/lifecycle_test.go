package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	orderModel "github.com/icecoffie/astrommerce-sub000/internals/features/orders/model"
	gatewayService "github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/service"
	installmentModel "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/model"
)

// fakeOrderStore meniru backend record store: create & delete by order code.
type fakeOrderStore struct {
	orders       map[string]orderModel.OrderModel
	installments map[string][]installmentModel.OrderInstallmentModel
	createErr    error
	deleteErr    error
	deleteCalls  []string
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:       map[string]orderModel.OrderModel{},
		installments: map[string][]installmentModel.OrderInstallmentModel{},
	}
}

func (s *fakeOrderStore) CreateOrder(_ context.Context, order *orderModel.OrderModel, installments []installmentModel.OrderInstallmentModel) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.orders[order.OrderCode] = *order
	s.installments[order.OrderCode] = installments
	return nil
}

func (s *fakeOrderStore) DeleteOrder(_ context.Context, orderCode string) error {
	s.deleteCalls = append(s.deleteCalls, orderCode)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.orders, orderCode)
	delete(s.installments, orderCode)
	return nil
}

func (s *fakeOrderStore) SaveSnapToken(_ context.Context, orderCode, token string) error {
	order, ok := s.orders[orderCode]
	if !ok {
		return ErrNotFound
	}
	order.OrderSnapToken = token
	s.orders[orderCode] = order
	return nil
}

func okTokenRequester(in gatewayService.TokenRequest) (gatewayService.TokenResponse, error) {
	return gatewayService.TokenResponse{SnapToken: "snap-ok", ClientKey: "ck-test"}, nil
}

func failTokenRequester(in gatewayService.TokenRequest) (gatewayService.TokenResponse, error) {
	return gatewayService.TokenResponse{}, gatewayService.ErrTokenRequest
}

func cashInput() CheckoutInput {
	return CheckoutInput{
		Track:    orderModel.TrackCash,
		Customer: Customer{Name: "Budi", Email: "budi@example.com", Phone: "0812000111"},
		Items: []LineItem{
			{Name: "Koper Kabin", UnitPriceIDR: 1_500_000, Quantity: 2},
		},
	}
}

func creditInput(submit VerificationSubmitter) CheckoutInput {
	return CheckoutInput{
		Track:    orderModel.TrackCredit,
		Customer: Customer{Name: "Siti", Email: "siti@example.com", Phone: "0813000222"},
		Items: []LineItem{
			{Name: "Paket Umroh Reguler", UnitPriceIDR: 30_000_000, Quantity: 1},
		},
		CodePrefix:      "UMR",
		DownPaymentIDR:  6_000_000,
		Tenor:           6,
		SubmitDocuments: submit,
	}
}

func TestCreateOrderCashHappyPath(t *testing.T) {
	t.Parallel()

	store := newFakeOrderStore()
	lc := NewLifecycle(store, okTokenRequester)

	result, err := lc.CreateOrder(context.Background(), cashInput())
	require.NoError(t, err)
	require.Equal(t, "snap-ok", result.SnapToken)
	require.Equal(t, "ck-test", result.ClientKey)

	persisted, ok := store.orders[result.Order.OrderCode]
	require.True(t, ok)
	require.Equal(t, orderModel.PaymentUnpaid, persisted.OrderPaymentStatus)
	require.Equal(t, int64(3_000_000), persisted.OrderTotalIDR)
	// cash: tidak ada uang muka, tidak ada jadwal
	require.Zero(t, persisted.OrderDownPaymentIDR)
	require.Empty(t, store.installments[result.Order.OrderCode])
}

func TestCreateOrderCashTokenFailureRollsBack(t *testing.T) {
	t.Parallel()

	store := newFakeOrderStore()
	lc := NewLifecycle(store, failTokenRequester)

	_, err := lc.CreateOrder(context.Background(), cashInput())
	require.ErrorIs(t, err, gatewayService.ErrTokenRequest)

	// order yang sempat dibuat sudah dihapus lagi
	require.Len(t, store.deleteCalls, 1)
	require.Empty(t, store.orders)
}

func TestCreateOrderCreditHappyPath(t *testing.T) {
	t.Parallel()

	store := newFakeOrderStore()
	lc := NewLifecycle(store, okTokenRequester)

	var submittedOrderCode string
	submit := func(_ context.Context, _ uuid.UUID, orderCode string) error {
		submittedOrderCode = orderCode
		return nil
	}

	result, err := lc.CreateOrder(context.Background(), creditInput(submit))
	require.NoError(t, err)
	require.Equal(t, result.Order.OrderCode, submittedOrderCode)
	require.Empty(t, result.SnapToken) // kredit tidak lewat widget

	persisted := store.orders[result.Order.OrderCode]
	require.Equal(t, int64(30_000_000), persisted.OrderTotalIDR)
	require.Equal(t, int64(6_000_000), persisted.OrderDownPaymentIDR)
	// invariant: remaining + down == total
	require.Equal(t, persisted.OrderTotalIDR, persisted.OrderRemainingIDR+persisted.OrderDownPaymentIDR)
	require.Equal(t, int16(6), persisted.OrderTenor)

	rows := store.installments[result.Order.OrderCode]
	require.Len(t, rows, 6)
	for i, row := range rows {
		require.Equal(t, int16(i+1), row.OrderInstallmentPeriod)
		// 24.000.000/6/1000*1000 + 1000
		require.Equal(t, int64(4_001_000), row.OrderInstallmentAmountIDR)
	}
}

func TestCreateOrderCreditSubmitFailureDeletesOrder(t *testing.T) {
	t.Parallel()

	store := newFakeOrderStore()
	lc := NewLifecycle(store, okTokenRequester)

	submit := func(_ context.Context, _ uuid.UUID, _ string) error {
		return errors.New("storage timeout")
	}

	_, err := lc.CreateOrder(context.Background(), creditInput(submit))
	require.ErrorIs(t, err, ErrVerificationSubmit)

	// kompensasi: order berikut jadwalnya tidak boleh tersisa
	require.Len(t, store.deleteCalls, 1)
	require.Empty(t, store.orders)
	require.Empty(t, store.installments)
}

func TestCreateOrderCreditRollbackFailureStillSurfacesPrimaryError(t *testing.T) {
	t.Parallel()

	store := newFakeOrderStore()
	store.deleteErr = errors.New("db down")
	lc := NewLifecycle(store, okTokenRequester)

	submit := func(_ context.Context, _ uuid.UUID, _ string) error {
		return errors.New("upload gagal")
	}

	_, err := lc.CreateOrder(context.Background(), creditInput(submit))
	// error utama yang sampai ke caller, kegagalan rollback hanya dicatat
	require.ErrorIs(t, err, ErrVerificationSubmit)
	require.Len(t, store.deleteCalls, 1)
}

func TestCreateOrderValidation(t *testing.T) {
	t.Parallel()

	store := newFakeOrderStore()
	lc := NewLifecycle(store, okTokenRequester)

	t.Run("kontak kosong", func(t *testing.T) {
		in := cashInput()
		in.Customer.Email = ""
		_, err := lc.CreateOrder(context.Background(), in)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("keranjang kosong", func(t *testing.T) {
		in := cashInput()
		in.Items = nil
		_, err := lc.CreateOrder(context.Background(), in)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("tenor nol di jalur kredit", func(t *testing.T) {
		in := creditInput(func(context.Context, uuid.UUID, string) error { return nil })
		in.Tenor = 0
		_, err := lc.CreateOrder(context.Background(), in)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("uang muka melebihi total", func(t *testing.T) {
		in := creditInput(func(context.Context, uuid.UUID, string) error { return nil })
		in.DownPaymentIDR = 40_000_000
		_, err := lc.CreateOrder(context.Background(), in)
		require.ErrorIs(t, err, ErrValidation)
	})

	// tidak ada efek samping sama sekali saat validasi gagal
	require.Empty(t, store.orders)
	require.Empty(t, store.deleteCalls)
}

func TestCreateOrderCreateFailure(t *testing.T) {
	t.Parallel()

	store := newFakeOrderStore()
	store.createErr = errors.New("insert gagal")
	lc := NewLifecycle(store, okTokenRequester)

	_, err := lc.CreateOrder(context.Background(), cashInput())
	require.ErrorIs(t, err, ErrOrderCreate)
	require.Empty(t, store.deleteCalls) // belum ada yang perlu dikompensasi
}

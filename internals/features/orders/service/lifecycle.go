package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	orderModel "github.com/icecoffie/astrommerce-sub000/internals/features/orders/model"
	gatewayService "github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/service"
	installmentModel "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/model"
	installmentService "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/service"
)

// OrderStore: persistence yang dibutuhkan saga. Implementasi GORM ada di
// store.go; test memakai fake.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *orderModel.OrderModel, installments []installmentModel.OrderInstallmentModel) error
	DeleteOrder(ctx context.Context, orderCode string) error
	SaveSnapToken(ctx context.Context, orderCode, token string) error
}

// TokenRequester meminta Snap token ke gateway.
type TokenRequester func(in gatewayService.TokenRequest) (gatewayService.TokenResponse, error)

// VerificationSubmitter mengirim dokumen KYC untuk order yang baru dibuat.
type VerificationSubmitter func(ctx context.Context, orderID uuid.UUID, orderCode string) error

// Lifecycle mengorkestrasi pembuatan order di dua jalur pembayaran.
//
// Backend tidak menjamin atomisitas lintas langkah, jadi urutannya saga:
// order dibuat dulu, langkah dependen menyusul, dan kalau langkah dependen
// gagal order yang telanjur dibuat DIHAPUS sebagai aksi kompensasi.
type Lifecycle struct {
	Store        OrderStore
	RequestToken TokenRequester
}

func NewLifecycle(store OrderStore, requestToken TokenRequester) *Lifecycle {
	return &Lifecycle{Store: store, RequestToken: requestToken}
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

type LineItem struct {
	ProductID      *uuid.UUID
	VariantID      *uuid.UUID
	UmrohPackageID *uuid.UUID
	Name           string
	UnitPriceIDR   int64
	Quantity       int
}

type CheckoutInput struct {
	UserID   *uuid.UUID
	Track    orderModel.PaymentTrack
	Customer Customer
	Items    []LineItem

	// prefix kode order: ORD untuk produk, UMR untuk paket umroh
	CodePrefix string

	// jalur kredit
	DownPaymentIDR  int64
	Tenor           int
	SubmitDocuments VerificationSubmitter
}

type CheckoutResult struct {
	Order     orderModel.OrderModel
	SnapToken string
	ClientKey string
}

// CreateOrder menjalankan checkout end-to-end dan mengembalikan order
// yang sudah dipersist. Lihat taksonomi error di errors.go.
func (lc *Lifecycle) CreateOrder(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	if err := validateCheckout(in); err != nil {
		return CheckoutResult{}, err
	}

	order := buildOrder(in)

	var installments []installmentModel.OrderInstallmentModel
	if in.Track == orderModel.TrackCredit {
		var err error
		installments, err = installmentService.BuildInstallments(
			order.OrderID, order.OrderCreatedAt, order.OrderRemainingIDR, in.Tenor)
		if err != nil {
			return CheckoutResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	if err := lc.Store.CreateOrder(ctx, &order, installments); err != nil {
		return CheckoutResult{}, fmt.Errorf("%w: %v", ErrOrderCreate, err)
	}

	switch in.Track {
	case orderModel.TrackCash:
		return lc.finishCashTrack(ctx, order, in)
	default:
		return lc.finishCreditTrack(ctx, order, in)
	}
}

// Jalur cash: order sudah dipersist (unpaid), minta Snap token.
// Token gagal → order dihapus lagi supaya tidak ada order yatim tanpa
// kemungkinan dibayar.
func (lc *Lifecycle) finishCashTrack(ctx context.Context, order orderModel.OrderModel, in CheckoutInput) (CheckoutResult, error) {
	tokenReq := gatewayService.TokenRequest{
		OrderCode:     order.OrderCode,
		GrossIDR:      order.OrderTotalIDR,
		CustomerName:  in.Customer.Name,
		CustomerEmail: in.Customer.Email,
		CustomerPhone: in.Customer.Phone,
	}
	for _, it := range in.Items {
		id := ""
		if it.ProductID != nil {
			id = it.ProductID.String()
		} else if it.UmrohPackageID != nil {
			id = it.UmrohPackageID.String()
		}
		tokenReq.Items = append(tokenReq.Items, gatewayService.TokenItem{
			ID:       id,
			Name:     it.Name,
			PriceIDR: it.UnitPriceIDR,
			Quantity: it.Quantity,
		})
	}

	tokenResp, err := lc.RequestToken(tokenReq)
	if err != nil {
		lc.compensateDelete(ctx, order.OrderCode, "token-request")
		return CheckoutResult{}, err // sudah terbungkus ErrTokenRequest
	}

	order.OrderSnapToken = tokenResp.SnapToken
	if err := lc.Store.SaveSnapToken(ctx, order.OrderCode, tokenResp.SnapToken); err != nil {
		// token sudah ada di response; simpan gagal cukup dicatat
		log.Printf("[WARN] Gagal menyimpan snap token order=%s: %v", order.OrderCode, err)
	}

	return CheckoutResult{Order: order, SnapToken: tokenResp.SnapToken, ClientKey: tokenResp.ClientKey}, nil
}

// Jalur kredit: order + jadwal cicilan sudah dipersist, kirim dokumen KYC.
// Submit gagal karena APAPUN (validasi, upload, timeout) → order dihapus;
// tidak boleh ada order kredit tanpa record verifikasi.
func (lc *Lifecycle) finishCreditTrack(ctx context.Context, order orderModel.OrderModel, in CheckoutInput) (CheckoutResult, error) {
	if in.SubmitDocuments == nil {
		lc.compensateDelete(ctx, order.OrderCode, "verification-missing")
		return CheckoutResult{}, fmt.Errorf("%w: dokumen verifikasi tidak disertakan", ErrVerificationSubmit)
	}

	if err := in.SubmitDocuments(ctx, order.OrderID, order.OrderCode); err != nil {
		lc.compensateDelete(ctx, order.OrderCode, "verification-submit")
		return CheckoutResult{}, fmt.Errorf("%w: %v", ErrVerificationSubmit, err)
	}

	return CheckoutResult{Order: order}, nil
}

// compensateDelete menjalankan rollback best-effort. Kegagalan rollback
// dicatat, tidak di-surface; error utama yang harus sampai ke user.
func (lc *Lifecycle) compensateDelete(ctx context.Context, orderCode, step string) {
	log.Printf("[SAGA] step=%s gagal, kompensasi: hapus order %s", step, orderCode)
	if err := lc.Store.DeleteOrder(ctx, orderCode); err != nil {
		log.Printf("[SAGA] kompensasi hapus order %s GAGAL: %v", orderCode, err)
	}
}

func validateCheckout(in CheckoutInput) error {
	if in.Customer.Name == "" || in.Customer.Email == "" || in.Customer.Phone == "" {
		return ErrValidation
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: keranjang kosong", ErrValidation)
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 || it.UnitPriceIDR < 0 {
			return fmt.Errorf("%w: item tidak valid", ErrValidation)
		}
	}
	if in.Track == orderModel.TrackCredit {
		if in.Tenor <= 0 {
			return fmt.Errorf("%w: tenor harus > 0", ErrValidation)
		}
		if in.DownPaymentIDR < 0 || in.DownPaymentIDR > totalOf(in.Items) {
			return fmt.Errorf("%w: uang muka tidak valid", ErrValidation)
		}
	}
	return nil
}

func totalOf(items []LineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPriceIDR * int64(it.Quantity)
	}
	return total
}

func buildOrder(in CheckoutInput) orderModel.OrderModel {
	prefix := in.CodePrefix
	if prefix == "" {
		prefix = "ORD"
	}

	now := time.Now()
	total := totalOf(in.Items)

	order := orderModel.OrderModel{
		OrderID:            uuid.New(),
		OrderCode:          fmt.Sprintf("%s-%d", prefix, now.UnixNano()),
		OrderUserID:        in.UserID,
		OrderCustomerName:  in.Customer.Name,
		OrderCustomerEmail: in.Customer.Email,
		OrderCustomerPhone: in.Customer.Phone,
		OrderPaymentTrack:  in.Track,
		OrderPaymentStatus: orderModel.PaymentUnpaid,
		OrderTotalIDR:      total,
		OrderCreatedAt:     now,
	}

	if in.Track == orderModel.TrackCredit {
		order.OrderDownPaymentIDR = in.DownPaymentIDR
		order.OrderRemainingIDR = total - in.DownPaymentIDR // invariant: remaining + down == total
		order.OrderTenor = int16(in.Tenor)
	}

	for _, it := range in.Items {
		order.Items = append(order.Items, orderModel.OrderItemModel{
			OrderItemID:             uuid.New(),
			OrderItemOrderID:        order.OrderID,
			OrderItemProductID:      it.ProductID,
			OrderItemVariantID:      it.VariantID,
			OrderItemUmrohPackageID: it.UmrohPackageID,
			OrderItemName:           it.Name,
			OrderItemUnitPriceIDR:   it.UnitPriceIDR,
			OrderItemQuantity:       it.Quantity,
			OrderItemSubtotalIDR:    it.UnitPriceIDR * int64(it.Quantity),
		})
	}

	return order
}

package service

import (
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	SnapClient snap.Client
	clientKey  string
)

// ErrTokenRequest: gateway menolak atau tidak bisa dihubungi saat minta Snap token.
var ErrTokenRequest = fmt.Errorf("gagal membuat token pembayaran")

// InitMidtrans menginisialisasi Midtrans Snap Client dengan server key.
func InitMidtrans(serverKey, cKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
	clientKey = cKey
}

// TokenItem satu line item yang dikirim ke gateway.
type TokenItem struct {
	ID       string
	Name     string
	PriceIDR int64
	Quantity int
}

type TokenRequest struct {
	OrderCode     string
	GrossIDR      int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Items         []TokenItem
}

type TokenResponse struct {
	SnapToken string `json:"snap_token"`
	ClientKey string `json:"client_key"`
}

// RequestToken membuat transaksi Snap dan mengembalikan token + client key
// yang dipakai frontend untuk membuka widget.
func RequestToken(in TokenRequest) (TokenResponse, error) {
	items := make([]midtrans.ItemDetails, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, midtrans.ItemDetails{
			ID:    it.ID,
			Name:  truncateItemName(it.Name),
			Price: it.PriceIDR,
			Qty:   int32(it.Quantity),
		})
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  in.OrderCode,
			GrossAmt: in.GrossIDR,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: in.CustomerName,
			Email: in.CustomerEmail,
			Phone: in.CustomerPhone,
		},
		Items: &items,
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("%w: %v", ErrTokenRequest, err)
	}

	return TokenResponse{SnapToken: resp.Token, ClientKey: clientKey}, nil
}

// Midtrans membatasi nama item 50 karakter
func truncateItemName(name string) string {
	if len(name) > 50 {
		return name[:50]
	}
	return name
}

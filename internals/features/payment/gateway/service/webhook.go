package service

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bytedance/sonic"

	gatewayModel "github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/model"
	orderModel "github.com/icecoffie/astrommerce-sub000/internals/features/orders/model"
)

// HandlePaymentNotification dipanggil saat menerima notifikasi dari Midtrans.
// Efek samping mengikuti kontrak hasil widget:
//   - success  → order paid (+ receipt untuk layar konfirmasi)
//   - pending  → order pending (+ receipt)
//   - error    → status TIDAK diubah (tetap unpaid, bisa retry); khusus expire
//     dicatat sub-alasannya supaya tampilan bisa bilang "Kedaluwarsa"
//   - closed   → tidak pernah lewat webhook (murni event widget di frontend)
func HandlePaymentNotification(db *gorm.DB, body map[string]interface{}) error {
	orderCode, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}
	fraud, _ := body["fraud_status"].(string)

	var order orderModel.OrderModel
	if err := db.Where("order_code = ?", orderCode).First(&order).Error; err != nil {
		log.Println("[ERROR] Order tidak ditemukan:", orderCode, err)
		return fmt.Errorf("order with code %s not found", orderCode)
	}

	res := ResolveNotification(status, fraud)
	res.TransactionID, _ = body["transaction_id"].(string)
	res.PaymentType, _ = body["payment_type"].(string)

	return ApplyResult(db, &order, res, body)
}

// PaymentEffect: perubahan yang boleh diterapkan sebuah Result ke order.
// UpdateStatus false berarti status pembayaran TIDAK disentuh (tetap unpaid,
// customer bisa retry).
type PaymentEffect struct {
	UpdateStatus  bool
	NewStatus     orderModel.PaymentStatus
	FailureReason *string
}

// EffectOf memetakan Result ke efeknya pada status pembayaran order.
// Pure function, satu-satunya tempat aturan efek samping webhook ditulis.
func EffectOf(res Result) PaymentEffect {
	switch res.Kind {
	case ResultSuccess:
		if res.SubReason == SubReasonBankReview {
			// settlement kena fraud challenge: dana masuk tapi ditinjau bank
			reason := SubReasonBankReview
			return PaymentEffect{UpdateStatus: true, NewStatus: orderModel.PaymentPending, FailureReason: &reason}
		}
		return PaymentEffect{UpdateStatus: true, NewStatus: orderModel.PaymentPaid}
	case ResultPending:
		return PaymentEffect{UpdateStatus: true, NewStatus: orderModel.PaymentPending}
	case ResultError:
		if res.SubReason == SubReasonExpired {
			reason := SubReasonExpired
			return PaymentEffect{FailureReason: &reason}
		}
		return PaymentEffect{}
	default: // closed
		return PaymentEffect{}
	}
}

// ApplyResult menerapkan satu Result ke order. Dipisah dari parsing payload
// supaya jalur invokasi widget dan jalur webhook memakai kode yang sama.
func ApplyResult(db *gorm.DB, order *orderModel.OrderModel, res Result, rawPayload map[string]interface{}) error {
	effect := EffectOf(res)

	if !effect.UpdateStatus {
		if effect.FailureReason != nil {
			order.OrderFailureReason = effect.FailureReason
			return db.Model(order).Update("order_failure_reason", *effect.FailureReason).Error
		}
		return nil // status pembayaran tidak disentuh
	}

	order.OrderPaymentStatus = effect.NewStatus
	order.OrderFailureReason = effect.FailureReason

	if err := db.Save(order).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan status order:", err)
		return err
	}

	if err := cacheReceipt(db, order.OrderCode, res, rawPayload); err != nil {
		// receipt hanya untuk layar konfirmasi; kegagalannya tidak membatalkan update status
		log.Println("[WARN] Gagal menyimpan receipt:", err)
	}
	return nil
}

func cacheReceipt(db *gorm.DB, orderCode string, res Result, rawPayload map[string]interface{}) error {
	receipt := gatewayModel.PaymentReceiptModel{
		PaymentReceiptOrderCode:       orderCode,
		PaymentReceiptTransactionID:   res.TransactionID,
		PaymentReceiptPaymentType:     res.PaymentType,
		PaymentReceiptInstrumentLabel: FormatInstrumentLabel(rawPayload),
	}

	if grossStr, ok := rawPayload["gross_amount"].(string); ok {
		if gross, err := strconv.ParseFloat(grossStr, 64); err == nil {
			receipt.PaymentReceiptGrossIDR = int64(gross)
		}
	}
	if txTime, ok := rawPayload["transaction_time"].(string); ok {
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", txTime, time.Local); err == nil {
			receipt.PaymentReceiptTransactionTime = &t
		}
	}
	if raw, err := sonic.Marshal(rawPayload); err == nil {
		receipt.PaymentReceiptRawPayload = datatypes.JSON(raw)
	}

	// upsert by order code: notifikasi Midtrans bisa datang lebih dari sekali
	var existing gatewayModel.PaymentReceiptModel
	err := db.Where("payment_receipt_order_code = ?", orderCode).First(&existing).Error
	if err == nil {
		receipt.PaymentReceiptID = existing.PaymentReceiptID
		return db.Save(&receipt).Error
	}
	return db.Create(&receipt).Error
}

// FormatInstrumentLabel membentuk label metode pembayaran siap tampil dari
// field spesifik instrumen di payload gateway.
func FormatInstrumentLabel(payload map[string]interface{}) string {
	paymentType, _ := payload["payment_type"].(string)

	switch paymentType {
	case "bank_transfer":
		if vas, ok := payload["va_numbers"].([]interface{}); ok && len(vas) > 0 {
			if va, ok := vas[0].(map[string]interface{}); ok {
				bank, _ := va["bank"].(string)
				number, _ := va["va_number"].(string)
				return fmt.Sprintf("%s Virtual Account %s", strings.ToUpper(bank), number)
			}
		}
		if permata, ok := payload["permata_va_number"].(string); ok {
			return fmt.Sprintf("Permata Virtual Account %s", permata)
		}
		return "Bank Transfer"
	case "cstore":
		if store, ok := payload["store"].(string); ok {
			return fmt.Sprintf("Gerai %s", strings.Title(store))
		}
		return "Gerai Retail"
	case "gopay", "shopeepay", "qris":
		return strings.ToUpper(paymentType)
	case "credit_card":
		return "Kartu Kredit"
	case "":
		return ""
	default:
		return paymentType
	}
}

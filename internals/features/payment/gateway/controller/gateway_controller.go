package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orderModel "github.com/icecoffie/astrommerce-sub000/internals/features/orders/model"
	"github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/service"
	helper "github.com/icecoffie/astrommerce-sub000/internals/helpers"
)

type GatewayController struct {
	DB *gorm.DB
}

func NewGatewayController(db *gorm.DB) *GatewayController {
	return &GatewayController{DB: db}
}

type tokenRequestBody struct {
	OrderID string `json:"order_id" validate:"required"`
}

// 🟢 TOKEN: POST /midtrans/token
// Frontend minta Snap token untuk order yang sudah ada (retry bayar, refresh
// halaman). Nominal dan data customer diambil dari record order, bukan dari
// body, supaya klien tidak bisa menagih dirinya nominal lain.
func (ctrl *GatewayController) RequestToken(c *fiber.Ctx) error {
	var body tokenRequestBody
	if err := c.BodyParser(&body); err != nil || body.OrderID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "order_id wajib diisi")
	}

	var order orderModel.OrderModel
	if err := ctrl.DB.Preload("Items").Where("order_code = ?", body.OrderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Order tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil order")
	}

	if order.OrderPaymentStatus == orderModel.PaymentPaid {
		return helper.Error(c, fiber.StatusConflict, "Order sudah dibayar")
	}

	req := service.TokenRequest{
		OrderCode:     order.OrderCode,
		GrossIDR:      order.OrderTotalIDR,
		CustomerName:  order.OrderCustomerName,
		CustomerEmail: order.OrderCustomerEmail,
		CustomerPhone: order.OrderCustomerPhone,
	}
	for _, item := range order.Items {
		req.Items = append(req.Items, service.TokenItem{
			ID:       item.OrderItemID.String(),
			Name:     item.OrderItemName,
			PriceIDR: item.OrderItemUnitPriceIDR,
			Quantity: item.OrderItemQuantity,
		})
	}

	resp, err := service.RequestToken(req)
	if err != nil {
		log.Printf("[ERROR] Token request order=%s: %v", order.OrderCode, err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal membuat token pembayaran")
	}

	if err := ctrl.DB.Model(&order).Update("order_snap_token", resp.SnapToken).Error; err != nil {
		log.Printf("[WARN] Gagal menyimpan snap token order=%s: %v", order.OrderCode, err)
	}

	return helper.Success(c, "Token berhasil dibuat", resp)
}

// 🟢 WEBHOOK: POST /midtrans/notification
// Endpoint publik (di-skip auth). Midtrans bisa mengirim notifikasi yang sama
// lebih dari sekali; HandlePaymentNotification aman dipanggil ulang.
func (ctrl *GatewayController) HandleNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := service.HandlePaymentNotification(ctrl.DB, body); err != nil {
		log.Printf("[ERROR] Webhook: %v", err)
		// Balas 200 supaya Midtrans tidak retry terus untuk order yang memang tak dikenal
		return helper.Success(c, "Notifikasi diterima", nil)
	}

	return helper.Success(c, "Notifikasi diproses", nil)
}

package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	verificationModel "github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/model"
	verificationService "github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/service"
	"github.com/icecoffie/astrommerce-sub000/internals/features/orders/dto"
	orderModel "github.com/icecoffie/astrommerce-sub000/internals/features/orders/model"
	orderService "github.com/icecoffie/astrommerce-sub000/internals/features/orders/service"
	gatewayModel "github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/model"
	gatewayService "github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/service"
	installmentModel "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/model"
	productModel "github.com/icecoffie/astrommerce-sub000/internals/features/products/model"
	helper "github.com/icecoffie/astrommerce-sub000/internals/helpers"
	authMw "github.com/icecoffie/astrommerce-sub000/internals/middlewares/auth"
)

var validate = validator.New()

type OrderController struct {
	DB           *gorm.DB
	Lifecycle    *orderService.Lifecycle
	Verification *verificationService.Workflow
}

func NewOrderController(db *gorm.DB, lifecycle *orderService.Lifecycle, verification *verificationService.Workflow) *OrderController {
	return &OrderController{DB: db, Lifecycle: lifecycle, Verification: verification}
}

// 🟢 CHECKOUT PRODUK: POST /transaction/checkout/:product_id/:variant_id?
// Cash: JSON biasa, balasannya membawa snap token.
// Kredit: multipart (field + dokumen KYC), order + jadwal + verifikasi dibuat sekaligus.
func (ctrl *OrderController) CheckoutProduct(c *fiber.Ctx) error {
	var body dto.CheckoutRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Request tidak valid")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "product_id tidak valid")
	}

	var product productModel.ProductModel
	if err := ctrl.DB.Where("product_id = ?", productID).First(&product).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Produk tidak ditemukan")
	}

	item := orderService.LineItem{
		ProductID:    &product.ProductID,
		Name:         product.ProductName,
		UnitPriceIDR: product.ProductPriceIDR,
		Quantity:     body.Quantity,
	}

	// Varian opsional; harga varian menimpa harga produk
	if variantParam := c.Params("variant_id"); variantParam != "" {
		variantID, err := uuid.Parse(variantParam)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "variant_id tidak valid")
		}
		var variant productModel.ProductVariantModel
		if err := ctrl.DB.Where("product_variant_id = ? AND product_variant_product_id = ?", variantID, productID).
			First(&variant).Error; err != nil {
			return helper.Error(c, fiber.StatusNotFound, "Varian tidak ditemukan")
		}
		item.VariantID = &variant.ProductVariantID
		item.Name = product.ProductName + " - " + variant.ProductVariantName
		if variant.ProductVariantPriceIDR != nil {
			item.UnitPriceIDR = *variant.ProductVariantPriceIDR
		}
	}

	return ctrl.runCheckout(c, body, []orderService.LineItem{item}, "ORD")
}

// 🟢 ORDER UMROH: POST /order-umroh
func (ctrl *OrderController) CheckoutUmroh(c *fiber.Ctx) error {
	var body dto.UmrohOrderRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Request tidak valid")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	packageID, err := uuid.Parse(body.PackageID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "package_id tidak valid")
	}

	var pkg productModel.UmrohPackageModel
	if err := ctrl.DB.Where("umroh_package_id = ?", packageID).First(&pkg).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Paket umroh tidak ditemukan")
	}

	item := orderService.LineItem{
		UmrohPackageID: &pkg.UmrohPackageID,
		Name:           pkg.UmrohPackageName,
		UnitPriceIDR:   pkg.UmrohPackagePriceIDR,
		Quantity:       body.Quantity,
	}

	return ctrl.runCheckout(c, body.CheckoutRequest, []orderService.LineItem{item}, "UMR")
}

func (ctrl *OrderController) runCheckout(c *fiber.Ctx, body dto.CheckoutRequest, items []orderService.LineItem, codePrefix string) error {
	var userID *uuid.UUID
	if sess, ok := authMw.FromContext(c); ok {
		if parsed, err := uuid.Parse(sess.UserID); err == nil {
			userID = &parsed
		}
	}

	in := orderService.CheckoutInput{
		UserID: userID,
		Track:  orderModel.PaymentTrack(body.PaymentTrack),
		Customer: orderService.Customer{
			Name:  body.CustomerName,
			Email: body.CustomerEmail,
			Phone: body.CustomerPhone,
		},
		Items:      items,
		CodePrefix: codePrefix,
	}

	if in.Track == orderModel.TrackCredit {
		in.DownPaymentIDR = body.DownPaymentIDR
		in.Tenor = body.Tenor

		submit, err := ctrl.buildDocumentSubmitter(c, body)
		if err != nil {
			return mapDomainError(c, err)
		}
		in.SubmitDocuments = submit
	}

	result, err := ctrl.Lifecycle.CreateOrder(c.UserContext(), in)
	if err != nil {
		return mapDomainError(c, err)
	}

	resp := dto.CheckoutResponse{
		OrderCode: result.Order.OrderCode,
		SnapToken: result.SnapToken,
		ClientKey: result.ClientKey,
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Order berhasil dibuat", resp)
}

// buildDocumentSubmitter menyiapkan closure submit KYC untuk saga.
// Kelengkapan dokumen DIVALIDASI DI SINI, sebelum order dibuat, supaya request
// yang jelas-jelas kurang dokumen gagal tanpa efek samping sama sekali.
func (ctrl *OrderController) buildDocumentSubmitter(c *fiber.Ctx, body dto.CheckoutRequest) (orderService.VerificationSubmitter, error) {
	idCard, _ := c.FormFile("id_card")
	salarySlip, _ := c.FormFile("salary_slip")
	familyCard, _ := c.FormFile("family_card")
	if idCard == nil || salarySlip == nil || familyCard == nil {
		return nil, verificationService.ErrIncompleteDocuments
	}

	submitIn := verificationService.SubmitInput{
		ApplicantName: body.ApplicantName,
		NIK:           body.ApplicantNIK,
		Phone:         body.CustomerPhone,
		Address:       body.Address,
		Occupation:    body.Occupation,
		IncomeIDR:     body.IncomeIDR,
		IDCard:        idCard,
		SalarySlip:    salarySlip,
		FamilyCard:    familyCard,
	}
	if submitIn.ApplicantName == "" {
		submitIn.ApplicantName = body.CustomerName
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		submitIn.Extra = form.File["additional_documents"]
	}

	return func(ctx context.Context, orderID uuid.UUID, orderCode string) error {
		submitIn.OrderID = orderID
		submitIn.OrderCode = orderCode
		_, err := ctrl.Verification.Submit(ctx, submitIn)
		return err
	}, nil
}

// 🟢 DETAIL: GET /orders/by-order-id/:order_code
// Order + item + cicilan, semua status diturunkan saat baca.
func (ctrl *OrderController) GetByOrderCode(c *fiber.Ctx) error {
	orderCode := c.Params("order_code")

	var order orderModel.OrderModel
	if err := ctrl.DB.Preload("Items").Where("order_code = ?", orderCode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Order tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil order")
	}

	resp := ctrl.buildOrderResponse(order, time.Now())
	return helper.Success(c, "OK", resp)
}

// 🟢 LIST (admin): GET /orders?page=&per_page=
func (ctrl *OrderController) ListOrders(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&orderModel.OrderModel{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung order")
	}

	var orders []orderModel.OrderModel
	if err := ctrl.DB.Order("order_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&orders).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar order")
	}

	now := time.Now()
	responses := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ctrl.buildOrderResponse(order, now))
	}

	return helper.Success(c, "OK", fiber.Map{
		"orders":     responses,
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// 🟢 RECEIPT: GET /orders/:order_code/receipt
// Ringkasan pembayaran yang di-cache webhook untuk layar konfirmasi.
func (ctrl *OrderController) GetReceipt(c *fiber.Ctx) error {
	orderCode := c.Params("order_code")

	var receipt gatewayModel.PaymentReceiptModel
	if err := ctrl.DB.Where("payment_receipt_order_code = ?", orderCode).First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Receipt belum tersedia")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil receipt")
	}

	return helper.Success(c, "OK", receipt)
}

// 🔴 DELETE (admin / rollback): DELETE /orders/delete/:order_code
func (ctrl *OrderController) DeleteOrder(c *fiber.Ctx) error {
	orderCode := c.Params("order_code")

	if err := ctrl.Lifecycle.Store.DeleteOrder(c.UserContext(), orderCode); err != nil {
		return mapDomainError(c, err)
	}

	log.Printf("[INFO] Order %s dihapus", orderCode)
	return helper.Success(c, "Order berhasil dihapus", nil)
}

func (ctrl *OrderController) buildOrderResponse(order orderModel.OrderModel, now time.Time) dto.OrderResponse {
	statusIn := orderService.StatusInput{
		Track:         order.OrderPaymentTrack,
		PaymentStatus: order.OrderPaymentStatus,
		FailureReason: order.OrderFailureReason,
	}

	var installments []installmentModel.OrderInstallmentModel
	if order.IsCredit() {
		var verification verificationModel.CreditVerificationModel
		if err := ctrl.DB.Where("credit_verification_order_id = ?", order.OrderID).
			First(&verification).Error; err == nil {
			statusIn.VerificationStatus = &verification.CreditVerificationStatus
		}

		if err := ctrl.DB.Where("order_installment_order_id = ?", order.OrderID).
			Order("order_installment_period ASC").
			Find(&installments).Error; err != nil {
			log.Printf("[ERROR] Gagal mengambil cicilan order=%s: %v", order.OrderCode, err)
		}

		statusIn.TotalPeriods = len(installments)
		for _, inst := range installments {
			if inst.OrderInstallmentPaidAt != nil {
				statusIn.PaidPeriods++
			}
		}
	}

	resp := dto.OrderResponse{
		OrderCode:      order.OrderCode,
		PaymentTrack:   string(order.OrderPaymentTrack),
		CustomerName:   order.OrderCustomerName,
		TotalIDR:       order.OrderTotalIDR,
		DownPaymentIDR: order.OrderDownPaymentIDR,
		RemainingIDR:   order.OrderRemainingIDR,
		Tenor:          int(order.OrderTenor),
		CreatedAt:      order.OrderCreatedAt,
		Status:         orderService.DeriveOrderStatus(statusIn),
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, dto.NewOrderItemResponse(item))
	}
	for _, inst := range installments {
		resp.Installments = append(resp.Installments, dto.NewInstallmentResponse(inst, now))
	}
	return resp
}

// mapDomainError memetakan taksonomi error domain ke HTTP status.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, orderService.ErrValidation),
		errors.Is(err, verificationService.ErrIncompleteDocuments):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, orderService.ErrNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, orderService.ErrConflict),
		errors.Is(err, verificationService.ErrDecisionLocked):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, gatewayService.ErrTokenRequest),
		errors.Is(err, orderService.ErrVerificationSubmit):
		return helper.Error(c, fiber.StatusBadGateway, err.Error())
	case errors.Is(err, orderService.ErrOrderCreate):
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	default:
		log.Printf("[ERROR] unexpected: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}

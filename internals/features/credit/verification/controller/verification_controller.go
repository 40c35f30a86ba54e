package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/dto"
	"github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/model"
	"github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/service"
	orderModel "github.com/icecoffie/astrommerce-sub000/internals/features/orders/model"
	orderService "github.com/icecoffie/astrommerce-sub000/internals/features/orders/service"
	helper "github.com/icecoffie/astrommerce-sub000/internals/helpers"
)

var validate = validator.New()

type VerificationController struct {
	DB       *gorm.DB
	Workflow *service.Workflow
}

func NewVerificationController(db *gorm.DB, workflow *service.Workflow) *VerificationController {
	return &VerificationController{DB: db, Workflow: workflow}
}

// 🟢 SUBMIT: POST /credit-verification (multipart)
// Jalur submit ulang untuk order kredit yang verifikasinya belum ada
// (checkout normal sudah men-submit lewat saga).
func (ctrl *VerificationController) Submit(c *fiber.Ctx) error {
	var body dto.SubmitRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Request tidak valid")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	var order orderModel.OrderModel
	if err := ctrl.DB.Where("order_code = ?", body.OrderCode).First(&order).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Order tidak ditemukan")
	}
	if !order.IsCredit() {
		return helper.Error(c, fiber.StatusBadRequest, "Order ini bukan order kredit")
	}

	idCard, _ := c.FormFile("id_card")
	salarySlip, _ := c.FormFile("salary_slip")
	familyCard, _ := c.FormFile("family_card")

	in := service.SubmitInput{
		OrderID:       order.OrderID,
		OrderCode:     order.OrderCode,
		ApplicantName: body.ApplicantName,
		NIK:           body.ApplicantNIK,
		Phone:         body.Phone,
		Address:       body.Address,
		Occupation:    body.Occupation,
		IncomeIDR:     body.IncomeIDR,
		IDCard:        idCard,
		SalarySlip:    salarySlip,
		FamilyCard:    familyCard,
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.Extra = form.File["additional_documents"]
	}

	row, err := ctrl.Workflow.Submit(c.UserContext(), in)
	if err != nil {
		return mapVerificationError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pengajuan verifikasi kredit terkirim", row)
}

// 🟢 REVIEW (admin): PUT /credit-verification/:order_code
func (ctrl *VerificationController) Review(c *fiber.Ctx) error {
	var body dto.ReviewRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Request tidak valid")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	orderCode := c.Params("order_code")
	decision := model.VerificationStatus(body.Status)

	if err := ctrl.Workflow.Review(c.UserContext(), orderCode, decision, body.Reopen); err != nil {
		return mapVerificationError(c, err)
	}

	return helper.Success(c, "Keputusan verifikasi tersimpan", fiber.Map{
		"order_code": orderCode,
		"status":     decision,
	})
}

// 🟢 REOPEN (admin): POST /credit-verification/:order_code/reopen
// Gesture dua-langkah: kembalikan ke pending dulu, keputusan baru menyusul.
func (ctrl *VerificationController) Reopen(c *fiber.Ctx) error {
	orderCode := c.Params("order_code")

	if err := ctrl.Workflow.Reopen(c.UserContext(), orderCode); err != nil {
		return mapVerificationError(c, err)
	}

	return helper.Success(c, "Pengajuan dibuka ulang untuk ditinjau", fiber.Map{
		"order_code": orderCode,
		"status":     model.VerificationPending,
	})
}

// 🟢 DETAIL (admin): GET /credit-verification/:order_code
func (ctrl *VerificationController) GetByOrderCode(c *fiber.Ctx) error {
	row, err := ctrl.Workflow.Store.GetByOrderCode(c.UserContext(), c.Params("order_code"))
	if err != nil {
		return mapVerificationError(c, err)
	}
	return helper.Success(c, "OK", row)
}

func mapVerificationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIncompleteDocuments),
		errors.Is(err, orderService.ErrValidation):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, orderService.ErrNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Pengajuan verifikasi tidak ditemukan")
	case errors.Is(err, service.ErrDecisionLocked),
		errors.Is(err, orderService.ErrConflict):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}

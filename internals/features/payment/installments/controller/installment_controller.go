package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/dto"
	"github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/service"
	helper "github.com/icecoffie/astrommerce-sub000/internals/helpers"
)

type InstallmentController struct {
	Workflow *service.Workflow
}

func NewInstallmentController(workflow *service.Workflow) *InstallmentController {
	return &InstallmentController{Workflow: workflow}
}

// 🟢 UPLOAD BUKTI: POST /credit/upload-proof/:installment_id (multipart, field "proof")
func (ctrl *InstallmentController) UploadProof(c *fiber.Ctx) error {
	installmentID, err := uuid.Parse(c.Params("installment_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "installment_id tidak valid")
	}

	file, err := c.FormFile("proof")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File bukti pembayaran wajib diisi")
	}

	inst, err := ctrl.Workflow.UploadProof(c.UserContext(), installmentID, file)
	if err != nil {
		return mapInstallmentError(c, err)
	}

	return helper.Success(c, "Bukti pembayaran berhasil diupload. Menunggu konfirmasi admin.",
		dto.NewInstallmentDetail(*inst, time.Now()))
}

// 🟢 KONFIRMASI (admin): POST /credit/pay/:order_code/:period_index
// Satu-satunya transisi ke lunas untuk cicilan kredit.
func (ctrl *InstallmentController) ConfirmPayment(c *fiber.Ctx) error {
	orderCode := c.Params("order_code")
	period, err := strconv.Atoi(c.Params("period_index"))
	if err != nil || period <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "period_index tidak valid")
	}

	inst, err := ctrl.Workflow.ConfirmPayment(c.UserContext(), orderCode, period)
	if err != nil {
		return mapInstallmentError(c, err)
	}

	return helper.Success(c, "Pembayaran cicilan dikonfirmasi",
		dto.NewInstallmentDetail(*inst, time.Now()))
}

func mapInstallmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Cicilan tidak ditemukan")
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrProofAlreadyUploaded):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrProofRequired),
		errors.Is(err, service.ErrNotPayable),
		errors.Is(err, service.ErrProofFileRequired):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}

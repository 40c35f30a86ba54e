package routes

import (
	"github.com/gofiber/fiber/v2"

	installmentController "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/controller"
)

// InstallmentUserRoutes: customer upload bukti transfer
func InstallmentUserRoutes(api fiber.Router, ctrl *installmentController.InstallmentController) {
	api.Post("/credit/upload-proof/:installment_id", ctrl.UploadProof)
}

// InstallmentAdminRoutes: konfirmasi manual pembayaran cicilan
func InstallmentAdminRoutes(admin fiber.Router, ctrl *installmentController.InstallmentController) {
	admin.Post("/credit/pay/:order_code/:period_index", ctrl.ConfirmPayment)
}

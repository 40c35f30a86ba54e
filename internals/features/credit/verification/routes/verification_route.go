package routes

import (
	"github.com/gofiber/fiber/v2"

	verificationController "github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/controller"
)

// VerificationUserRoutes: pengajuan KYC oleh customer
func VerificationUserRoutes(api fiber.Router, ctrl *verificationController.VerificationController) {
	api.Post("/credit-verification", ctrl.Submit)
}

// VerificationAdminRoutes: keputusan admin + buka ulang
func VerificationAdminRoutes(admin fiber.Router, ctrl *verificationController.VerificationController) {
	admin.Get("/credit-verification/:order_code", ctrl.GetByOrderCode)
	admin.Put("/credit-verification/:order_code", ctrl.Review)
	admin.Post("/credit-verification/:order_code/reopen", ctrl.Reopen)
}

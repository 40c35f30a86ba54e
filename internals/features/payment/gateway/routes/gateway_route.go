package routes

import (
	"github.com/gofiber/fiber/v2"

	gatewayController "github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/controller"
)

// GatewayPublicRoutes: webhook Midtrans (tanpa auth, path di-skip AuthMiddleware)
func GatewayPublicRoutes(app *fiber.App, ctrl *gatewayController.GatewayController) {
	app.Post("/midtrans/notification", ctrl.HandleNotification)
}

// GatewayUserRoutes: permintaan Snap token dari frontend
func GatewayUserRoutes(api fiber.Router, ctrl *gatewayController.GatewayController) {
	api.Post("/midtrans/token", ctrl.RequestToken)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	orderController "github.com/icecoffie/astrommerce-sub000/internals/features/orders/controller"
	middlewares "github.com/icecoffie/astrommerce-sub000/internals/middlewares"
)

// OrderUserRoutes: checkout + read path customer
func OrderUserRoutes(api fiber.Router, ctrl *orderController.OrderController) {
	checkout := api.Group("/transaction", middlewares.CheckoutRateLimiter())
	checkout.Post("/checkout/:product_id", ctrl.CheckoutProduct)
	checkout.Post("/checkout/:product_id/:variant_id", ctrl.CheckoutProduct)

	api.Post("/order-umroh", middlewares.CheckoutRateLimiter(), ctrl.CheckoutUmroh)

	api.Get("/orders/by-order-id/:order_code", ctrl.GetByOrderCode)
	api.Get("/orders/:order_code/receipt", ctrl.GetReceipt)
}

// OrderAdminRoutes: daftar order + hapus (rollback manual)
func OrderAdminRoutes(admin fiber.Router, ctrl *orderController.OrderController) {
	admin.Get("/orders", ctrl.ListOrders)
	admin.Delete("/orders/delete/:order_code", ctrl.DeleteOrder)
}

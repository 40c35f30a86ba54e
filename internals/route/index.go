// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	verificationController "github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/controller"
	verificationRoutes "github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/routes"
	verificationService "github.com/icecoffie/astrommerce-sub000/internals/features/credit/verification/service"
	orderController "github.com/icecoffie/astrommerce-sub000/internals/features/orders/controller"
	orderRoutes "github.com/icecoffie/astrommerce-sub000/internals/features/orders/routes"
	orderService "github.com/icecoffie/astrommerce-sub000/internals/features/orders/service"
	gatewayController "github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/controller"
	gatewayRoutes "github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/routes"
	gatewayService "github.com/icecoffie/astrommerce-sub000/internals/features/payment/gateway/service"
	installmentController "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/controller"
	installmentRoutes "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/routes"
	installmentService "github.com/icecoffie/astrommerce-sub000/internals/features/payment/installments/service"
	helper "github.com/icecoffie/astrommerce-sub000/internals/helpers"
	authMw "github.com/icecoffie/astrommerce-sub000/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app)

	// ===================== SERVICES =====================
	orderStore := orderService.NewGormOrderStore(db)
	lifecycle := orderService.NewLifecycle(orderStore, gatewayService.RequestToken)

	verifStore := verificationService.NewGormStore(db)
	verifWorkflow := verificationService.NewWorkflow(verifStore, helper.UploadFileToSupabase)

	instStore := installmentService.NewGormStore(db)
	instWorkflow := installmentService.NewWorkflow(instStore, helper.UploadFileToSupabase)

	// ===================== CONTROLLERS =====================
	orderCtrl := orderController.NewOrderController(db, lifecycle, verifWorkflow)
	gatewayCtrl := gatewayController.NewGatewayController(db)
	instCtrl := installmentController.NewInstallmentController(instWorkflow)
	verifCtrl := verificationController.NewVerificationController(db, verifWorkflow)

	// ===================== PUBLIC =====================
	// Webhook Midtrans tidak pakai bearer token
	log.Println("[INFO] Setting up gateway webhook route...")
	gatewayRoutes.GatewayPublicRoutes(app, gatewayCtrl)

	// ===================== AUTHENTICATED =====================
	api := app.Group("/api", authMw.AuthMiddleware())

	log.Println("[INFO] Setting up OrderRoutes...")
	orderRoutes.OrderUserRoutes(api, orderCtrl)
	gatewayRoutes.GatewayUserRoutes(api, gatewayCtrl)
	installmentRoutes.InstallmentUserRoutes(api, instCtrl)
	verificationRoutes.VerificationUserRoutes(api, verifCtrl)

	// ===================== ADMIN =====================
	admin := api.Group("/a", authMw.OnlyAdmin())

	log.Println("[INFO] Setting up admin routes...")
	orderRoutes.OrderAdminRoutes(admin, orderCtrl)
	installmentRoutes.InstallmentAdminRoutes(admin, instCtrl)
	verificationRoutes.VerificationAdminRoutes(admin, verifCtrl)
}

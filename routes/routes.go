package routes

import (
	"github.com/gofiber/fiber/v2"

	"atolye-backend/controllers"
	"atolye-backend/middlewares"
	"atolye-backend/models"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.RequestTx())

	protected.Get("/me", controllers.Me)

	// Customers
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)
	protected.Get("/customer/:id", controllers.GetCustomer)
	protected.Put("/customer/:id", controllers.UpdateCustomer)
	protected.Delete("/customer/:id", controllers.DeleteCustomer)

	// Products
	protected.Post("/product", controllers.CreateProducts) // batch create
	protected.Get("/products", controllers.GetProducts)
	protected.Get("/product/:id", controllers.GetProduct)
	protected.Put("/product/:id", controllers.UpdateProduct)
	protected.Delete("/product/:id", controllers.DeleteProduct)

	// Vehicles
	protected.Post("/vehicle", controllers.CreateVehicle)
	protected.Get("/vehicles", controllers.GetVehicles)
	protected.Get("/vehicle/:id", controllers.GetVehicle)
	protected.Put("/vehicle/:id", controllers.UpdateVehicle)
	protected.Delete("/vehicle/:id", controllers.DeleteVehicle)

	// Stations
	protected.Post("/station", controllers.CreateStation)
	protected.Get("/stations", controllers.GetStations)
	protected.Get("/station/:id", controllers.GetStation)
	protected.Put("/station/:id", controllers.UpdateStation)
	protected.Delete("/station/:id", controllers.DeleteStation)

	// Operation templates
	protected.Post("/operation", controllers.CreateOperationTemplate)
	protected.Get("/operations", controllers.GetOperationTemplates)
	protected.Get("/operation/:id", controllers.GetOperationTemplate)
	protected.Put("/operation/:id", controllers.UpdateOperationTemplate)
	protected.Delete("/operation/:id", controllers.DeleteOperationTemplate)

	// Quality-control checklist items
	protected.Post("/quality-item", controllers.CreateQualityItem)
	protected.Get("/quality-items", controllers.GetQualityItems)
	protected.Put("/quality-item/:id", controllers.UpdateQualityItem)
	protected.Delete("/quality-item/:id", controllers.DeleteQualityItem)

	// Offers (versioned quote documents with line items)
	protected.Post("/offer", controllers.CreateOffer)
	protected.Get("/offers", controllers.GetOffers)
	protected.Get("/offer/:id", controllers.GetOffer)
	protected.Put("/offer/:id", controllers.UpdateOffer)
	protected.Delete("/offer/:id", controllers.DeleteOffer)
	protected.Post("/offer/:id/items", controllers.AddOfferItem)
	protected.Put("/offer/:id/items/:productId", controllers.UpdateOfferItem)
	protected.Delete("/offer/:id/items/:productId", controllers.RemoveOfferItem)
	protected.Put("/offer/:id/publish", controllers.PublishOffer)
	protected.Get("/offer/:id/revisions", controllers.GetOfferRevisions)

	// Production executions (monitor + transitions)
	protected.Post("/execution", controllers.CreateExecution)
	protected.Get("/executions", controllers.GetExecutions)
	protected.Get("/execution/:id", controllers.GetExecution)
	protected.Delete("/execution/:id", controllers.DeleteExecution)
	protected.Put("/execution/:id/records/:recordId/status", controllers.TransitionRecord)
	protected.Put("/execution/:id/records/:recordId/quality-control", controllers.DecideQualityControl)

	// Reports
	protected.Get("/reports/execution/:id/xlsx", controllers.ExportExecutionXLSX)
	protected.Get("/reports/offers/xlsx", controllers.ExportOffersXLSX)

	// User administration (admin only)
	admin := protected.Group("", middlewares.RequireRole(models.RoleAdmin))
	admin.Get("/users", controllers.GetUsers)
	admin.Put("/user/:id", controllers.UpdateUser)
	admin.Delete("/user/:id", controllers.DeleteUser)
}

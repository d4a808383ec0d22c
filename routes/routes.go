// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"go-commerce-api/controllers"
	"go-commerce-api/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	auth *middleware.Auth,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
	adminController *controllers.AdminController,
) {
	// Public routes
	router.HandleFunc("/auth/register", userController.Register).Methods("POST")
	router.HandleFunc("/auth/login", userController.Login).Methods("POST")
	router.HandleFunc("/auth/google", userController.GoogleLogin).Methods("POST")
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// Authenticated routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(auth.Authenticate)
	protected.HandleFunc("/auth/me", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	protected.HandleFunc("/cart/{product_id}", cartController.RemoveFromCart).Methods("DELETE")
	protected.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")
	protected.HandleFunc("/orders/mine", orderController.GetMyOrders).Methods("GET")
	protected.HandleFunc("/payment/status", orderController.UpdatePaymentStatus).Methods("POST")

	// Admin catalog routes
	adminProducts := router.PathPrefix("/products").Subrouter()
	adminProducts.Use(auth.Authenticate)
	adminProducts.Use(auth.RequireAdmin)
	adminProducts.HandleFunc("", productController.CreateProduct).Methods("POST")
	adminProducts.HandleFunc("/{id}", productController.UpdateProduct).Methods("PUT")
	adminProducts.HandleFunc("/{id}", productController.DeleteProduct).Methods("DELETE")

	// Admin dashboard routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Authenticate)
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/orders", adminController.ListOrders).Methods("GET")
	admin.HandleFunc("/orders/stats", adminController.OrderStats).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", adminController.UpdateOrderStatus).Methods("PUT")
	admin.HandleFunc("/orders/{id}", adminController.DeleteOrder).Methods("DELETE")
}

package router

import (
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/interfaces/http/handler"
	"github.com/farmmarket/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API exposes
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Order        *handler.OrderHandler
	Cart         *handler.CartHandler
	Engagement   *handler.EngagementHandler
	Notification *handler.NotificationHandler
	Dashboard    *handler.DashboardHandler
	Admin        *handler.AdminHandler
}

// Routes wires the API route table. Role middleware narrows each group to
// the single role the operation belongs to; admins get no implicit access
// to buyer or farmer surfaces.
type Routes struct {
	h Handlers
}

// NewRoutes creates the route registrar
func NewRoutes(h Handlers) *Routes {
	return &Routes{h: h}
}

// RegisterRoutes implements RouteRegistrar
func (r *Routes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", r.h.System.Health)
	rg.GET("/ready", r.h.System.Ready)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", r.h.Auth.Register)
		auth.POST("/login", r.h.Auth.Login)
		auth.POST("/refresh", r.h.Auth.Refresh)
		auth.POST("/logout", r.h.Auth.Logout)
	}

	// Catalog browsing is open to any signed-in role
	products := rg.Group("/products")
	{
		products.GET("", r.h.Product.List)
		products.GET("/:id", r.h.Product.Get)
		products.GET("/:id/reviews", r.h.Engagement.ProductReviews)
	}

	buyer := rg.Group("/buyer", middleware.RequireRole(identity.RoleBuyer))
	{
		buyer.GET("/dashboard", r.h.Dashboard.Buyer)
		buyer.GET("/orders", r.h.Order.ListMine)
		buyer.POST("/orders", r.h.Order.Place)
		buyer.GET("/wishlist", r.h.Engagement.ListWishlist)
		buyer.POST("/wishlist/:productId", r.h.Engagement.ToggleWishlist)
		buyer.POST("/reviews", r.h.Engagement.SubmitReview)
		buyer.GET("/cart", r.h.Cart.View)
		buyer.POST("/cart", r.h.Cart.Add)
		buyer.DELETE("/cart", r.h.Cart.Clear)
		buyer.DELETE("/cart/:productId", r.h.Cart.Remove)
	}

	farmer := rg.Group("/farmer", middleware.RequireRole(identity.RoleFarmer))
	{
		farmer.GET("/dashboard", r.h.Dashboard.Farmer)
		farmer.GET("/products", r.h.Product.ListMine)
		farmer.POST("/products", r.h.Product.Create)
		farmer.PUT("/products/:id", r.h.Product.Update)
		farmer.DELETE("/products/:id", r.h.Product.Delete)
		farmer.POST("/products/:id/image", r.h.Product.ImageUploadURL)
		farmer.GET("/orders", r.h.Order.ListIncoming)
		farmer.PUT("/orders/:id/status", r.h.Order.UpdateStatus)
		farmer.GET("/sales", r.h.Order.SalesSummary)
	}

	// Notifications belong to whoever is signed in, regardless of role
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", r.h.Notification.List)
		notifications.GET("/unread-count", r.h.Notification.UnreadCount)
		notifications.POST("/read", r.h.Notification.MarkAllRead)
	}

	admin := rg.Group("/admin", middleware.RequireRole(identity.RoleAdmin))
	{
		admin.GET("/summary", r.h.Admin.Summary)
		admin.DELETE("/users/:id", r.h.Admin.DeleteUser)
		admin.DELETE("/products/:id", r.h.Admin.DeleteProduct)
	}
}

package server

import (
	"github.com/labstack/echo/v4"

	custommiddleware "shopnest/middleware"
)

func (s *Server) SetupRoutes(isAuthenticated, isSeller, rateLimit echo.MiddlewareFunc) {
	e := s.Echo

	shop := e.Group("/api/v2/shop")
	{
		// Registration and sessions (unprotected)
		shop.POST("/create-shop", s.ShopHandler.CreateShop, rateLimit)
		shop.POST("/activation", s.ShopHandler.Activation)
		shop.POST("/login-shop", s.ShopHandler.Login, rateLimit)
		shop.GET("/logout", s.ShopHandler.Logout)
		shop.GET("/get-shop-info/:id", s.ShopHandler.GetShopInfo)

		// Seller-only
		shop.GET("/getSeller", s.ShopHandler.GetSeller, isSeller)
		shop.PUT("/update-shop-avatar", s.ShopHandler.UpdateShopAvatar, isSeller)
		shop.PUT("/update-seller-info", s.ShopHandler.UpdateSellerInfo, isSeller)

		// Admin
		shop.GET("/admin-all-sellers", s.ShopHandler.AdminAllSellers, isAuthenticated, custommiddleware.IsAdmin("Admin"))
	}

	user := e.Group("/api/v2/user")
	{
		user.POST("/login-user", s.UserHandler.Login, rateLimit)
		user.GET("/getuser", s.UserHandler.GetUser, isAuthenticated)
		user.GET("/logout", s.UserHandler.Logout)
	}
}

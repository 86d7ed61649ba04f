package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asif-dev/machbazar-storefront/config"
	"github.com/asif-dev/machbazar-storefront/internal/app/controller"
	"github.com/asif-dev/machbazar-storefront/internal/middleware"
)

// Controllers bundles every HTTP controller the router mounts.
type Controllers struct {
	Catalog  *controller.CatalogController
	Cart     *controller.CartController
	Checkout *controller.CheckoutController
	Admin    *controller.AdminController
	WS       *controller.WSController
}

// Setup wires the full HTTP surface.
func Setup(cfg *config.Config, ctrls Controllers) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.LoggingMiddleware())

	auth := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// catalog proxy is public
		api.GET("/products", ctrls.Catalog.ListProducts)
		api.GET("/products/:id", ctrls.Catalog.GetProduct)

		// cart and checkout work for both signed-in users and guests;
		// the cart key middleware decides which cart the request touches
		cart := api.Group("", auth.OptionalAuthenticate(), middleware.CartKeyMiddleware())
		{
			cart.GET("/cart", ctrls.Cart.GetCart)
			cart.POST("/cart/items", ctrls.Cart.AddItem)
			cart.PUT("/cart/items", ctrls.Cart.UpdateItem)
			cart.DELETE("/cart/items", ctrls.Cart.RemoveItem)
			cart.DELETE("/cart", ctrls.Cart.ClearCart)

			cart.POST("/checkout/quote", ctrls.Checkout.RequestQuote)
			cart.GET("/checkout/quote", ctrls.Checkout.CurrentQuote)
			cart.POST("/checkout", ctrls.Checkout.Submit)
		}

		admin := api.Group("/admin", auth.Authenticate(), auth.RequireRole(middleware.RoleAdmin))
		{
			admin.GET("/submissions", ctrls.Admin.ListSubmissions)
			admin.POST("/submissions/export", ctrls.Admin.ExportSubmissions)
		}
	}

	r.GET("/ws/cart", auth.OptionalAuthenticate(), middleware.CartKeyMiddleware(), ctrls.WS.WatchCart)

	return r
}

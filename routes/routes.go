package routes

import (
	"cakepoint/auth"
	"cakepoint/cart"
	"cakepoint/catalogue"
	"cakepoint/imagenorm"
	"cakepoint/middleware"
	"cakepoint/ratelim"
	"cakepoint/search"
	"cakepoint/settings"
	"cakepoint/snapshot"
	"cakepoint/subscribe"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
}

func AddCatalogueRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/categories", catalogue.GetCategories)
	router.GET("/api/categories/:catid/products", catalogue.GetProducts)
	router.GET("/api/catalogue/search", search.SearchCatalogue)

	router.POST("/api/categories", middleware.Authenticate(catalogue.CreateCategory))
	router.PUT("/api/categories/:catid", middleware.Authenticate(catalogue.UpdateCategory))
	router.DELETE("/api/categories/:catid", middleware.Authenticate(catalogue.DeleteCategory))
	router.POST("/api/catalogue/reorder", middleware.Authenticate(catalogue.ReorderCategories))

	router.POST("/api/categories/:catid/products", middleware.Authenticate(catalogue.CreateProduct))
	router.PUT("/api/categories/:catid/products/:productid", middleware.Authenticate(catalogue.UpdateProduct))
	router.DELETE("/api/categories/:catid/products/:productid", middleware.Authenticate(catalogue.DeleteProduct))
}

func AddCartRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, store *cart.Store) {
	router.GET("/api/cart/:cartid", store.GetCart)
	router.POST("/api/cart/:cartid/lines", store.HandleAddLine)
	router.PATCH("/api/cart/:cartid/lines/:index", store.HandleAdjustLine)
	router.DELETE("/api/cart/:cartid/lines/:index", store.HandleRemoveLine)
	router.DELETE("/api/cart/:cartid", store.HandleClear)
	router.POST("/api/cart/:cartid/order", rateLimiter.Limit(store.HandlePlaceOrder))
	router.POST("/api/cart/:cartid/order/pdf", rateLimiter.Limit(store.HandleOrderPDF))
}

func AddSettingsRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/settings", settings.GetSettings)
	router.PATCH("/api/settings", middleware.Authenticate(settings.UpdateSettings))
}

func AddImageRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/images", rateLimiter.Limit(middleware.Authenticate(imagenorm.UploadImage)))
}

func AddSubscribeRoutes(router *httprouter.Router, hub *subscribe.Hub, resolver *snapshot.Resolver) {
	router.GET("/ws/subscribe/:room", subscribe.WebSocketHandler(hub, resolver.Snapshot))
}

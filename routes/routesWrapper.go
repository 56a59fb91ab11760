package routes

import (
	"cakepoint/cart"
	"cakepoint/ratelim"
	"cakepoint/snapshot"
	"cakepoint/subscribe"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, store *cart.Store, hub *subscribe.Hub, resolver *snapshot.Resolver) {
	AddAuthRoutes(router, rateLimiter)
	AddCatalogueRoutes(router, rateLimiter)
	AddCartRoutes(router, rateLimiter, store)
	AddSettingsRoutes(router, rateLimiter)
	AddImageRoutes(router, rateLimiter)
	AddSubscribeRoutes(router, hub, resolver)
}

package handler

type ContextKey string

var (
	RoleCtxKey        ContextKey = "role"
	SubCtxKey         ContextKey = "sub"
	RestaurantsCtxKey ContextKey = "restaurants"
	RestaurantCtx     ContextKey = "restaurant"
)

package routes

import (
	"github.com/shashiranjanraj/pizzeria/app/controllers"
	"github.com/shashiranjanraj/pizzeria/pkg/rbac"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Auth        *controllers.AuthController
	Orders      *controllers.OrderController
	RequireAuth router.Middleware
}

// RegisterAPI mounts the public API.
func RegisterAPI(r *router.Router, d Deps) {
	authGroup := r.Group("/auth")
	authGroup.Post("/signup", "auth.signup", d.Auth.Signup)
	authGroup.Post("/login", "auth.login", d.Auth.Login)

	authed := authGroup.Group("", d.RequireAuth)
	authed.Get("/", "auth.home", d.Auth.Home)
	authed.Get("/refresh", "auth.refresh", d.Auth.Refresh)

	orders := r.Group("/orders", d.RequireAuth)
	orders.Get("/", "orders.hello", d.Orders.Hello)
	orders.Post("/order", "orders.place", d.Orders.Place)

	// Staff-only listings and the status transition.
	orders.Get("/orders", "orders.all", d.Orders.ListAll,
		rbac.StaffOnly("You are not a superuser"))
	orders.Get("/orders/{id}", "orders.show", d.Orders.GetByID,
		rbac.StaffOnly("Not allowed"))
	orders.Patch("/order/update/{id}", "orders.status", d.Orders.UpdateStatus,
		rbac.StaffOnly("Not allowed"))

	orders.Get("/user/orders", "orders.own", d.Orders.ListOwn)
	orders.Get("/user/order/{id}", "orders.own.show", d.Orders.GetOwnByID)
	orders.Put("/order/update/{id}", "orders.update", d.Orders.Update)
	orders.Delete("/order/delete/{id}", "orders.delete", d.Orders.Delete)
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/bind"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

type orderRequest struct {
	Quantity  int    `json:"quantity"   validate:"required,integer,gte=1"`
	PizzaSize string `json:"pizza_size" validate:"nullable,in=SMALL,MEDIUM,LARGE"`
}

type statusRequest struct {
	OrderStatus string `json:"order_status" validate:"required,in=PENDING,IN_TRANSIT,DELIVERED,CANCELLED"`
}

// Hello is the authenticated landing route of the orders group.
func (c *OrderController) Hello(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"message": "hello world"})
}

// Place creates a new order for the current user.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	var body orderRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, _ := middleware.UserFromCtx(r.Context())

	order, err := c.service.Place(user, body.Quantity, models.PizzaSize(body.PizzaSize))
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, order)
}

// ListAll returns every order. Staff only (enforced at the route).
func (c *OrderController) ListAll(w http.ResponseWriter, _ *http.Request) {
	orders, err := c.service.ListAll()
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, orders)
}

// GetByID returns any order by id. Staff only (enforced at the route).
func (c *OrderController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	order, err := c.service.GetByID(id)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, order)
}

// ListOwn returns the current user's orders as code+label projections.
func (c *OrderController) ListOwn(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromCtx(r.Context())

	summaries, err := c.service.ListOwn(user)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, summaries)
}

// GetOwnByID returns one of the current user's orders.
func (c *OrderController) GetOwnByID(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	user, _ := middleware.UserFromCtx(r.Context())

	order, err := c.service.GetOwnByID(user, id)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, order)
}

// Update overwrites an order's quantity and size.
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var body orderRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	size := models.PizzaSize(body.PizzaSize)
	if size == "" {
		size = models.SizeSmall
	}

	user, _ := middleware.UserFromCtx(r.Context())

	order, err := c.service.UpdateFields(user, id, body.Quantity, size)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, order)
}

// UpdateStatus moves an order along the delivery lifecycle. Staff only
// (enforced at the route).
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var body statusRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.UpdateStatus(id, models.OrderStatus(body.OrderStatus))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Success(w, order)
}

// Delete removes an order.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	user, _ := middleware.UserFromCtx(r.Context())

	if err := c.service.Delete(user, id); err != nil {
		response.Err(w, err)
		return
	}
	response.NoContent(w)
}

// orderID parses the {id} path parameter, writing a 422 when it is not a
// positive integer.
func orderID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.Error(w, http.StatusUnprocessableEntity, "Invalid order id")
		return 0, false
	}
	return uint(id), true
}

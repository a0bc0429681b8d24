package controllers

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/bind"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type signupRequest struct {
	Username string `json:"username" validate:"required,alpha_dash,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	IsActive *bool  `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
}

// Signup registers a new account and returns it without the password hash.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}

	user, err := c.service.Signup(services.SignupInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
		IsActive: active,
		IsStaff:  body.IsStaff,
	})
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, user)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges a username/password pair for a token pair.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, err := c.service.Login(body.Username, body.Password, time.Now())
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Success(w, pair)
}

// Refresh issues a new refresh token for the current user.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromCtx(r.Context())

	token, err := c.service.Refresh(user.Username, time.Now())
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Success(w, map[string]string{"refresh_token": token})
}

// Home greets the current user.
func (c *AuthController) Home(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromCtx(r.Context())
	response.Success(w, map[string]string{"message": c.service.Greeting(user)})
}

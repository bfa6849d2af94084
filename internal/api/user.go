package api

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"todolist-service/internal/entity"
	"todolist-service/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
	todoService *service.TodoService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(authService *service.AuthService, todoService *service.TodoService) *UserHandler {
	return &UserHandler{
		authService: authService,
		todoService: todoService,
	}
}

// AuthMiddleware verifies the bearer token on the /user routes and leaves the
// parsed claims in the request context.
func AuthMiddleware(secretKey []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: secretKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &service.TokenClaims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "could not validate credentials"})
		},
	})
}

// Login exchanges form credentials for a bearer token --> POST /token
func (h *UserHandler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.authService.Authenticate(c.Request().Context(), username, password)
	if err != nil {
		return errorResponse(c, err)
	}

	token, err := h.authService.CreateAccessToken(user.Username, service.LoginAccessTokenTTL)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, token)
}

// Me returns the authenticated user's profile --> GET /user/me
func (h *UserHandler) Me(c echo.Context) error {
	profile, err := h.currentActiveUser(c)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// MyTodoList returns the authenticated user's task list --> GET /user/me/todolist/
func (h *UserHandler) MyTodoList(c echo.Context) error {
	profile, err := h.currentActiveUser(c)
	if err != nil {
		return errorResponse(c, err)
	}

	todos, err := h.todoService.ListTodos(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"owner":     profile,
		"todo_list": todos,
	})
}

func (h *UserHandler) currentActiveUser(c echo.Context) (*entity.UserProfile, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, service.ErrInvalidToken
	}

	claims, ok := token.Claims.(*service.TokenClaims)
	if !ok || claims.Subject == "" {
		return nil, service.ErrInvalidToken
	}

	profile, err := h.authService.CurrentUser(c.Request().Context(), claims.Subject)
	if err != nil {
		return nil, err
	}

	if err := h.authService.RequireActiveUser(profile); err != nil {
		return nil, err
	}

	return profile, nil
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"todolist-service/internal/service"
)

type TodoHandler struct {
	todoService *service.TodoService
}

// NewTodoHandler creates a new instance of TodoHandler.
func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// Home renders the full task list as HTML --> /
func (h *TodoHandler) Home(c echo.Context) error {
	todos, err := h.todoService.ListTodos(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Render(http.StatusOK, "base.html", map[string]interface{}{"todos": todos})
}

// Add creates a task from the task_name form field --> POST /add
func (h *TodoHandler) Add(c echo.Context) error {
	_, err := h.todoService.CreateTodo(c.Request().Context(), c.FormValue("task_name"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Toggle flips a task's completion flag --> /update/:todo_id
func (h *TodoHandler) Toggle(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	if _, err := h.todoService.ToggleComplete(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// UpdateDescription overwrites a task's description --> /description/:todo_id
func (h *TodoHandler) UpdateDescription(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	description := c.QueryParam("task_description")
	if _, err := h.todoService.UpdateDescription(c.Request().Context(), id, description); err != nil {
		return errorResponse(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// SetCompleteStatus writes an explicit completion value --> /complete_status/:todo_id
func (h *TodoHandler) SetCompleteStatus(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	status, err := strconv.ParseBool(c.QueryParam("complete_status"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid complete_status"})
	}

	if _, err := h.todoService.SetCompleteStatus(c.Request().Context(), id, status); err != nil {
		return errorResponse(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Delete removes a task; a missing id still redirects --> /delet/:todo_id
func (h *TodoHandler) Delete(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	if err := h.todoService.DeleteTodo(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func todoID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("todo_id"))
}

// errorResponse maps service errors onto status codes. Auth failures carry a
// bearer challenge and one generic body regardless of which check failed.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInactiveUser):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrTodoNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "could not validate credentials"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

package web

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/runoshun/task-reminder/internal/domain"
)

// HTML bodies for the links followed from mail.
const (
	pageVerified           = "<html><body><h2>Subscription Verified!</h2><p>You will now receive task reminders.</p></body></html>"
	pageVerificationFailed = "<html><body><h2>Verification Failed</h2><p>Invalid verification link.</p></body></html>"
	pageUnsubscribed       = "<html><body><h2>Unsubscribed</h2><p>You have been unsubscribed from task reminders.</p></body></html>"
	pageUnsubscribeFailed  = "<html><body><h2>Error</h2><p>Unable to unsubscribe.</p></body></html>"
	pageInvalidLink        = "<html><body><h2>Invalid Link</h2></body></html>"
	pageMissingParameters  = "<html><body><h2>Missing Parameters</h2></body></html>"
)

// Handlers contains HTTP request handlers.
type Handlers struct {
	tasks         TaskService
	subscriptions SubscriptionService
	logger        *slog.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(tasks TaskService, subscriptions SubscriptionService, logger *slog.Logger) *Handlers {
	return &Handlers{
		tasks:         tasks,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

func success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func failure(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

func page(c *fiber.Ctx, status int, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString(body)
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

// ListTasks handles GET /api/tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	return c.JSON(h.tasks.GetAllTasks(c.UserContext()))
}

// AddTask handles POST /api/tasks with form field task-name.
func (h *Handlers) AddTask(c *fiber.Ctx) error {
	name := c.FormValue("task-name")
	if strings.TrimSpace(name) == "" {
		return failure(c, fiber.StatusBadRequest, "Task name is required")
	}

	ok, err := h.tasks.AddTask(c.UserContext(), name)
	if err != nil {
		return err
	}
	if !ok {
		return failure(c, fiber.StatusBadRequest, "Task already exists")
	}
	return success(c)
}

// updateTaskRequest is the PUT body. Completed may be a JSON bool or a
// "true"/"false" string.
type updateTaskRequest struct {
	ID        *string `json:"id"`
	Completed any     `json:"completed"`
}

func (r updateTaskRequest) completed() (bool, bool) {
	switch v := r.Completed.(type) {
	case bool:
		return v, true
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true"), true
	default:
		return false, false
	}
}

// UpdateTask handles PUT /api/tasks with a JSON body {"id": ..., "completed": ...}.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var req updateTaskRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.ID == nil {
		return failure(c, fiber.StatusBadRequest, "Invalid parameters")
	}
	completed, ok := req.completed()
	if !ok {
		return failure(c, fiber.StatusBadRequest, "Invalid parameters")
	}

	ok, err := h.tasks.MarkTaskAsCompleted(c.UserContext(), *req.ID, completed)
	if err != nil {
		return err
	}
	if !ok {
		return failure(c, fiber.StatusNotFound, "Task not found")
	}
	return success(c)
}

// DeleteTask handles DELETE /api/tasks?id=.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return failure(c, fiber.StatusBadRequest, "Task ID is required")
	}

	ok, err := h.tasks.DeleteTask(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return failure(c, fiber.StatusNotFound, "Task not found")
	}
	return success(c)
}

// Subscribe handles POST /api/subscribe with form field email.
func (h *Handlers) Subscribe(c *fiber.Ctx) error {
	email := c.FormValue("email")
	if strings.TrimSpace(email) == "" {
		return failure(c, fiber.StatusBadRequest, "Email is required")
	}

	ok, err := h.subscriptions.SubscribeEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	if !ok {
		return failure(c, fiber.StatusBadRequest, "Invalid email or already subscribed")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Verification email sent",
	})
}

// Verify handles GET /verify?email=<base64>&code=.
func (h *Handlers) Verify(c *fiber.Ctx) error {
	encoded, code := c.Query("email"), c.Query("code")
	if encoded == "" || code == "" {
		return page(c, fiber.StatusBadRequest, pageMissingParameters)
	}
	email, err := domain.DecodeEmailParam(encoded)
	if err != nil {
		return page(c, fiber.StatusBadRequest, pageInvalidLink)
	}

	ok, err := h.subscriptions.VerifySubscription(c.UserContext(), email, code)
	if err != nil {
		return err
	}
	if !ok {
		return page(c, fiber.StatusBadRequest, pageVerificationFailed)
	}
	return page(c, fiber.StatusOK, pageVerified)
}

// Unsubscribe handles GET /unsubscribe?email=<base64>.
func (h *Handlers) Unsubscribe(c *fiber.Ctx) error {
	encoded := c.Query("email")
	if encoded == "" {
		return page(c, fiber.StatusBadRequest, pageMissingParameters)
	}
	email, err := domain.DecodeEmailParam(encoded)
	if err != nil {
		return page(c, fiber.StatusBadRequest, pageInvalidLink)
	}

	ok, err := h.subscriptions.UnsubscribeEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	if !ok {
		return page(c, fiber.StatusBadRequest, pageUnsubscribeFailed)
	}
	return page(c, fiber.StatusOK, pageUnsubscribed)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
)

// Response is the envelope every endpoint answers with. Message carries
// a string on success and either a string or the field-error list on
// validation failures.
type Response struct {
	Success bool        `json:"success"`
	Message interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler provides shared logging and response helpers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...interface{}) {
	utils.GetLogger(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...interface{}) {
	utils.GetLogger(c, h.logger).Error(msg, append(args, "error", err)...)
}

// RespondMessage writes a success envelope with just a message
func (h *BaseHandler) RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: true, Message: message})
}

// RespondData writes a success envelope with a message and payload
func (h *BaseHandler) RespondData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// RespondError maps service errors onto the wire contract. Not-found,
// conflict and ownership failures all answer 400 with the service
// message; only creator checks answer 403 and bad credentials 401.
func (h *BaseHandler) RespondError(c *gin.Context, err error) {
	var validationErrs utils.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: validationErrs})
		return
	}

	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: notFound.Message})
		return
	}

	var permission *services.PermissionError
	if errors.As(err, &permission) {
		status := http.StatusBadRequest
		if permission.Forbidden {
			status = http.StatusForbidden
		}
		c.JSON(status, Response{Success: false, Message: permission.Message})
		return
	}

	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: conflict.Message})
		return
	}

	if errors.Is(err, services.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Invalid Email or Password"})
		return
	}

	h.LogError(c, err, "Unhandled service error")
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "Internal server error"})
}

// BindJSON decodes the request body, answering 400 on malformed JSON
func (h *BaseHandler) BindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return false
	}
	return true
}

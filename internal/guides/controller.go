package guides

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripcoach/internal/shared/utils/response"
)

type Controller interface {
	Apply(c *gin.Context)
	GetMyApplication(c *gin.Context)
	GetPending(c *gin.Context)
	Approve(c *gin.Context)
	Reject(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := ctrl.caller(c)
	if !ok {
		return
	}

	application, err := ctrl.service.Apply(c.Request.Context(), userID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrOpenApplication), errors.Is(err, ErrAlreadyGuide):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Application submitted successfully", application, nil)
}

func (ctrl *controller) GetMyApplication(c *gin.Context) {
	userID, ok := ctrl.caller(c)
	if !ok {
		return
	}

	application, err := ctrl.service.GetMyApplication(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrApplicationNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Application retrieved successfully", application, nil)
}

func (ctrl *controller) GetPending(c *gin.Context) {
	applications, err := ctrl.service.GetPending(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Pending applications retrieved successfully", applications, nil)
}

func (ctrl *controller) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid application ID", nil, err.Error())
		return
	}

	application, err := ctrl.service.Approve(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrApplicationNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotPending):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Application approved successfully", application, nil)
}

func (ctrl *controller) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid application ID", nil, err.Error())
		return
	}

	application, err := ctrl.service.Reject(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrApplicationNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotPending):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Application rejected successfully", application, nil)
}

func (ctrl *controller) caller(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	callerID, err := uuid.Parse(userID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}

	return callerID, true
}

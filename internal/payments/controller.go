package payments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripcoach/internal/bookings"
	"tripcoach/internal/shared/utils/response"
)

type Controller interface {
	CreateCheckout(c *gin.Context)
	ConfirmPayment(c *gin.Context)

	// Admin projection over booking payments
	GetAllPayments(c *gin.Context)
	GetPayment(c *gin.Context)
}

type controller struct {
	service        Service
	bookingService bookings.Service
}

func NewController(service Service, bookingService bookings.Service) Controller {
	return &controller{
		service:        service,
		bookingService: bookingService,
	}
}

func (ctrl *controller) CreateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	memberID, ok := ctrl.caller(c)
	if !ok {
		return
	}

	checkout, err := ctrl.service.CreateCheckout(c.Request.Context(), memberID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, bookings.ErrNotBookingOwner):
			statusCode = http.StatusForbidden
		case errors.Is(err, ErrBookingNotEligible):
			statusCode = http.StatusConflict
		case errors.Is(err, ErrCheckoutURLMissing):
			statusCode = http.StatusBadGateway
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Checkout session created", checkout, nil)
}

func (ctrl *controller) ConfirmPayment(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	memberID, ok := ctrl.caller(c)
	if !ok {
		return
	}

	booking, err := ctrl.service.ConfirmPayment(c.Request.Context(), memberID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, bookings.ErrNotBookingOwner):
			statusCode = http.StatusForbidden
		case errors.Is(err, bookings.ErrAlreadyConfirmed), errors.Is(err, bookings.ErrNotConfirmable):
			statusCode = http.StatusConflict
		case errors.Is(err, ErrConfirmationAmbiguous):
			statusCode = http.StatusInternalServerError
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment confirmed successfully", booking, nil)
}

func (ctrl *controller) GetAllPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	payments, err := ctrl.bookingService.GetAllPayments(c.Request.Context(), page, limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payments retrieved successfully", payments, nil)
}

func (ctrl *controller) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid payment ID", nil, err.Error())
		return
	}

	payment, err := ctrl.bookingService.GetPaymentByID(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, bookings.ErrPaymentNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment retrieved successfully", payment, nil)
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

package packagetypes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripcoach/internal/shared/utils/response"
)

type Controller interface {
	CreatePackageType(c *gin.Context)
	GetPackageType(c *gin.Context)
	GetPackageTypeBySlug(c *gin.Context)
	UpdatePackageType(c *gin.Context)
	DeletePackageType(c *gin.Context)
	GetAllPackageTypes(c *gin.Context)
	GetActivePackageTypes(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreatePackageType(c *gin.Context) {
	var req CreatePackageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	adminID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Admin not authenticated", nil, nil)
		return
	}

	adminUUID, err := uuid.Parse(adminID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid admin ID format", nil, nil)
		return
	}

	packageType, err := ctrl.service.CreatePackageType(c.Request.Context(), adminUUID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrTypeAlreadyExists) {
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Package type created successfully", packageType, nil)
}

func (ctrl *controller) GetPackageType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid package type ID", nil, err.Error())
		return
	}

	packageType, err := ctrl.service.GetPackageTypeByID(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrTypeNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package type retrieved successfully", packageType, nil)
}

func (ctrl *controller) GetPackageTypeBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Package type slug is required", nil, nil)
		return
	}

	packageType, err := ctrl.service.GetPackageTypeBySlug(c.Request.Context(), slug)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrTypeNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package type retrieved successfully", packageType, nil)
}

func (ctrl *controller) UpdatePackageType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid package type ID", nil, err.Error())
		return
	}

	var req UpdatePackageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	packageType, err := ctrl.service.UpdatePackageType(c.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrTypeNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrTypeAlreadyExists):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package type updated successfully", packageType, nil)
}

func (ctrl *controller) DeletePackageType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid package type ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeletePackageType(c.Request.Context(), id); err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrTypeNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrTypeInUse):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package type deleted successfully", nil, nil)
}

func (ctrl *controller) GetAllPackageTypes(c *gin.Context) {
	var query PackageTypeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	packageTypes, err := ctrl.service.GetAllPackageTypes(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package types retrieved successfully", packageTypes, nil)
}

func (ctrl *controller) GetActivePackageTypes(c *gin.Context) {
	packageTypes, err := ctrl.service.GetActivePackageTypes(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Active package types retrieved successfully", packageTypes, nil)
}

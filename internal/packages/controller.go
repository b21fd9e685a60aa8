package packages

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripcoach/internal/shared/utils/response"
	"tripcoach/internal/users"
)

type Controller interface {
	// Public browsing
	GetAllPackages(c *gin.Context)
	GetPackage(c *gin.Context)

	// Guide package management (admin may act on any package)
	CreatePackage(c *gin.Context)
	UpdatePackage(c *gin.Context)
	DeletePackage(c *gin.Context)
	GetMyPackages(c *gin.Context)

	// Admin listing (all statuses)
	GetAllPackagesAdmin(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetAllPackages(c *gin.Context) {
	var query PackageListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	// Public listing only ever shows published packages
	query.Status = string(StatusPublished)

	packages, err := ctrl.service.GetAllPackages(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Packages retrieved successfully", packages, nil)
}

func (ctrl *controller) GetPackage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid package ID", nil, err.Error())
		return
	}

	pkg, err := ctrl.service.GetPackageByID(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrPackageNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	// Drafts and archived packages are only visible through the guide
	// and admin routes; to the public they do not exist.
	if pkg.Status != StatusPublished {
		response.RespondJSON(c, "error", http.StatusNotFound, ErrPackageNotFound.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package retrieved successfully", pkg, nil)
}

func (ctrl *controller) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	callerID, ok := ctrl.caller(c)
	if !ok {
		return
	}

	pkg, err := ctrl.service.CreatePackage(c.Request.Context(), callerID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Package created successfully", pkg, nil)
}

func (ctrl *controller) UpdatePackage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid package ID", nil, err.Error())
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	callerID, ok := ctrl.caller(c)
	if !ok {
		return
	}

	pkg, err := ctrl.service.UpdatePackage(c.Request.Context(), id, callerID, ctrl.isAdmin(c), req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrPackageNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotPackageOwner):
			statusCode = http.StatusForbidden
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package updated successfully", pkg, nil)
}

func (ctrl *controller) DeletePackage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid package ID", nil, err.Error())
		return
	}

	callerID, ok := ctrl.caller(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeletePackage(c.Request.Context(), id, callerID, ctrl.isAdmin(c)); err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrPackageNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotPackageOwner):
			statusCode = http.StatusForbidden
		case errors.Is(err, ErrPackageHasBookings):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Package deleted successfully", nil, nil)
}

func (ctrl *controller) GetMyPackages(c *gin.Context) {
	var query PackageListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	callerID, ok := ctrl.caller(c)
	if !ok {
		return
	}

	packages, err := ctrl.service.GetGuidePackages(c.Request.Context(), callerID, query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Packages retrieved successfully", packages, nil)
}

func (ctrl *controller) GetAllPackagesAdmin(c *gin.Context) {
	var query PackageListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	packages, err := ctrl.service.GetAllPackages(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Packages retrieved successfully", packages, nil)
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

func (ctrl *controller) isAdmin(c *gin.Context) bool {
	role, exists := c.Get("user_role")
	return exists && role.(string) == string(users.RoleAdmin)
}

package api

import (
	"errors"
	"net/http"

	"reservehub/internal/domain/resource"
	reqdto "reservehub/internal/handler/dto/request"
	resdto "reservehub/internal/handler/dto/response"
	"reservehub/internal/handler/httperr"
	"reservehub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	resourceUseCase usecase.ResourceUseCase
}

func NewResourceHandler(resourceUseCase usecase.ResourceUseCase) *ResourceHandler {
	return &ResourceHandler{
		resourceUseCase: resourceUseCase,
	}
}

// @Summary Create resource
// @Description Register a new vehicle or meeting room (admin only)
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Resource request"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /resources [post]
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req reqdto.CreateResourceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	kind, err := resource.NewKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource kind",
		})
		return
	}

	status := resource.StatusAvailable
	if req.Status != "" {
		status, err = resource.NewStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid resource status",
			})
			return
		}
	}

	params := usecase.CreateResourceParams{
		Kind:     kind,
		Name:     req.Name,
		Capacity: req.Capacity,
		Status:   status,
	}

	resourceRM, err := h.resourceUseCase.CreateResource(c.Request.Context(), params)
	if err != nil {
		h.respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromResourceRM(resourceRM))
}

// @Summary Update resource
// @Description Update a resource's name, capacity or status (admin only)
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Fields to update"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /resources/{id} [patch]
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	var req reqdto.UpdateResourceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := usecase.UpdateResourceParams{
		Name:     req.Name,
		Capacity: req.Capacity,
	}
	if req.Status != nil {
		status, err := resource.NewStatus(*req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid resource status",
			})
			return
		}
		params.Status = &status
	}

	resourceRM, err := h.resourceUseCase.UpdateResource(c.Request.Context(), id, params)
	if err != nil {
		h.respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceRM(resourceRM))
}

// @Summary Delete resource
// @Description Delete a resource that has no bookings (admin only)
// @Tags resources
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	if err := h.resourceUseCase.DeleteResource(c.Request.Context(), id); err != nil {
		h.respondResourceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get resource
// @Description Get resource by ID
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	resourceRM, err := h.resourceUseCase.GetResource(c.Request.Context(), id)
	if err != nil {
		h.respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceRM(resourceRM))
}

// @Summary List resources
// @Description List all resources, optionally filtered by kind
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Resource kind (vehicle or room)"
// @Success 200 {array} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	var kind *resource.Kind
	if kindStr := c.Query("kind"); kindStr != "" {
		k, err := resource.NewKind(kindStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid resource kind",
			})
			return
		}
		kind = &k
	}

	resourcesRM, err := h.resourceUseCase.ListResources(c.Request.Context(), kind)
	if err != nil {
		h.respondResourceError(c, err)
		return
	}

	response := make([]*resdto.ResourceResponse, len(resourcesRM))
	for i, rm := range resourcesRM {
		response[i] = resdto.FromResourceRM(rm)
	}

	c.JSON(http.StatusOK, response)
}

func (h *ResourceHandler) respondResourceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, usecase.ErrResourceHasBookings):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Resource still has bookings",
		})
	case errors.Is(err, usecase.ErrDomainValidationFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

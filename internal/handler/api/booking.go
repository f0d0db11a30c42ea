package api

import (
	"errors"
	"net/http"

	"reservehub/internal/domain/booking"
	"reservehub/internal/domain/resource"
	reqdto "reservehub/internal/handler/dto/request"
	resdto "reservehub/internal/handler/dto/response"
	"reservehub/internal/handler/httperr"
	"reservehub/internal/handler/middleware"
	"reservehub/internal/usecase"
	"reservehub/internal/usecase/readmodel"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

// @Summary Create booking
// @Description Create a new booking for a vehicle or meeting room
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, userName, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
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

	params := usecase.CreateBookingParams{
		Kind:        kind,
		ResourceID:  req.ResourceID,
		UserID:      userID,
		UserName:    userName,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Purpose:     req.Purpose,
		Destination: req.Destination,
		Attendees:   req.Attendees,
	}

	bookingRM, err := h.bookingUseCase.CreateBooking(c.Request.Context(), params)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingRM(bookingRM))
}

// @Summary Create bookings in batch
// @Description Book one time window on up to 10 resources of the same kind. Items fail individually; a failed item never rolls back its siblings.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBatchBookingsRequest true "Batch booking request"
// @Success 200 {object} resdto.BatchBookingsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/batch [post]
func (h *BookingHandler) CreateBatchBookings(c *gin.Context) {
	userID, userName, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBatchBookingsRequest
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

	params := usecase.CreateBatchParams{
		Kind:        kind,
		ResourceIDs: req.ResourceIDs,
		UserID:      userID,
		UserName:    userName,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Purpose:     req.Purpose,
		Destination: req.Destination,
		Attendees:   req.Attendees,
	}

	result, err := h.bookingUseCase.CreateBatchBookings(c.Request.Context(), params)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBatchResult(result))
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	bookingRM, err := h.bookingUseCase.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRM(bookingRM))
}

// @Summary List bookings
// @Description List bookings, optionally filtered by kind, ownership and date range. The date range is containment: only bookings lying entirely inside [from, to] qualify.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Resource kind (vehicle or room)"
// @Param mine query bool false "Only the caller's own bookings"
// @Param from query string false "Range start (RFC3339)"
// @Param to query string false "Range end (RFC3339)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var query reqdto.ListBookingsQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	filter := readmodel.BookingFilter{
		From: query.From,
		To:   query.To,
	}
	if query.Kind != "" {
		filter.Kind = &query.Kind
	}
	if query.Mine {
		filter.UserID = &userID
	}

	bookingsRM, err := h.bookingUseCase.ListBookings(c.Request.Context(), filter)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	response := make([]*resdto.BookingResponse, len(bookingsRM))
	for i, rm := range bookingsRM {
		response[i] = resdto.FromBookingRM(rm)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update booking
// @Description Update a pending booking owned by the caller. Changing the window re-runs the conflict check.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id} [patch]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.UpdateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := usecase.UpdateBookingParams{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Purpose:     req.Purpose,
		Destination: req.Destination,
		Attendees:   req.Attendees,
	}

	bookingRM, err := h.bookingUseCase.UpdateBooking(c.Request.Context(), id, userID, params)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRM(bookingRM))
}

// @Summary Change booking status
// @Description Approve or reject a pending booking (admin), or cancel an approved booking (owner)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ChangeBookingStatusRequest true "Target status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) ChangeBookingStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.ChangeBookingStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	status, err := booking.NewStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking status",
		})
		return
	}

	bookingRM, err := h.bookingUseCase.ChangeStatus(c.Request.Context(), id, status, userID, role)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRM(bookingRM))
}

// @Summary Delete booking
// @Description Delete a pending booking owned by the caller
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	if err := h.bookingUseCase.DeleteBooking(c.Request.Context(), id, userID); err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, usecase.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, usecase.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Time slot conflicts with an existing booking",
		})
	case errors.Is(err, usecase.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid status transition",
		})
	case errors.Is(err, usecase.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Permission denied",
		})
	case errors.Is(err, usecase.ErrBatchTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Batch size must be between 1 and 10",
		})
	case errors.Is(err, usecase.ErrDomainValidationFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	userName, ok := middleware.GetUserName(c)
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, userName, true
}

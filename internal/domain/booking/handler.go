package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rephotos/admin-api/internal/domain/pricing"
	"github.com/rephotos/admin-api/internal/pkg/response"
	"github.com/rephotos/admin-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, verrs, err := h.service.Create(r.Context(), &req)
	if verrs != nil {
		response.ErrorWithDetails(w, http.StatusUnprocessableEntity, "PRICING_VALIDATION_FAILED", "Booking failed validation", verrs.Details())
		return
	}
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			response.BadRequest(w, err.Error())
			return
		}
		log.Error().Err(err).Msg("Failed to create booking")
		response.InternalError(w)
		return
	}

	response.Created(w, BookingResponseFromEntity(b))
}

// Quote handles POST /bookings/quote
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	quote, verrs := h.service.Quote(&req)
	if verrs != nil {
		response.ErrorWithDetails(w, http.StatusUnprocessableEntity, "PRICING_VALIDATION_FAILED", "Selection failed validation", verrs.Details())
		return
	}

	response.OK(w, quoteResponse(quote))
}

// List handles GET /bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, p, err := parseListQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	bookings, total, err := h.service.List(r.Context(), filter, p)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list bookings")
		response.InternalError(w)
		return
	}

	items := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, BookingResponseFromEntity(b))
	}

	response.WithMeta(w, items, response.Meta{
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

// GetByID handles GET /bookings/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		log.Error().Err(err).Msg("Failed to get booking")
		response.InternalError(w)
		return
	}

	response.OK(w, BookingResponseFromEntity(b))
}

// BatchUpdate handles POST /bookings/update
func (h *Handler) BatchUpdate(w http.ResponseWriter, r *http.Request) {
	var req BatchUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	results := h.service.BatchUpdate(r.Context(), req.Bookings)
	response.OK(w, results)
}

// Delete handles DELETE /bookings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		log.Error().Err(err).Msg("Failed to delete booking")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// ProvisionFolders handles POST /bookings/{id}/folders
func (h *Handler) ProvisionFolders(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := h.service.ProvisionFolders(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, ErrFoldersUnavailable):
			response.Error(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Folder provisioning is not configured")
		default:
			log.Error().Err(err).Str("booking_id", id.String()).Msg("Failed to provision folders")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, BookingResponseFromEntity(b))
}

// SendEmail handles POST /emails
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.SendDeliveryEmail(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, ErrEmailUnavailable):
			response.Error(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Email sending is not configured")
		default:
			log.Error().Err(err).Str("to", req.To).Msg("Failed to send email")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Email sent"})
}

func quoteResponse(q *pricing.Quote) *QuoteResponse {
	return &QuoteResponse{
		PropertySize:    string(q.Band),
		Services:        persistedLines(q.LineItems),
		Subtotal:        q.Subtotal.Float64(),
		DiscountPercent: q.DiscountPercent,
		DiscountAmount:  q.DiscountAmount.Float64(),
		TotalAmount:     q.Total.Float64(),
	}
}

func parseListQuery(r *http.Request) (*Filter, *Pagination, error) {
	q := r.URL.Query()
	filter := &Filter{}

	if v := q.Get("status"); v != "" {
		s := Status(v)
		filter.Status = &s
	}
	if v := q.Get("payment_status"); v != "" {
		s := PaymentStatus(v)
		filter.PaymentStatus = &s
	}
	if v := q.Get("editing_status"); v != "" {
		s := EditingStatus(v)
		filter.EditingStatus = &s
	}
	if v := q.Get("agent_email"); v != "" {
		filter.AgentEmail = &v
	}
	if v := q.Get("search"); v != "" {
		filter.Search = &v
	}
	if v := q.Get("date_from"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		filter.DateFrom = &d
	}
	if v := q.Get("date_to"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		filter.DateTo = &d
	}

	p := &Pagination{Limit: 50}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			p.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Offset = n
		}
	}

	return filter, p, nil
}

package booking

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/thesanatorium/website/internal/metrics"
	"github.com/thesanatorium/website/internal/web"
	"github.com/thesanatorium/website/models"
)

const (
	successMessage = "Your booking request has been sent! We will contact you soon."
	failureMessage = "An error occurred while submitting your request. Please try again."
)

type ServiceProvider interface {
	List(ctx context.Context, order models.ServiceOrder) ([]models.Service, error)
}

type BookingCreator interface {
	Create(ctx context.Context, booking *models.Booking) error
}

type FlashStore interface {
	Add(w http.ResponseWriter, r *http.Request, flash web.Flash) error
	Pop(w http.ResponseWriter, r *http.Request) []web.Flash
}

// View is the booking page model.
type View struct {
	Services []models.Service
	Plans    []string
	Form     Form
	Error    string
}

type BookingHandler struct {
	services ServiceProvider
	bookings BookingCreator
	flashes  FlashStore
	render   *web.Renderer
}

func NewBookingHandler(s ServiceProvider, b BookingCreator, f FlashStore, rn *web.Renderer) *BookingHandler {
	return &BookingHandler{
		services: s,
		bookings: b,
		flashes:  f,
		render:   rn,
	}
}

func (h *BookingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	flashes := h.flashes.Pop(w, r)
	form := Form{ServiceID: r.URL.Query().Get("service_id")}
	h.renderForm(w, r, http.StatusOK, form, "", flashes)
}

func (h *BookingHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	form, err := ParseForm(r)
	if err != nil {
		log.Warn().Err(err).Msg("unreadable booking form")
		metrics.IncBookingFailure("bad_request")
		h.renderForm(w, r, http.StatusBadRequest, form, "We could not read your request. Please try again.", nil)
		return
	}

	booking, err := Validate(form)
	if err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			ve = &ValidationError{}
		}
		log.Info().Str("kind", string(ve.Kind)).Strs("fields", ve.Fields).Msg("booking rejected")
		metrics.IncBookingFailure(string(ve.Kind))
		h.renderForm(w, r, http.StatusBadRequest, form, ve.Message(), nil)
		return
	}

	if err := h.bookings.Create(r.Context(), booking); err != nil {
		kind := models.KindOf(err)
		log.Error().Err(err).Str("kind", string(kind)).Msg("Error processing booking")
		metrics.IncBookingFailure(string(kind))
		status, msg := failureResponse(kind)
		h.renderForm(w, r, status, form, msg, nil)
		return
	}

	metrics.IncBookingCreated()
	log.Info().
		Uint("booking_id", booking.ID).
		Uint("service_id", booking.ServiceID).
		Str("requested_date", booking.RequestedDate.Format(DateLayout)).
		Msg("booking request stored")

	if err := h.flashes.Add(w, r, web.Flash{Category: web.FlashSuccess, Message: successMessage}); err != nil {
		log.Warn().Err(err).Msg("save success flash")
	}
	http.Redirect(w, r, "/booking", http.StatusSeeOther)
}

// failureResponse maps a store failure to the status and message shown
// to the visitor. Only a missing service is the visitor's fault.
func failureResponse(kind models.ErrorKind) (int, string) {
	switch kind {
	case models.KindNotFound:
		return http.StatusBadRequest, "Please choose one of the listed services."
	case models.KindConnectionLost, models.KindTimeout:
		return http.StatusServiceUnavailable, failureMessage
	default:
		return http.StatusInternalServerError, failureMessage
	}
}

func (h *BookingHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, form Form, errMsg string, flashes []web.Flash) {
	services, err := h.services.List(r.Context(), models.ServiceOrderByName)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list services for booking form")
		h.render.RenderError(w, r, http.StatusInternalServerError, "We could not load the booking form. Please try again later.")
		return
	}

	h.render.Render(w, r, status, web.PageBooking, web.Page{
		Title:   "Book a space",
		Nav:     "booking",
		Flashes: flashes,
		Data: View{
			Services: services,
			Plans:    planOptions(form.PlanType),
			Form:     form,
			Error:    errMsg,
		},
	})
}

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"hotels_api/internal/app"
	"hotels_api/internal/domain"
)

type Handlers struct{ Hotels *app.HotelService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers, authn *Authenticator) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "ok")
	})
	s.mux.Group(func(r chi.Router) {
		r.Use(authn.Middleware)
		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{hotelId}", h.getHotel)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors: NotFoundError -> 404 with its message as
// text, ErrPaymentRequired -> bare 402, anything else -> 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &nf):
		render.Status(r, http.StatusNotFound)
		render.PlainText(w, r, nf.Message)
	case errors.Is(err, domain.ErrPaymentRequired):
		w.WriteHeader(http.StatusPaymentRequired)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	hotels, err := h.Hotels.GetHotels(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, hotels)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	hotelID, perr := strconv.ParseInt(chi.URLParam(r, "hotelId"), 10, 64)
	if perr != nil || hotelID <= 0 {
		// No hotel can match, but enrollment/ticket errors still take precedence.
		if err := h.Hotels.CheckEligibility(r.Context(), userID); err != nil {
			writeError(w, r, err)
			return
		}
		writeError(w, r, domain.NewNotFound(""))
		return
	}

	hotel, err := h.Hotels.GetHotelByID(r.Context(), userID, hotelID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, hotel)
}

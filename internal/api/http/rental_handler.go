package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tesla-rent/internal/domain"
	"tesla-rent/internal/logger"
	"tesla-rent/internal/service"

	"github.com/gorilla/mux"
)

// RentalHandler exposes the rental store over JSON
type RentalHandler struct {
	svc service.RentalService
	now func() time.Time
}

func NewRentalHandler(svc service.RentalService) *RentalHandler {
	return &RentalHandler{svc: svc, now: time.Now}
}

type addCarRequest struct {
	Model        string  `json:"model"`
	HourlyRate   float64 `json:"hourly_rate"`
	DistanceRate float64 `json:"distance_rate"`
}

type addClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type startRentRequest struct {
	ClientID int64      `json:"client_id"`
	CarID    int64      `json:"car_id"`
	Start    *time.Time `json:"start,omitempty"`
}

type endRentRequest struct {
	End      *time.Time `json:"end,omitempty"`
	Distance *float64   `json:"distance"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type rentalResponse struct {
	domain.RentalInfo
	Status  domain.RentalStatus `json:"status"`
	Summary string              `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *RentalHandler) AddCar(w http.ResponseWriter, r *http.Request) {
	var req addCarRequest
	if !decode(w, r, &req) {
		return
	}

	id, err := h.svc.AddCar(r.Context(), req.Model, req.HourlyRate, req.DistanceRate)
	if err != nil {
		h.internalError(w, r, "AddCar", err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (h *RentalHandler) AddClient(w http.ResponseWriter, r *http.Request) {
	var req addClientRequest
	if !decode(w, r, &req) {
		return
	}

	id, err := h.svc.AddClient(r.Context(), req.Name, req.Email)
	if err != nil {
		h.internalError(w, r, "AddClient", err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (h *RentalHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "car")
	if !ok {
		return
	}

	car, err := h.svc.GetCar(r.Context(), id)
	if errors.Is(err, domain.ErrCarNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.internalError(w, r, "GetCar", err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *RentalHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "client")
	if !ok {
		return
	}

	client, err := h.svc.GetClient(r.Context(), id)
	if errors.Is(err, domain.ErrClientNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.internalError(w, r, "GetClient", err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *RentalHandler) StartRent(w http.ResponseWriter, r *http.Request) {
	var req startRentRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ClientID <= 0 || req.CarID <= 0 {
		writeError(w, http.StatusBadRequest, "client_id and car_id are required")
		return
	}
	start := h.now()
	if req.Start != nil {
		start = *req.Start
	}

	id, err := h.svc.StartRent(r.Context(), req.ClientID, req.CarID, start)
	if errors.Is(err, domain.ErrCarUnavailable) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.internalError(w, r, "StartRent", err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (h *RentalHandler) EndRent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "rent")
	if !ok {
		return
	}
	var req endRentRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Distance == nil {
		writeError(w, http.StatusBadRequest, "distance is required")
		return
	}
	end := h.now()
	if req.End != nil {
		end = *req.End
	}

	res, err := h.svc.EndRent(r.Context(), id, end, *req.Distance)
	if err != nil {
		h.internalError(w, r, "EndRent", err)
		return
	}

	switch res.Outcome {
	case domain.CloseOutcomeNotFound:
		writeJSON(w, http.StatusNotFound, res)
	case domain.CloseOutcomeAlreadyClosed:
		writeJSON(w, http.StatusConflict, res)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "rent")
	if !ok {
		return
	}

	info, err := h.svc.GetRental(r.Context(), id)
	if errors.Is(err, domain.ErrRentalNotFound) {
		writeError(w, http.StatusNotFound, domain.RentalNotFoundMessage)
		return
	}
	if err != nil {
		h.internalError(w, r, "GetRental", err)
		return
	}
	writeJSON(w, http.StatusOK, rentalResponse{RentalInfo: *info, Status: info.Status(), Summary: info.Summary()})
}

func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" && status != "open" {
		writeError(w, http.StatusBadRequest, "only status=open is supported")
		return
	}

	open, err := h.svc.ListOpenRentals(r.Context())
	if err != nil {
		h.internalError(w, r, "ListRentals", err)
		return
	}
	out := make([]rentalResponse, 0, len(open))
	for i := range open {
		out = append(out, rentalResponse{RentalInfo: open[i], Status: open[i].Status(), Summary: open[i].Summary()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RentalHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger.ErrorContext(r.Context(), "Rental request failed", "operation", op, "error", err, "request_id", RequestID(r.Context()))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func pathID(w http.ResponseWriter, r *http.Request, kind string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+kind+" id")
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// RegisterRentalRoutes registers the rental store endpoints
func RegisterRentalRoutes(router *mux.Router, svc service.RentalService) {
	handler := NewRentalHandler(svc)
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/cars", handler.AddCar).Methods("POST")
	api.HandleFunc("/cars/{id:[0-9]+}", handler.GetCar).Methods("GET")
	api.HandleFunc("/clients", handler.AddClient).Methods("POST")
	api.HandleFunc("/clients/{id:[0-9]+}", handler.GetClient).Methods("GET")
	api.HandleFunc("/rents", handler.StartRent).Methods("POST")
	api.HandleFunc("/rents", handler.ListRentals).Methods("GET")
	api.HandleFunc("/rents/{id:[0-9]+}", handler.GetRental).Methods("GET")
	api.HandleFunc("/rents/{id:[0-9]+}/end", handler.EndRent).Methods("POST")
}

// NewRouter builds the full HTTP router with request logging
func NewRouter(svc service.RentalService) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogging)
	RegisterRentalRoutes(router, svc)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	return router
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tablebistro/tablebistro/internal/payments/application"
	"github.com/tablebistro/tablebistro/internal/shared"
	"github.com/tablebistro/tablebistro/internal/web"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("payments-http"),
	}
}

type processPaymentReq struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/orders/{orderID}", h.processPayment)
	r.Get("/orders/{orderID}", h.statusByOrder)
	return r
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ProcessPayment")
	defer span.End()

	var req processPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, shared.Validationf("invalid request body"))
		return
	}
	if req.PaymentMethod == "" {
		web.WriteError(w, shared.Validationf("paymentMethod is required"))
		return
	}

	payment, err := h.service.Process(ctx, chi.URLParam(r, "orderID"), req.PaymentMethod)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, payment)
}

func (h *Handler) statusByOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetPaymentStatus")
	defer span.End()

	payment, err := h.service.StatusByOrder(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		web.WriteError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, payment)
}

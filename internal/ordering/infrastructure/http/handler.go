package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tablebistro/tablebistro/internal/ordering/application"
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
		tracer:  otel.Tracer("ordering-http"),
	}
}

type addProductReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityReq struct {
	Quantity int `json:"quantity"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/table/{tableNumber}", h.getOrCreateForTable)
	r.Get("/active", h.activeOrders)
	r.Post("/{orderID}/products", h.addProduct)
	r.Delete("/{orderID}/lines/{lineID}", h.removeLine)
	r.Put("/{orderID}/lines/{lineID}", h.updateLineQuantity)
	r.Post("/{orderID}/confirm", h.confirm)
	r.Post("/{orderID}/cancel", h.cancel)
	r.Put("/{orderID}/status", h.updateStatus)
	return r
}

func (h *Handler) getOrCreateForTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetOrCreateOrderForTable")
	defer span.End()

	raw := chi.URLParam(r, "tableNumber")
	number, err := strconv.Atoi(raw)
	if err != nil {
		web.WriteError(w, shared.Validationf("invalid table number %q", raw))
		return
	}
	order, err := h.service.GetOrCreateOrderForTable(ctx, number)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) activeOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetAllActiveOrders")
	defer span.End()

	orders, err := h.service.ActiveOrders(ctx)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddProductToOrder")
	defer span.End()

	var req addProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, shared.Validationf("invalid request body"))
		return
	}
	order, err := h.service.AddProduct(ctx, chi.URLParam(r, "orderID"), req.ProductID, req.Quantity)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveOrderLine")
	defer span.End()

	order, err := h.service.RemoveLine(ctx, chi.URLParam(r, "orderID"), chi.URLParam(r, "lineID"))
	if err != nil {
		web.WriteError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) updateLineQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateOrderLineQuantity")
	defer span.End()

	var req updateQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, shared.Validationf("invalid request body"))
		return
	}
	order, err := h.service.UpdateLineQuantity(ctx, chi.URLParam(r, "orderID"), chi.URLParam(r, "lineID"), req.Quantity)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ConfirmOrder")
	defer span.End()

	order, err := h.service.Confirm(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		web.WriteError(w, err)
		return
	}
	h.log.Info("order confirmed", "order_id", order.ID, "table", order.TableNumber)
	web.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CancelOrder")
	defer span.End()

	order, err := h.service.Cancel(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		web.WriteError(w, err)
		return
	}
	h.log.Info("order cancelled", "order_id", order.ID)
	web.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateOrderStatus")
	defer span.End()

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, shared.Validationf("invalid request body"))
		return
	}
	order, err := h.service.UpdateStatus(ctx, chi.URLParam(r, "orderID"), req.Status)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	h.log.Info("order status updated", "order_id", order.ID, "status", order.Status)
	web.WriteJSON(w, http.StatusOK, order)
}

package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tablebistro/tablebistro/internal/shared"
	"github.com/tablebistro/tablebistro/internal/tables/application"
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
		tracer:  otel.Tracer("tables-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listTables)
	r.Post("/{tableNumber}/start-session", h.startSession)
	r.Post("/{tableNumber}/end-session", h.endSession)
	return r
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListTables")
	defer span.End()

	tables, err := h.service.Tables(ctx)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	web.WriteJSON(w, http.StatusOK, tables)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "StartTableSession")
	defer span.End()

	number, err := tableNumber(r)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	session, err := h.service.StartSession(ctx, number)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	h.log.Info("table session started", "table", session.TableNumber, "session_id", session.SessionID)
	web.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "EndTableSession")
	defer span.End()

	number, err := tableNumber(r)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	table, err := h.service.EndSession(ctx, number)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	h.log.Info("table session ended", "table", table.Number)
	web.WriteJSON(w, http.StatusOK, table)
}

func tableNumber(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "tableNumber")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, shared.Validationf("invalid table number %q", raw)
	}
	return n, nil
}

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/solar-ops-backend/costing"
	"github.com/rpupo63/solar-ops-backend/database"
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/listing"
	"github.com/rpupo63/solar-ops-backend/metrics"
	"github.com/rpupo63/solar-ops-backend/models"
	"github.com/rpupo63/solar-ops-backend/services"
	"github.com/rs/zerolog"
)

type serviceOrderHandler struct {
	responder   Responder
	logger      zerolog.Logger
	orders      database.ServiceOrderStore
	inventory   database.InventoryStore
	submissions *services.Submissions
	archiver    *services.Archiver
	notifier    *services.Notifier
	now         func() time.Time
}

func newServiceOrderHandler(orders database.ServiceOrderStore, inventory database.InventoryStore, submissions *services.Submissions, archiver *services.Archiver, notifier *services.Notifier, now func() time.Time, unauthorizedPath string) serviceOrderHandler {
	logger, responder := handlerLogging("serviceOrderHandler", unauthorizedPath)

	return serviceOrderHandler{
		responder:   responder,
		logger:      logger,
		orders:      orders,
		inventory:   inventory,
		submissions: submissions,
		archiver:    archiver,
		notifier:    notifier,
		now:         now,
	}
}

// partEdit is one change to the selected parts of a draft order
type partEdit struct {
	Action   string `json:"action"` // add, remove or quantity
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type estimateRequest struct {
	models.ServiceOrder
	Edit *partEdit `json:"edit,omitempty"`
}

type estimateResponse struct {
	SelectedParts []models.OrderPart   `json:"selectedParts"`
	Parts         []costing.PricedPart `json:"parts"`
	Costs         models.CostSummary   `json:"costs"`
}

func applyPartEdit(parts []models.OrderPart, edit *partEdit) ([]models.OrderPart, error) {
	if edit == nil {
		return parts, nil
	}
	if edit.ID == "" {
		return nil, errs.NewMissingRequiredFieldError("edit.id")
	}
	switch edit.Action {
	case "add":
		return costing.AddPart(parts, edit.ID), nil
	case "remove":
		return costing.RemovePart(parts, edit.ID), nil
	case "quantity":
		return costing.SetPartQuantity(parts, edit.ID, edit.Quantity)
	}
	return nil, errs.NewInvalidFieldError("edit.action", "must be add, remove or quantity")
}

// estimateServiceOrder prices a draft order without storing it. An optional
// edit to the selected parts is applied first.
// @Summary Estimate service order
// @Tags Service Orders
// @Accept json
// @Produce json
// @Param order body estimateRequest true "Draft order"
// @Success 200 {object} estimateResponse
// @Router /service-orders/estimate [post]
func (h serviceOrderHandler) estimateServiceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req estimateRequest
		if err := decodeJSON(w, r, "service order", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		parts, err := applyPartEdit(req.SelectedParts, req.Edit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		req.SelectedParts = parts

		catalog, err := h.inventory.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find inventory", "inventory items", err))
			return
		}

		selected := []models.OrderPart(req.SelectedParts)
		if selected == nil {
			selected = []models.OrderPart{}
		}
		h.responder.WriteJSON(w, estimateResponse{
			SelectedParts: selected,
			Parts:         costing.ResolveParts(selected, catalog),
			Costs:         costing.Estimate(&req.ServiceOrder, catalog),
		})
	}
}

// createServiceOrder validates, prices and stores an order, then archives
// the payload and notifies operations staff.
// @Summary Create service order
// @Tags Service Orders
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Submission key"
// @Param order body models.ServiceOrder true "Service order"
// @Success 201 {object} models.ServiceOrder
// @Failure 400 {object} ErrorResponse "Bad Request - Missing required field"
// @Router /service-orders [post]
func (h serviceOrderHandler) createServiceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var order models.ServiceOrder
		if err := decodeBody(body, "service order", &order); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if order.IssuerID == "" {
			order.IssuerID = ctxGetUserID(r.Context())
		}
		if order.Priority == "" {
			order.Priority = "Medium"
		}
		if err := costing.ValidateOrder(&order); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		key := submissionKey(r, "service-order", body)
		created, _, err := services.Submit(r.Context(), h.submissions, "service-order", key, func(ctx context.Context) (*models.ServiceOrder, error) {
			return h.store(ctx, order)
		})
		if err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}

		h.responder.WriteCreated(w, created)
	}
}

func (h serviceOrderHandler) store(ctx context.Context, order models.ServiceOrder) (*models.ServiceOrder, error) {
	catalog, err := h.inventory.FindAll(ctx)
	if err != nil {
		return nil, wrapDatabaseError("find inventory", "inventory items", err)
	}

	order.ID = uuid.NewString()
	order.CreatedAt = h.now().UTC()
	order.Costs = costing.Estimate(&order, catalog)
	if err := h.orders.Add(ctx, &order); err != nil {
		return nil, wrapDatabaseError("create service order", "service order", err)
	}
	metrics.ObserveServiceOrderInvoice(order.Costs.EstimatedInvoice)

	if _, err := h.archiver.Archive(ctx, "service-orders", order.ID, order); err != nil {
		h.logger.Warn().Err(err).Str("orderID", order.ID).Msg("Failed to archive service order")
	}
	if err := h.notifier.NotifyServiceOrder(ctx, &order); err != nil {
		h.logger.Warn().Err(err).Str("orderID", order.ID).Msg("Failed to send service order notification")
	}
	return &order, nil
}

// getAllServiceOrders lists stored orders, newest first
// @Summary List service orders
// @Tags Service Orders
// @Param search query string false "Search text"
// @Param siteId query string false "Site ID or all"
// @Param type query string false "Order type or all"
// @Router /service-orders [get]
func (h serviceOrderHandler) getAllServiceOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := parsePageQuery(r)
		orders, err := h.orders.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service orders", "service orders", err))
			return
		}

		values := make([]models.ServiceOrder, 0, len(orders))
		for _, o := range orders {
			values = append(values, *o)
		}
		filtered := listing.Apply(values, q.search, listing.ServiceOrderFields,
			listing.ServiceOrderFilters(r.URL.Query().Get("siteId"), r.URL.Query().Get("type"))...)
		h.responder.WriteJSON(w, paginate(filtered, q))
	}
}

func (h serviceOrderHandler) getServiceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := urlParam(r, "orderID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		order, err := h.orders.FindByID(r.Context(), orderID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find service order", "service order", err))
			return
		}
		h.responder.WriteJSON(w, order)
	}
}

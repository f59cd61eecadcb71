package api

import (
	"net/http"

	"github.com/rpupo63/solar-ops-backend/database"
	"github.com/rpupo63/solar-ops-backend/listing"
	"github.com/rs/zerolog"
)

type inventoryHandler struct {
	responder Responder
	logger    zerolog.Logger
	inventory database.InventoryStore
}

func newInventoryHandler(inventory database.InventoryStore, unauthorizedPath string) inventoryHandler {
	logger, responder := handlerLogging("inventoryHandler", unauthorizedPath)

	return inventoryHandler{
		responder: responder,
		logger:    logger,
		inventory: inventory,
	}
}

// getInventory lists catalog items
// @Summary List inventory
// @Tags Inventory
// @Param search query string false "Search over name, id, category and specifications"
// @Param category query string false "Category or all"
// @Router /inventory [get]
func (h inventoryHandler) getInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := parsePageQuery(r)
		items, err := h.inventory.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find inventory", "inventory items", err))
			return
		}

		filtered := listing.Apply(items, q.search, listing.InventoryFields,
			listing.InventoryFilters(r.URL.Query().Get("category"))...)
		h.responder.WriteJSON(w, paginate(filtered, q))
	}
}

func (h inventoryHandler) getInventoryItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := urlParam(r, "itemID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.inventory.FindByID(r.Context(), itemID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find inventory item", "inventory item", err))
			return
		}
		h.responder.WriteJSON(w, item)
	}
}

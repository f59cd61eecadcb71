package api

import (
	"github.com/rpupo63/solar-ops-backend/listing"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler       healthHandler
	projectHandler      projectHandler
	projectStateHandler projectStateHandler
	dashboardHandler    dashboardHandler
	siteHandler         siteHandler
	userHandler         userHandler
	serviceOrderHandler serviceOrderHandler
	inventoryHandler    inventoryHandler
	submissionHandler   submissionHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error    string `json:"error" example:"Internal Server Error"`
	Status   string `json:"status" example:"error"`
	Field    string `json:"field,omitempty" example:"title"`
	Details  string `json:"details,omitempty" example:"Additional error details"`
	Cause    string `json:"cause,omitempty" example:"Underlying error cause"`
	Redirect string `json:"redirect,omitempty" example:"/unauthorized"`
}

// listResponse is one page of a searched and filtered collection
type listResponse[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalItems int    `json:"totalItems"`
	TotalPages int    `json:"totalPages"`
	Notice     string `json:"notice,omitempty"`
}

func newListResponse[T any](p listing.Page[T]) listResponse[T] {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// deleteResponse is the body returned after a successful delete
type deleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

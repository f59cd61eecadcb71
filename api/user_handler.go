package api

import (
	"net/http"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/listing"
	"github.com/rpupo63/solar-ops-backend/services"
	"github.com/rs/zerolog"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	remote    *services.Client
}

func newUserHandler(remote *services.Client, unauthorizedPath string) userHandler {
	logger, responder := handlerLogging("userHandler", unauthorizedPath)

	return userHandler{
		responder: responder,
		logger:    logger,
		remote:    remote,
	}
}

// getAllUsers lists accounts from the remote users API
// @Summary List users
// @Tags Users
// @Produce json
// @Param search query string false "Search over name, email, id and company"
// @Param role query string false "Role or all"
// @Param status query string false "Status or all"
// @Success 200 {object} listResponse[models.Account]
// @Router /users [get]
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := parsePageQuery(r)
		accounts, err := h.remote.ListUsers(r.Context())
		notice, written := h.responder.degrade(w, r, err)
		if written {
			return
		}

		filtered := listing.Apply(accounts, q.search, listing.AccountFields,
			listing.AccountFilters(r.URL.Query().Get("role"), r.URL.Query().Get("status"))...)
		page := paginate(filtered, q)
		page.Notice = notice
		h.responder.WriteJSON(w, page)
	}
}

func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := urlParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		account, err := h.remote.GetUser(r.Context(), userID)
		if err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, account)
	}
}

func (h userHandler) getUserByNationalID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nationalID, err := urlParam(r, "nationalID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		account, err := h.remote.GetUserByNationalID(r.Context(), nationalID)
		if err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, account)
	}
}

func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := urlParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var changes map[string]any
		if err := decodeJSON(w, r, "user", &changes); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(changes) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("no changes supplied"))
			return
		}

		account, err := h.remote.UpdateUser(r.Context(), userID, changes)
		if err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, account)
	}
}

func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := urlParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.remote.DeleteUser(r.Context(), userID); err != nil {
			h.responder.WriteRemoteError(w, r, err)
			return
		}
		h.responder.WriteJSON(w, deleteResponse{
			Status:  "success",
			Message: "user deleted successfully",
		})
	}
}

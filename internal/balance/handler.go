package balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"expense-splitter/pkg/response"
)

// Handler handles HTTP requests for the derived balance views
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetGroupBalances handles GET /groups/{id}/balances
// @Summary      Get group balances
// @Description  Get each current member's net position, computed fresh from the group's expenses
// @Tags         balances
// @Produce      json
// @Param        id path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]Balance}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/balances [get]
func (h *Handler) GetGroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := groupIDParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.GroupBalances(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to calculate balances")
		return
	}

	response.JSON(w, http.StatusOK, balances)
}

// GetGroupSettlements handles GET /groups/{id}/settlements
// @Summary      Get group settlements
// @Description  Get a suggested payment plan that would zero every member's balance
// @Tags         balances
// @Produce      json
// @Param        id path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]Settlement}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/settlements [get]
func (h *Handler) GetGroupSettlements(w http.ResponseWriter, r *http.Request) {
	groupID, err := groupIDParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	settlements, err := h.service.GroupSettlements(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to calculate settlements")
		return
	}

	// Keep the empty case a JSON array rather than null
	if settlements == nil {
		settlements = []Settlement{}
	}

	response.JSON(w, http.StatusOK, settlements)
}

// GetGroupSummary handles GET /groups/{id}/summary
// @Summary      Get group spending summary
// @Description  Get total spend plus per-category and per-member paid totals
// @Tags         balances
// @Produce      json
// @Param        id path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=Summary}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/summary [get]
func (h *Handler) GetGroupSummary(w http.ResponseWriter, r *http.Request) {
	groupID, err := groupIDParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	summary, err := h.service.GroupSummary(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to calculate summary")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}

func groupIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

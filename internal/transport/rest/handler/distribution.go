package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest/middleware"
)

// DistributionHandler handles share links, QR codes and invitations
type DistributionHandler struct {
	distributionSvc *service.DistributionService
}

// NewDistributionHandler creates a new distribution handler
func NewDistributionHandler(distributionSvc *service.DistributionService) *DistributionHandler {
	return &DistributionHandler{distributionSvc: distributionSvc}
}

// ShareLinkRequest is the request body for minting a share link
type ShareLinkRequest struct {
	TTLHours int `json:"ttlHours"` // 0 = permanent
}

// InviteRequest is the request body for email/SMS invitations
type InviteRequest struct {
	Recipients []string `json:"recipients"`
}

// CreateShareLink handles POST /v1/surveys/{surveyId}/share
func (h *DistributionHandler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	surveyID := mux.Vars(r)["surveyId"]

	var req ShareLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	link, err := h.distributionSvc.CreateShareLink(r.Context(), accountID, surveyID, time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token":   link.Token,
		"url":     h.distributionSvc.ShareURL(link.Token),
		"qrUrl":   h.distributionSvc.QRCodeURL(link.Token),
		"widget":  h.distributionSvc.WidgetSnippet(link.Token),
		"expires": link.ExpiresAt,
	})
}

// InviteByEmail handles POST /v1/surveys/{surveyId}/invite/email
func (h *DistributionHandler) InviteByEmail(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	surveyID := mux.Vars(r)["surveyId"]

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Recipients) == 0 {
		writeError(w, http.StatusBadRequest, "recipients are required")
		return
	}

	results, err := h.distributionSvc.InviteByEmail(r.Context(), accountID, surveyID, req.Recipients)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// InviteBySMS handles POST /v1/surveys/{surveyId}/invite/sms
func (h *DistributionHandler) InviteBySMS(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	surveyID := mux.Vars(r)["surveyId"]

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Recipients) == 0 {
		writeError(w, http.StatusBadRequest, "recipients are required")
		return
	}

	results, err := h.distributionSvc.InviteBySMS(r.Context(), accountID, surveyID, req.Recipients)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

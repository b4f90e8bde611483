package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"feedbackpro/internal/model"
	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest/middleware"
)

// ResponseHandler handles response intake and listing
type ResponseHandler struct {
	responseSvc     *service.ResponseService
	surveySvc       *service.SurveyService
	distributionSvc *service.DistributionService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService, surveySvc *service.SurveyService, distributionSvc *service.DistributionService) *ResponseHandler {
	return &ResponseHandler{
		responseSvc:     responseSvc,
		surveySvc:       surveySvc,
		distributionSvc: distributionSvc,
	}
}

// SubmitRequest is the request body for a respondent submission
type SubmitRequest struct {
	RespondentEmail string            `json:"respondentEmail"`
	RespondentName  string            `json:"respondentName"`
	Answers         map[string]string `json:"answers"`
}

// GetPublic handles GET /v1/public/{token} — resolves a share token to the
// survey a respondent should see. Question data only; no owner fields.
func (h *ResponseHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	surveyID, err := h.distributionSvc.Resolve(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	survey, err := h.surveySvc.GetByID(r.Context(), surveyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"surveyId":    survey.ID,
		"title":       survey.Title,
		"description": survey.Description,
		"status":      survey.Status,
		"questions":   survey.Questions,
	})
}

// Submit handles POST /v1/public/{token}/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	surveyID, err := h.distributionSvc.Resolve(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response := &model.SurveyResponse{
		SurveyID:        surveyID,
		RespondentEmail: req.RespondentEmail,
		RespondentName:  req.RespondentName,
		Answers:         req.Answers,
	}

	id, err := h.responseSvc.Submit(r.Context(), response)
	if err != nil {
		if strings.HasPrefix(err.Error(), "invalid answer") || strings.HasPrefix(err.Error(), "answer for unknown") {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"responseId": id})
}

// SubmitDirect handles POST /v1/surveys/{surveyId}/responses — intake by
// survey id, used by the embedded widget which already knows the id.
func (h *ResponseHandler) SubmitDirect(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response := &model.SurveyResponse{
		SurveyID:        mux.Vars(r)["surveyId"],
		RespondentEmail: req.RespondentEmail,
		RespondentName:  req.RespondentName,
		Answers:         req.Answers,
	}

	id, err := h.responseSvc.Submit(r.Context(), response)
	if err != nil {
		if strings.HasPrefix(err.Error(), "invalid answer") || strings.HasPrefix(err.Error(), "answer for unknown") {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"responseId": id})
}

// List handles GET /v1/surveys/{surveyId}/responses
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	responses, err := h.responseSvc.ListBySurvey(r.Context(), accountID, mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if responses == nil {
		responses = []*model.SurveyResponse{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}

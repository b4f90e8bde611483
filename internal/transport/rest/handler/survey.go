package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"feedbackpro/internal/model"
	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest/middleware"
)

// SurveyHandler handles survey CRUD and builder endpoints
type SurveyHandler struct {
	surveySvc  *service.SurveyService
	builderSvc *service.BuilderService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService, builderSvc *service.BuilderService) *SurveyHandler {
	return &SurveyHandler{
		surveySvc:  surveySvc,
		builderSvc: builderSvc,
	}
}

// SurveyRequest is the request body for creating or updating a survey
type SurveyRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      model.SurveyStatus `json:"status"`
	Questions   []model.Question   `json:"questions"`
}

// StatusRequest is the request body for a status change
type StatusRequest struct {
	Status model.SurveyStatus `json:"status"`
}

// AddQuestionRequest is the request body for adding a question
type AddQuestionRequest struct {
	Type model.QuestionType `json:"type"`
}

// MoveQuestionRequest is the request body for reordering a question
type MoveQuestionRequest struct {
	Direction service.MoveDirection `json:"direction"`
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if accountID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey := &model.Survey{
		AccountID:   accountID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Questions:   req.Questions,
	}

	id, err := h.surveySvc.Create(r.Context(), survey)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"surveyId": id})
}

// List handles GET /v1/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	surveys, err := h.surveySvc.ListByAccount(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if surveys == nil {
		surveys = []*model.Survey{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	survey, err := h.surveySvc.GetOwned(r.Context(), accountID, mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// Update handles PUT /v1/surveys/{surveyId}
func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey := &model.Survey{
		ID:          mux.Vars(r)["surveyId"],
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Questions:   req.Questions,
	}

	if err := h.surveySvc.Update(r.Context(), accountID, survey); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// SetStatus handles PUT /v1/surveys/{surveyId}/status
func (h *SurveyHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.surveySvc.SetStatus(r.Context(), accountID, mux.Vars(r)["surveyId"], req.Status); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

// Delete handles DELETE /v1/surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if err := h.surveySvc.Delete(r.Context(), accountID, mux.Vars(r)["surveyId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddQuestion handles POST /v1/surveys/{surveyId}/questions
func (h *SurveyHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	surveyID := mux.Vars(r)["surveyId"]

	var req AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !model.KnownQuestionType(req.Type) {
		writeError(w, http.StatusBadRequest, "unknown question type")
		return
	}

	survey, builder, err := h.loadOwnedBuilder(r, accountID, surveyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	question := builder.AddQuestion(req.Type)

	if err := h.builderSvc.Save(r.Context(), survey, builder); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

// RemoveQuestion handles DELETE /v1/surveys/{surveyId}/questions/{questionId}
func (h *SurveyHandler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	vars := mux.Vars(r)

	survey, builder, err := h.loadOwnedBuilder(r, accountID, vars["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !builder.RemoveQuestion(vars["questionId"]) {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}

	if err := h.builderSvc.Save(r.Context(), survey, builder); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": builder.Questions(),
		"selected":  builder.Selected(),
	})
}

// UpdateQuestion handles PATCH /v1/surveys/{surveyId}/questions/{questionId}
func (h *SurveyHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	vars := mux.Vars(r)

	var patch model.QuestionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, builder, err := h.loadOwnedBuilder(r, accountID, vars["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !builder.UpdateQuestion(vars["questionId"], patch) {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}

	if err := h.builderSvc.Save(r.Context(), survey, builder); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": builder.Questions()})
}

// MoveQuestion handles POST /v1/surveys/{surveyId}/questions/{questionId}/move
func (h *SurveyHandler) MoveQuestion(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	vars := mux.Vars(r)

	var req MoveQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, builder, err := h.loadOwnedBuilder(r, accountID, vars["surveyId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// A boundary move is a no-op, not an error; save is skipped since
	// nothing changed
	if builder.MoveQuestion(vars["questionId"], req.Direction) {
		if err := h.builderSvc.Save(r.Context(), survey, builder); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": builder.Questions()})
}

func (h *SurveyHandler) loadOwnedBuilder(r *http.Request, accountID, surveyID string) (*model.Survey, *service.SurveyBuilder, error) {
	survey, builder, err := h.builderSvc.Load(r.Context(), surveyID)
	if err != nil {
		return nil, nil, err
	}
	if survey.AccountID != accountID {
		return nil, nil, service.ErrNotSurveyOwner
	}
	return survey, builder, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case service.ErrSurveyNotFound, service.ErrShareLinkNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case service.ErrNotSurveyOwner:
		writeError(w, http.StatusForbidden, err.Error())
	case service.ErrUnknownStatus, service.ErrEmptySurveyTitle, service.ErrNoAnswers, service.ErrSurveyNotActive:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"mindpath/internal/model"
	"mindpath/internal/service"
)

// AssessmentHandler handles the assessment insight endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// CompleteItemRequest carries the scores computed for a just-completed item
type CompleteItemRequest struct {
	Scores *model.ScoreContext `json:"scores"`
}

// CompleteItem handles POST /v1/assessments/{toolId}/students/{studentId}/items/{itemKey}
// Leaf insight generation runs in the background; the response is an ack.
func (h *AssessmentHandler) CompleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req CompleteItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Scores == nil {
		writeError(w, http.StatusBadRequest, "scores are required")
		return
	}

	err := h.assessmentSvc.CompleteItem(r.Context(), vars["toolId"], vars["studentId"], vars["itemKey"], req.Scores)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "generating"})
}

// SubmitRequest carries the final scores for the whole assessment
type SubmitRequest struct {
	Scores *model.ScoreContext `json:"scores"`
}

// Submit handles POST /v1/assessments/{toolId}/students/{studentId}/submit
// This call blocks through group and overall synthesis and returns the
// finished report.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Scores == nil {
		writeError(w, http.StatusBadRequest, "scores are required")
		return
	}

	report, err := h.assessmentSvc.Submit(r.Context(), vars["toolId"], vars["studentId"], req.Scores)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// CompareRequest carries two scenario score contexts to compare
type CompareRequest struct {
	StudentID string           `json:"studentId"`
	ScenarioA service.Scenario `json:"scenarioA"`
	ScenarioB service.Scenario `json:"scenarioB"`
}

// Compare handles POST /v1/assessments/{toolId}/compare (advisor only)
func (h *AssessmentHandler) Compare(w http.ResponseWriter, r *http.Request) {
	toolID := mux.Vars(r)["toolId"]

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StudentID == "" {
		writeError(w, http.StatusBadRequest, "studentId is required")
		return
	}

	report, err := h.assessmentSvc.Compare(r.Context(), toolID, req.StudentID, req.ScenarioA, req.ScenarioB)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// GetReport handles GET /v1/assessments/{toolId}/students/{studentId}/report
func (h *AssessmentHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	report, err := h.assessmentSvc.GetReport(r.Context(), vars["toolId"], vars["studentId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Restart handles DELETE /v1/assessments/{toolId}/students/{studentId}
func (h *AssessmentHandler) Restart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.assessmentSvc.Restart(r.Context(), vars["toolId"], vars["studentId"]); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexis/internal/api/shared"
	"github.com/phrazzld/lexis/internal/domain"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/redact"
	"github.com/phrazzld/lexis/internal/service/study"
)

// StudyHandler handles the learner-scoped study endpoints.
type StudyHandler struct {
	studyService study.Service
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studyService study.Service, logger *slog.Logger) *StudyHandler {
	if studyService == nil {
		panic("studyService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StudyHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// SubmitReview handles POST /learners/{learnerID}/words/{wordID}/review.
// It applies one grading event and returns the updated record.
func (h *StudyHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, err := getPathUUID(r, "learnerID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	wordID, err := getPathInt64(r, "wordID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	record, err := h.studyService.SubmitRating(r.Context(), learnerID, wordID, domain.Rating(req.Rating))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit review")
		return
	}

	log.Debug("review submitted",
		slog.String("learner_id", learnerID.String()),
		slog.Int64("word_id", wordID),
		slog.String("status", string(record.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, recordToResponse(record))
}

// GetStudyBatch handles GET /learners/{learnerID}/study?limit=N.
func (h *StudyHandler) GetStudyBatch(w http.ResponseWriter, r *http.Request) {
	learnerID, err := getPathUUID(r, "learnerID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	limit, err := getQueryLimit(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	items, err := h.studyService.GetStudyBatch(r.Context(), learnerID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get study batch")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, batchToResponse(items))
}

// GetStats handles GET /learners/{learnerID}/stats.
func (h *StudyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	learnerID, err := getPathUUID(r, "learnerID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	stats, err := h.studyService.GetStats(r.Context(), learnerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get study statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// ResetLearner handles DELETE /learners/{learnerID}/records.
func (h *StudyHandler) ResetLearner(w http.ResponseWriter, r *http.Request) {
	learnerID, err := getPathUUID(r, "learnerID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	n, err := h.studyService.ResetLearner(r.Context(), learnerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reset learner")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ResetResponse{Deleted: n})
}

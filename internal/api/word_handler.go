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

// WordHandler handles vocabulary management endpoints.
type WordHandler struct {
	studyService study.Service
	logger       *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(studyService study.Service, logger *slog.Logger) *WordHandler {
	if studyService == nil {
		panic("studyService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WordHandler{
		studyService: studyService,
		logger:       logger.With(slog.String("component", "word_handler")),
	}
}

// CreateWords handles POST /words. All words are stored or none is.
func (h *WordHandler) CreateWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateWordsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	words := make([]*domain.Word, 0, len(req.Words))
	for _, in := range req.Words {
		word, err := domain.NewWord(in.Term, in.Phonetic, in.Meaning, in.Example, in.Category)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid entity data", err)
			return
		}
		words = append(words, word)
	}

	if err := h.studyService.AddWords(r.Context(), words); err != nil {
		HandleAPIError(w, r, err, "Failed to create words")
		return
	}

	resp := WordsResponse{Words: make([]WordResponse, 0, len(words))}
	for _, word := range words {
		resp.Words = append(resp.Words, wordToResponse(word))
	}

	log.Info("words created", slog.Int("count", len(words)))
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// GetWord handles GET /words/{wordID}.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	wordID, err := getPathInt64(r, "wordID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	word, err := h.studyService.GetWord(r.Context(), wordID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get word")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	deliberationengine "quorum/contexts/governance-core/deliberation-engine"
	"quorum/contexts/governance-core/deliberation-engine/application/commands"
	"quorum/contexts/governance-core/deliberation-engine/application/queries"
	"quorum/contexts/governance-core/deliberation-engine/domain/entities"
	deliberationerrors "quorum/contexts/governance-core/deliberation-engine/domain/errors"
	deliberationhttp "quorum/contexts/governance-core/deliberation-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "quorum/internal/platform/httpserver/docs"
)

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	deliberation deliberationengine.Module
}

func New(
	deliberation deliberationengine.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		deliberation: deliberation,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/governance/v1/deliberations", s.handleSubmitDeliberation)
	s.mux.HandleFunc("GET /api/governance/v1/deliberations", s.handleListDeliberations)
	s.mux.HandleFunc("GET /api/governance/v1/deliberations/queue/summary", s.handleQueueSummary)
	s.mux.HandleFunc("GET /api/governance/v1/deliberations/{item_id}", s.handleGetDeliberation)
	s.mux.HandleFunc("POST /api/governance/v1/deliberations/{item_id}/voting/start", s.handleStartVoting)
	s.mux.HandleFunc("POST /api/governance/v1/deliberations/{item_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /api/governance/v1/deliberations/{item_id}/voting/close", s.handleCloseVoting)
	s.mux.HandleFunc("POST /api/governance/v1/deliberations/{item_id}/minutes", s.handleGenerateMinutes)
	s.mux.HandleFunc("POST /api/governance/v1/deliberations/{item_id}/minutes/publish", s.handlePublishMinutes)
	s.mux.HandleFunc("POST /api/governance/v1/deliberations/{item_id}/execution-tasks", s.handleCreateExecutionTask)
	s.mux.HandleFunc("PATCH /api/governance/v1/deliberations/{item_id}/execution-tasks/{task_id}", s.handleUpdateExecutionTask)
	s.mux.HandleFunc("POST /api/governance/v1/deliberations/{item_id}/return", s.handleReturnForRevision)
	s.mux.HandleFunc("POST /api/governance/v1/deliberations/{item_id}/resubmit", s.handleResubmit)
	s.mux.HandleFunc("POST /api/governance/v1/deliberations/{item_id}/withdraw", s.handleWithdraw)
	s.mux.HandleFunc("POST /api/governance/v1/deliberations/{item_id}/evidence", s.handleAddEvidence)
}

func (s *Server) handleSubmitDeliberation(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}

	var req deliberationhttp.SubmitDeliberationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDeliberationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.deliberation.Handler.SubmitDeliberationHandler(
		r.Context(),
		actor,
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListDeliberations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.deliberation.Handler.ListDeliberationsHandler(r.Context(), queries.ListQuery{
		Status:      entities.DeliberationStatus(query.Get("status")),
		CommitteeID: query.Get("committee_id"),
		SearchText:  query.Get("search"),
		KPIBucket:   query.Get("kpi"),
	})
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQueueSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.deliberation.Handler.QueueSummaryHandler(r.Context())
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDeliberation(w http.ResponseWriter, r *http.Request) {
	resp, err := s.deliberation.Handler.GetDeliberationHandler(r.Context(), r.PathValue("item_id"))
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartVoting(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	resp, err := s.deliberation.Handler.StartVotingHandler(r.Context(), r.PathValue("item_id"), actor)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	var req deliberationhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDeliberationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.deliberation.Handler.CastVoteHandler(r.Context(), r.PathValue("item_id"), actor, req)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseVoting(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	resp, err := s.deliberation.Handler.CloseVotingHandler(r.Context(), r.PathValue("item_id"), actor)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerateMinutes(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	resp, err := s.deliberation.Handler.GenerateMinutesHandler(r.Context(), r.PathValue("item_id"), actor)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublishMinutes(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	resp, err := s.deliberation.Handler.PublishMinutesHandler(r.Context(), r.PathValue("item_id"), actor)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateExecutionTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	var req deliberationhttp.CreateExecutionTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDeliberationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.deliberation.Handler.CreateExecutionTaskHandler(r.Context(), r.PathValue("item_id"), actor, req)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateExecutionTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	var req deliberationhttp.UpdateExecutionTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDeliberationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.deliberation.Handler.UpdateExecutionTaskHandler(
		r.Context(),
		r.PathValue("item_id"),
		r.PathValue("task_id"),
		actor,
		req,
	)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReturnForRevision(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	req := deliberationhttp.ReturnForRevisionRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDeliberationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}
	resp, err := s.deliberation.Handler.ReturnForRevisionHandler(r.Context(), r.PathValue("item_id"), actor, req)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResubmit(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	resp, err := s.deliberation.Handler.ResubmitHandler(r.Context(), r.PathValue("item_id"), actor)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	req := deliberationhttp.WithdrawRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDeliberationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}
	resp, err := s.deliberation.Handler.WithdrawHandler(r.Context(), r.PathValue("item_id"), actor, req)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddEvidence(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r)
	if !ok {
		return
	}
	var req deliberationhttp.AddEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDeliberationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.deliberation.Handler.AddEvidenceHandler(r.Context(), r.PathValue("item_id"), actor, req)
	if err != nil {
		writeDeliberationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeDeliberationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deliberationerrors.ErrItemNotFound):
		writeDeliberationError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, deliberationerrors.ErrStageNotFound):
		writeDeliberationError(w, http.StatusNotFound, "stage_not_found", err.Error())
	case errors.Is(err, deliberationerrors.ErrTaskNotFound):
		writeDeliberationError(w, http.StatusNotFound, "task_not_found", err.Error())
	case errors.Is(err, deliberationerrors.ErrCommitteeNotFound):
		writeDeliberationError(w, http.StatusNotFound, "committee_not_found", err.Error())
	case errors.Is(err, deliberationerrors.ErrValidation):
		writeDeliberationError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, deliberationerrors.ErrIdempotencyKeyRequired):
		writeDeliberationError(w, http.StatusBadRequest, "idempotency_key_required", err.Error())
	case errors.Is(err, deliberationerrors.ErrInvalidTransition):
		writeDeliberationError(w, http.StatusUnprocessableEntity, "invalid_transition", err.Error())
	case errors.Is(err, deliberationerrors.ErrItemImmutable):
		writeDeliberationError(w, http.StatusUnprocessableEntity, "item_immutable", err.Error())
	case errors.Is(err, deliberationerrors.ErrIdempotencyConflict):
		writeDeliberationError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	case errors.Is(err, deliberationerrors.ErrConflict):
		writeDeliberationError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeDeliberationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDeliberationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, deliberationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveActor(w http.ResponseWriter, r *http.Request) (commands.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeDeliberationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return commands.Actor{}, false
	}
	return commands.Actor{
		UserID:   userID,
		UserName: strings.TrimSpace(r.Header.Get("X-User-Name")),
	}, true
}

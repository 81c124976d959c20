package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/services"
)

type MatchHandler struct {
	responder
	bracketService services.BracketService
	matchService   services.MatchService
	validator      *Validator
}

func NewMatchHandler(bs services.BracketService, ms services.MatchService, v *Validator, logger *slog.Logger) *MatchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchHandler{
		responder:      responder{logger: logger},
		bracketService: bs,
		matchService:   ms,
		validator:      v,
	}
}

type reportMatchRequest struct {
	Score1   *int    `json:"score1" validate:"omitempty,gte=0"`
	Score2   *int    `json:"score2" validate:"omitempty,gte=0"`
	WinnerID *string `json:"winner_id" validate:"omitempty,min=1"`
}

type editScoresRequest struct {
	Score1 *int `json:"score1" validate:"required,gte=0"`
	Score2 *int `json:"score2" validate:"required,gte=0"`
}

type overrideMatchRequest struct {
	WinnerID string `json:"winner_id" validate:"required"`
	Score1   *int   `json:"score1" validate:"omitempty,gte=0"`
	Score2   *int   `json:"score2" validate:"omitempty,gte=0"`
}

// matchPath reads both ids of a match route, answering 400 itself when one
// is missing.
func (h *MatchHandler) matchPath(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return "", "", false
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return "", "", false
	}
	return tournamentID, matchID, true
}

// GetMatch godoc
// @Summary Get a match
// @Tags matches
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param matchID path string true "Match ID, e.g. W-R1-M0"
// @Success 200 {object} map[string]interface{} "Match"
// @Failure 404 {object} map[string]string "Tournament, bracket or match not found"
// @Router /tournaments/{tournamentID}/matches/{matchID} [get]
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := h.matchPath(w, r)
	if !ok {
		return
	}

	match, err := h.bracketService.GetMatch(r.Context(), tournamentID, matchID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ReportMatch godoc
// @Summary Report a match result
// @Tags matches
// @Description Send both scores, a winner_id, or both. Equal scores give the win to team1.
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param matchID path string true "Match ID"
// @Param body body reportMatchRequest true "Result"
// @Success 200 {object} map[string]interface{} "Completed match"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tournament, bracket or match not found"
// @Failure 409 {object} map[string]string "Match already completed or tournament settled"
// @Failure 422 {object} map[string]interface{} "Result rejected"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/matches/{matchID}/report [post]
func (h *MatchHandler) ReportMatch(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := h.matchPath(w, r)
	if !ok {
		return
	}

	var input reportMatchRequest
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(input); err != nil {
		h.failedValidationResponse(w, r, FormatValidationError(err))
		return
	}

	match, err := h.matchService.Report(r.Context(), tournamentID, matchID, brackets.Result{
		Score1:   input.Score1,
		Score2:   input.Score2,
		WinnerID: input.WinnerID,
	})
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// EditMatchScores godoc
// @Summary Correct the scores of a completed match
// @Tags matches
// @Description The new scores must produce the same winner.
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param matchID path string true "Match ID"
// @Param body body editScoresRequest true "Scores"
// @Success 200 {object} map[string]interface{} "Updated match"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Match not completed"
// @Failure 422 {object} map[string]interface{} "Winner would change"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/matches/{matchID}/scores [put]
func (h *MatchHandler) EditMatchScores(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := h.matchPath(w, r)
	if !ok {
		return
	}

	var input editScoresRequest
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(input); err != nil {
		h.failedValidationResponse(w, r, FormatValidationError(err))
		return
	}

	match, err := h.matchService.EditScores(r.Context(), tournamentID, matchID, *input.Score1, *input.Score2)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// OverrideMatch godoc
// @Summary Replace the winner of a completed match
// @Tags matches
// @Description Single elimination winners-bracket matches only. Fails once the next match is decided.
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param matchID path string true "Match ID"
// @Param body body overrideMatchRequest true "New winner"
// @Success 200 {object} map[string]interface{} "Updated match"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Downstream already decided"
// @Failure 422 {object} map[string]interface{} "Override rejected"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/matches/{matchID}/override [post]
func (h *MatchHandler) OverrideMatch(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := h.matchPath(w, r)
	if !ok {
		return
	}

	var input overrideMatchRequest
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(input); err != nil {
		h.failedValidationResponse(w, r, FormatValidationError(err))
		return
	}

	match, err := h.matchService.Override(r.Context(), tournamentID, matchID, input.WinnerID, input.Score1, input.Score2)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ResetMatch godoc
// @Summary Reset a completed match to pending
// @Tags matches
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param matchID path string true "Match ID"
// @Success 200 {object} map[string]interface{} "Reset match"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Match not completed or downstream already decided"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/matches/{matchID}/reset [post]
func (h *MatchHandler) ResetMatch(w http.ResponseWriter, r *http.Request) {
	tournamentID, matchID, ok := h.matchPath(w, r)
	if !ok {
		return
	}

	match, err := h.matchService.Reset(r.Context(), tournamentID, matchID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

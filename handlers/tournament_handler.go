package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/services"
)

type TournamentHandler struct {
	responder
	bracketService services.BracketService
	payoutService  services.PayoutService
	validator      *Validator
}

func NewTournamentHandler(bs services.BracketService, ps services.PayoutService, v *Validator, logger *slog.Logger) *TournamentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TournamentHandler{
		responder:      responder{logger: logger},
		bracketService: bs,
		payoutService:  ps,
		validator:      v,
	}
}

type createTournamentRequest struct {
	ID        string               `json:"id" validate:"omitempty,max=64"`
	Name      string               `json:"name" validate:"required,max=255"`
	Format    models.BracketFormat `json:"format" validate:"bracket_format"`
	PrizePool models.PrizePool     `json:"prize_pool"`
}

type startBracketRequest struct {
	Format         models.BracketFormat `json:"format" validate:"bracket_format"`
	ParticipantIDs []string             `json:"participant_ids" validate:"required,min=2,unique,dive,required"`
}

// CreateTournament godoc
// @Summary Create a tournament
// @Tags tournaments
// @Description prize_pool accepts a number or a currency string such as "$1,000".
// @Accept json
// @Produce json
// @Param body body createTournamentRequest true "Tournament"
// @Success 201 {object} map[string]interface{} "Created tournament"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Tournament id already taken"
// @Failure 422 {object} map[string]interface{} "Validation error"
// @Security BearerAuth
// @Router /tournaments [post]
func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var input createTournamentRequest
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(input); err != nil {
		h.failedValidationResponse(w, r, FormatValidationError(err))
		return
	}

	tournament, err := h.bracketService.CreateTournament(r.Context(), services.CreateTournamentInput{
		ID:        input.ID,
		Name:      input.Name,
		Format:    input.Format,
		PrizePool: input.PrizePool,
	})
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// GetTournament godoc
// @Summary Get a tournament
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{} "Tournament"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.bracketService.GetTournament(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// StartBracket godoc
// @Summary Generate the bracket and start the tournament
// @Tags brackets
// @Description Participants are drawn at random. Repeating the call returns the stored bracket.
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param body body startBracketRequest true "Format and participants"
// @Success 200 {object} map[string]interface{} "Bracket"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Failure 409 {object} map[string]string "Tournament already completed"
// @Failure 422 {object} map[string]interface{} "Invalid participants or format"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/bracket [post]
func (h *TournamentHandler) StartBracket(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	var input startBracketRequest
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(input); err != nil {
		h.failedValidationResponse(w, r, FormatValidationError(err))
		return
	}

	bracket, err := h.bracketService.StartBracket(r.Context(), id, input.Format, input.ParticipantIDs)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// GetBracket godoc
// @Summary Get the bracket of a tournament
// @Tags brackets
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{} "Bracket"
// @Failure 404 {object} map[string]string "Tournament or bracket not found"
// @Router /tournaments/{tournamentID}/bracket [get]
func (h *TournamentHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.GetBracket(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// EndTournament godoc
// @Summary Settle a finished tournament
// @Tags tournaments
// @Description Distributes the prize pool 60/25/15 and credits the placed teams once. Repeated calls return the stored payout.
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{} "Payout"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Failure 409 {object} map[string]string "Bracket missing or final not played"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/end [post]
func (h *TournamentHandler) EndTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	payout, err := h.payoutService.EndTournament(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payout": payout}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

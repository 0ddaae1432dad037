package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dosada05/bracket-system/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

// GenerateHandler godoc
// @Summary Generate the tournament bracket
// @Description Builds a bracket from the registered teams, shuffled at random. With
// @Description "shuffle": false teams are seeded in registration order. Teams facing a bye advance at once.
// @Tags brackets
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param input body services.GenerateInput false "Generation options"
// @Success 201 {object} map[string]services.BracketView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Tournament already finished"
// @Failure 422 {object} map[string]string "Team count does not fit the bracket type"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/bracket [post]
func (h *BracketHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateInput
	if err := readOptionalJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.Generate(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler godoc
// @Summary Get the current bracket
// @Tags brackets
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]services.BracketView
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/bracket [get]
func (h *BracketHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.Get(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ImageHandler godoc
// @Summary Render the bracket as PNG
// @Tags brackets
// @Produce png
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string "Bracket type has no image"
// @Router /tournaments/{tournamentID}/bracket/image [get]
func (h *BracketHandler) ImageHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	img, err := h.bracketService.Image(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

// ReportResultHandler godoc
// @Summary Record a match winner
// @Tags brackets
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param input body services.ReportResultInput true "Result"
// @Success 200 {object} map[string]services.BracketView
// @Failure 400 {object} map[string]string "Unknown match or winner"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "Match decided, not ready, or concurrent update"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/bracket/results [post]
func (h *BracketHandler) ReportResultHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ReportResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.ReportResult(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type simulateInput struct {
	Seed *uint64 `json:"seed,omitempty"`
}

// SimulateHandler godoc
// @Summary Play out the bracket at random without saving it
// @Tags brackets
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]services.BracketView
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/bracket/simulate [post]
func (h *BracketHandler) SimulateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input simulateInput
	if err := readOptionalJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.Simulate(r.Context(), tournamentID, input.Seed)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

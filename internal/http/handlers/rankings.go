package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/mauv0809/club-ladder/internal/report"
)

type recordGameResponse struct {
	Message string `json:"message"`
	*processor.RecordMatchOutput
}

func RecordGameHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input processor.RecordMatchInput
		if !decodeJSON(w, r, &input) {
			return
		}
		isDryRun := IsDryRunFromContext(r)
		out, err := proc.RecordMatchResult(r.Context(), input, isDryRun)
		if err != nil {
			respondError(w, err)
			return
		}
		if isDryRun {
			respondJSON(w, http.StatusOK, recordGameResponse{Message: "[Dry Run] Game result is valid.", RecordMatchOutput: out})
			return
		}
		respondJSON(w, http.StatusCreated, recordGameResponse{Message: "Game result recorded successfully.", RecordMatchOutput: out})
	}
}

type groupRankingResponse struct {
	Group    ranking.Group    `json:"group"`
	Rankings []ranking.Player `json:"rankings"`
}

func GroupRankingHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standing, err := proc.GroupRanking(r.Context(), chi.URLParam(r, "groupID"), IsDryRunFromContext(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, groupRankingResponse{Group: standing.Group, Rankings: standing.Players})
	}
}

type ladderEntry struct {
	GroupID    string           `json:"group_id"`
	GroupName  string           `json:"group_name"`
	GroupLevel int              `json:"group_level"`
	Players    []ranking.Player `json:"players"`
}

func AllRankingsHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := proc.Ladder(r.Context(), IsDryRunFromContext(r))
		if err != nil {
			respondError(w, err)
			return
		}
		data := make([]ladderEntry, 0, len(standings))
		for _, s := range standings {
			data = append(data, ladderEntry{
				GroupID:    s.Group.ID,
				GroupName:  s.Group.Name,
				GroupLevel: s.Group.Level,
				Players:    s.Players,
			})
		}
		respondJSON(w, http.StatusOK, struct {
			Data []ladderEntry `json:"data"`
		}{data})
	}
}

func GroupChartHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standing, err := proc.GroupRanking(r.Context(), chi.URLParam(r, "groupID"), true)
		if err != nil {
			respondError(w, err)
			return
		}
		png, err := report.GroupChartPNG(*standing)
		if errors.Is(err, report.ErrNoPlayers) {
			respondJSON(w, http.StatusNotFound, messageResponse{Message: "Group has no players."})
			return
		}
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(png); err != nil {
			log.Error("Failed to write chart", "error", err)
		}
	}
}

func ExportLadderHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := proc.Ladder(r.Context(), true)
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="ladder.xlsx"`)
		if err := report.WriteLadderXLSX(w, standings); err != nil {
			log.Error("Failed to export ladder", "error", err)
		}
	}
}

type transitionsResponse struct {
	Message            string                      `json:"message"`
	TransitionsSummary []*ranking.TransitionReport `json:"transitions_summary"`
}

func ProcessTransitionsHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := proc.ProcessTransitions(r.Context(), IsDryRunFromContext(r))
		if reports == nil {
			reports = []*ranking.TransitionReport{}
		}
		switch {
		case errors.Is(err, ranking.ErrTransitionInProgress):
			respondJSON(w, http.StatusConflict, messageResponse{Message: "A ladder transition run is already in progress."})
		case err != nil:
			log.Error("Ladder transitions failed", "error", err)
			respondJSON(w, http.StatusInternalServerError, transitionsResponse{
				Message:            "Group transitions stopped: " + err.Error(),
				TransitionsSummary: reports,
			})
		default:
			respondJSON(w, http.StatusOK, transitionsResponse{
				Message:            "Group transitions processed for all groups.",
				TransitionsSummary: reports,
			})
		}
	}
}

func ProcessGroupTransitionHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := proc.ProcessGroupTransition(r.Context(), chi.URLParam(r, "groupID"), IsDryRunFromContext(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, struct {
			Message    string                    `json:"message"`
			Transition *ranking.TransitionReport `json:"transition"`
		}{"Group transition processed.", report})
	}
}

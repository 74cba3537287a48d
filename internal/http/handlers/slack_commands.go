package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LadderCommandHandler serves the /ladder Slack command. Without text it
// shows the whole ladder; otherwise the text names a group by name or level.
func LadderCommandHandler(proc *processor.Processor, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		log.Info("Received ladder command", "query", query)

		var (
			msg any
			err error
		)
		if query == "" {
			standings, lerr := proc.Ladder(r.Context(), true)
			if lerr != nil {
				http.Error(w, "Failed to get ladder", http.StatusInternalServerError)
				log.Error("Failed to get ladder", "error", lerr)
				return
			}
			msg, err = notifier.FormatLadderResponse(standings)
		} else {
			group, ferr := proc.FindGroup(r.Context(), query)
			switch {
			case errors.Is(ferr, club.ErrGroupNotFound):
				log.Warn("Could not find group", "query", query)
				msg, err = notifier.FormatGroupNotFoundResponse(query)
			case ferr != nil:
				http.Error(w, "Failed to find group", http.StatusInternalServerError)
				log.Error("Failed to find group", "error", ferr)
				return
			default:
				standing, gerr := proc.GroupRanking(r.Context(), group.ID, true)
				if gerr != nil {
					http.Error(w, "Failed to get group ranking", http.StatusInternalServerError)
					log.Error("Failed to get group ranking", "error", gerr)
					return
				}
				msg, err = notifier.FormatGroupResponse(*standing)
			}
		}
		if err != nil {
			http.Error(w, "Failed to format ladder", http.StatusInternalServerError)
			log.Error("Failed to format ladder", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

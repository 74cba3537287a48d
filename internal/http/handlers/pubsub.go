package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/pubsub"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

// RunTransitionsHandler handles Pub/Sub push deliveries that request a
// ladder run. A run that is already in progress is acknowledged so the
// message is not redelivered.
func RunTransitionsHandler(proc *processor.Processor, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received run transitions message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		var req pubsub.RunTransitionsRequest
		if len(rawData) > 0 {
			if err := pubsubClient.ProcessMessage(rawData, &req); err != nil {
				log.Error("Failed to decode run transitions request", "error", err)
				http.Error(w, "Invalid message data", http.StatusBadRequest)
				return
			}
		}

		isDryRun := IsDryRunFromContext(r) || req.DryRun
		_, err = proc.ProcessTransitions(r.Context(), isDryRun)
		if errors.Is(err, ranking.ErrTransitionInProgress) {
			log.Warn("Ladder run already in progress, acknowledging message")
		} else if err != nil {
			log.Error("Failed to process transitions", "error", err)
			http.Error(w, "Failed to process transitions", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

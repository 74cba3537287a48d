package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/processor"
)

func FetchMatchesHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting match fetch...")
		isDryRun := IsDryRunFromContext(r)

		daysStr := r.URL.Query().Get("days")
		daysToSubtract := 0
		if daysStr != "" {
			parsedDays, err := strconv.Atoi(daysStr)
			if err == nil && parsedDays > 0 {
				daysToSubtract = parsedDays
				log.Info("Fetching historical matches", "days", daysToSubtract)
			} else {
				log.Warn("Invalid 'days' parameter provided. Defaulting to 0.", "days_param", daysStr)
			}
		}

		now := time.Now().UTC()
		since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysToSubtract)

		summary, err := proc.ImportPlaytomicMatches(r.Context(), since, isDryRun)
		if err != nil {
			log.Error("Error importing Playtomic matches", "error", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}

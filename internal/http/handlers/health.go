package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ladder/internal/club"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func ClearStoreHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would clear entire store")
			fmt.Fprint(w, "Store not cleared (dry run).")
			return
		}
		log.Info("Received request to clear entire store")
		if err := store.Clear(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/ranking"
)

func ListGroupsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := store.ListGroups(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		if groups == nil {
			groups = []ranking.Group{}
		}
		respondJSON(w, http.StatusOK, groups)
	}
}

func CreateGroupHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			Name  string `json:"name"`
			Level int    `json:"level"`
		}
		if !decodeJSON(w, r, &input) {
			return
		}
		input.Name = strings.TrimSpace(input.Name)
		verr := &processor.ValidationError{Fields: map[string][]string{}}
		if input.Name == "" {
			verr.Fields["name"] = []string{"The name field is required."}
		}
		if input.Level < 1 {
			verr.Fields["level"] = []string{"The level must be at least 1."}
		}
		if len(verr.Fields) > 0 {
			respondError(w, verr)
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would create group", "name", input.Name, "level", input.Level)
			respondJSON(w, http.StatusOK, ranking.Group{Name: input.Name, Level: input.Level})
			return
		}

		group, err := store.AddGroup(r.Context(), input.Name, input.Level)
		if err != nil {
			respondError(w, err)
			return
		}
		log.Info("Created group", "groupID", group.ID, "name", group.Name, "level", group.Level)
		respondJSON(w, http.StatusCreated, group)
	}
}

func ListPlayersHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := store.ListPlayers(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		if players == nil {
			players = []ranking.Player{}
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func RegisterPlayerHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			Name    string `json:"name"`
			GroupID string `json:"group_id"`
		}
		if !decodeJSON(w, r, &input) {
			return
		}
		input.Name = strings.TrimSpace(input.Name)
		verr := &processor.ValidationError{Fields: map[string][]string{}}
		if input.Name == "" {
			verr.Fields["name"] = []string{"The name field is required."}
		}
		if input.GroupID == "" {
			verr.Fields["group_id"] = []string{"The group id field is required."}
		}
		if len(verr.Fields) > 0 {
			respondError(w, verr)
			return
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would register player", "name", input.Name, "groupID", input.GroupID)
			respondJSON(w, http.StatusOK, ranking.Player{Name: input.Name, GroupID: input.GroupID})
			return
		}

		player, err := store.AddPlayer(r.Context(), input.Name, input.GroupID)
		if err != nil {
			respondError(w, err)
			return
		}
		log.Info("Registered player", "playerID", player.ID, "name", player.Name, "groupID", player.GroupID)
		respondJSON(w, http.StatusCreated, player)
	}
}

func GetPlayerHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := store.GetPlayer(r.Context(), chi.URLParam(r, "playerID"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, player)
	}
}

func PlayerHistoryHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")
		if _, err := store.GetPlayer(r.Context(), playerID); err != nil {
			respondError(w, err)
			return
		}
		history, err := store.PlayerHistory(r.Context(), playerID)
		if err != nil {
			respondError(w, err)
			return
		}
		if history == nil {
			history = []club.HistoryEntry{}
		}
		respondJSON(w, http.StatusOK, history)
	}
}

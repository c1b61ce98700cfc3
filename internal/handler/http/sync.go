// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/utils"
	"github.com/savichev/memodeck/models"
)

func (h *Handler) processPush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.processPush").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var syncRequest models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&syncRequest); err != nil {
		log.Err(err).Str("func", "*Handler.processPush").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.SyncService.ProcessPush(ctx, userID, syncRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.processPush").Msg("error processing push")
		http.Error(w, "error processing push", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) getChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getChanges").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			log.Err(err).Str("func", "*Handler.getChanges").Msg("invalid since parameter")
			http.Error(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
		since = &parsed
	}

	changes, err := h.services.SyncService.ChangesSince(ctx, userID, since)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getChanges").Msg("error getting changes")
		http.Error(w, "error getting changes", statusFromError(err))
		return
	}

	utils.WriteJSON(w, changes, http.StatusOK)
}

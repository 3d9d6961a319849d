package guildhttp

import (
	"net/http"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
)

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := a.service.GetGuild(r.Context(), c.GuildID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to load guild")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

func (a *API) handleListMembers(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := a.service.ListMembers(r.Context(), c.GuildID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to load members")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

func (a *API) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := a.service.ListCharacters(r.Context(), c.GuildID, c.UserID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to load characters")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result.Success)
}

type createCharacterRequest struct {
	Name      string               `json:"name"`
	Class     guilddomain.WowClass `json:"class"`
	IsMain    bool                 `json:"is_main"`
	GearScore int                  `json:"gear_score"`
}

func (a *API) handleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	c, ok := caller(w, r)
	if !ok {
		return
	}

	var req createCharacterRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}

	character := &guilddomain.Character{
		GuildID:   c.GuildID,
		UserID:    c.UserID,
		Name:      req.Name,
		Class:     req.Class,
		IsMain:    req.IsMain,
		GearScore: req.GearScore,
	}
	result, err := a.service.CreateCharacter(r.Context(), character)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to create character")
		return
	}
	if result.Failure != nil {
		writeFailure(w, result.Failure.(error))
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, result.Success)
}

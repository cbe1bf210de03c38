package controllers

import (
	"net/http"

	"github.com/dookiees/bakery-backend/api/responses"
	"github.com/dookiees/bakery-backend/api/validators"
	"github.com/dookiees/bakery-backend/internal/settings"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/logger"
)

type updateSettingsPayload struct {
	SiteName     *string `json:"site_name"`
	LineOA       *string `json:"line_oa"`
	Announcement *string `json:"announcement"`
}

// AdminGetSettings serves the current site settings.
func AdminGetSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		current, err := svc.Get(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"settings": current})
	}
}

// AdminUpdateSettings merges the provided fields into the settings row.
func AdminUpdateSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var payload updateSettingsPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.Update(ctx, settings.UpdateInput{
			SiteName:     payload.SiteName,
			LineOA:       payload.LineOA,
			Announcement: payload.Announcement,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"settings": updated})
	}
}

package controllers

import (
	"net/http"

	"github.com/dookiees/bakery-backend/api/responses"
	"github.com/dookiees/bakery-backend/internal/reviews"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/logger"
)

// ListReviews serves customer reviews for the storefront.
func ListReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		items := svc.ListReviews(ctx)
		responses.WriteJSON(w, http.StatusOK, map[string]any{"data": items})
	}
}

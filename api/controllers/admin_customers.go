package controllers

import (
	"net/http"

	"github.com/dookiees/bakery-backend/api/responses"
	"github.com/dookiees/bakery-backend/api/validators"
	"github.com/dookiees/bakery-backend/internal/customers"
	pkgerrors "github.com/dookiees/bakery-backend/pkg/errors"
	"github.com/dookiees/bakery-backend/pkg/logger"
)

// AdminListCustomers serves the paginated admin customer list.
func AdminListCustomers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.ListCustomers(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"customers":  result.Customers,
			"pagination": result.Meta,
		})
	}
}

package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/internal/utils"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

func (h *Handler) syncCatalog(catalog store.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		query, err := parseSyncQuery(r.URL.Query())
		if err != nil {
			log.Err(err).Str("func", "*Handler.syncCatalog").Str("catalog", string(catalog)).Msg("invalid sync query")
			utils.WriteError(w, err.Error(), statusFromError(err))
			return
		}

		page, err := h.services.CatalogService.GetSyncPage(ctx, catalog, query)
		if err != nil {
			log.Err(err).Str("func", "*Handler.syncCatalog").Str("catalog", string(catalog)).Msg("error getting sync page")
			utils.WriteError(w, err.Error(), statusFromError(err))
			return
		}

		utils.WriteJSON(w, page, http.StatusOK)
	}
}

// parseSyncQuery reads min_version, page and limit. Absent parameters take
// their defaults; anything present must be an integer.
func parseSyncQuery(values url.Values) (models.SyncQuery, error) {
	query := models.SyncQuery{
		MinVersion: models.DefaultSyncMinVersion,
		Page:       models.DefaultSyncPage,
		Limit:      models.DefaultSyncLimit,
	}

	if v := values.Get("min_version"); v != "" {
		minVersion, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return query, fmt.Errorf("%w: min_version=%q", ErrInvalidQueryParam, v)
		}
		query.MinVersion = minVersion
	}

	for name, dst := range map[string]*int{"page": &query.Page, "limit": &query.Limit} {
		v := values.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return query, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, v)
		}
		*dst = n
	}

	return query, nil
}

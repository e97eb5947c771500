package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/ana-muslim-newtab/internal/service"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidQueryParam:           http.StatusBadRequest,
	service.ErrInvalidSyncQuery:    http.StatusBadRequest,
	service.ErrUnknownCatalog:      http.StatusNotFound,
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	store.ErrUnknownCatalog:   http.StatusNotFound,
	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

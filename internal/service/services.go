package service

import (
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

type Services struct {
	CatalogService CatalogService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, buildInfo models.AppBuildInfo, logger *logger.Logger) *Services {
	return &Services{
		CatalogService: NewCatalogService(storages.CatalogRepository, logger),
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}
}

package contexts

import (
	"beacon/api/models"
	"beacon/api/services"
	datasetsService "beacon/api/services/datasets"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/labstack/echo"
)

type (
	// "Helper" Context to pass into routes that need
	//  an elasticsearch client and other variables
	BeaconContext struct {
		echo.Context
		Es7Client       *es7.Client
		Config          *models.Config
		Beacon          *models.BeaconMetadata
		AuthzService    *services.AuthzService
		DatasetsService *datasetsService.DatasetsService
	}
)

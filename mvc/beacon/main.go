package beacon

import (
	"fmt"
	"net/http"
	"time"

	"beacon/api/contexts"
	authz "beacon/api/models/authorization"
	serviceInfo "beacon/api/models/constants/service-info"
	"beacon/api/models/dtos"
	queryService "beacon/api/services/query"

	"github.com/labstack/echo"
	"golang.org/x/sync/errgroup"
)

func GetBeaconInfo(c echo.Context) error {
	fmt.Printf("[%s] - GetBeaconInfo hit!\n", time.Now())
	bc := c.(*contexts.BeaconContext)

	infoResponse := dtos.BeaconInfoResponse{
		Id:             bc.Beacon.Id,
		Name:           bc.Beacon.Name,
		ApiVersion:     string(serviceInfo.SERVICE_API_VERSION),
		Description:    bc.Beacon.Description,
		Organisation:   bc.Beacon.Organisation,
		AlternativeUrl: bc.Beacon.AlternativeUrl,
		WelcomeUrl:     bc.Beacon.WelcomeUrl,
		CreateDateTime: bc.Beacon.CreateDateTime,
		Version:        fmt.Sprintf("v%s", serviceInfo.SERVICE_VERSION),

		SampleAlleleRequests: []dtos.AlleleRequest{},

		Datasets: make([]dtos.BeaconInfoDataset, 0),
	}

	// list datasets with sample counts substituted
	// for the sample names themselves
	for _, dataset := range bc.DatasetsService.GetAllDatasets() {
		infoResponse.Datasets = append(infoResponse.Datasets, dtos.BeaconInfoDataset{
			Id:           dataset.Id,
			Name:         dataset.Name,
			AssemblyId:   dataset.AssemblyId,
			AuthLevel:    dataset.AuthLevel,
			ConsentCode:  dataset.ConsentCode,
			SampleCount:  len(dataset.Samples),
			VariantCount: dataset.VariantCount,
			AlleleCount:  dataset.AlleleCount,
		})
	}

	return c.JSON(http.StatusOK, infoResponse)
}

/*
	Query handles 'GET|POST /query' : normalize the raw request,
	then validate it and resolve the caller's authorization
	concurrently (they share no state and either may fail
	alone), and only dispatch to the variant store once both
	have succeeded.
*/
func Query(c echo.Context) error {
	fmt.Printf("[%s] - Query hit!\n", time.Now())
	bc := c.(*contexts.BeaconContext)

	alleleReq := queryService.NormalizeAlleleRequest(c)

	var (
		validated     *queryService.ValidatedQuery
		validationErr *dtos.BeaconError

		authContext *authz.AuthContext
		authErr     *dtos.BeaconError
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		validated, validationErr = queryService.ValidateAlleleRequest(
			alleleReq, bc.DatasetsService, bc.Config.Api.LenientSvEnd)
		return nil
	})
	g.Go(func() error {
		authContext, authErr = bc.AuthzService.ResolveAuthLevels(
			c.Request().Header.Get("Authorization"))
		return nil
	})
	g.Wait()

	if validationErr != nil {
		return respondWithError(c, bc, alleleReq, validationErr)
	}
	if authErr != nil {
		return respondWithError(c, bc, alleleReq, authErr)
	}

	exists, datasetResponses, dispatchErr := queryService.Dispatch(
		bc.Config, bc.Es7Client, c.Request().Context(),
		validated, authContext, bc.DatasetsService)
	if dispatchErr != nil {
		return respondWithError(c, bc, alleleReq, dispatchErr)
	}

	return c.JSON(http.StatusOK, dtos.BeaconAlleleResponse{
		BeaconId:               bc.Beacon.Id,
		ApiVersion:             string(serviceInfo.SERVICE_API_VERSION),
		Exists:                 &exists,
		Error:                  nil,
		AlleleRequest:          alleleReq,
		DatasetAlleleResponses: datasetResponses,
	})
}

// every error response echoes the pre-validation request
// parameters for client debugging; the error's code becomes
// the HTTP status
func respondWithError(c echo.Context, bc *contexts.BeaconContext,
	alleleReq *dtos.AlleleRequest, beaconErr *dtos.BeaconError) error {

	return c.JSON(beaconErr.ErrorCode, dtos.BeaconAlleleResponse{
		BeaconId:               bc.Beacon.Id,
		ApiVersion:             string(serviceInfo.SERVICE_API_VERSION),
		Exists:                 nil,
		Error:                  beaconErr,
		AlleleRequest:          alleleReq,
		DatasetAlleleResponses: []dtos.DatasetAlleleResponse{},
	})
}

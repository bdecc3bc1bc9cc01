package query

import (
	"context"
	"fmt"

	authz "beacon/api/models/authorization"
	c "beacon/api/models/constants"
	"beacon/api/models/constants/granularity"
	"beacon/api/models/dtos"
	e "beacon/api/models/dtos/errors"
	"beacon/api/models/indexes"
	esRepo "beacon/api/repositories/elasticsearch"
	datasetsService "beacon/api/services/datasets"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/mitchellh/mapstructure"

	"beacon/api/models"
)

/*
	Dispatch executes a validated query against the variant
	store, applies the caller's authorization as a post-filter
	over candidate datasets, and assembles per-dataset responses
	according to the requested granularity.
*/
func Dispatch(cfg *models.Config, es *es7.Client, ctx context.Context,
	validated *ValidatedQuery, authContext *authz.AuthContext,
	datasets *datasetsService.DatasetsService) (bool, []dtos.DatasetAlleleResponse, *dtos.BeaconError) {

	docs, searchErr := esRepo.FindVariants(cfg, es, ctx, validated.BuildEsFilter())
	if searchErr != nil {
		fmt.Printf("Error dispatching variant query: %s\n", searchErr)
		return false, nil, e.InternalServerError("Something went wrong.. Please contact the administrator!")
	}

	hits, decodeErr := decodeVariantHits(docs)
	if decodeErr != nil {
		fmt.Printf("Error decoding variant search response: %s\n", decodeErr)
		return false, nil, e.InternalServerError("Something went wrong.. Please contact the administrator!")
	}

	// no matching variants at all: nothing to enumerate
	if len(hits) == 0 {
		return false, []dtos.DatasetAlleleResponse{}, nil
	}

	allowSet := BuildAllowSet(authContext, datasets)
	filteredHits := FilterHitsByAllowSet(hits, allowSet)

	exists, datasetResponses := AssembleDatasetResponses(
		filteredHits, validated.Granularity, validated.DatasetIds, datasets)

	return exists, datasetResponses, nil
}

func decodeVariantHits(docs map[string]interface{}) ([]indexes.VariantHit, error) {
	hitsWrapper, ok := docs["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("variant search response carries no 'hits'")
	}

	docsHits := hitsWrapper["hits"]
	allDocHits := []map[string]interface{}{}
	mapstructure.Decode(docsHits, &allDocHits)

	hits := make([]indexes.VariantHit, 0, len(allDocHits))
	for _, r := range allDocHits {
		source, sourceOk := r["_source"].(map[string]interface{})
		if !sourceOk {
			continue
		}

		// cast map[string]interface{} to struct
		var hit indexes.VariantHit
		mapstructure.Decode(source, &hit)

		hits = append(hits, hit)
	}

	return hits, nil
}

/*
	BuildAllowSet computes the datasets this caller may see:
	every public-tier dataset, the per-dataset grants from the
	caller's passports, and the whole controlled tier when the
	caller is a bona-fide researcher.
*/
func BuildAllowSet(authContext *authz.AuthContext,
	datasets *datasetsService.DatasetsService) map[string]bool {

	allowSet := map[string]bool{}

	for _, id := range datasets.GetPublicDatasetIds() {
		allowSet[id] = true
	}

	for id := range authContext.RegisteredDatasetIds {
		allowSet[id] = true
	}

	if authContext.BonaFide {
		for _, id := range datasets.GetControlledDatasetIds() {
			allowSet[id] = true
		}
	}

	return allowSet
}

// FilterHitsByAllowSet discards matched variants whose
// datasets are all outside the caller's allow-set
func FilterHitsByAllowSet(hits []indexes.VariantHit, allowSet map[string]bool) []indexes.VariantHit {
	filtered := make([]indexes.VariantHit, 0, len(hits))
	for _, hit := range hits {
		for datasetId := range hit.DatasetIds {
			if allowSet[datasetId] {
				filtered = append(filtered, hit)
				break
			}
		}
	}
	return filtered
}

/*
	AssembleDatasetResponses builds the per-dataset existence
	and count entries. With granularity NONE datasets are never
	enumerated; otherwise the working set is the explicitly
	requested ids (unknown ids skipped) or every known dataset.
*/
func AssembleDatasetResponses(filteredHits []indexes.VariantHit,
	responseGranularity c.ResponseGranularity, requestedDatasetIds []string,
	datasets *datasetsService.DatasetsService) (bool, []dtos.DatasetAlleleResponse) {

	if responseGranularity == granularity.None {
		return len(filteredHits) > 0, []dtos.DatasetAlleleResponse{}
	}

	workingSetIds := requestedDatasetIds
	if len(workingSetIds) == 0 {
		workingSetIds = datasets.GetAllDatasetIds()
	}

	exists := false
	datasetResponses := make([]dtos.DatasetAlleleResponse, 0, len(workingSetIds))

	for _, datasetId := range workingSetIds {
		dataset, found := datasets.GetDataset(datasetId)
		if !found {
			// unknown requested ids are skipped, not an error
			continue
		}

		datasetResponse := dtos.DatasetAlleleResponse{
			DatasetId: datasetId,
			Info: dtos.DatasetResponseInfo{
				AccessType: dataset.AuthLevel,
			},
		}

		for _, hit := range filteredHits {
			calls, carriesDataset := hit.DatasetIds[datasetId]
			if !carriesDataset {
				continue
			}

			datasetResponse.Exists = true
			datasetResponse.VariantCount++
			datasetResponse.SampleCount += len(calls.Samples)
			for _, sampleCall := range calls.Samples {
				datasetResponse.CallCount += sampleCall.AlleleCount
			}
		}

		if datasetResponse.Exists {
			exists = true
		}

		switch responseGranularity {
		case granularity.All:
			datasetResponses = append(datasetResponses, datasetResponse)
		case granularity.Hit:
			if datasetResponse.Exists {
				datasetResponses = append(datasetResponses, datasetResponse)
			}
		case granularity.Miss:
			if !datasetResponse.Exists {
				datasetResponses = append(datasetResponses, datasetResponse)
			}
		}
	}

	return exists, datasetResponses
}

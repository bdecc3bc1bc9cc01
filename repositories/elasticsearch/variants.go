package elasticsearch

import (
	"context"

	"beacon/api/models"

	es7 "github.com/elastic/go-elasticsearch/v7"
)

/*
	Query-path access to the 'variants' index.

	Only 'datasetIds' and 'callCount' are ever projected:
	full variant documents never leave the datastore on the
	query path.
*/
func FindVariants(cfg *models.Config, es *es7.Client, ctx context.Context,
	filter map[string]interface{}) (map[string]interface{}, error) {

	query := map[string]interface{}{
		"query": filter,
		"_source": map[string]interface{}{
			"includes": []string{"datasetIds", "callCount"},
		},
		// a beacon only ever answers yes/no plus per-dataset counts;
		// cap the working set rather than paginating
		"size": 10000,
	}

	return executeSearch(cfg, es, ctx, variantsIndex, query)
}

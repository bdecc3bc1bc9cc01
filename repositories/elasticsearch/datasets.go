package elasticsearch

import (
	"context"

	"beacon/api/models"

	es7 "github.com/elastic/go-elasticsearch/v7"
)

func GetAllDatasets(cfg *models.Config, es *es7.Client, ctx context.Context) (map[string]interface{}, error) {

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match_all": map[string]interface{}{},
		},
		"size": 10000,
	}

	return executeSearch(cfg, es, ctx, datasetsIndex, query)
}

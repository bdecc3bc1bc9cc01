package datasets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"beacon/api/models"
	c "beacon/api/models/constants"
	authLevel "beacon/api/models/constants/auth-level"
	"beacon/api/models/indexes"
	esRepo "beacon/api/repositories/elasticsearch"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/go-co-op/gocron"
	"github.com/mitchellh/mapstructure"
)

/*
	In-memory catalog of the read-mostly dataset collection.

	The catalog backs the validator's build-mismatch check, the
	dispatcher's access-tier allow-set and the beacon info
	endpoint, and is refreshed on a schedule rather than
	re-queried per request.
*/
type (
	DatasetsService struct {
		Initialized bool
		Es7Client   *es7.Client
		Config      *models.Config

		catalogMux sync.RWMutex
		catalog    map[string]indexes.Dataset
	}
)

func NewDatasetsService(es *es7.Client, cfg *models.Config) *DatasetsService {
	ds := &DatasetsService{
		Initialized: false,
		Es7Client:   es,
		Config:      cfg,
		catalog:     map[string]indexes.Dataset{},
	}

	ds.Init()

	return ds
}

func (ds *DatasetsService) Init() {
	// initialization if necessary
	if !ds.Initialized {
		// initial load, then spin up a go routine that
		// periodically re-pulls the dataset documents so
		// catalog reads never block on elasticsearch
		ds.Refresh()

		go func() {
			s := gocron.NewScheduler(time.UTC)

			refreshMinutes := ds.Config.Api.DatasetRefreshMinutes
			if refreshMinutes <= 0 {
				refreshMinutes = 5
			}

			s.Every(refreshMinutes).Minutes().Do(func() {
				fmt.Printf("[%s] - Running dataset catalog refresh..\n", time.Now())
				ds.Refresh()
			})

			// starts the scheduler in blocking mode, which blocks
			// the current execution path
			s.StartBlocking()
		}()

		ds.Initialized = true
		fmt.Println("Datasets Service Initialized ..")
	}
}

func (ds *DatasetsService) Refresh() {
	docs, docsErr := esRepo.GetAllDatasets(ds.Config, ds.Es7Client, context.Background())
	if docsErr != nil {
		fmt.Printf("[%s] - Error refreshing dataset catalog : %v..\n", time.Now(), docsErr)
		return
	}

	// gather data from "hits"
	docsHits := docs["hits"].(map[string]interface{})["hits"]
	allDocHits := []map[string]interface{}{}
	mapstructure.Decode(docsHits, &allDocHits)

	freshCatalog := map[string]indexes.Dataset{}
	for _, r := range allDocHits {
		source := r["_source"].(map[string]interface{})
		docId := r["_id"].(string)

		// cast map[string]interface{} to struct
		var resultingDataset indexes.Dataset
		mapstructure.Decode(source, &resultingDataset)
		resultingDataset.Id = docId

		freshCatalog[docId] = resultingDataset
	}

	ds.SetCatalog(freshCatalog)
}

// SetCatalog swaps the whole catalog at once (also used by tests
// to seed datasets without an elasticsearch instance)
func (ds *DatasetsService) SetCatalog(catalog map[string]indexes.Dataset) {
	ds.catalogMux.Lock()
	defer ds.catalogMux.Unlock()

	ds.catalog = catalog
}

func (ds *DatasetsService) GetDataset(id string) (indexes.Dataset, bool) {
	ds.catalogMux.RLock()
	defer ds.catalogMux.RUnlock()

	dataset, found := ds.catalog[id]
	return dataset, found
}

func (ds *DatasetsService) GetAllDatasets() []indexes.Dataset {
	ds.catalogMux.RLock()
	defer ds.catalogMux.RUnlock()

	all := make([]indexes.Dataset, 0, len(ds.catalog))
	for _, dataset := range ds.catalog {
		all = append(all, dataset)
	}
	return all
}

func (ds *DatasetsService) GetAllDatasetIds() []string {
	ds.catalogMux.RLock()
	defer ds.catalogMux.RUnlock()

	ids := make([]string, 0, len(ds.catalog))
	for id := range ds.catalog {
		ids = append(ids, id)
	}
	return ids
}

// GetDatasetIdsByAuthLevel returns the ids of every dataset
// carrying the given access tier
func (ds *DatasetsService) GetDatasetIdsByAuthLevel(level c.AuthLevel) []string {
	ds.catalogMux.RLock()
	defer ds.catalogMux.RUnlock()

	ids := make([]string, 0)
	for id, dataset := range ds.catalog {
		if dataset.AuthLevel == level {
			ids = append(ids, id)
		}
	}
	return ids
}

func (ds *DatasetsService) GetPublicDatasetIds() []string {
	return ds.GetDatasetIdsByAuthLevel(authLevel.Public)
}

func (ds *DatasetsService) GetControlledDatasetIds() []string {
	return ds.GetDatasetIdsByAuthLevel(authLevel.Controlled)
}

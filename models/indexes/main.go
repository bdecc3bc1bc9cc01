package indexes

import (
	c "beacon/api/models/constants"
	"time"
)

/*
	Variant document as stored in the 'variants' index.

	Coordinates are 0-based and half-open; the four
	min/max bounds equal start/end for precise calls.
*/
type Variant struct {
	Id string `json:"_id" mapstructure:"_id"`

	ReferenceName string `json:"referenceName" mapstructure:"referenceName"`
	Start         int    `json:"start" mapstructure:"start"`
	End           int    `json:"end" mapstructure:"end"`
	StartMin      int    `json:"startMin" mapstructure:"startMin"`
	StartMax      int    `json:"startMax" mapstructure:"startMax"`
	EndMin        int    `json:"endMin" mapstructure:"endMin"`
	EndMax        int    `json:"endMax" mapstructure:"endMax"`

	ReferenceBases string        `json:"referenceBases" mapstructure:"referenceBases"`
	AlternateBases string        `json:"alternateBases" mapstructure:"alternateBases"`
	VariantType    c.VariantType `json:"variantType,omitempty" mapstructure:"variantType"`

	AssemblyId c.AssemblyId `json:"assemblyId" mapstructure:"assemblyId"`

	// datasetId -> per-sample calls for that dataset
	DatasetIds map[string]DatasetCalls `json:"datasetIds" mapstructure:"datasetIds"`

	// cumulative allele_count across all datasets/samples
	CallCount int `json:"callCount" mapstructure:"callCount"`

	CreatedTime time.Time `json:"createdTime" mapstructure:"createdTime"`
}

type DatasetCalls struct {
	Samples map[string]SampleCall `json:"samples" mapstructure:"samples"`
}

type SampleCall struct {
	AlleleCount int `json:"allele_count" mapstructure:"allele_count"`
}

/*
	Projection of a variant hit on the query path:
	only datasetIds and callCount are ever fetched
*/
type VariantHit struct {
	DatasetIds map[string]DatasetCalls `json:"datasetIds" mapstructure:"datasetIds"`
	CallCount  int                     `json:"callCount" mapstructure:"callCount"`
}

// Dataset document as stored in the 'datasets' index
type Dataset struct {
	Id           string       `json:"_id" mapstructure:"_id"`
	Name         string       `json:"name" mapstructure:"name"`
	AssemblyId   c.AssemblyId `json:"assembly_id" mapstructure:"assembly_id"`
	AuthLevel    c.AuthLevel  `json:"authlevel" mapstructure:"authlevel"`
	ConsentCode  string       `json:"consent_code" mapstructure:"consent_code"`
	Samples      []string     `json:"samples" mapstructure:"samples"`
	VariantCount int          `json:"variant_count" mapstructure:"variant_count"`
	AlleleCount  int          `json:"allele_count" mapstructure:"allele_count"`
	Updated      time.Time    `json:"updated" mapstructure:"updated"`
}

var MAPPING_FIELDS_KEYWORD_IG256 = map[string]interface{}{
	"keyword": map[string]interface{}{
		"type":         "keyword",
		"ignore_above": 256,
	},
}
var MAPPING_TEXT = map[string]interface{}{"type": "text", "fields": MAPPING_FIELDS_KEYWORD_IG256}
var MAPPING_LONG = map[string]interface{}{"type": "long"}
var MAPPING_DATE = map[string]interface{}{"type": "date"}

var VARIANT_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"referenceName":  MAPPING_TEXT,
		"start":          MAPPING_LONG,
		"end":            MAPPING_LONG,
		"startMin":       MAPPING_LONG,
		"startMax":       MAPPING_LONG,
		"endMin":         MAPPING_LONG,
		"endMax":         MAPPING_LONG,
		"referenceBases": MAPPING_TEXT,
		"alternateBases": MAPPING_TEXT,
		"variantType":    MAPPING_TEXT,
		"assemblyId":     MAPPING_TEXT,
		"callCount":      MAPPING_LONG,
		"createdTime":    MAPPING_DATE,
		// datasetIds is left dynamically-mapped: its keys are dataset ids
	},
}

var DATASET_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"name":          MAPPING_TEXT,
		"assembly_id":   MAPPING_TEXT,
		"authlevel":     MAPPING_TEXT,
		"consent_code":  MAPPING_TEXT,
		"samples":       MAPPING_TEXT,
		"variant_count": MAPPING_LONG,
		"allele_count":  MAPPING_LONG,
		"updated":       MAPPING_DATE,
	},
}

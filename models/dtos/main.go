package dtos

import (
	"beacon/api/models"
	"beacon/api/models/constants"
)

/*
	Canonical allele request: the parameter map after
	normalization, before validation. Echoed back to the
	caller on every response ('allelRequest' spelling is
	the protocol's, not a typo to fix).
*/
type AlleleRequest struct {
	ReferenceName  string `json:"referenceName,omitempty"`
	ReferenceBases string `json:"referenceBases,omitempty"`
	AlternateBases string `json:"alternateBases,omitempty"`
	VariantType    string `json:"variantType,omitempty"`
	AssemblyId     string `json:"assemblyId,omitempty"`

	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	StartMin string `json:"startMin,omitempty"`
	StartMax string `json:"startMax,omitempty"`
	EndMin   string `json:"endMin,omitempty"`
	EndMax   string `json:"endMax,omitempty"`

	DatasetIds              []string                      `json:"datasetIds,omitempty"`
	IncludeDatasetResponses constants.ResponseGranularity `json:"includeDatasetResponses,omitempty"`
}

type BeaconError struct {
	ErrorCode    int    `json:"errorCode"`
	ErrorName    string `json:"errorName"`
	ErrorMessage string `json:"errorMessage"`
}

type BeaconAlleleResponse struct {
	BeaconId   string `json:"beaconId"`
	ApiVersion string `json:"apiVersion"`

	Exists *bool        `json:"exists"`
	Error  *BeaconError `json:"error"`

	AlleleRequest          *AlleleRequest          `json:"allelRequest"`
	DatasetAlleleResponses []DatasetAlleleResponse `json:"datasetAlleleResponses"`
}

type DatasetAlleleResponse struct {
	DatasetId string `json:"datasetId"`
	Exists    bool   `json:"exists"`

	SampleCount  int `json:"sampleCount"`
	CallCount    int `json:"callCount"`
	VariantCount int `json:"variantCount"`

	Info DatasetResponseInfo `json:"info"`
}

type DatasetResponseInfo struct {
	AccessType constants.AuthLevel `json:"accessType"`
}

type BeaconInfoResponse struct {
	Id             string                    `json:"id"`
	Name           string                    `json:"name"`
	ApiVersion     string                    `json:"apiVersion"`
	Description    string                    `json:"description"`
	Organisation   models.BeaconOrganisation `json:"organisation"`
	AlternativeUrl string                    `json:"alternativeUrl"`
	WelcomeUrl     string                    `json:"welcomeUrl"`
	CreateDateTime string                    `json:"createDateTime"`
	Version        string                    `json:"version"`

	SampleAlleleRequests []AlleleRequest `json:"sampleAlleleRequests"`

	Datasets []BeaconInfoDataset `json:"datasets"`
}

/*
	Dataset as listed by the beacon info endpoint:
	sample names are replaced by their count
*/
type BeaconInfoDataset struct {
	Id           string              `json:"id"`
	Name         string              `json:"name"`
	AssemblyId   constants.AssemblyId `json:"assemblyId"`
	AuthLevel    constants.AuthLevel  `json:"authlevel"`
	ConsentCode  string              `json:"consentCode"`
	SampleCount  int                 `json:"sampleCount"`
	VariantCount int                 `json:"variantCount"`
	AlleleCount  int                 `json:"alleleCount"`
}

package models

import (
	"os"

	yaml "gopkg.in/yaml.v2"
)

/*
	Static beacon identity metadata, loaded once
	at process start from a yaml file and treated
	as immutable thereafter
*/
type BeaconMetadata struct {
	Id             string               `yaml:"id" json:"id"`
	Name           string               `yaml:"name" json:"name"`
	Description    string               `yaml:"description" json:"description"`
	Organisation   BeaconOrganisation   `yaml:"organisation" json:"organisation"`
	AlternativeUrl string               `yaml:"alternativeUrl" json:"alternativeUrl"`
	WelcomeUrl     string               `yaml:"welcomeUrl" json:"welcomeUrl"`
	CreateDateTime string               `yaml:"createDateTime" json:"createDateTime"`
	Info           []map[string]string  `yaml:"info" json:"info"`
}

type BeaconOrganisation struct {
	Id          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Address     string `yaml:"address" json:"address"`
	ContactUrl  string `yaml:"contactUrl" json:"contactUrl"`
	LogoUrl     string `yaml:"logoUrl" json:"logoUrl"`
	WelcomeUrl  string `yaml:"welcomeUrl" json:"welcomeUrl"`
}

func LoadBeaconMetadata(yamlPath string) (*BeaconMetadata, error) {
	f, err := os.Open(yamlPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var meta BeaconMetadata
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

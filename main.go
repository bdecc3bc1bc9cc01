package main

import (
	"beacon/api/contexts"
	bam "beacon/api/middleware"
	"beacon/api/models"
	serviceInfo "beacon/api/models/constants/service-info"
	"beacon/api/mvc/beacon"
	"beacon/api/services"
	datasetsService "beacon/api/services/datasets"
	"beacon/api/utils"

	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	fmt.Printf("Using : \n"+

		"\tDebug : %t \n\n"+

		"\tBeacon Yaml Path : %s \n"+
		"\tLenient SV End : %t\n"+
		"\tDataset Refresh Interval (minutes) : %d\n"+
		"\tElasticsearch Url : %s \n"+
		"\tElasticsearch Username : %s\n\n"+

		"\tOIDC Public JWKS Url : %s\n"+
		"\tOIDC Userinfo Url : %s\n"+
		"\tTrusted Issuers : %s\n"+
		"\tVerify Audience : %t\n\n"+

		"Running on Port : %s\n",

		cfg.Debug,
		cfg.Api.BeaconYamlPath,
		cfg.Api.LenientSvEnd,
		cfg.Api.DatasetRefreshMinutes,
		cfg.Elasticsearch.Url, cfg.Elasticsearch.Username,
		cfg.OAuth2.JwksUrl,
		cfg.OAuth2.UserinfoUrl,
		strings.Split(cfg.OAuth2.IssuersCommaSep, ","),
		cfg.OAuth2.VerifyAud,
		cfg.Api.Port)
	// --

	// Beacon identity metadata
	meta, err := models.LoadBeaconMetadata(cfg.Api.BeaconYamlPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	// Instantiate Server
	e := echo.New()

	// Service Connections:
	// -- Elasticsearch
	es := utils.CreateEsConnection(&cfg)

	// Service Singletons
	az := services.NewAuthzService(&cfg)
	dz := datasetsService.NewDatasetsService(es, &cfg)

	// Configure Server
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
	}))

	// -- Override handlers with "custom Beacon" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.BeaconContext{
				Context:         c,
				Es7Client:       es,
				Config:          &cfg,
				Beacon:          meta,
				AuthzService:    az,
				DatasetsService: dz,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root (beacon info)
	e.GET("/", beacon.GetBeaconInfo)

	// -- Service Info
	e.GET("/service-info", func(c echo.Context) error {
		// Spec: https://github.com/ga4gh-discovery/ga4gh-service-info
		return c.JSON(http.StatusOK, map[string]interface{}{
			"id":          serviceInfo.SERVICE_ID,
			"name":        serviceInfo.SERVICE_NAME,
			"type":        serviceInfo.SERVICE_TYPE,
			"description": serviceInfo.SERVICE_DESCRIPTION,
			"organization": map[string]string{
				"name": meta.Organisation.Name,
				"url":  meta.Organisation.WelcomeUrl,
			},
			"contactUrl": serviceInfo.SERVICE_CONTACT,
			"version":    serviceInfo.SERVICE_VERSION,
		})
	})

	// -- Allele Queries
	e.GET("/query", beacon.Query,
		// middleware
		bam.ValidateOptionalReferenceNameAttribute,
		bam.ValidateOptionalGranularityAttribute)
	e.POST("/query", beacon.Query,
		// middleware
		bam.ValidateOptionalReferenceNameAttribute,
		bam.ValidateOptionalGranularityAttribute)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}

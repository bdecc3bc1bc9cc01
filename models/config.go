package models

type Config struct {
	Debug bool `yaml:"debug" envconfig:"BEACON_DEBUG"`

	Api struct {
		Port           string `yaml:"port" envconfig:"BEACON_API_INTERNAL_PORT"`
		Url            string `yaml:"url" envconfig:"BEACON_API_URL"`
		BeaconYamlPath string `yaml:"beaconYamlPath" envconfig:"BEACON_CONFIG_YAML_PATH"`

		// strict by default: a structural-variant query providing
		// 'start' without 'end' is rejected with NO_SV_END_PARAM
		LenientSvEnd bool `yaml:"lenientSvEnd" envconfig:"BEACON_LENIENT_SV_END"`

		DatasetRefreshMinutes int `yaml:"datasetRefreshMinutes" envconfig:"BEACON_DATASET_REFRESH_MINUTES" default:"5"`
	} `yaml:"api"`

	Elasticsearch struct {
		Url      string `yaml:"url" envconfig:"BEACON_ES_URL"`
		Username string `yaml:"username" envconfig:"BEACON_ES_USERNAME"`
		Password string `yaml:"password" envconfig:"BEACON_ES_PASSWORD"`
	} `yaml:"elasticsearch"`

	OAuth2 struct {
		JwksUrl           string `yaml:"jwksUrl" envconfig:"BEACON_OAUTH2_JWKS_URL"`
		IssuersCommaSep   string `yaml:"issuers" envconfig:"BEACON_OAUTH2_ISSUERS"`
		AudiencesCommaSep string `yaml:"audiences" envconfig:"BEACON_OAUTH2_AUDIENCES"`
		VerifyAud         bool   `yaml:"verifyAud" envconfig:"BEACON_OAUTH2_VERIFY_AUD"`
		UserinfoUrl       string `yaml:"userinfoUrl" envconfig:"BEACON_OAUTH2_USERINFO_URL"`
		BonaFideTermsUrl  string `yaml:"bonaFideTermsUrl" envconfig:"BEACON_OAUTH2_BONA_FIDE_URL"`
	} `yaml:"oauth2"`
}

package query

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	assemblyId "beacon/api/models/constants/assembly-id"
	authLevel "beacon/api/models/constants/auth-level"
	"beacon/api/models/constants/granularity"
	"beacon/api/models/dtos"
	"beacon/api/models/indexes"
	datasetsService "beacon/api/services/datasets"
	"beacon/api/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

func setUpEcho(method string, target string, body string, contentType string) echo.Context {
	e := echo.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func seedDatasets() *datasetsService.DatasetsService {
	ds := &datasetsService.DatasetsService{}
	ds.SetCatalog(map[string]indexes.Dataset{
		"public-37": {
			Id:         "public-37",
			Name:       "Public GRCh37 Dataset",
			AssemblyId: assemblyId.GRCh37,
			AuthLevel:  authLevel.Public,
		},
		"controlled-38": {
			Id:         "controlled-38",
			Name:       "Controlled GRCh38 Dataset",
			AssemblyId: assemblyId.GRCh38,
			AuthLevel:  authLevel.Controlled,
		},
	})
	return ds
}

func TestNormalizeAlleleRequest(t *testing.T) {
	t.Run("should gather recognized get parameters and repeated datasetIds", func(t *testing.T) {
		c := setUpEcho(http.MethodGet,
			"/query?referenceName=1&start=100&end=101&referenceBases=A&alternateBases=T"+
				"&assemblyId=GRCh37&datasetIds=public-37&datasetIds=controlled-38"+
				"&includeDatasetResponses=HIT&bogusParam=shouldBeIgnored",
			"", "")

		alleleReq := NormalizeAlleleRequest(c)

		assert.Equal(t, "1", alleleReq.ReferenceName)
		assert.Equal(t, "100", alleleReq.Start)
		assert.Equal(t, "101", alleleReq.End)
		assert.Equal(t, "A", alleleReq.ReferenceBases)
		assert.Equal(t, "T", alleleReq.AlternateBases)
		assert.Equal(t, "GRCh37", alleleReq.AssemblyId)
		assert.Equal(t, []string{"public-37", "controlled-38"}, alleleReq.DatasetIds)
		assert.Equal(t, granularity.Hit, alleleReq.IncludeDatasetResponses)
	})

	t.Run("should default granularity to NONE when absent", func(t *testing.T) {
		c := setUpEcho(http.MethodGet, "/query?referenceName=1", "", "")

		alleleReq := NormalizeAlleleRequest(c)

		assert.Equal(t, granularity.None, alleleReq.IncludeDatasetResponses)
	})

	t.Run("should treat empty-string parameters as absent", func(t *testing.T) {
		c := setUpEcho(http.MethodGet, "/query?referenceName=1&start=&assemblyId=", "", "")

		alleleReq := NormalizeAlleleRequest(c)

		assert.Equal(t, "1", alleleReq.ReferenceName)
		assert.Empty(t, alleleReq.Start)
		assert.Empty(t, alleleReq.AssemblyId)
	})

	t.Run("should parse a json post body with numeric coordinates", func(t *testing.T) {
		c := setUpEcho(http.MethodPost, "/query",
			`{"referenceName": "2", "start": 12345, "end": 12346,
			  "referenceBases": "C", "alternateBases": "G", "assemblyId": "GRCh38",
			  "datasetIds": ["controlled-38"], "includeDatasetResponses": "ALL"}`,
			echo.MIMEApplicationJSON)

		alleleReq := NormalizeAlleleRequest(c)

		assert.Equal(t, "2", alleleReq.ReferenceName)
		assert.Equal(t, "12345", alleleReq.Start)
		assert.Equal(t, "12346", alleleReq.End)
		assert.Equal(t, "GRCh38", alleleReq.AssemblyId)
		assert.Equal(t, []string{"controlled-38"}, alleleReq.DatasetIds)
		assert.Equal(t, granularity.All, alleleReq.IncludeDatasetResponses)
	})

	t.Run("should gather post form fields", func(t *testing.T) {
		c := setUpEcho(http.MethodPost, "/query",
			"referenceName=X&startMin=1&startMax=10&endMin=20&endMax=30&referenceBases=N&variantType=DUP&assemblyId=GRCh37",
			echo.MIMEApplicationForm)

		alleleReq := NormalizeAlleleRequest(c)

		assert.Equal(t, "X", alleleReq.ReferenceName)
		assert.Equal(t, "1", alleleReq.StartMin)
		assert.Equal(t, "30", alleleReq.EndMax)
		assert.Equal(t, "DUP", alleleReq.VariantType)
	})
}

func TestValidateAlleleRequest(t *testing.T) {
	datasets := seedDatasets()

	validBase := func() *dtos.AlleleRequest {
		return &dtos.AlleleRequest{
			ReferenceName:           "1",
			ReferenceBases:          "A",
			AlternateBases:          "T",
			AssemblyId:              "GRCh37",
			Start:                   "100",
			End:                     "101",
			IncludeDatasetResponses: granularity.None,
		}
	}

	t.Run("should reject missing mandatory parameters first", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.AssemblyId = ""
		// also drop the secondary field: the mandatory error
		// must still win
		alleleReq.AlternateBases = ""

		validated, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.Nil(t, validated)
		assert.NotNil(t, beaconErr)
		assert.Equal(t, 400, beaconErr.ErrorCode)
		assert.Equal(t, "NO_MANDATORY_PARAMS", beaconErr.ErrorName)
	})

	t.Run("should reject assembly conflicts with requested datasets", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.DatasetIds = []string{"controlled-38"}

		_, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.NotNil(t, beaconErr)
		assert.Equal(t, "BUILD_MISMATCH", beaconErr.ErrorName)
	})

	t.Run("should ignore unknown dataset ids in the assembly check", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.DatasetIds = []string{uuid.New().String(), "public-37"}

		validated, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.Nil(t, beaconErr)
		assert.NotNil(t, validated)
	})

	t.Run("should require a secondary parameter", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.AlternateBases = ""

		_, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.NotNil(t, beaconErr)
		assert.Equal(t, "NO_SECONDARY_PARAMS", beaconErr.ErrorName)
	})

	t.Run("should require some position parameter", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.Start = ""
		alleleReq.End = ""

		_, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.NotNil(t, beaconErr)
		assert.Equal(t, "NO_POSITION_PARAMS", beaconErr.ErrorName)
	})

	t.Run("should reject non-numeric coordinates", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.Start = "onehundred"

		_, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.NotNil(t, beaconErr)
		assert.Equal(t, "INVALID_COORDINATES", beaconErr.ErrorName)
	})

	t.Run("should take the identity fast path when all six fields are present", func(t *testing.T) {
		alleleReq := validBase()

		validated, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.Nil(t, beaconErr)
		assert.Equal(t, ExactId, validated.Shape)
		assert.Equal(t,
			utils.VariantFingerprint("1", 100, 101, "A", "T", "GRCh37"),
			validated.Fingerprint)
	})

	t.Run("should fall back to an exact range without an end position", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.End = ""

		validated, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.Nil(t, beaconErr)
		assert.Equal(t, ExactRange, validated.Shape)
		assert.False(t, validated.HasEnd)
	})

	t.Run("should require an end position for structural variants", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.AlternateBases = ""
		alleleReq.VariantType = "DUP"
		alleleReq.End = ""

		_, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.NotNil(t, beaconErr)
		assert.Equal(t, "NO_SV_END_PARAM", beaconErr.ErrorName)
	})

	t.Run("should allow an end-less structural variant in lenient mode", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.AlternateBases = ""
		alleleReq.VariantType = "DUP"
		alleleReq.End = ""

		validated, beaconErr := ValidateAlleleRequest(alleleReq, datasets, true)

		assert.Nil(t, beaconErr)
		assert.Equal(t, SvBreakend, validated.Shape)
	})

	t.Run("should accept a partial fuzzy range", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.Start = ""
		alleleReq.End = ""
		alleleReq.StartMin = "90"
		alleleReq.StartMax = "110"

		validated, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.Nil(t, beaconErr)
		assert.Equal(t, FuzzyRange, validated.Shape)
		assert.True(t, validated.StartMin.Set)
		assert.Equal(t, 90, validated.StartMin.Value)
		assert.False(t, validated.EndMin.Set)
	})

	t.Run("should reject a disordered full fuzzy range", func(t *testing.T) {
		alleleReq := validBase()
		alleleReq.Start = ""
		alleleReq.End = ""
		alleleReq.StartMin = "110"
		alleleReq.StartMax = "90"
		alleleReq.EndMin = "120"
		alleleReq.EndMax = "130"

		_, beaconErr := ValidateAlleleRequest(alleleReq, datasets, false)

		assert.NotNil(t, beaconErr)
		assert.Equal(t, "INVALID_COORD_RANGE", beaconErr.ErrorName)
	})
}

func TestBuildEsFilter(t *testing.T) {
	t.Run("identity lookups carry only the fingerprint", func(t *testing.T) {
		validated := &ValidatedQuery{
			Shape:       ExactId,
			Fingerprint: "abc123",
		}

		filter := validated.BuildEsFilter()

		boolMap := filter["bool"].(map[string]interface{})
		filterSlice := boolMap["filter"].([]map[string]interface{})
		idsMap := filterSlice[0]["ids"].(map[string]interface{})

		assert.Equal(t, []string{"abc123"}, idsMap["values"])
	})

	t.Run("range shapes constrain fields and dataset membership", func(t *testing.T) {
		validated := &ValidatedQuery{
			Shape:          ExactRange,
			AssemblyId:     assemblyId.GRCh37,
			ReferenceName:  "1",
			ReferenceBases: "A",
			AlternateBases: "T",
			Start:          100,
			End:            101,
			HasEnd:         true,
			DatasetIds:     []string{"public-37"},
		}

		filter := validated.BuildEsFilter()

		boolMap := filter["bool"].(map[string]interface{})
		innerBool := boolMap["filter"].([]map[string]interface{})[0]["bool"].(map[string]interface{})

		mustMap := innerBool["must"].([]map[string]interface{})
		assert.Equal(t, "referenceName:1",
			mustMap[0]["query_string"].(map[string]interface{})["query"])

		shouldMap := innerBool["should"].([]map[string]interface{})
		assert.Len(t, shouldMap, 1)
		assert.Equal(t, "datasetIds.public-37",
			shouldMap[0]["exists"].(map[string]interface{})["field"])
		assert.Equal(t, 1, innerBool["minimum_should_match"])
	})
}

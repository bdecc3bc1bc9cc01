package query

import (
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	c "beacon/api/models/constants"
	assemblyId "beacon/api/models/constants/assembly-id"
	"beacon/api/models/constants/granularity"
	variantType "beacon/api/models/constants/variant-type"
	"beacon/api/models/dtos"
	e "beacon/api/models/dtos/errors"
	datasetsService "beacon/api/services/datasets"
	"beacon/api/utils"

	"github.com/Jeffail/gabs"
	"github.com/labstack/echo"
)

// the fixed allow-list of Beacon v1 query parameters;
// anything else in the request is ignored
var recognizedParams = []string{
	"referenceName", "referenceBases", "assemblyId",
	"start", "startMin", "startMax",
	"end", "endMin", "endMax",
	"alternateBases", "variantType",
	"includeDatasetResponses", "datasetIds",
}

/*
	NormalizeAlleleRequest extracts the recognized parameters
	from a GET query string or a POST body (form or json) into
	the canonical allele request. Values that arrive as empty
	strings are treated as absent. No validation happens here.
*/
func NormalizeAlleleRequest(ec echo.Context) *dtos.AlleleRequest {
	params := map[string]string{}
	var datasetIds []string

	contentType := ec.Request().Header.Get(echo.HeaderContentType)
	isJson := ec.Request().Method == "POST" &&
		strings.HasPrefix(contentType, echo.MIMEApplicationJSON)

	if isJson {
		params, datasetIds = parseJsonBody(ec)
	} else {
		// GET query string and POST form fields share
		// repeated-key semantics for datasetIds
		values := ec.QueryParams()
		if ec.Request().Method == "POST" {
			if formValues, formErr := ec.FormParams(); formErr == nil {
				values = formValues
			}
		}

		for _, param := range recognizedParams {
			if param == "datasetIds" {
				for _, id := range values["datasetIds"] {
					if id != "" {
						datasetIds = append(datasetIds, id)
					}
				}
				continue
			}
			if value := values.Get(param); value != "" {
				params[param] = value
			}
		}
	}

	alleleReq := &dtos.AlleleRequest{
		ReferenceName:  params["referenceName"],
		ReferenceBases: params["referenceBases"],
		AlternateBases: params["alternateBases"],
		VariantType:    params["variantType"],
		AssemblyId:     params["assemblyId"],
		Start:          params["start"],
		End:            params["end"],
		StartMin:       params["startMin"],
		StartMax:       params["startMax"],
		EndMin:         params["endMin"],
		EndMax:         params["endMax"],
		DatasetIds:     datasetIds,
	}

	alleleReq.IncludeDatasetResponses = granularity.CastToGranularity(params["includeDatasetResponses"])
	if alleleReq.IncludeDatasetResponses == granularity.Undefined {
		alleleReq.IncludeDatasetResponses = granularity.None
	}

	return alleleReq
}

func parseJsonBody(ec echo.Context) (map[string]string, []string) {
	params := map[string]string{}
	var datasetIds []string

	body, bodyErr := ioutil.ReadAll(ec.Request().Body)
	if bodyErr != nil {
		return params, datasetIds
	}

	jsonParsed, parseErr := gabs.ParseJSON(body)
	if parseErr != nil {
		return params, datasetIds
	}

	for _, param := range recognizedParams {
		if param == "datasetIds" {
			// read as a json array field, defaulting to empty
			if children, childrenErr := jsonParsed.Path("datasetIds").Children(); childrenErr == nil {
				for _, child := range children {
					if id, ok := child.Data().(string); ok && id != "" {
						datasetIds = append(datasetIds, id)
					}
				}
			}
			continue
		}

		switch value := jsonParsed.Path(param).Data().(type) {
		case string:
			if value != "" {
				params[param] = value
			}
		case float64:
			// json numbers; coordinates arrive this way
			params[param] = strconv.Itoa(int(value))
		}
	}

	return params, datasetIds
}

/*
	The four mutually exclusive query shapes a validated
	request can take. Only the Validator constructs these;
	only the Dispatcher consumes them.
*/
type QueryShape string

const (
	ExactId    QueryShape = "EXACT_ID"
	ExactRange QueryShape = "EXACT_RANGE"
	FuzzyRange QueryShape = "FUZZY_RANGE"
	SvBreakend QueryShape = "SV_BREAKEND"
)

// a half-bound on start or end, present only when the
// corresponding fuzzy-range parameter was provided
type CoordBound struct {
	Set   bool
	Value int
}

type ValidatedQuery struct {
	Shape QueryShape

	// EXACT_ID only: identity lookup key; all coordinate
	// fields are dropped from the datastore query
	Fingerprint string

	AssemblyId     c.AssemblyId
	ReferenceName  string
	ReferenceBases string
	AlternateBases string
	VariantType    c.VariantType

	// EXACT_RANGE / SV_BREAKEND
	Start  int
	End    int
	HasEnd bool

	// FUZZY_RANGE
	StartMin CoordBound
	StartMax CoordBound
	EndMin   CoordBound
	EndMax   CoordBound

	DatasetIds  []string
	Granularity c.ResponseGranularity
}

/*
	ValidateAlleleRequest is the decision procedure over the
	canonical parameter map. The first failing check wins; every
	error echoes the original request and no datastore query is
	ever executed on an error path.
*/
func ValidateAlleleRequest(alleleReq *dtos.AlleleRequest,
	datasets *datasetsService.DatasetsService,
	lenientSvEnd bool) (*ValidatedQuery, *dtos.BeaconError) {

	// exact-match fast path candidate: no variantType and all
	// six identity fields present (mandatory and build-mismatch
	// checks below can still reject the request)
	exactIdCandidate := alleleReq.VariantType == "" &&
		alleleReq.ReferenceName != "" &&
		alleleReq.Start != "" &&
		alleleReq.End != "" &&
		alleleReq.ReferenceBases != "" &&
		alleleReq.AlternateBases != "" &&
		alleleReq.AssemblyId != ""

	// mandatory fields
	if alleleReq.ReferenceName == "" ||
		alleleReq.ReferenceBases == "" ||
		alleleReq.AssemblyId == "" {
		return nil, e.NoMandatoryParams()
	}

	// build mismatch: every referenced dataset must carry the
	// requested assembly; unknown dataset ids are silently
	// ignored at this stage
	requestedAssembly := assemblyId.CastToAssemblyId(alleleReq.AssemblyId)
	for _, id := range alleleReq.DatasetIds {
		if dataset, found := datasets.GetDataset(id); found {
			if dataset.AssemblyId != requestedAssembly {
				return nil, e.BuildMismatch()
			}
		}
	}

	// secondary field
	if alleleReq.AlternateBases == "" && alleleReq.VariantType == "" {
		return nil, e.NoSecondaryParams()
	}

	// position presence
	anyRangeField := alleleReq.StartMin != "" || alleleReq.StartMax != "" ||
		alleleReq.EndMin != "" || alleleReq.EndMax != ""
	if alleleReq.Start == "" && !anyRangeField {
		return nil, e.NoPositionParams()
	}

	validated := &ValidatedQuery{
		AssemblyId:     requestedAssembly,
		ReferenceName:  alleleReq.ReferenceName,
		ReferenceBases: alleleReq.ReferenceBases,
		AlternateBases: alleleReq.AlternateBases,
		VariantType:    variantType.CastToVariantType(alleleReq.VariantType),
		DatasetIds:     alleleReq.DatasetIds,
		Granularity:    alleleReq.IncludeDatasetResponses,
	}

	if alleleReq.Start != "" {
		// exact-position branch
		start, startErr := strconv.Atoi(alleleReq.Start)
		if startErr != nil {
			return nil, e.InvalidCoordinates()
		}
		validated.Start = start

		if alleleReq.End != "" {
			end, endErr := strconv.Atoi(alleleReq.End)
			if endErr != nil {
				return nil, e.InvalidCoordinates()
			}
			validated.End = end
			validated.HasEnd = true
		} else if alleleReq.VariantType != "" && !lenientSvEnd {
			// structural-variant query without an end position
			return nil, e.NoSvEndParam()
		}

		if exactIdCandidate {
			validated.Shape = ExactId
			validated.Fingerprint = utils.VariantFingerprint(
				alleleReq.ReferenceName, validated.Start, validated.End,
				alleleReq.ReferenceBases, alleleReq.AlternateBases, alleleReq.AssemblyId)
		} else if alleleReq.VariantType != "" {
			validated.Shape = SvBreakend
		} else {
			validated.Shape = ExactRange
		}

		return validated, nil
	}

	// range branch: each present field parses to an independent
	// half-bound; all four together must be ordered
	var parseFailed bool
	parseBound := func(raw string) CoordBound {
		if raw == "" {
			return CoordBound{}
		}
		value, valueErr := strconv.Atoi(raw)
		if valueErr != nil {
			parseFailed = true
			return CoordBound{}
		}
		return CoordBound{Set: true, Value: value}
	}

	validated.StartMin = parseBound(alleleReq.StartMin)
	validated.StartMax = parseBound(alleleReq.StartMax)
	validated.EndMin = parseBound(alleleReq.EndMin)
	validated.EndMax = parseBound(alleleReq.EndMax)
	if parseFailed {
		return nil, e.InvalidCoordinates()
	}

	if validated.StartMin.Set && validated.StartMax.Set &&
		validated.EndMin.Set && validated.EndMax.Set {
		// check that startMin <= startMax <= endMin <= endMax
		if !(validated.StartMin.Value <= validated.StartMax.Value &&
			validated.StartMax.Value <= validated.EndMin.Value &&
			validated.EndMin.Value <= validated.EndMax.Value) {
			return nil, e.InvalidCoordRange()
		}
	}

	validated.Shape = FuzzyRange

	return validated, nil
}

/*
	BuildEsFilter turns the validated query into the datastore
	filter. An exact-id query is an identity lookup only; the
	other shapes combine field constraints the same way the
	documents were indexed.
*/
func (vq *ValidatedQuery) BuildEsFilter() map[string]interface{} {
	if vq.Shape == ExactId {
		return map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{{
					"ids": map[string]interface{}{
						"values": []string{vq.Fingerprint},
					}},
				},
			},
		}
	}

	mustMap := []map[string]interface{}{{
		"query_string": map[string]interface{}{
			"query": fmt.Sprintf("referenceName:%s", vq.ReferenceName),
		}},
	}

	mustMap = append(mustMap, map[string]interface{}{
		"match": map[string]interface{}{
			"assemblyId": map[string]interface{}{
				"query": vq.AssemblyId,
			},
		},
	})

	mustMap = append(mustMap, map[string]interface{}{
		"query_string": map[string]interface{}{
			"query": fmt.Sprintf("referenceBases:%s", vq.ReferenceBases),
		},
	})

	if vq.AlternateBases != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"query_string": map[string]interface{}{
				"query": fmt.Sprintf("alternateBases:%s", vq.AlternateBases),
			},
		})
	}

	if vq.VariantType != "" {
		mustMap = append(mustMap, map[string]interface{}{
			"query_string": map[string]interface{}{
				"query": fmt.Sprintf("variantType:%s", vq.VariantType),
			},
		})
	}

	switch vq.Shape {
	case ExactRange, SvBreakend:
		mustMap = append(mustMap, map[string]interface{}{
			"match": map[string]interface{}{
				"start": map[string]interface{}{
					"query": vq.Start,
				},
			},
		})
		if vq.HasEnd {
			mustMap = append(mustMap, map[string]interface{}{
				"match": map[string]interface{}{
					"end": map[string]interface{}{
						"query": vq.End,
					},
				},
			})
		}
	case FuzzyRange:
		rangeMapSlice := []map[string]interface{}{}

		if vq.StartMin.Set {
			rangeMapSlice = append(rangeMapSlice, map[string]interface{}{
				"range": map[string]interface{}{
					"start": map[string]interface{}{
						"gte": vq.StartMin.Value,
					},
				},
			})
		}
		if vq.StartMax.Set {
			rangeMapSlice = append(rangeMapSlice, map[string]interface{}{
				"range": map[string]interface{}{
					"start": map[string]interface{}{
						"lte": vq.StartMax.Value,
					},
				},
			})
		}
		if vq.EndMin.Set {
			rangeMapSlice = append(rangeMapSlice, map[string]interface{}{
				"range": map[string]interface{}{
					"end": map[string]interface{}{
						"gte": vq.EndMin.Value,
					},
				},
			})
		}
		if vq.EndMax.Set {
			rangeMapSlice = append(rangeMapSlice, map[string]interface{}{
				"range": map[string]interface{}{
					"end": map[string]interface{}{
						"lte": vq.EndMax.Value,
					},
				},
			})
		}

		// individually append each range component to the must map
		for _, rms := range rangeMapSlice {
			mustMap = append(mustMap, rms)
		}
	}

	var (
		shouldMap          []map[string]interface{}
		minimumShouldMatch int
	)

	// restrict to variants carrying at least one of the
	// requested datasets
	if len(vq.DatasetIds) > 0 {
		for _, id := range vq.DatasetIds {
			shouldMap = append(shouldMap, map[string]interface{}{
				"exists": map[string]interface{}{
					"field": fmt.Sprintf("datasetIds.%s", id),
				},
			})
		}
		minimumShouldMatch = 1
	}

	return map[string]interface{}{
		"bool": map[string]interface{}{
			"filter": []map[string]interface{}{{
				"bool": map[string]interface{}{
					"must":                 mustMap,
					"should":               shouldMap,
					"minimum_should_match": minimumShouldMatch,
				}},
			},
		},
	}
}

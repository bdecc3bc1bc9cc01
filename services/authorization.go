package services

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"io/ioutil"
	"math/big"
	"net/http"
	"strings"
	"time"

	"beacon/api/models"
	authz "beacon/api/models/authorization"
	"beacon/api/models/dtos"
	e "beacon/api/models/dtos/errors"
	"beacon/api/utils"

	"github.com/Jeffail/gabs"
	"github.com/golang-jwt/jwt/v4"
)

/*
	Resolves an incoming 'Authorization' header down to an
	AuthContext: which registered-tier datasets the caller may
	see, and whether their bona-fide researcher status unlocks
	the controlled tier.

	Two outbound calls are involved (issuer JWKS, userinfo
	passports); both run with a conservative timeout and map
	failures to distinct error objects rather than falling back
	to public-only access.
*/

const outboundCallTimeout = 5 * time.Second

// scopes an access token must carry before the
// userinfo passport exchange is attempted
var requiredGa4ghScopes = []string{"openid", "ga4gh_passport_v1"}

// GA4GH passport visa types
const (
	visaControlledAccessGrants = "ControlledAccessGrants"
	visaAcceptedTermsPolicies  = "AcceptedTermsAndPolicies"
	visaResearcherStatus       = "ResearcherStatus"
)

var errNoPublicKey = errors.New("could not resolve a public signing key")

/*
	KeyResolver turns a JWKS location plus key id into a
	verification key. Passport visas carry their own key url in
	the token header, so the resolver is a capability handed to
	each verify step rather than a hard-coded fetch.
*/
type KeyResolver interface {
	ResolveKey(jwksUrl string, kid string) (interface{}, error)
}

type JwksKeyResolver struct {
	httpClient *http.Client
}

func NewJwksKeyResolver() *JwksKeyResolver {
	return &JwksKeyResolver{
		httpClient: &http.Client{Timeout: outboundCallTimeout},
	}
}

func (r *JwksKeyResolver) ResolveKey(jwksUrl string, kid string) (interface{}, error) {
	keysResp, keysErr := r.httpClient.Get(jwksUrl)
	if keysErr != nil {
		fmt.Printf("Error fetching JWKS from %s : %s\n", jwksUrl, keysErr)
		return nil, errNoPublicKey
	}
	defer keysResp.Body.Close()

	if keysResp.StatusCode != 200 {
		fmt.Printf("JWKS endpoint %s returned status %d\n", jwksUrl, keysResp.StatusCode)
		return nil, errNoPublicKey
	}

	body, bodyErr := ioutil.ReadAll(keysResp.Body)
	if bodyErr != nil {
		fmt.Printf("Error reading JWKS body: %s\n", bodyErr)
		return nil, errNoPublicKey
	}

	jsonParsed, parseErr := gabs.ParseJSON(body)
	if parseErr != nil {
		fmt.Printf("Error parsing JWKS json: %s\n", parseErr)
		return nil, errNoPublicKey
	}

	children, childrenErr := jsonParsed.Path("keys").Children()
	if childrenErr != nil {
		fmt.Printf("JWKS from %s carries no 'keys' array\n", jwksUrl)
		return nil, errNoPublicKey
	}

	for _, child := range children {
		childKid, _ := child.Path("kid").Data().(string)
		childKty, _ := child.Path("kty").Data().(string)

		if childKty != "RSA" {
			continue
		}
		// when the token names no kid, the first RSA key wins
		if kid != "" && childKid != kid {
			continue
		}

		nStr, _ := child.Path("n").Data().(string)
		eStr, _ := child.Path("e").Data().(string)
		return buildRsaPublicKey(nStr, eStr)
	}

	return nil, errNoPublicKey
}

func buildRsaPublicKey(nStr string, eStr string) (*rsa.PublicKey, error) {
	nBytes, nErr := base64.RawURLEncoding.DecodeString(nStr)
	if nErr != nil {
		return nil, errNoPublicKey
	}
	eBytes, eErr := base64.RawURLEncoding.DecodeString(eStr)
	if eErr != nil {
		return nil, errNoPublicKey
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}

type (
	AuthzService struct {
		cfg       *models.Config
		issuers   []string
		audiences []string

		keys       KeyResolver
		httpClient *http.Client
	}
)

func NewAuthzService(cfg *models.Config) *AuthzService {
	return NewAuthzServiceWithKeyResolver(cfg, NewJwksKeyResolver())
}

func NewAuthzServiceWithKeyResolver(cfg *models.Config, keys KeyResolver) *AuthzService {
	return &AuthzService{
		cfg:        cfg,
		issuers:    splitNonEmpty(cfg.OAuth2.IssuersCommaSep),
		audiences:  splitNonEmpty(cfg.OAuth2.AudiencesCommaSep),
		keys:       keys,
		httpClient: &http.Client{Timeout: outboundCallTimeout},
	}
}

func splitNonEmpty(commaSep string) []string {
	var out []string
	for _, piece := range strings.Split(commaSep, ",") {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

/*
	ResolveAuthLevels walks the authorization state machine:
	no header means public-only, a malformed header is a 401,
	and a well-formed bearer token is decoded, claim-checked and
	(when it carries the GA4GH scopes) exchanged for passport
	visas at the userinfo endpoint.
*/
func (a *AuthzService) ResolveAuthLevels(authorizationHeader string) (*authz.AuthContext, *dtos.BeaconError) {
	// no header: an anonymous caller, not an error
	if authorizationHeader == "" {
		return authz.NewPublicAuthContext(), nil
	}

	parts := strings.Split(authorizationHeader, " ")
	if len(parts) != 2 || parts[1] == "" {
		return nil, e.MissingToken()
	}
	if parts[0] != "Bearer" {
		return nil, e.WrongScheme()
	}
	tokenString := parts[1]

	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}))

	_, parseErr := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		return a.keys.ResolveKey(a.cfg.OAuth2.JwksUrl, kid)
	})
	if parseErr != nil {
		return nil, mapTokenError(parseErr)
	}

	if claimsErr := a.checkTokenClaims(claims); claimsErr != nil {
		return nil, claimsErr
	}

	// a valid token without the GA4GH scopes is a normal
	// authenticated-but-unprivileged caller
	if !hasRequiredScopes(claims) {
		return authz.NewPublicAuthContext(), nil
	}

	visaStrings, userdataErr := a.fetchPassportVisas(tokenString)
	if userdataErr != nil {
		return nil, userdataErr
	}

	return a.reducePassportVisas(visaStrings)
}

func mapTokenError(parseErr error) *dtos.BeaconError {
	var ve *jwt.ValidationError
	if errors.As(parseErr, &ve) {
		if errors.Is(ve.Inner, errNoPublicKey) {
			return e.MissingPublicKey()
		}
		if ve.Errors&jwt.ValidationErrorExpired != 0 {
			return e.ExpiredTokenSignature()
		}
		if ve.Errors&(jwt.ValidationErrorMalformed|jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0 {
			return e.InvalidTokenAuth()
		}
		if ve.Errors&(jwt.ValidationErrorIssuedAt|jwt.ValidationErrorNotValidYet|jwt.ValidationErrorClaimsInvalid) != 0 {
			return e.InvalidTokenClaims()
		}
	}
	return e.GenericAuthError(parseErr.Error())
}

func (a *AuthzService) checkTokenClaims(claims jwt.MapClaims) *dtos.BeaconError {
	// 'exp' and 'iss' are essential; their absence and
	// their invalidity are distinct failures
	if _, found := claims["exp"]; !found {
		return e.MissingTokenClaims()
	}
	if _, found := claims["iss"]; !found {
		return e.MissingTokenClaims()
	}

	issuerOk := false
	for _, issuer := range a.issuers {
		if claims.VerifyIssuer(issuer, true) {
			issuerOk = true
			break
		}
	}
	if !issuerOk {
		return e.InvalidTokenClaims()
	}

	if a.cfg.OAuth2.VerifyAud {
		if _, found := claims["aud"]; !found {
			return e.MissingTokenClaims()
		}

		audienceOk := false
		for _, audience := range a.audiences {
			if claims.VerifyAudience(audience, true) {
				audienceOk = true
				break
			}
		}
		if !audienceOk {
			return e.InvalidTokenClaims()
		}
	}

	return nil
}

func hasRequiredScopes(claims jwt.MapClaims) bool {
	scopeClaim, _ := claims["scope"].(string)
	if scopeClaim == "" {
		return false
	}

	grantedScopes := strings.Fields(scopeClaim)
	for _, requiredScope := range requiredGa4ghScopes {
		if !utils.StringInSlice(requiredScope, grantedScopes) {
			return false
		}
	}
	return true
}

// fetchPassportVisas performs the second-hop userinfo call,
// presenting the same bearer token, and returns the encoded
// 'ga4gh_passport_v1' visa tokens
func (a *AuthzService) fetchPassportVisas(tokenString string) ([]string, *dtos.BeaconError) {
	userinfoReq, reqErr := http.NewRequest("GET", a.cfg.OAuth2.UserinfoUrl, nil)
	if reqErr != nil {
		fmt.Printf("Error building userinfo request: %s\n", reqErr)
		return nil, e.NoGa4ghUserdata()
	}
	userinfoReq.Header.Add("Authorization", "Bearer "+tokenString)

	userinfoResp, respErr := a.httpClient.Do(userinfoReq)
	if respErr != nil {
		fmt.Printf("Error calling userinfo endpoint: %s\n", respErr)
		return nil, e.NoGa4ghUserdata()
	}
	defer userinfoResp.Body.Close()

	if userinfoResp.StatusCode != 200 {
		fmt.Printf("Userinfo endpoint returned status %d\n", userinfoResp.StatusCode)
		return nil, e.NoGa4ghUserdata()
	}

	responseBody, bodyErr := ioutil.ReadAll(userinfoResp.Body)
	if bodyErr != nil {
		fmt.Printf("Error reading userinfo body: %s\n", bodyErr)
		return nil, e.NoGa4ghUserdata()
	}

	jsonParsed, parseErr := gabs.ParseJSON(responseBody)
	if parseErr != nil {
		fmt.Printf("Parsing error: %s\n", parseErr)
		return nil, e.NoGa4ghUserdata()
	}

	children, childrenErr := jsonParsed.Path("ga4gh_passport_v1").Children()
	if childrenErr != nil {
		fmt.Printf("Userinfo response carries no 'ga4gh_passport_v1' array\n")
		return nil, e.NoGa4ghUserdata()
	}

	visaStrings := make([]string, 0, len(children))
	for _, child := range children {
		if visaString, ok := child.Data().(string); ok {
			visaStrings = append(visaStrings, visaString)
		}
	}

	return visaStrings, nil
}

/*
	reducePassportVisas independently verifies each visa (its
	signing key location travels in its own header) and reduces
	the lot to the registered-dataset set plus the bona-fide
	flag. Terms-acceptance and researcher-status visas are
	jointly required before bona fide is granted.
*/
func (a *AuthzService) reducePassportVisas(visaStrings []string) (*authz.AuthContext, *dtos.BeaconError) {
	authContext := authz.NewPublicAuthContext()

	var (
		acceptedTerms    bool
		researcherStatus bool
	)

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}))

	for _, visaString := range visaStrings {
		visaClaims := jwt.MapClaims{}

		_, visaErr := parser.ParseWithClaims(visaString, visaClaims, func(token *jwt.Token) (interface{}, error) {
			// the visa header carries the location of its own
			// signing key; resolve it independently of the
			// outer token's issuer
			jku, _ := token.Header["jku"].(string)
			if jku == "" {
				return nil, errNoPublicKey
			}
			kid, _ := token.Header["kid"].(string)
			return a.keys.ResolveKey(jku, kid)
		})
		if visaErr != nil {
			fmt.Printf("Error validating passport visa: %s\n", visaErr)
			return nil, e.PassportsError()
		}

		visaBody, bodyOk := visaClaims["ga4gh_visa_v1"].(map[string]interface{})
		if !bodyOk {
			return nil, e.PassportsError()
		}
		visaType, _ := visaBody["type"].(string)
		visaValue, _ := visaBody["value"].(string)

		switch visaType {
		case visaControlledAccessGrants:
			// the dataset id is the last path segment of the
			// URL-shaped claim value
			datasetId := utils.LastUrlPathSegment(visaValue)
			if datasetId != "" {
				authContext.RegisteredDatasetIds[datasetId] = true
			}
		case visaAcceptedTermsPolicies:
			if visaValue == a.cfg.OAuth2.BonaFideTermsUrl {
				acceptedTerms = true
			}
		case visaResearcherStatus:
			researcherStatus = true
		}
	}

	authContext.BonaFide = acceptedTerms && researcherStatus

	return authContext, nil
}

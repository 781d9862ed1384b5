package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Identity header names. These are a stand-in for real authentication; the
// contract handlers rely on is only "an org and user id per request".
const (
	HeaderOrgID  = "X-Org-ID"
	HeaderUserID = "X-User-ID"
)

var errMissingIdentity = errors.New("missing or invalid " + HeaderOrgID + " / " + HeaderUserID)

// Identity is the tenant/actor pair attached to every request.
type Identity struct {
	OrgID  int64
	UserID int64
}

// Authenticator is implemented by types able to extract the caller identity
// from request headers.
type Authenticator interface {
	Identify(h http.Header) (Identity, error)
}

// devIdentity is the fixed fallback used outside production.
var devIdentity = Identity{OrgID: 1, UserID: 1}

// HeaderAuth resolves identity from the X-Org-ID and X-User-ID headers.
// When either is missing or invalid it falls back to the dev identity,
// unless Production is set, in which case identification fails.
type HeaderAuth struct {
	Production bool
}

func (a HeaderAuth) Identify(h http.Header) (Identity, error) {
	orgID := PositiveInt(h.Get(HeaderOrgID))
	userID := PositiveInt(h.Get(HeaderUserID))
	if orgID != nil && userID != nil {
		return Identity{OrgID: *orgID, UserID: *userID}, nil
	}
	if !a.Production {
		return devIdentity, nil
	}
	return Identity{}, errMissingIdentity
}

// orgResolver yields the org scope for a request. The two route families
// differ only in how this is resolved: identity headers for the main
// family, the orgId query parameter for the dev family.
type orgResolver func(c echo.Context) (int64, *paramError)

// identityOrg scopes requests by the authenticated identity.
func identityOrg(auth Authenticator) orgResolver {
	return func(c echo.Context) (int64, *paramError) {
		ident, err := auth.Identify(c.Request().Header)
		if err != nil {
			return 0, &paramError{http.StatusUnauthorized, err.Error()}
		}
		return ident.OrgID, nil
	}
}

// queryOrg scopes requests by the orgId query parameter.
func queryOrg(c echo.Context) (int64, *paramError) {
	return parseIntParam(c.QueryParam("orgId"), "orgId")
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scribehub/scribehub-api/internal/core/policy"
)

// ctxRequester builds the requester from the identity injected by the Auth
// middleware. With no identity present the anonymous requester is returned;
// read endpoints accept that, write paths check it through the policy.
func ctxRequester(c echo.Context) policy.Requester {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return policy.Anonymous
	}

	username, _ := c.Get("username").(string)
	return policy.Requester{ID: id, Username: username, Authenticated: true}
}

// mustRequester is ctxRequester for routes behind the required Auth
// middleware; a missing identity means the middleware did not run.
func mustRequester(c echo.Context) (policy.Requester, error) {
	req := ctxRequester(c)
	if !req.Authenticated {
		return policy.Requester{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return req, nil
}

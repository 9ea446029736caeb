package handler

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// requireJSON rejects request bodies that are not application/json with 406,
// matching the behaviour clients of the catalog expect.
func requireJSON(c echo.Context) error {
	mt, _, err := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
	if err != nil || mt != echo.MIMEApplicationJSON {
		return echo.NewHTTPError(http.StatusNotAcceptable, "request body must be application/json")
	}
	return nil
}

// baseURL is scheme://host of the current request.
func baseURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}

// queryMap flattens the query string to its first value per key.
func queryMap(c echo.Context) map[string]string {
	params := c.QueryParams()
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// setLinks writes an RFC 8288 Link header.
func setLinks(c echo.Context, links [][2]string) {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, fmt.Sprintf("<%s>; rel=%q", l[0], l[1]))
	}
	c.Response().Header().Set("Link", strings.Join(parts, ", "))
}

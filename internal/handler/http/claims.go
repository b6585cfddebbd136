package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

// requestClaims pulls the identity claims out of the verified token.
// Handlers behind AuthRequired can rely on company_id and user_id being
// present.
func requestClaims(r *http.Request) (companyID, userID string, ok bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", false
	}
	companyID, _ = claims["company_id"].(string)
	userID, _ = claims["user_id"].(string)
	return companyID, userID, companyID != "" && userID != ""
}

// queryDate parses a YYYY-MM-DD query parameter, falling back to def
// when the parameter is absent.
func queryDate(r *http.Request, name string, def time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return time.Parse("2006-01-02", raw)
}

// queryInt parses an integer query parameter, falling back to def when
// absent or unparseable.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

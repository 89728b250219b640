package http

import (
	"net/http"
	"strconv"
	"time"

	apperrors "dealership/pkg/errors"

	"github.com/julienschmidt/httprouter"
)

// ExtractID parses the :id path parameter as a positive integer.
func ExtractID(ps httprouter.Params) (int, error) {
	raw := ps.ByName("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apperrors.InvalidInput("invalid id parameter: " + raw)
	}
	return id, nil
}

// ExtractDatetime parses an optional RFC3339 query parameter. A missing
// parameter yields a nil time, not an error.
func ExtractDatetime(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + key + " format, must be RFC3339")
	}
	return &parsed, nil
}

package pathutil

import (
	"errors"
	"net/http"
	"strings"
)

// maxParamLength bounds slug and id path values.
const maxParamLength = 200

// ErrInvalidParam is returned when a path wildcard is empty or oversized.
var ErrInvalidParam = errors.New("invalid path parameter")

// Param returns the trimmed value of the named path wildcard.
//
//	mux.Handle("GET /api/article/{slug}", h)
//	slug, err := pathutil.Param(r, "slug")
func Param(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.PathValue(name))
	if v == "" || len(v) > maxParamLength {
		return "", ErrInvalidParam
	}
	return v, nil
}

package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maderas/backend/pkg/input"
)

// dateRangeQuery is shared by every list that filters on fecha.
type dateRangeQuery struct {
	Q     string `form:"q"`
	Desde string `form:"desde"`
	Hasta string `form:"hasta"`
}

func (q dateRangeQuery) parse() (*time.Time, *time.Time, error) {
	desde, err := parseOptionalDate(q.Desde)
	if err != nil {
		return nil, nil, newValidationError("desde", "invalid_desde", "desde debe tener formato YYYY-MM-DD")
	}
	hasta, err := parseOptionalDate(q.Hasta)
	if err != nil {
		return nil, nil, newValidationError("hasta", "invalid_hasta", "hasta debe tener formato YYYY-MM-DD")
	}
	return desde, hasta, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := input.Date(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func param(c *gin.Context, name string) string {
	return strings.TrimSpace(c.Param(name))
}

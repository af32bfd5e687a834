package params

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// NewQueryParams reads page_number, page_size and search from the query string, clamping bad values.
func NewQueryParams(c echo.Context) *QueryParams {
	return &QueryParams{
		PageNumber: positiveInt(c.QueryParam("page_number"), DefaultPageNumber, 0),
		PageSize:   positiveInt(c.QueryParam("page_size"), DefaultPageSize, MaxPageSize),
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}
}

// Offset is the SQL offset of the requested page.
func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

func positiveInt(raw string, fallback, ceiling int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	if ceiling > 0 && n > ceiling {
		return ceiling
	}
	return n
}

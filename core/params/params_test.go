package params

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewQueryParams(t *testing.T) {
	tests := []struct {
		query      string
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"", DefaultPageNumber, DefaultPageSize, 0},
		{"page_number=3&page_size=10", 3, 10, 20},
		{"page_number=-1&page_size=abc", DefaultPageNumber, DefaultPageSize, 0},
		{"page_size=1000", DefaultPageNumber, MaxPageSize, 0},
	}

	e := echo.New()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())

		p := NewQueryParams(c)
		if p.PageNumber != tt.wantPage || p.PageSize != tt.wantSize || p.Offset() != tt.wantOffset {
			t.Errorf("%q: got page=%d size=%d offset=%d", tt.query, p.PageNumber, p.PageSize, p.Offset())
		}
	}
}

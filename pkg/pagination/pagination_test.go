package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(newContext("/"))

	if p.Page != DefaultPage {
		t.Errorf("expected default page %d, got %d", DefaultPage, p.Page)
	}
	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
}

func TestFromContext_ExplicitValues(t *testing.T) {
	p := FromContext(newContext("/?page=3&limit=25"))

	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
	if p.Limit != 25 {
		t.Errorf("expected limit 25, got %d", p.Limit)
	}
	if p.Offset() != 50 {
		t.Errorf("expected offset 50, got %d", p.Offset())
	}
}

func TestFromContext_CoercesMalformedValues(t *testing.T) {
	cases := []string{
		"/?page=abc&limit=xyz",
		"/?page=-1&limit=0",
		"/?page=0&limit=-5",
	}
	for _, target := range cases {
		p := FromContext(newContext(target))
		if p.Page != DefaultPage || p.Limit != DefaultLimit {
			t.Errorf("%s: expected defaults, got page=%d limit=%d", target, p.Page, p.Limit)
		}
	}
}

func TestFromContext_CapsLimit(t *testing.T) {
	p := FromContext(newContext("/?limit=5000"))
	if p.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, tc := range cases {
		p := Params{Page: 1, Limit: tc.limit}
		if got := p.TotalPages(tc.total); got != tc.want {
			t.Errorf("total=%d limit=%d: expected %d pages, got %d", tc.total, tc.limit, tc.want, got)
		}
	}
}

func TestNewResponse_Flags(t *testing.T) {
	resp := NewResponse([]string{"a"}, 25, Params{Page: 2, Limit: 10})

	if resp.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", resp.TotalPages)
	}
	if !resp.HasNext {
		t.Error("expected has_next on page 2 of 3")
	}
	if !resp.HasPrevious {
		t.Error("expected has_previous on page 2")
	}

	last := NewResponse(nil, 25, Params{Page: 3, Limit: 10})
	if last.HasNext {
		t.Error("expected no has_next on last page")
	}

	first := NewResponse(nil, 25, Params{Page: 1, Limit: 10})
	if first.HasPrevious {
		t.Error("expected no has_previous on first page")
	}
}

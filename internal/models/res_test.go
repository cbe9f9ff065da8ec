package models

import "testing"

func TestPaginatedResponseTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, c := range cases {
		resp := PaginatedResponse(nil, 1, c.limit, c.total)
		if resp.TotalPages != c.want {
			t.Errorf("total=%d limit=%d: expected %d pages, got %d", c.total, c.limit, c.want, resp.TotalPages)
		}
		if !resp.Success || resp.Total != c.total {
			t.Errorf("total=%d: envelope not populated: %+v", c.total, resp)
		}
	}
}

package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
		wantSkip  int
	}{
		{"defaults", "", "", 1, DefaultLimit, 0},
		{"second page", "2", "10", 2, 10, 10},
		{"zero page falls back", "0", "10", 1, 10, 0},
		{"negative page falls back", "-3", "5", 1, 5, 0},
		{"garbage falls back", "abc", "xyz", 1, DefaultLimit, 0},
		{"float is truncated", "3.9", "2", 3, 2, 4},
		{"limit is capped", "1", "5000", 1, MaxLimit, 0},
		{"whitespace trimmed", " 4 ", " 3 ", 4, 3, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantSkip, p.Skip())
		})
	}
}

func TestSkipNeverNegative(t *testing.T) {
	for page := -5; page <= 5; page++ {
		for limit := -5; limit <= 5; limit++ {
			p := New(page, limit)
			assert.GreaterOrEqual(t, p.Skip(), 0)
			assert.GreaterOrEqual(t, p.Limit, 1)
			assert.Equal(t, (p.Page-1)*p.Limit, p.Skip())
		}
	}
}

func TestSkipNeverNegative_HugePage(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		limit string
	}{
		{"eighteen digits", "999999999999999999", "14"},
		{"exponent", "1e18", "14"},
		{"near max int", "700000000000000000", "14"},
		{"beyond int64", "99999999999999999999999", "14"},
		{"huge exponent", "1e300", "100"},
		{"max limit", "9223372036854775807", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.page, tt.limit)
			assert.GreaterOrEqual(t, p.Page, 1)
			assert.GreaterOrEqual(t, p.Skip(), 0)
			// vẫn nằm sau trang cuối của bất kỳ tập kết quả thực tế nào
			assert.Greater(t, p.Skip(), 1_000_000_000)
		})
	}

	p := New(math.MaxInt, 1)
	assert.Equal(t, math.MaxInt-1, p.Skip())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, limit, want int
	}{
		{0, 14, 0},
		{1, 14, 1},
		{14, 14, 1},
		{15, 14, 2},
		{28, 14, 2},
		{29, 14, 3},
		{100, 1, 100},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.count, tt.limit), "count=%d limit=%d", tt.count, tt.limit)
	}
}

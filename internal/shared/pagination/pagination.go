// Package pagination chuyển page/limit từ query string thành skip/limit
// và tính tổng số trang từ số bản ghi khớp filter.
package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage = 1
	// DefaultLimit là page size chuẩn của danh sách bài viết
	DefaultLimit = 14
	MaxLimit     = 100
)

// Params là bounds đã được chuẩn hoá, luôn có Page >= 1 và 1 <= Limit <= MaxLimit
type Params struct {
	Page  int
	Limit int
}

// Parse đọc giá trị thô từ query string. Giá trị rỗng, không phải số
// hoặc < 1 sẽ rơi về default; limit vượt MaxLimit bị cắt.
func Parse(pageRaw, limitRaw string) Params {
	return New(parsePositive(pageRaw, DefaultPage), parsePositive(limitRaw, DefaultLimit))
}

// New chuẩn hoá page/limit đã ở dạng số
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// page quá lớn: kẹp lại để (page-1)*limit không tràn int, vẫn nằm sau trang cuối
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return Params{Page: page, Limit: limit}
}

// Skip = (page - 1) * limit
func (p Params) Skip() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages = ceil(count / limit); 0 khi không có kết quả nào
func TotalPages(count, limit int) int {
	if count <= 0 || limit <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}

func parsePositive(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// "2.0", "3.7", "1e18" từ client cũ
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || math.IsNaN(f) {
			return fallback
		}
		if f >= math.MaxInt {
			return math.MaxInt
		}
		n = int(f)
	}
	if n < 1 {
		return fallback
	}
	return n
}

package tag

import (
	"strings"
	"time"
)

// MaxNameLength giới hạn độ dài tên tag sau khi normalize
const MaxNameLength = 50

// Tag là một dòng trong bảng lookup tags, name đã normalize là khoá chính
type Tag struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeOne: trim + lowercase
func NormalizeOne(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize trim + lowercase từng tag, bỏ rỗng, bỏ trùng và giữ thứ tự xuất hiện đầu tiên.
// Normalize(Normalize(x)) == Normalize(x)
func Normalize(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := NormalizeOne(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

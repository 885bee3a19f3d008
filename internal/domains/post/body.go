package post

import (
	"encoding/json"
	"regexp"
	"strings"
)

// BodyVersion là version hiện tại của document
const BodyVersion = 1

// Document là dạng chuẩn của body: {"version":1,"nodes":[...]}
// Nodes là cây element của rich-text editor, server không diễn giải cấu trúc.
type Document struct {
	Version int               `json:"version"`
	Nodes   []json.RawMessage `json:"nodes"`
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// ParseBody nhận 3 dạng:
//
//	{"version":1,"nodes":[...]}  document chuẩn
//	[...]                        output editor cũ, được bọc lại
//	text thường                  tách đoạn theo dòng trống
func ParseBody(raw string) (Document, error) {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		return Document{Version: BodyVersion, Nodes: []json.RawMessage{}}, nil

	case strings.HasPrefix(trimmed, "{"):
		if json.Valid([]byte(trimmed)) {
			// JSON hợp lệ nhưng sai shape/version thì không migrate
			var doc Document
			if err := json.Unmarshal([]byte(trimmed), &doc); err != nil || doc.Nodes == nil {
				return Document{}, ErrInvalidBody
			}
			if doc.Version > BodyVersion {
				return Document{}, ErrInvalidBody
			}
			doc.Version = BodyVersion
			return doc, nil
		}
		// không phải JSON, coi như text

	case strings.HasPrefix(trimmed, "["):
		var nodes []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &nodes); err == nil {
			return Document{Version: BodyVersion, Nodes: nodes}, nil
		}
		// không phải JSON, coi như text
	}

	return FromPlainText(trimmed), nil
}

type textLeaf struct {
	Text string `json:"text"`
}

type paragraph struct {
	Type     string     `json:"type"`
	Children []textLeaf `json:"children"`
}

// FromPlainText chuyển body text cũ sang document, mỗi đoạn một paragraph
func FromPlainText(text string) Document {
	doc := Document{Version: BodyVersion, Nodes: []json.RawMessage{}}
	for _, block := range paragraphBreak.Split(strings.ReplaceAll(text, "\r\n", "\n"), -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		node, _ := json.Marshal(paragraph{Type: "paragraph", Children: []textLeaf{{Text: block}}})
		doc.Nodes = append(doc.Nodes, node)
	}
	return doc
}

// PlainText gom mọi field "text" trong cây node, dùng cho search index
func (d Document) PlainText() string {
	var parts []string
	for _, raw := range d.Nodes {
		var node interface{}
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		parts = collectText(node, parts)
	}
	return strings.Join(parts, " ")
}

func collectText(node interface{}, acc []string) []string {
	switch v := node.(type) {
	case map[string]interface{}:
		if text, ok := v["text"].(string); ok && strings.TrimSpace(text) != "" {
			acc = append(acc, text)
		}
		if children, ok := v["children"].([]interface{}); ok {
			for _, child := range children {
				acc = collectText(child, acc)
			}
		}
	case []interface{}:
		for _, child := range v {
			acc = collectText(child, acc)
		}
	case string:
		if strings.TrimSpace(v) != "" {
			acc = append(acc, v)
		}
	}
	return acc
}

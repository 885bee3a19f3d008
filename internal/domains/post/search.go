package post

import (
	"strings"
	"unicode"
)

// maxTermLength: levenshtein của fuzzystrmatch giới hạn 255 ký tự
const maxTermLength = 64

// Tokenize: lowercase, tách theo ký tự không phải chữ/số, bỏ trùng, giữ thứ tự
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > maxTermLength {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

// SearchWords là tập từ được index cho một post
func SearchWords(title string, tags []string, body Document) []string {
	var b strings.Builder
	b.WriteString(title)
	for _, t := range tags {
		b.WriteByte(' ')
		b.WriteString(t)
	}
	b.WriteByte(' ')
	b.WriteString(body.PlainText())
	return Tokenize(b.String())
}

package utils

import (
	"fmt"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// WhereClause trả về "WHERE a AND b", hoặc chuỗi rỗng khi không có điều kiện
func WhereClause(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return "WHERE " + JoinWithAnd(clauses)
}

// Placeholder trả về "$n" cho pgx
func Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

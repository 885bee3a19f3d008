package repository

import (
	"fmt"

	"bloggerum-backend/internal/domains/post"
	"bloggerum-backend/internal/shared/utils"
)

// sqlQuery là câu SQL + args đã đánh số $n
type sqlQuery struct {
	SQL  string
	Args []interface{}
}

const viewColumns = `
	p.id, p.title, p.body, p.thumbnail, p.tags, p.version, p.created_at, p.updated_at,
	u.id, u.name, u.avatar, u.bio`

const postColumns = `id, user_id, title, body, thumbnail, tags, search_words, version, created_at, updated_at`

// buildListQueries chọn strategy: search (Terms) hoặc filter (UserID/Tag).
// Trả về câu lấy trang hiện tại và câu COUNT trên cùng điều kiện.
func buildListQueries(c post.ListCriteria) (list sqlQuery, count sqlQuery) {
	if len(c.Terms) > 0 {
		return buildSearchQueries(c)
	}
	return buildFilterQueries(c)
}

// ========================================
// FILTER STRATEGY
// ========================================

func buildFilterQueries(c post.ListCriteria) (sqlQuery, sqlQuery) {
	var (
		clauses []string
		args    []interface{}
	)

	if c.UserID != nil {
		args = append(args, *c.UserID)
		clauses = append(clauses, "p.user_id = "+utils.Placeholder(len(args)))
	}
	if c.Tag != "" {
		args = append(args, c.Tag)
		clauses = append(clauses, utils.Placeholder(len(args))+" = ANY(p.tags)")
	}
	where := utils.WhereClause(clauses)

	count := sqlQuery{
		SQL:  fmt.Sprintf(`SELECT COUNT(*) FROM posts p %s`, where),
		Args: append([]interface{}{}, args...),
	}

	listArgs := append(append([]interface{}{}, args...), c.Limit, c.Offset)
	list := sqlQuery{
		SQL: fmt.Sprintf(`SELECT %s
	FROM posts p
	JOIN users u ON u.id = p.user_id
	%s
	ORDER BY p.updated_at DESC, p.id DESC
	LIMIT %s OFFSET %s`,
			viewColumns, where,
			utils.Placeholder(len(args)+1), utils.Placeholder(len(args)+2)),
		Args: listArgs,
	}
	return list, count
}

// ========================================
// SEARCH STRATEGY
// ========================================

// scoredCTE: score = số term trong query có ít nhất một search word cách <= 1 edit
const scoredCTE = `WITH scored AS (
	SELECT p.id, (
		SELECT COUNT(*)
		FROM unnest($1::text[]) AS q(term)
		WHERE EXISTS (
			SELECT 1 FROM unnest(p.search_words) AS w(word)
			WHERE levenshtein_less_equal(w.word, q.term, 1) <= 1
		)
	) AS score
	FROM posts p
)`

func buildSearchQueries(c post.ListCriteria) (sqlQuery, sqlQuery) {
	count := sqlQuery{
		SQL:  scoredCTE + `
SELECT COUNT(*) FROM scored WHERE score > 0`,
		Args: []interface{}{c.Terms},
	}

	list := sqlQuery{
		SQL: scoredCTE + `
SELECT ` + viewColumns + `
	FROM scored s
	JOIN posts p ON p.id = s.id
	JOIN users u ON u.id = p.user_id
	WHERE s.score > 0
	ORDER BY s.score DESC, p.updated_at DESC, p.id
	LIMIT $2 OFFSET $3`,
		Args: []interface{}{c.Terms, c.Limit, c.Offset},
	}
	return list, count
}

// ========================================
// SINGLE POST
// ========================================

func buildViewByIDQuery(id interface{}) sqlQuery {
	return sqlQuery{
		SQL: `SELECT ` + viewColumns + `
	FROM posts p
	JOIN users u ON u.id = p.user_id
	WHERE p.id = $1`,
		Args: []interface{}{id},
	}
}

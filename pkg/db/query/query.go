// Package query assembles filtered list statements from optional criteria.
//
// Criteria whose value is absent are skipped, present criteria are joined
// with AND in the order they were added, and every value is bound as a
// parameter. Column names and the base statement are trusted input.
package query

import (
	"reflect"
	"strings"
	"time"
)

const likeEscape = "!"

type Builder struct {
	base    string
	clauses []string
	args    []any
	orderBy []string
}

func New(base string) *Builder {
	return &Builder{base: strings.TrimSpace(base)}
}

// Eq adds "column = ?" when value is present.
func (b *Builder) Eq(column string, value any) *Builder {
	value, ok := present(value)
	if !ok {
		return b
	}
	b.clauses = append(b.clauses, column+" = ?")
	b.args = append(b.args, value)
	return b
}

// Contains adds a case-insensitive substring match of term against any of columns.
func (b *Builder) Contains(term string, columns ...string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return b
	}

	pattern := "%" + EscapeLike(term) + "%"
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, "LOWER("+column+") LIKE LOWER(?) ESCAPE '"+likeEscape+"'")
		b.args = append(b.args, pattern)
	}
	if len(parts) == 1 {
		b.clauses = append(b.clauses, parts[0])
	} else {
		b.clauses = append(b.clauses, "("+strings.Join(parts, " OR ")+")")
	}
	return b
}

// From adds an inclusive lower bound.
func (b *Builder) From(column string, t *time.Time) *Builder {
	if t == nil || t.IsZero() {
		return b
	}
	b.clauses = append(b.clauses, column+" >= ?")
	b.args = append(b.args, *t)
	return b
}

// Until adds an inclusive upper bound.
func (b *Builder) Until(column string, t *time.Time) *Builder {
	if t == nil || t.IsZero() {
		return b
	}
	b.clauses = append(b.clauses, column+" <= ?")
	b.args = append(b.args, *t)
	return b
}

func (b *Builder) OrderBy(exprs ...string) *Builder {
	for _, expr := range exprs {
		if expr = strings.TrimSpace(expr); expr != "" {
			b.orderBy = append(b.orderBy, expr)
		}
	}
	return b
}

// Build returns the statement and its arguments in placeholder order.
func (b *Builder) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString(b.base)
	if len(b.clauses) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.clauses, " AND "))
	}
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	args := make([]any, len(b.args))
	copy(args, b.args)
	return sb.String(), args
}

// EscapeLike neutralises LIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	)
	return r.Replace(s)
}

func present(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	switch v := value.(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case *string:
		if v == nil {
			return nil, false
		}
		return present(*v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, false
		}
		return present(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// zero ids are never valid keys
		return value, rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value, rv.Uint() != 0
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		return s, s != ""
	}
	return value, true
}

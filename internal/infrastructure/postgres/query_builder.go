package postgres

import (
	"fmt"
	"strings"
)

// selectBuilder arma un SELECT con filtros opcionales. Los valores siempre van como
// parámetros $n; las condiciones usan '?' y se numeran al construir.
type selectBuilder struct {
	columns string
	from    string
	where   []string
	args    []any
	order   string
	limit   int
	offset  int
}

func newSelect(columns, from string) *selectBuilder {
	return &selectBuilder{columns: columns, from: from}
}

// Where agrega una condición con AND. Cada '?' de cond consume un valor de args.
func (b *selectBuilder) Where(cond string, args ...any) *selectBuilder {
	if n := strings.Count(cond, "?"); n != len(args) {
		panic(fmt.Sprintf("selectBuilder: %d marcadores y %d valores en %q", n, len(args), cond))
	}
	b.where = append(b.where, cond)
	b.args = append(b.args, args...)
	return b
}

// WhereIf agrega la condición solo si ok.
func (b *selectBuilder) WhereIf(ok bool, cond string, args ...any) *selectBuilder {
	if ok {
		return b.Where(cond, args...)
	}
	return b
}

// OrderBy ordena por una columna de la lista blanca; una clave desconocida usa fallback.
func (b *selectBuilder) OrderBy(key string, desc bool, allowed map[string]string, fallback string) *selectBuilder {
	col, ok := allowed[key]
	if !ok {
		col = fallback
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	b.order = col + " " + dir
	return b
}

// Page fija LIMIT/OFFSET. limit <= 0 no limita.
func (b *selectBuilder) Page(limit, offset int) *selectBuilder {
	b.limit, b.offset = limit, offset
	return b
}

// Clone copia el builder para derivar otra consulta con más filtros.
func (b *selectBuilder) Clone() *selectBuilder {
	c := *b
	c.where = append([]string(nil), b.where...)
	c.args = append([]any(nil), b.args...)
	return &c
}

// SQL devuelve la consulta y sus argumentos.
func (b *selectBuilder) SQL() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.columns)
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	args := append([]any(nil), b.args...)
	pos := b.writeWhere(&sb)
	if b.order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.order)
	}
	if b.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, b.limit, b.offset)
	}
	return sb.String(), args
}

// CountSQL devuelve el COUNT(*) con los mismos filtros, sin orden ni paginación.
func (b *selectBuilder) CountSQL() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(b.from)
	b.writeWhere(&sb)
	return sb.String(), append([]any(nil), b.args...)
}

// writeWhere escribe el WHERE numerando los marcadores y devuelve la próxima posición libre.
func (b *selectBuilder) writeWhere(sb *strings.Builder) int {
	pos := 1
	for i, cond := range b.where {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString("(")
		for _, r := range cond {
			if r == '?' {
				fmt.Fprintf(sb, "$%d", pos)
				pos++
				continue
			}
			sb.WriteRune(r)
		}
		sb.WriteString(")")
	}
	return pos
}

// likePattern escapa comodines de LIKE y envuelve en %...%.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

package query

import (
	"fmt"
	"strings"
)

// condition is one typed predicate descriptor: a clause template with indexed
// placeholder verbs ($%[1]d, $%[2]d, ...) and the arguments those verbs bind.
// A template may reference the same argument more than once.
type condition struct {
	clause string
	args   []any
}

// Builder assembles a parameterized SELECT with automatic positional numbering.
// Conditions are rendered in the exact order they were added, so the generated
// text is deterministic for a given sequence of calls.
type Builder struct {
	columns string
	from    string
	conds   []condition
	orderBy string
}

// NewBuilder creates a Builder selecting the given columns from the given
// table expression (which may include joins).
func NewBuilder(columns, from string) *Builder {
	return &Builder{
		columns: columns,
		from:    from,
		conds:   make([]condition, 0, 4),
	}
}

// Where appends a predicate. The clause uses indexed fmt verbs for
// placeholders, one per argument position: "d.user_id = $%[1]d".
func (b *Builder) Where(clause string, args ...any) *Builder {
	b.conds = append(b.conds, condition{clause: clause, args: args})
	return b
}

// WhereEquals appends an equality predicate on a single column.
func (b *Builder) WhereEquals(col string, value any) *Builder {
	return b.Where(col+" = $%[1]d", value)
}

// WhereSearch appends a case-insensitive substring predicate across the given
// columns, OR-combined. The wildcard-wrapped pattern is bound once and
// referenced by every column.
func (b *Builder) WhereSearch(pattern string, cols ...string) *Builder {
	clauses := make([]string, len(cols))
	for i, col := range cols {
		clauses[i] = col + " ILIKE $%[1]d"
	}
	return b.Where("("+strings.Join(clauses, " OR ")+")", "%"+pattern+"%")
}

// WhereRaw appends a constant predicate with no bound arguments
// (date comparisons against CURRENT_DATE and the like).
func (b *Builder) WhereRaw(clause string) *Builder {
	b.conds = append(b.conds, condition{clause: clause})
	return b
}

// OrderBy sets the ORDER BY expression verbatim.
func (b *Builder) OrderBy(expr string) *Builder {
	b.orderBy = expr
	return b
}

// Build renders the final query text and the ordered bind values.
func (b *Builder) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.columns)
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)

	args := make([]any, 0, len(b.conds))
	next := 1
	for i, cond := range b.conds {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		if len(cond.args) == 0 {
			sb.WriteString(cond.clause)
			continue
		}
		idxs := make([]any, len(cond.args))
		for j := range cond.args {
			idxs[j] = next
			next++
		}
		sb.WriteString(fmt.Sprintf(cond.clause, idxs...))
		args = append(args, cond.args...)
	}

	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}

	return sb.String(), args
}

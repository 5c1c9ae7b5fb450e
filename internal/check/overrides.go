package check

import (
	"strings"

	"github.com/dm/escheck-go/internal/threshold"
)

type parsedExpr struct {
	t   *threshold.Threshold
	err error
}

// expressionTable resolves threshold expressions per entity name. A spec is
// a comma-joined list of items: a bare expression replaces the default for
// all entities, and a "name;expression" pair binds an override to one named
// entity. Expressions are parsed once up front; parse failures surface per
// lookup so one bad override cannot poison unrelated entities.
type expressionTable struct {
	def    parsedExpr
	byName map[string]parsedExpr
}

// parseExpressionTable builds an expressionTable from spec, falling back to
// fallback as the default expression when spec names no bare expression.
func parseExpressionTable(spec, fallback string) *expressionTable {
	tbl := &expressionTable{byName: make(map[string]parsedExpr)}

	defExpr := fallback
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if name, expr, ok := strings.Cut(item, ";"); ok {
			tbl.byName[name] = parseExpr(expr)
			continue
		}
		defExpr = item
	}
	tbl.def = parseExpr(defExpr)
	return tbl
}

func parseExpr(expr string) parsedExpr {
	t, err := threshold.Parse(expr)
	if err != nil {
		return parsedExpr{err: err}
	}
	return parsedExpr{t: &t}
}

// Lookup returns the threshold for the named entity, preferring its override
// over the table default.
func (t *expressionTable) Lookup(name string) (*threshold.Threshold, error) {
	if p, ok := t.byName[name]; ok {
		return p.t, p.err
	}
	return t.def.t, t.def.err
}

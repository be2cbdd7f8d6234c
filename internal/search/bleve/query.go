// Package bleve turns a field-restriction list into a bleve query.
package bleve

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/searchscope/internal/domain/fieldpath"
)

// BuildQuery matches text against each field, OR-ed together. Fields may
// carry a ^N boost suffix. An empty field list matches nothing: the caller
// may search no field at all.
func BuildQuery(text string, fields []string) query.Query {
	if len(fields) == 0 {
		return bleve.NewMatchNoneQuery()
	}

	disjuncts := make([]query.Query, 0, len(fields))
	for _, f := range fields {
		disjuncts = append(disjuncts, fieldMatch(text, f))
	}
	if len(disjuncts) == 1 {
		return disjuncts[0]
	}
	return bleve.NewDisjunctionQuery(disjuncts...)
}

// Unrestricted is a query-string query over the default field, for index
// types whose schema declares no text fields to restrict to.
func Unrestricted(text string) query.Query {
	return bleve.NewQueryStringQuery(text)
}

func fieldMatch(text, path string) *query.MatchQuery {
	name, boost, ok := fieldpath.Split(path)
	q := bleve.NewMatchQuery(text)
	q.SetField(name)
	if ok {
		q.SetBoost(boost)
	}
	return q
}

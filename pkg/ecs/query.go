package ecs

import (
	"reflect"

	"github.com/pkg/errors"
)

// Query accumulates component types to match entities against. Build errors are
// deferred until Run so that With calls chain.
type Query struct {
	entities *entities
	mask     uint64
	types    []reflect.Type
	err      error
}

// Query returns a builder matching entities of this world.
func (w *World) Query() *Query {
	return &Query{entities: w.entities}
}

// With adds the component type T to the query. Every entity returned by Run
// carries all requested component types.
func With[T any](q *Query) *Query {
	if q.err != nil {
		return q
	}

	typ := typeOf[T]()
	mask, ok := q.entities.masks[typ]
	if !ok {
		q.err = errors.Wrapf(ErrComponentNotRegistered, "unable to query %s", typ)

		return q
	}

	q.mask |= mask
	q.types = append(q.types, typ)

	return q
}

// Result holds the outcome of a query. Columns are ordered the same way the
// component types were requested, and every column is aligned with Entities.
type Result struct {
	Entities []EntityID
	Columns  [][]any

	types []reflect.Type
}

// Run matches every live entity whose signature contains all requested
// component types. Entity ids are returned in ascending order.
func (q *Query) Run() (*Result, error) {
	if q.err != nil {
		return nil, q.err
	}

	res := &Result{Entities: []EntityID{}, types: q.types}
	for row, sig := range q.entities.signatures {
		if sig != 0 && sig&q.mask == q.mask {
			res.Entities = append(res.Entities, EntityID(row))
		}
	}

	res.Columns = make([][]any, len(q.types))
	for idx, typ := range q.types {
		column := q.entities.columns[typ]
		out := make([]any, len(res.Entities))
		for pos, id := range res.Entities {
			out[pos] = column[id]
		}
		res.Columns[idx] = out
	}

	return res, nil
}

// Column extracts the typed column for T from a query result. T must have been
// requested with With on the query that produced the result.
func Column[T any](res *Result) ([]*T, error) {
	typ := typeOf[T]()
	for idx, t := range res.types {
		if t != typ {
			continue
		}

		out := make([]*T, len(res.Columns[idx]))
		for pos, boxed := range res.Columns[idx] {
			out[pos] = boxed.(*T)
		}

		return out, nil
	}

	return nil, errors.Wrapf(ErrComponentNotQueried, "unable to extract %s", typ)
}

package middleware

import (
	"context"
	"net/http"
	"strconv"

	"noteful/pkg/response"
)

// Finder loads a resource by id, returning nil when it does not exist.
type Finder[T any] func(ctx context.Context, id int64) (*T, error)

type resourceKey[T any] struct{}

// Exists looks up the {id} path value once for every route below it and
// answers 404 with notFound when nothing matches. Ids that are not integers,
// or do not fit the int4 id columns, cannot match anything and get the same
// 404 without a query.
func Exists[T any](find Finder[T], notFound string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
			if err != nil {
				response.Error(w, http.StatusNotFound, notFound)
				return
			}

			item, err := find(r.Context(), id)
			if err != nil {
				response.ServerError(w, r, err)
				return
			}
			if item == nil {
				response.Error(w, http.StatusNotFound, notFound)
				return
			}

			ctx := context.WithValue(r.Context(), resourceKey[T]{}, item)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Resource returns the item stored by Exists, or nil.
func Resource[T any](r *http.Request) *T {
	item, _ := r.Context().Value(resourceKey[T]{}).(*T)
	return item
}

package persist

import (
	"context"

	toolhandler "github.com/w-h-a/expensebot/tool_handler"
)

type storeKey struct{}

func WithStore(store Store) toolhandler.Option {
	return func(o *toolhandler.Options) {
		o.Context = context.WithValue(o.Context, storeKey{}, store)
	}
}

func StoreFrom(ctx context.Context) (Store, bool) {
	store, ok := ctx.Value(storeKey{}).(Store)
	return store, ok
}

// Package maker turns logical component names into live instances.
//
// A [Maker] owns one contract kind. Make looks the name up in the binding
// cache, resolves it through the configured locations on a miss, caches the
// binding and instantiates it. When an instance cannot be built from a cached
// binding the binding is evicted so the next call resolves afresh.
//
//	actions := maker.New[component.Action](component.ActionKind, locs, registry, bindings)
//	login, err := actions.Make(ctx, "Login")
//
// [Components] bundles the makers for actions, formatters and DAOs. Action
// misses are errors; formatter misses degrade to ok=false.
package maker

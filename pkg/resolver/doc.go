// Package resolver maps logical component names to concrete, loadable type
// identifiers.
//
// A [Registry] holds constructors keyed by qualified [TypeID]s such as
// "App.Actions.LoginAction,App.dll". Applications register their components
// at startup; there is no runtime reflection.
//
// A [Resolver] serves one contract [Kind]. Given a logical name and an
// ordered list of [Location]s it builds one candidate per location:
//
//	namespace + "." + name + kind.Suffix [+ "," + module]
//
// and returns the first candidate the registry can load. If no configured
// location matches, the kind's native location is tried once, so components
// shipped with the framework stay reachable with empty configuration.
//
//	reg := resolver.NewRegistry()
//	reg.MustRegister(resolver.Location{Namespace: "App.Actions", Module: "App.dll"},
//	    "LoginAction", resolver.Func(NewLoginAction))
//
//	locs, err := resolver.ParseLocations([]string{"App.Actions,App.dll"})
//	if err != nil {
//	    return err // errors.Is(err, resolver.ErrConfiguration)
//	}
//
//	r := resolver.New(reg, component.ActionKind)
//	id, err := r.Resolve(ctx, "Login", locs)
//	// id == "App.Actions.LoginAction,App.dll"
//
// A location string with more than one separator is a configuration error,
// never a silent skip.
package resolver

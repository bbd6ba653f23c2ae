// Package flowforge serves flows built from named components that are
// resolved at runtime through configured search locations.
//
// A component is referred to by a logical name such as "Login". For each
// contract kind (actions, formatters, DAOs) an ordered list of locations is
// searched for "<namespace>.<Name><Suffix>[,<module>]"; the framework's own
// location is tried last. Resolved bindings are cached with a lifetime, and a
// binding that fails to instantiate is evicted so the next request resolves
// again.
//
//	cfg, err := config.Load("flowforge.yaml")
//	if err != nil {
//		return err
//	}
//	rt, err := flowforge.Bootstrap(ctx, cfg,
//		flowforge.WithRegistrars(func(reg *resolver.Registry) error {
//			return reg.Register(resolver.Location{Namespace: "App.Actions", Module: "App.dll"},
//				"LoginAction", resolver.Func(NewLoginAction))
//		}),
//	)
//	if err != nil {
//		return err
//	}
//	return rt.Run()
//
// The same options given to [NewCommand] yield a CLI with serve, resolve,
// locations and reset subcommands.
package flowforge

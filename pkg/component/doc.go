// Package component defines the contracts that resolvable components satisfy.
//
// Two capabilities are consumed by the framework:
//
//   - [Action] executes against a per-call [Context] and returns an [Event]
//     token that selects the next transition in a flow.
//   - [Formatter] turns a value into a representation for one or more media
//     types and is consulted during content negotiation.
//
// Components are looked up by logical name through pkg/maker. Each lookup
// returns a fresh instance owned by the caller; nothing is pooled.
//
// # Events
//
// Events are short strings from an open vocabulary. The well-known tokens are
// exported as constants:
//
//	switch ev {
//	case component.EventPass:
//	    // continue
//	case component.EventFail:
//	    // redisplay form
//	}
//
// # Errors
//
// Actions report structured, user-facing problems through [Context.AddError].
// The collection is created on the first call and keeps insertion order, so a
// chain of actions sharing one Context produces a single ordered list.
package component

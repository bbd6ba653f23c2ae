// Package binding caches resolved component bindings.
//
// A [Binding] records which concrete type a logical name resolved to, when,
// and until when the result may be reused. [Cache] keeps at most one binding
// per name on top of any [cache.Cache] backend:
//
//	backend := cache.NewMemory[binding.Binding](cache.WithSweepSchedule("@every 1m"))
//	bc := binding.New(backend,
//	    binding.WithLifetime(10*time.Minute),
//	    binding.WithName("action"),
//	)
//
//	if b, ok := bc.Get(ctx, "Login"); ok {
//	    // reuse b.TypeID
//	}
//
// Lifetimes are absolute by default: a binding is invalid once its ExpiresAt
// passes, however often it was read. The check happens on every Get, so TTL
// semantics hold even when the backend's own sweep lags behind.
//
// Writes are best effort. A failed Put is logged with [ErrCacheWrite] and
// never reaches the caller.
package binding

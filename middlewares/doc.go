// Package middlewares provides HTTP middleware for flowforge applications.
//
//	app := flowforge.New(
//		flowforge.WithLogger("flowforge", middlewares.RequestIDExtractor()),
//		flowforge.WithMiddleware(
//			middlewares.RequestID(),
//			middlewares.Recover(),
//			middlewares.AccessLog("/health/live", "/health/ready"),
//		),
//	)
//
// RequestID must run before the others so their log records carry the ID.
// Recover converts panics raised by actions or handlers into a 500 whose
// cause is a *PanicError.
package middlewares

// Package health provides liveness and readiness HTTP handlers.
//
// Readiness runs named [Checks] concurrently under one timeout. The dao and
// redis packages expose Healthcheck closures with the [CheckFunc] signature:
//
//	checks := health.Checks{
//		"database": dao.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}
//	mux.Handle("/health/ready", health.ReadinessHandler(checks, health.WithTimeout(2*time.Second)))
//
// Responses are plain text ("OK" / "Service Unavailable") unless the client
// asks for JSON through the Accept header or ?format=json.
package health

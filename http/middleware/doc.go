/*
The middleware package defines what a middleware is in personachat and a set of basic middlewares.

The available middlewares are:
  - CORS
  - ForceHTTPS
  - InjectIPAddress
  - InjectSession
  - LogRequest
  - RateLimit
  - RecordMetrics
  - RequestID

ReportPanic is not an [Adapter]; the router wraps each handler in it directly.

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors(5, 20)
	adpts := []middleware.Adapter{
		middleware.InjectIPAddress(),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.RecordMetrics(metrics),
		middleware.InjectSession(sessionStore),
	}
*/
package middleware

// Package requestid tags HTTP requests served by the notification bridge
// with an X-Request-ID and exposes it to structured logs.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	handler := requestid.Middleware(mux)
package requestid

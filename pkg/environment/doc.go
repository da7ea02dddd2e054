// Package environment describes the deployment environment (development,
// staging or production) and carries it through context.Context.
//
// The service parses APP_ENV once with Parse, configures its logger from the
// result and attaches it to every HTTP request with Middleware, so handlers
// can decide with IsProduction whether internal error details may be shown.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	handler = environment.Middleware(env)(handler)
package environment

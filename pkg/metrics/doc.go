// Package metrics exports validation activity to Prometheus.
//
// Observer implements pvframework.Observer; pass it to the manager and mount
// its Handler on the HTTP router:
//
//	obs := metrics.New(cfg, nil)
//	m := pvframework.NewManager(pvframework.WithObserver(obs))
//	router.Handle(cfg.Path, obs.Handler())
package metrics

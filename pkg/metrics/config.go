package metrics

// Config controls the Prometheus observer.
type Config struct {
	Enabled   bool   `env:"PV_METRICS_ENABLED" envDefault:"true"`
	Namespace string `env:"PV_METRICS_NAMESPACE" envDefault:"pv"`
	Subsystem string `env:"PV_METRICS_SUBSYSTEM" envDefault:"validation"`
	Path      string `env:"PV_METRICS_PATH" envDefault:"/metrics"`
	// GoCollectors adds the Go runtime and process collectors to the registry.
	GoCollectors bool `env:"PV_METRICS_GO_COLLECTORS" envDefault:"true"`
}

/*
Package config loads emitter settings from YAML, JSON or TOML.

# Overview

Config wraps a map[string]any and provides typed accessors that return a
default when a key is missing or has the wrong type. Settings resolves the
keys the hub, the failure journal and the page helpers understand:

	name: page                  # hub name in logs, metrics and spans
	metrics: true               # record emit metrics
	metrics_backend: prometheus # otel (default) or prometheus
	tracing: true               # wrap every emit in a span
	log_level: debug            # debug, info, warn, error
	failure_store: sqlite       # "", memory or sqlite
	failure_store_path: failures.db
	scroll_throttle: 50ms       # string durations or milliseconds

# Loading

	cfg, settings, err := config.Load("emitter.toml")
	if err != nil {
	    log.Fatal(err)
	}
	hub := emitter.New(emitter.OptionsFromConfig(cfg)...)

FromYAML, FromJSON and FromTOML parse bytes directly.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config

package log

// Option applies a configuration option to config.
type Option func(config) config

// WithLevel sets the minimum level the Logger emits.
func WithLevel(level Level) Option {
	return func(cfg config) config {
		cfg.level = level

		return cfg
	}
}

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(cfg config) config {
		cfg.format = format

		return cfg
	}
}

// WithTimeLayout sets the layout used to format record timestamps.
func WithTimeLayout(layout string) Option {
	return func(cfg config) config {
		cfg.timeLayout = layout

		return cfg
	}
}

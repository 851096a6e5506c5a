package cfgloader

// Options holds configuration options for Load.
type Options struct {
	// Silent disables printing the loaded config when set to true.
	Silent bool
}

// Option is a functional option for configuring Load behavior.
type Option func(*Options)

// WithSilent disables printing the loaded config.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

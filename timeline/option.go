package timeline

type Options struct {
	keepRedundant bool
}

type Option func(o *Options)

func optionNew(option ...Option) *Options {
	opts := &Options{}
	for _, o := range option {
		o(opts)
	}

	return opts
}

// KeepRedundantOption stores points even when they restate the active value.
func KeepRedundantOption() Option {
	return func(o *Options) {
		o.keepRedundant = true
	}
}

package map2d

import "log/slog"

// Options configures a Map created by New.
type Options struct {
	// Logger receives debug records about structural changes. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger used for debug records of the map.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// ConversionOptions configures CopyWithConversion.
type ConversionOptions struct {
	// GoRoutineLimit limits the number of source rows converted concurrently.
	// Values below 1 are treated as 1, converting one row at a time. Raise it
	// only if the conversion functions are safe for concurrent use.
	GoRoutineLimit int
	// Logger is handed to the resulting map. If nil, the source map's logger
	// is used.
	Logger *slog.Logger
}

// ConversionOption mutates ConversionOptions.
type ConversionOption func(*ConversionOptions)

// WithConversionGoRoutineLimit sets ConversionOptions.GoRoutineLimit.
func WithConversionGoRoutineLimit(limit int) ConversionOption {
	return func(o *ConversionOptions) {
		o.GoRoutineLimit = limit
	}
}

// WithConversionLogger sets the logger of the converted map.
func WithConversionLogger(logger *slog.Logger) ConversionOption {
	return func(o *ConversionOptions) {
		o.Logger = logger
	}
}

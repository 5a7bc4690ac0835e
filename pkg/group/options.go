package group

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-storefront/pkg/preview"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	name        string
	initial     int
	reader      *preview.Reader
	logger      *zap.Logger
	onChange    func()
	onReadError func(*ReadError)
}

func defaultOptions() options {
	return options{
		reader: preview.NewReader(),
		logger: zap.NewNop(),
	}
}

// WithName labels the store in logs and read errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithInitial seeds the store with n blank records.
func WithInitial(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.initial = n
		}
	}
}

// WithReader overrides the preview reader used by SetImage.
func WithReader(reader *preview.Reader) Option {
	return func(o *options) {
		if reader != nil {
			o.reader = reader
		}
	}
}

// WithLogger attaches a logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithOnChange registers a callback invoked after every mutation that changed
// the group. It runs outside the store lock, so it may call Snapshot.
func WithOnChange(fn func()) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

// WithOnReadError registers a callback for failed SetImage reads. The target
// record is left as it was.
func WithOnReadError(fn func(*ReadError)) Option {
	return func(o *options) {
		o.onReadError = fn
	}
}

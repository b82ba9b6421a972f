package govhdl

import (
	"log/slog"

	"github.com/hdldoc/govhdl/internal/parser"
	"github.com/hdldoc/govhdl/vhdl"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, rule matches).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// Option configures New.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	arrayTypes []string
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithArrayTypes registers additional array type names on top of the
// standard-library defaults. Comparison is case-insensitive.
func WithArrayTypes(names ...string) Option {
	return func(c *config) { c.arrayTypes = append(c.arrayTypes, names...) }
}

// Parse extracts documentation objects from VHDL source text.
//
// Example:
//
//	objects, err := govhdl.Parse(source)
//	for _, obj := range objects {
//	    if fn, ok := obj.(*govhdl.Function); ok {
//	        fmt.Println(fn.Prototype())
//	    }
//	}
//
// For repeated extraction, array-type tracking, or file caching, use an
// Extractor.
func Parse(text string) ([]vhdl.Object, error) {
	p, err := parser.New(nil)
	if err != nil {
		return nil, err
	}
	return p.Parse(text)
}

// ParseFile extracts documentation objects from a VHDL source file.
// Non-UTF-8 files are decoded as ISO 8859-1.
func ParseFile(path string) ([]vhdl.Object, error) {
	text, err := readFileText(path)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// componentLogger derives a child logger tagged with the component name.
func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

package govhdl

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/hdldoc/govhdl/internal/parser"
	"github.com/hdldoc/govhdl/internal/types"
	"github.com/hdldoc/govhdl/vhdl"
)

// defaultArrayTypes are the array types every extractor knows about without
// registration: the std_logic_1164, numeric_std and built-in vector types.
var defaultArrayTypes = []string{
	"std_ulogic_vector",
	"std_logic_vector",
	"signed",
	"unsigned",
	"bit_vector",
}

// Extractor extracts documentation objects from VHDL sources, caching
// per-file results and tracking which type names denote arrays.
//
// An Extractor is not safe for concurrent use; each goroutine should hold
// its own.
type Extractor struct {
	parser     *parser.Parser
	arrayTypes map[string]struct{} // lowercased type names
	cache      map[string][]vhdl.Object

	types.Logger
}

// New creates an Extractor.
//
// Example:
//
//	ex, err := govhdl.New(
//	    govhdl.WithLogger(slog.Default()),
//	    govhdl.WithArrayTypes("word_array"),
//	)
func New(opts ...Option) (*Extractor, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	p, err := parser.New(componentLogger(cfg.logger, "parser"))
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		parser:     p,
		arrayTypes: make(map[string]struct{}),
		cache:      make(map[string][]vhdl.Object),
		Logger:     types.Logger{L: cfg.logger},
	}
	e.AddArrayTypes(defaultArrayTypes...)
	e.AddArrayTypes(cfg.arrayTypes...)
	return e, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Extractor {
	e, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// ExtractObjects extracts all documentation objects from source text and
// registers any array types the text declares.
func (e *Extractor) ExtractObjects(text string) ([]vhdl.Object, error) {
	objects, err := e.parser.Parse(text)
	if err != nil {
		return nil, err
	}
	e.RegisterArrayTypes(objects)
	return objects, nil
}

// ExtractObjectsFromFile is ExtractObjects for a file path. Results are
// memoized by path: a second call returns the cached objects without
// re-reading the file. Non-UTF-8 files are decoded as ISO 8859-1.
func (e *Extractor) ExtractObjectsFromFile(path string) ([]vhdl.Object, error) {
	if objects, ok := e.cache[path]; ok {
		e.Log(slog.LevelDebug, "cache hit", slog.String("path", path))
		return objects, nil
	}

	text, err := readFileText(path)
	if err != nil {
		return nil, err
	}
	objects, err := e.parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	e.cache[path] = objects
	e.RegisterArrayTypes(objects)
	e.Log(slog.LevelDebug, "extracted file",
		slog.String("path", path),
		slog.Int("objects", len(objects)))
	return objects, nil
}

// ExtractComponents extracts only the component declarations from source
// text. Array types declared by the text are still registered.
func (e *Extractor) ExtractComponents(text string) ([]*vhdl.Component, error) {
	objects, err := e.ExtractObjects(text)
	if err != nil {
		return nil, err
	}
	return components(objects), nil
}

// ExtractComponentsFromFile is ExtractComponents for a file path, with the
// same memoization as ExtractObjectsFromFile.
func (e *Extractor) ExtractComponentsFromFile(path string) ([]*vhdl.Component, error) {
	objects, err := e.ExtractObjectsFromFile(path)
	if err != nil {
		return nil, err
	}
	return components(objects), nil
}

func components(objects []vhdl.Object) []*vhdl.Component {
	var comps []*vhdl.Component
	for _, obj := range objects {
		if c, ok := obj.(*vhdl.Component); ok {
			comps = append(comps, c)
		}
	}
	return comps
}

// IsArrayType reports whether the named type is a known array type.
// The comparison is case-insensitive and ignores any trailing range
// suffix, so "Std_Logic_Vector(7 downto 0)" matches.
func (e *Extractor) IsArrayType(name string) bool {
	_, ok := e.arrayTypes[arrayTypeKey(name)]
	return ok
}

// AddArrayTypes registers type names as array types directly.
func (e *Extractor) AddArrayTypes(names ...string) {
	for _, name := range names {
		e.arrayTypes[arrayTypeKey(name)] = struct{}{}
	}
}

// ArrayTypes returns the known array type names, lowercased and sorted.
func (e *Extractor) ArrayTypes() []string {
	names := make([]string, 0, len(e.arrayTypes))
	for name := range e.arrayTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterArrayTypes scans extracted objects for array type declarations:
// types classified as arrays are registered directly, and subtypes whose
// chain of base types ends at a known array type inherit the property.
// Registration is order-dependent across calls: a subtype of a type that
// becomes known only later is not revisited.
func (e *Extractor) RegisterArrayTypes(objects []vhdl.Object) {
	subtypes := make(map[string]string)
	for _, obj := range objects {
		switch o := obj.(type) {
		case *vhdl.Type:
			if o.Class() == vhdl.ClassArray {
				e.AddArrayTypes(o.Name())
			}
		case *vhdl.Subtype:
			subtypes[arrayTypeKey(o.Name())] = arrayTypeKey(o.BaseType())
		}
	}

	for name, base := range subtypes {
		// Follow the subtype chain within this batch. The visit set
		// terminates self-referential chains, which are illegal VHDL but
		// must not hang us.
		visited := map[string]struct{}{name: {}}
		for {
			next, ok := subtypes[base]
			if !ok {
				break
			}
			if _, seen := visited[base]; seen {
				break
			}
			visited[base] = struct{}{}
			base = next
		}
		if _, ok := e.arrayTypes[base]; ok {
			e.arrayTypes[name] = struct{}{}
		}
	}
}

// RegisterFilesArrayTypes extracts each file (through the cache) so its
// array type declarations are registered.
func (e *Extractor) RegisterFilesArrayTypes(paths []string) error {
	for _, path := range paths {
		if _, err := e.ExtractObjectsFromFile(path); err != nil {
			return err
		}
	}
	return nil
}

// RegisterSourceArrayTypes extracts every file the source lists so its
// array type declarations are registered.
func (e *Extractor) RegisterSourceArrayTypes(src Source) error {
	paths, err := src.ListFiles()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if _, ok := e.cache[path]; ok {
			continue
		}
		text, err := readSourceText(src, path)
		if err != nil {
			return err
		}
		objects, err := e.parser.Parse(text)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		e.cache[path] = objects
		e.RegisterArrayTypes(objects)
	}
	return nil
}

// arrayTypeKey normalizes a type name for registry lookup: lowercased,
// truncated at the first character that cannot appear in an identifier.
func arrayTypeKey(name string) string {
	name = strings.TrimSpace(name)
	for i, r := range name {
		if r != '_' && !isAlnum(r) {
			name = name[:i]
			break
		}
	}
	return strings.ToLower(name)
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func readSourceText(src Source, path string) (string, error) {
	f, err := src.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return decodeText(content), nil
}

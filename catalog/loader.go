package catalog

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/jmgilman/go/catastrophic"
	"gopkg.in/yaml.v3"
)

// Loader reads catalog files from a filesystem.
// It holds a CUE context and is not safe for concurrent use.
type Loader struct {
	registry *catastrophic.Registry
	fs       billy.Filesystem
	cueCtx   *cue.Context
	schema   cue.Value
}

// NewLoader creates a Loader reading from filesystem and reporting failures
// through registry.
func NewLoader(registry *catastrophic.Registry, filesystem billy.Filesystem) *Loader {
	cueCtx := cuecontext.New()
	schema := cueCtx.CompileString(schemaSource, cue.Filename("catalog.cue")).
		LookupPath(cue.ParsePath(schemaDefinition))

	return &Loader{
		registry: registry,
		fs:       filesystem,
		cueCtx:   cueCtx,
		schema:   schema,
	}
}

// LoadFile loads a single catalog file.
// The format is chosen by extension: .yaml and .yml are decoded as YAML,
// .cue and .json are compiled as CUE.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, l.unreadable(path, err)
	}

	data, err := util.ReadFile(l.fs, path)
	if err != nil {
		return nil, l.unreadable(path, err)
	}

	doc, err := l.Decode(path, data)
	if err != nil {
		return nil, err
	}

	l.registry.Logger().Debug("loaded error catalog",
		"path", path,
		"categories", len(doc.Categories),
	)
	return doc, nil
}

// LoadDir loads every catalog file directly inside dir.
// Files are read in name order and their categories concatenated.
// Files with other extensions and subdirectories are ignored.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, l.unreadable(dir, err)
	}

	infos, err := l.fs.ReadDir(dir)
	if err != nil {
		return nil, l.unreadable(dir, err)
	}

	var names []string
	for _, info := range infos {
		if info.IsDir() || !supported(info.Name()) {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)

	merged := &Document{Categories: []CategoryDocument{}}
	for _, name := range names {
		doc, err := l.LoadFile(ctx, l.fs.Join(dir, name))
		if err != nil {
			return nil, err
		}
		merged.Categories = append(merged.Categories, doc.Categories...)
	}
	return merged, nil
}

// LoadAndRegister loads a catalog file and registers its categories.
func (l *Loader) LoadAndRegister(ctx context.Context, path string) (map[string]catastrophic.Factories[string], error) {
	doc, err := l.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return Register(l.registry, doc)
}

// Decode decodes and validates catalog data. The path selects the format and
// is used in error reports.
func (l *Loader) Decode(path string, data []byte) (*Document, error) {
	switch extension(path) {
	case ".yaml", ".yml":
		return l.decodeYAML(path, data)
	case ".cue", ".json":
		return l.decodeCUE(path, data)
	default:
		return nil, l.invalid(path, fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path)))
	}
}

// decodeYAML decodes YAML into a generic value, unifies it with the schema and
// decodes the result. Fields missing from the file stay missing, so the schema
// rejects them exactly as it does for CUE and JSON.
func (l *Loader) decodeYAML(path string, data []byte) (*Document, error) {
	var raw any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return nil, l.invalid(path, err)
	}

	value := l.cueCtx.Encode(raw)
	if err := value.Err(); err != nil {
		return nil, l.invalid(path, err)
	}

	unified, err := l.validate(value)
	if err != nil {
		return nil, l.invalid(path, err)
	}

	var doc Document
	if err := unified.Decode(&doc); err != nil {
		return nil, l.invalid(path, err)
	}
	doc.normalize()
	return &doc, nil
}

// decodeCUE compiles CUE (or JSON), unifies it with the schema and decodes it.
func (l *Loader) decodeCUE(path string, data []byte) (*Document, error) {
	value := l.cueCtx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, l.invalid(path, err)
	}

	unified, err := l.validate(value)
	if err != nil {
		return nil, l.invalid(path, err)
	}

	var doc Document
	if err := unified.Decode(&doc); err != nil {
		return nil, l.invalid(path, err)
	}
	doc.normalize()
	return &doc, nil
}

// validate unifies value with the schema and requires a concrete result.
func (l *Loader) validate(value cue.Value) (cue.Value, error) {
	unified := l.schema.Unify(value)
	if err := unified.Err(); err != nil {
		return cue.Value{}, err
	}
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return cue.Value{}, err
	}
	return unified, nil
}

// supported reports whether path has a catalog extension.
func supported(path string) bool {
	switch extension(path) {
	case ".yaml", ".yml", ".cue", ".json":
		return true
	}
	return false
}

// extension returns the lower-cased extension of path.
func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

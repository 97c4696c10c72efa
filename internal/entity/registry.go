// Package entity serves typed club records over a uniform REST surface:
// list, get, filter, create, bulk create, update and delete by entity name.
package entity

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm/schema"

	"github.com/DhavalSuthar-24/clubhouse/internal/models"
)

// Validatable records get a cross-field check after binding-tag validation.
type Validatable interface {
	Validate() error
}

// Definition describes one registered entity type.
type Definition struct {
	Name    string
	Table   string
	model   reflect.Type
	columns map[string]string
}

// New returns a pointer to a zero record.
func (d *Definition) New() models.Record {
	return reflect.New(d.model).Interface().(models.Record)
}

// NewSlice returns a pointer to an empty slice of records, ready for Find.
func (d *Definition) NewSlice() interface{} {
	return reflect.New(reflect.SliceOf(d.model)).Interface()
}

// Column resolves a JSON field name, Go field name or column name to the
// column name.
func (d *Definition) Column(field string) (string, bool) {
	col, ok := d.columns[strings.ToLower(strings.TrimSpace(field))]
	return col, ok
}

type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Define registers T under name. It panics on a duplicate name or a model
// gorm cannot parse, both of which are programming errors.
func Define[T any, PT interface {
	*T
	models.Record
}](r *Registry, name string) *Definition {
	var zero T
	s, err := schema.Parse(&zero, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		panic(fmt.Sprintf("entity %s: %v", name, err))
	}

	def := &Definition{
		Name:    name,
		Table:   s.Table,
		model:   reflect.TypeOf(zero),
		columns: make(map[string]string),
	}
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		def.columns[strings.ToLower(f.DBName)] = f.DBName
		def.columns[strings.ToLower(f.Name)] = f.DBName
		if tag := strings.Split(f.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
			def.columns[strings.ToLower(tag)] = f.DBName
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.defs[name]; dup {
		panic(fmt.Sprintf("entity %s registered twice", name))
	}
	r.defs[name] = def
	return def
}

func (r *Registry) Lookup(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for n := range r.defs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Models returns one zero record per entity, for AutoMigrate.
func (r *Registry) Models() []interface{} {
	out := make([]interface{}, 0, len(r.defs))
	for _, n := range r.Names() {
		def, _ := r.Lookup(n)
		out = append(out, def.New())
	}
	return out
}

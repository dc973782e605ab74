package registry

import (
	"errors"
	"fmt"
	"html/template"
	"sync"

	"videepat_foods/internal/domain/models"
)

var (
	ErrIncompleteDefinition = errors.New("block definition is incomplete")
	ErrDuplicateType        = errors.New("block type already registered")
)

// Context exposes what block renderers may read besides the block itself.
type Context interface {
	// SanitizeHTML cleans user supplied markup before it is emitted.
	SanitizeHTML(input string) string
	// Products returns the catalog items a product list block should show.
	Products(list models.ProductListPayload) []models.Product
}

// RenderFunc renders the inner markup of a block. It must not mutate the block.
type RenderFunc func(ctx Context, block models.Block) template.HTML

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldURL      FieldKind = "url"
	FieldMedia    FieldKind = "media"
	FieldSelect   FieldKind = "select"
	FieldNumber   FieldKind = "number"
)

// Field одно поле панели свойств
type Field struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Options []string  `json:"options,omitempty"`
}

// Definition связывает тип блока с его тремя гранями: содержимым
// по умолчанию, полями редактора и функцией рендера.
type Definition struct {
	Type    models.BlockType
	Label   string
	Default func() models.Payload
	Fields  []Field
	Render  RenderFunc
}

type Registry struct {
	mu    sync.RWMutex
	defs  map[models.BlockType]Definition
	order []models.BlockType
}

func New() *Registry {
	return &Registry{defs: make(map[models.BlockType]Definition)}
}

// Register adds a definition. All three facets are required and a type
// can be registered only once.
func (r *Registry) Register(def Definition) error {
	if def.Type == "" || def.Default == nil || def.Render == nil || len(def.Fields) == 0 {
		return fmt.Errorf("%w: %q", ErrIncompleteDefinition, def.Type)
	}

	sample := def.Default()
	if sample == nil || sample.BlockType() != def.Type {
		return fmt.Errorf("%w: %q default payload has wrong type", ErrIncompleteDefinition, def.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defs[def.Type]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateType, def.Type)
	}
	r.defs[def.Type] = def
	r.order = append(r.order, def.Type)

	return nil
}

func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

func (r *Registry) Definition(t models.BlockType) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[t]
	return def, ok
}

// DefaultPayload returns a fresh default payload; callers own the result.
func (r *Registry) DefaultPayload(t models.BlockType) (models.Payload, error) {
	def, ok := r.Definition(t)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownBlockType, t)
	}
	return def.Default(), nil
}

func (r *Registry) Fields(t models.BlockType) []Field {
	def, ok := r.Definition(t)
	if !ok {
		return nil
	}
	return append([]Field(nil), def.Fields...)
}

// Render dispatches to the block's renderer. Unknown types render a placeholder.
func (r *Registry) Render(ctx Context, block models.Block) template.HTML {
	def, ok := r.Definition(block.Type)
	if !ok || block.Content == nil {
		return placeholder(block.Type, "")
	}
	return def.Render(ctx, block)
}

// Types lists registered types in registration order.
func (r *Registry) Types() []models.BlockType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.BlockType(nil), r.order...)
}

// Default returns a registry holding the built-in block set.
func Default() *Registry {
	r := New()
	for _, def := range builtins() {
		r.MustRegister(def)
	}
	return r
}

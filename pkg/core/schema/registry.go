package schema

import (
	"sync"
)

// Registry creates descriptors by type code or name.
// Descriptors it creates inherit its null/empty policy.
type Registry struct {
	mu             sync.RWMutex
	nullsDifferent bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithNullsAndEmptyAreDifferent sets the null/empty policy of created descriptors.
func WithNullsAndEmptyAreDifferent(different bool) RegistryOption {
	return func(r *Registry) { r.nullsDifferent = different }
}

// NewRegistry creates a registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetNullsAndEmptyAreDifferent changes the policy for descriptors created afterwards.
func (r *Registry) SetNullsAndEmptyAreDifferent(different bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nullsDifferent = different
}

// New creates a descriptor of type t. Use -1 for an unconstrained length or precision.
func (r *Registry) New(t SemanticType, name string, length, precision int) (*Meta, error) {
	if !t.Valid() || variants[t] == nil {
		return nil, &UnknownTypeError{Code: int(t)}
	}
	m := newMeta(t, name, length, precision)

	r.mu.RLock()
	m.cfg.nullsDifferent = r.nullsDifferent
	r.mu.RUnlock()

	return m, nil
}

// CreateByCode creates an unnamed descriptor from a persisted type code.
func (r *Registry) CreateByCode(code int) (*Meta, error) {
	t := SemanticType(code)
	if !t.Valid() {
		return nil, &UnknownTypeError{Code: code}
	}
	return r.New(t, "", -1, -1)
}

// CreateByName creates an unnamed descriptor from a type name such as "BigNumber".
func (r *Registry) CreateByName(name string) (*Meta, error) {
	t, err := ParseSemanticType(name)
	if err != nil {
		return nil, err
	}
	return r.New(t, "", -1, -1)
}

// Types lists every creatable type in registry order.
func Types() []SemanticType {
	out := make([]SemanticType, len(registryOrder))
	copy(out, registryOrder)
	return out
}

// TypeNames lists the persisted names of all types in registry order.
func TypeNames() []string {
	names := make([]string, len(registryOrder))
	for i, t := range registryOrder {
		names[i] = t.String()
	}
	return names
}

// TypeDescriptions lists the user-facing type descriptions from msgs in registry order.
func TypeDescriptions(msgs Messages) []string {
	out := make([]string, len(registryOrder))
	for i, t := range registryOrder {
		out[i] = msgs.Text("type." + t.String())
	}
	return out
}

// CloneFieldConversion creates a descriptor of target that keeps the formatting of d:
// name, sizes, mask, symbols, locale, trim, storage and collation. With TypeString
// the result renders the column's values exactly as d formats them.
func (r *Registry) CloneFieldConversion(d Descriptor, target SemanticType) (*Meta, error) {
	m, err := r.New(target, d.Name(), d.Length(), d.Precision())
	if err != nil {
		return nil, err
	}
	src, ok := d.(*Meta)
	if !ok {
		m.cfg.trim = d.TrimType()
		m.cfg.sortDir = d.SortDirection()
		m.cfg.nullsDifferent = d.NullsAndEmptyAreDifferent()
		m.cfg.mask = d.ConversionMask()
		return m, nil
	}
	m.cfg = src.cfg
	if src.cfg.storageMeta != nil {
		m.cfg.storageMeta = src.cfg.storageMeta.Clone()
	}
	if target != TypeString {
		m.cfg.collation = Collation{}
		m.cfg.caseInsensitive = false
	}
	return m, nil
}

// DescriptorFromColumn builds a descriptor for a cursor column using hook's
// type mapping. A nil hook uses DefaultTypeMapping.
func (r *Registry) DescriptorFromColumn(hook DialectHook, col ColumnMeta) (*Meta, error) {
	mapping := mapColumn(hook, col)
	m, err := r.New(mapping.Type, col.Name, mapping.Length, mapping.Precision)
	if err != nil {
		dialect := DialectGeneric
		if hook != nil {
			dialect = hook.Dialect()
		}
		return nil, &CursorExtractionError{SQLType: col.SQLType, TypeName: col.TypeName,
			Err: &ValidationError{Field: col.Name, Message: "no type mapping in dialect " + dialect.String(), Value: col.TypeName}}
	}
	m.SetOriginalColumn(col)
	return m, nil
}

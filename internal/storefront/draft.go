package storefront

import "github.com/xenking/storefront-checkout/internal/dom"

// Draft is the order payload: form fields flattened into an object. A later
// field with the same name overwrites the earlier value but keeps its
// position.
type Draft struct {
	keys   []string
	values map[string]string
}

// NewDraft flattens serialized form fields.
func NewDraft(fields []dom.Field) *Draft {
	d := &Draft{values: make(map[string]string, len(fields))}
	for _, f := range fields {
		d.Set(f.Name, f.Value)
	}
	return d
}

// Set stores a field value.
func (d *Draft) Set(name, value string) {
	if _, ok := d.values[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.values[name] = value
}

// Get returns a field value.
func (d *Draft) Get(name string) (string, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Len returns the number of distinct fields.
func (d *Draft) Len() int { return len(d.keys) }

// Each calls fn for every field in insertion order.
func (d *Draft) Each(fn func(name, value string)) {
	for _, k := range d.keys {
		fn(k, d.values[k])
	}
}

package dom

import (
	"slices"
	"sync"
)

var _ Document = (*Memory)(nil)

// Memory is an in-memory Document. It is safe for concurrent use; handles
// resolve their element by id on every call, so a handle keeps working after
// Morph swaps the element underneath it.
type Memory struct {
	mu    sync.RWMutex
	elems map[string]*state
	order []string
	forms map[string]string // element id -> form id
	meta  map[string]string
}

type state struct {
	id          string
	name        string
	kind        Kind
	text        string
	value       string
	placeholder string
	visible     bool
	required    bool
	options     []Option
	selected    int
	children    []*Node
}

// ElementOption configures an element added to Memory.
type ElementOption func(*state)

// WithName sets the form control name.
func WithName(name string) ElementOption { return func(s *state) { s.name = name } }

// WithText sets the initial text content.
func WithText(text string) ElementOption { return func(s *state) { s.text = text } }

// WithValue sets the initial value (or selected option for selects).
func WithValue(value string) ElementOption {
	return func(s *state) {
		s.value = value
		if s.kind == KindSelect {
			s.selected = indexOf(s.options, value)
		}
	}
}

// WithOptions sets select options; the first one is selected.
func WithOptions(options ...Option) ElementOption {
	return func(s *state) {
		s.options = slices.Clone(options)
		s.selected = 0
		if len(options) == 0 {
			s.selected = -1
		}
	}
}

// WithPlaceholder sets the input placeholder.
func WithPlaceholder(p string) ElementOption { return func(s *state) { s.placeholder = p } }

// Hidden starts the element hidden.
func Hidden() ElementOption { return func(s *state) { s.visible = false } }

// Required marks the control as required.
func Required() ElementOption { return func(s *state) { s.required = true } }

// NewMemory returns an empty document.
func NewMemory() *Memory {
	return &Memory{
		elems: make(map[string]*state),
		forms: make(map[string]string),
		meta:  make(map[string]string),
	}
}

// Add appends an element to the document, replacing any element with the
// same id in place.
func (m *Memory) Add(id string, kind Kind, opts ...ElementOption) Element {
	s := &state{id: id, kind: kind, visible: true, selected: -1}
	for _, o := range opts {
		o(s)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.elems[id]; !ok {
		m.order = append(m.order, id)
	}
	m.elems[id] = s
	return &handle{doc: m, id: id}
}

// AddToForm registers elements as members of a form. FormData serializes
// them in document order.
func (m *Memory) AddToForm(formID string, ids ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.forms[id] = formID
	}
}

// SetMeta sets a <meta> tag.
func (m *Memory) SetMeta(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[name] = content
}

// Element implements Document.
func (m *Memory) Element(id string) (Element, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.elems[id]; !ok {
		return nil, false
	}
	return &handle{doc: m, id: id}, true
}

// Morph implements Document.
func (m *Memory) Morph(id string, kind Kind) (Element, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.elems[id]
	if !ok {
		return nil, false
	}
	m.elems[id] = &state{
		id:       id,
		name:     old.name,
		kind:     kind,
		visible:  true,
		selected: -1,
	}
	return &handle{doc: m, id: id}, true
}

// FormData implements Document.
func (m *Memory) FormData(formID string) []Field {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Field
	for _, id := range m.order {
		if m.forms[id] != formID {
			continue
		}
		s := m.elems[id]
		switch s.kind {
		case KindInput, KindHidden, KindSelect:
			if s.name != "" {
				out = append(out, Field{Name: s.name, Value: s.currentValue()})
			}
		case KindContainer:
			for _, n := range FindAll(s.children, (*Node).IsControl) {
				v := n.Attr("value")
				if n.Tag == "textarea" {
					v = n.Text
				}
				out = append(out, Field{Name: n.Attr("name"), Value: v})
			}
		}
	}
	return out
}

// Meta implements Document.
func (m *Memory) Meta(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.meta[name]
	return v, ok
}

func (s *state) currentValue() string {
	if s.kind != KindSelect {
		return s.value
	}
	if s.selected < 0 || s.selected >= len(s.options) {
		return ""
	}
	return s.options[s.selected].Value
}

func indexOf(options []Option, value string) int {
	return slices.IndexFunc(options, func(o Option) bool { return o.Value == value })
}

// handle is the Element implementation for Memory.
type handle struct {
	doc *Memory
	id  string
}

func (h *handle) read(fn func(s *state)) {
	h.doc.mu.RLock()
	defer h.doc.mu.RUnlock()
	if s, ok := h.doc.elems[h.id]; ok {
		fn(s)
	}
}

func (h *handle) write(fn func(s *state)) {
	h.doc.mu.Lock()
	defer h.doc.mu.Unlock()
	if s, ok := h.doc.elems[h.id]; ok {
		fn(s)
	}
}

func (h *handle) ID() string { return h.id }

func (h *handle) Name() (name string) {
	h.read(func(s *state) { name = s.name })
	return name
}

func (h *handle) Kind() (kind Kind) {
	h.read(func(s *state) { kind = s.kind })
	return kind
}

func (h *handle) Text() (text string) {
	h.read(func(s *state) { text = s.text })
	return text
}

func (h *handle) SetText(text string) { h.write(func(s *state) { s.text = text }) }

func (h *handle) Value() (value string) {
	h.read(func(s *state) { value = s.currentValue() })
	return value
}

func (h *handle) SetValue(value string) {
	h.write(func(s *state) {
		if s.kind == KindSelect {
			s.selected = indexOf(s.options, value)
			return
		}
		s.value = value
	})
}

func (h *handle) Visible() (visible bool) {
	h.read(func(s *state) { visible = s.visible })
	return visible
}

func (h *handle) SetVisible(visible bool) { h.write(func(s *state) { s.visible = visible }) }

func (h *handle) Required() (required bool) {
	h.read(func(s *state) { required = s.required })
	return required
}

func (h *handle) SetRequired(required bool) { h.write(func(s *state) { s.required = required }) }

func (h *handle) Placeholder() (p string) {
	h.read(func(s *state) { p = s.placeholder })
	return p
}

func (h *handle) SetPlaceholder(p string) { h.write(func(s *state) { s.placeholder = p }) }

func (h *handle) Options() (options []Option) {
	h.read(func(s *state) { options = slices.Clone(s.options) })
	return options
}

func (h *handle) SetOptions(options []Option) {
	h.write(func(s *state) {
		s.options = slices.Clone(options)
		s.selected = 0
		if len(options) == 0 {
			s.selected = -1
		}
	})
}

func (h *handle) SelectedLabel() (label string, ok bool) {
	h.read(func(s *state) {
		if s.selected >= 0 && s.selected < len(s.options) {
			label, ok = s.options[s.selected].Label, true
		}
	})
	return label, ok
}

func (h *handle) Children() (children []*Node) {
	h.read(func(s *state) {
		children = make([]*Node, len(s.children))
		for i, c := range s.children {
			children[i] = c.Clone()
		}
	})
	return children
}

func (h *handle) SetChildren(children ...*Node) {
	h.write(func(s *state) {
		s.children = make([]*Node, len(children))
		for i, c := range children {
			s.children[i] = c.Clone()
		}
	})
}

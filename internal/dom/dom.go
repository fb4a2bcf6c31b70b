// Package dom describes the small slice of a browser document the checkout
// cascade touches: elements addressed by id, select options, visibility and
// required flags, and container nodes that are rebuilt wholesale.
//
// Components never reach for globals; they receive a Document and a map of
// element ids, so tests and headless drivers can substitute Memory.
package dom

// Kind is the element flavour, which decides where its value lives.
type Kind int

const (
	// KindText is a text-bearing element (span, div, heading).
	KindText Kind = iota
	// KindInput is a free-text form input.
	KindInput
	// KindSelect is a form select holding a list of options.
	KindSelect
	// KindHidden is a hidden form input.
	KindHidden
	// KindContainer holds a rebuilt node tree (payment grid, sub-forms).
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInput:
		return "input"
	case KindSelect:
		return "select"
	case KindHidden:
		return "hidden"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Option is a single select option.
type Option struct {
	Value string
	Label string
}

// Field is one serialized form entry.
type Field struct {
	Name  string
	Value string
}

// Element is a live handle on a document element. Implementations must be
// safe for concurrent reads, although writers are expected to run on the UI
// loop only.
type Element interface {
	ID() string
	Name() string
	Kind() Kind

	Text() string
	SetText(text string)

	// Value returns the input value, or the selected option value for selects.
	Value() string
	// SetValue sets the input value, or selects the matching option. Selecting
	// a value that has no option clears the selection.
	SetValue(value string)

	Visible() bool
	SetVisible(visible bool)

	Required() bool
	SetRequired(required bool)

	Placeholder() string
	SetPlaceholder(placeholder string)

	Options() []Option
	// SetOptions replaces every option and selects the first one.
	SetOptions(options []Option)
	// SelectedLabel returns the label of the selected option, if any.
	SelectedLabel() (string, bool)

	Children() []*Node
	SetChildren(children ...*Node)
}

// Document resolves elements by id.
type Document interface {
	Element(id string) (Element, bool)
	// Morph replaces the element with a fresh one of the given kind, keeping
	// its id, name and form membership (the replaceWith idiom).
	Morph(id string, kind Kind) (Element, bool)
	// FormData serializes every named control of the form in document order.
	FormData(formID string) []Field
	// Meta returns the content of a <meta name=...> tag.
	Meta(name string) (string, bool)
}

package validator

// Cell is a single-valued field.
type Cell[T any] struct {
	v        *Validator
	name     string
	required bool
	guarded  bool
	set      bool
	value    T
}

func Required[T any](v *Validator, name string, opts ...FieldOption) *Cell[T] {
	return newCell[T](v, name, true, opts)
}

func Optional[T any](v *Validator, name string, opts ...FieldOption) *Cell[T] {
	return newCell[T](v, name, false, opts)
}

func newCell[T any](v *Validator, name string, required bool, opts []FieldOption) *Cell[T] {
	options := buildOptions(opts)
	c := &Cell[T]{
		v:        v,
		name:     name,
		required: required,
		guarded:  options.guarded,
	}
	v.add(c)
	return c
}

func (c *Cell[T]) Set(value T) {
	if c.set && c.guarded {
		c.v.Fail(c.name, ErrDuplicateFieldWrite)
		return
	}
	c.value = value
	c.set = true
}

// Update writes fn applied to the current value (the zero value when unset).
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.value))
}

func (c *Cell[T]) Get() (T, bool) {
	return c.value, c.set
}

func (c *Cell[T]) Value() T {
	return c.value
}

func (c *Cell[T]) IsSet() bool {
	return c.set
}

func (c *Cell[T]) fieldName() string { return c.name }
func (c *Cell[T]) isSet() bool       { return c.set }
func (c *Cell[T]) isRequired() bool  { return c.required }

// List is a list-valued field; it counts as written once it holds an element.
type List[T any] struct {
	v        *Validator
	name     string
	required bool
	guarded  bool
	assigned bool
	items    []T
}

func RequiredList[T any](v *Validator, name string, opts ...FieldOption) *List[T] {
	return newList[T](v, name, true, opts)
}

func OptionalList[T any](v *Validator, name string, opts ...FieldOption) *List[T] {
	return newList[T](v, name, false, opts)
}

func newList[T any](v *Validator, name string, required bool, opts []FieldOption) *List[T] {
	options := buildOptions(opts)
	l := &List[T]{
		v:        v,
		name:     name,
		required: required,
		guarded:  options.guarded,
	}
	v.add(l)
	return l
}

func (l *List[T]) Append(items ...T) {
	l.items = append(l.items, items...)
}

// Set replaces the whole list. On a guarded list only the first Set is accepted.
func (l *List[T]) Set(items []T) {
	if l.assigned && l.guarded {
		l.v.Fail(l.name, ErrDuplicateFieldWrite)
		return
	}
	l.items = items
	l.assigned = true
}

func (l *List[T]) Items() []T {
	return l.items
}

func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) fieldName() string { return l.name }
func (l *List[T]) isSet() bool       { return len(l.items) > 0 }
func (l *List[T]) isRequired() bool  { return l.required }

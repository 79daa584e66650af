package importer

// Value is one entry of a field: a single token, or the token list a ragged
// row spilled into its last column.
type Value struct {
	tokens []string
	list   bool
}

// ScalarValue wraps a single token.
func ScalarValue(token string) Value {
	return Value{tokens: []string{token}}
}

// ListValue wraps an overflow token list.
func ListValue(tokens []string) Value {
	cp := make([]string, len(tokens))
	copy(cp, tokens)
	return Value{tokens: cp, list: true}
}

func (v Value) IsList() bool { return v.list }

// Scalar returns the token of a scalar value, or the first token of a list.
func (v Value) Scalar() string {
	if len(v.tokens) == 0 {
		return ""
	}
	return v.tokens[0]
}

// List returns the tokens of the value; a scalar yields a one-element slice.
func (v Value) List() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// Field is one named column (or key/value scalar) of a section.
type Field struct {
	Name   string
	Scalar bool
	Values []Value
}

// Len returns the number of entries recorded under the field.
func (f *Field) Len() int { return len(f.Values) }

// At returns the entry at row i.
func (f *Field) At(i int) (Value, bool) {
	if i < 0 || i >= len(f.Values) {
		return Value{}, false
	}
	return f.Values[i], true
}

// Section is a named block of the input with its fields in declaration order.
type Section struct {
	Name   string
	fields []*Field
	index  map[string]int
}

func newSection(name string) *Section {
	return &Section{Name: name, index: make(map[string]int)}
}

// Field looks up a field by normalized name.
func (s *Section) Field(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Fields returns the section's fields in declaration order.
func (s *Section) Fields() []*Field {
	return s.fields
}

// ensure returns the named field, creating it at the end if absent.
func (s *Section) ensure(name string) *Field {
	if f, ok := s.Field(name); ok {
		return f
	}
	f := &Field{Name: name}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, f)
	return f
}

// reset empties the named field in place, creating it if absent.
func (s *Section) reset(name string) *Field {
	f := s.ensure(name)
	f.Scalar = false
	f.Values = []Value{}
	return f
}

func (s *Section) setScalar(name, value string) {
	f := s.ensure(name)
	f.Scalar = true
	f.Values = []Value{ScalarValue(value)}
}

// Sections is the parsed form of a whole input file, in section order.
type Sections struct {
	list  []*Section
	index map[string]int
}

// NewSections returns an empty collection.
func NewSections() *Sections {
	return &Sections{index: make(map[string]int)}
}

// Section looks up a section by normalized name.
func (s *Sections) Section(name string) (*Section, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.list[i], true
}

// List returns all sections in input order.
func (s *Sections) List() []*Section {
	return s.list
}

// Names returns the section names in input order.
func (s *Sections) Names() []string {
	names := make([]string, len(s.list))
	for i, sec := range s.list {
		names[i] = sec.Name
	}
	return names
}

// add starts a section. A repeated name replaces the earlier section's
// contents but keeps its position.
func (s *Sections) add(name string) *Section {
	sec := newSection(name)
	if i, ok := s.index[name]; ok {
		s.list[i] = sec
		return sec
	}
	s.index[name] = len(s.list)
	s.list = append(s.list, sec)
	return sec
}

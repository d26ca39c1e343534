package document

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is an immutable document node. The zero Value is null.
//
// payload holds bool, int64, float64, string, []Value or *mapData depending on
// kind; nothing else is ever stored there.
type Value struct {
	kind    Kind
	payload any
}

// Entry is one key/value pair of a map, used by NewMap.
type Entry struct {
	Key   string
	Value Value
}

// Field is shorthand for Entry{Key: key, Value: v}.
func Field(key string, v Value) Entry {
	return Entry{Key: key, Value: v}
}

func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, payload: b} }

func Int(i int64) Value { return Value{kind: KindInt, payload: i} }

func Double(f float64) Value { return Value{kind: KindDouble, payload: f} }

func String(s string) Value { return Value{kind: KindString, payload: s} }

// ListOf returns a list holding a copy of items.
func ListOf(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, payload: cp}
}

// Strings returns a list of string values.
func Strings(items ...string) Value {
	vs := make([]Value, len(items))
	for i, s := range items {
		vs[i] = String(s)
	}
	return Value{kind: KindList, payload: vs}
}

// NewMap returns a map holding entries in the given order. A repeated key
// fails with DuplicateOrMisplacedKey.
func NewMap(entries ...Entry) (Value, error) {
	d := newMapData(len(entries))
	for _, e := range entries {
		if d.has(e.Key) {
			return Value{}, newError(DuplicateOrMisplacedKey, "NewMap", "duplicate key %q", e.Key)
		}
		d.put(e.Key, e.Value)
	}
	return Value{kind: KindMap, payload: d}, nil
}

// MustMap is like NewMap but panics on a repeated key. It is intended for
// literals whose keys are known to be distinct.
func MustMap(entries ...Entry) Value {
	v, err := NewMap(entries...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsDouble() bool { return v.kind == KindDouble }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsList() bool   { return v.kind == KindList }
func (v Value) IsMap() bool    { return v.kind == KindMap }

// AsNull returns nil when v is null and a WrongType error otherwise.
func (v Value) AsNull() error {
	if v.kind != KindNull {
		return wrongType("AsNull", KindNull, v.kind)
	}
	return nil
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, wrongType("AsBool", KindBool, v.kind)
	}
	return v.payload.(bool), nil
}

func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, wrongType("AsInt", KindInt, v.kind)
	}
	return v.payload.(int64), nil
}

// AsDouble returns the payload of a double. An int is not converted; callers
// that accept either must check Kind themselves.
func (v Value) AsDouble() (float64, error) {
	if v.kind != KindDouble {
		return 0, wrongType("AsDouble", KindDouble, v.kind)
	}
	return v.payload.(float64), nil
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", wrongType("AsString", KindString, v.kind)
	}
	return v.payload.(string), nil
}

func (v Value) AsList() (List, error) {
	if v.kind != KindList {
		return List{}, wrongType("AsList", KindList, v.kind)
	}
	return List{items: v.payload.([]Value)}, nil
}

func (v Value) AsMap() (Map, error) {
	if v.kind != KindMap {
		return Map{}, wrongType("AsMap", KindMap, v.kind)
	}
	return Map{d: v.payload.(*mapData)}, nil
}

// Equal reports whether v and o have the same tag and payload. Maps compare
// in insertion order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindList:
		a, b := v.payload.([]Value), o.payload.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindMap:
		a, b := v.payload.(*mapData), o.payload.(*mapData)
		if len(a.keys) != len(b.keys) {
			return false
		}
		for i := range a.keys {
			if a.keys[i] != b.keys[i] || !a.values[i].Equal(b.values[i]) {
				return false
			}
		}
		return true
	default:
		return v.payload == o.payload
	}
}

// List is a read-only view of a list value.
type List struct {
	items []Value
}

func (l List) Len() int { return len(l.items) }

// At returns the i-th element; it panics when i is out of range, like a slice.
func (l List) At(i int) Value { return l.items[i] }

// Values returns a copy of the elements.
func (l List) Values() []Value {
	cp := make([]Value, len(l.items))
	copy(cp, l.items)
	return cp
}

// Range calls fn for each element in order until fn returns false.
func (l List) Range(fn func(i int, v Value) bool) {
	for i, v := range l.items {
		if !fn(i, v) {
			return
		}
	}
}

type mapData struct {
	keys   []string
	values []Value
	index  map[string]int
}

func newMapData(n int) *mapData {
	return &mapData{
		keys:   make([]string, 0, n),
		values: make([]Value, 0, n),
		index:  make(map[string]int, n),
	}
}

func (d *mapData) has(key string) bool {
	_, ok := d.index[key]
	return ok
}

func (d *mapData) put(key string, v Value) {
	d.index[key] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, v)
}

// Map is a read-only view of a map value. The zero Map is empty.
type Map struct {
	d *mapData
}

func (m Map) Len() int {
	if m.d == nil {
		return 0
	}
	return len(m.d.keys)
}

func (m Map) Get(key string) (Value, bool) {
	if m.d == nil {
		return Value{}, false
	}
	i, ok := m.d.index[key]
	if !ok {
		return Value{}, false
	}
	return m.d.values[i], true
}

func (m Map) Has(key string) bool {
	return m.d != nil && m.d.has(key)
}

// At returns the i-th entry in insertion order.
func (m Map) At(i int) (string, Value) {
	return m.d.keys[i], m.d.values[i]
}

// Keys returns the keys in insertion order.
func (m Map) Keys() []string {
	if m.d == nil {
		return nil
	}
	cp := make([]string, len(m.d.keys))
	copy(cp, m.d.keys)
	return cp
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m Map) Range(fn func(key string, v Value) bool) {
	if m.d == nil {
		return
	}
	for i, k := range m.d.keys {
		if !fn(k, m.d.values[i]) {
			return
		}
	}
}

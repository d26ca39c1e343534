package document

// State is the builder's position in the document grammar.
type State uint8

const (
	// Empty: nothing has been started.
	Empty State = iota
	// ExpectValue: a value or container start is accepted (top level, inside a
	// list, or after a key).
	ExpectValue
	// ExpectKeyOrEnd: inside a map with no pending key.
	ExpectKeyOrEnd
	// Ready: no container is open and at least one top-level value exists.
	// Build succeeds only if there is exactly one.
	Ready
	// Complete: Build succeeded; the builder accepts no further calls.
	Complete
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case ExpectValue:
		return "expect value"
	case ExpectKeyOrEnd:
		return "expect key or end"
	case Ready:
		return "ready"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// frame is an open container. For maps, key holds the pending key while
// hasKey is set; keys and items are parallel.
type frame struct {
	kind   Kind
	items  []Value
	keys   []string
	seen   map[string]struct{}
	key    string
	hasKey bool
}

// Builder assembles one Value. Every method validates before it mutates, so a
// call that returns an error leaves the builder unchanged.
type Builder struct {
	open  []*frame
	roots []Value
	root  Value
	done  bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

// State reports what the next call may be.
func (b *Builder) State() State {
	switch {
	case b.done:
		return Complete
	case len(b.open) > 0:
		top := b.open[len(b.open)-1]
		if top.kind == KindMap && !top.hasKey {
			return ExpectKeyOrEnd
		}
		return ExpectValue
	case len(b.roots) > 0:
		return Ready
	default:
		return Empty
	}
}

// Depth is the number of open containers.
func (b *Builder) Depth() int { return len(b.open) }

func (b *Builder) top() *frame {
	if len(b.open) == 0 {
		return nil
	}
	return b.open[len(b.open)-1]
}

// Key supplies the key for the next value of the innermost open map.
func (b *Builder) Key(k string) error {
	const op = "Key"
	if b.done {
		return newError(DuplicateOrMisplacedKey, op, "document already built")
	}
	top := b.top()
	if top == nil || top.kind != KindMap {
		return newError(DuplicateOrMisplacedKey, op, "key %q outside of a map", k)
	}
	if top.hasKey {
		return newError(DuplicateOrMisplacedKey, op, "key %q given while key %q still waits for a value", k, top.key)
	}
	if _, dup := top.seen[k]; dup {
		return newError(DuplicateOrMisplacedKey, op, "duplicate key %q", k)
	}
	top.key, top.hasKey = k, true
	return nil
}

// Value attaches v as the top-level value, the next list element, or the
// value of the pending key.
func (b *Builder) Value(v Value) error {
	if err := b.checkValuePlace("Value"); err != nil {
		return err
	}
	b.attach(v)
	return nil
}

func (b *Builder) StartList() error {
	if err := b.checkValuePlace("StartList"); err != nil {
		return err
	}
	b.open = append(b.open, &frame{kind: KindList})
	return nil
}

func (b *Builder) StartMap() error {
	if err := b.checkValuePlace("StartMap"); err != nil {
		return err
	}
	b.open = append(b.open, &frame{kind: KindMap, seen: map[string]struct{}{}})
	return nil
}

// EndList closes the innermost container, which must be a list, and attaches
// it to its parent.
func (b *Builder) EndList() error {
	const op = "EndList"
	top := b.top()
	switch {
	case b.done:
		return newError(MismatchedClose, op, "document already built")
	case top == nil:
		return newError(MismatchedClose, op, "no open container")
	case top.kind != KindList:
		return newError(MismatchedClose, op, "innermost open container is a map")
	}
	b.open = b.open[:len(b.open)-1]
	b.attach(Value{kind: KindList, payload: top.items})
	return nil
}

// EndMap closes the innermost container, which must be a map without a
// pending key, and attaches it to its parent.
func (b *Builder) EndMap() error {
	const op = "EndMap"
	top := b.top()
	switch {
	case b.done:
		return newError(MismatchedClose, op, "document already built")
	case top == nil:
		return newError(MismatchedClose, op, "no open container")
	case top.kind != KindMap:
		return newError(MismatchedClose, op, "innermost open container is a list")
	case top.hasKey:
		return newError(DanglingKey, op, "key %q has no value", top.key)
	}
	b.open = b.open[:len(b.open)-1]
	d := &mapData{keys: top.keys, values: top.items, index: make(map[string]int, len(top.keys))}
	for i, k := range top.keys {
		d.index[k] = i
	}
	b.attach(Value{kind: KindMap, payload: d})
	return nil
}

// Build returns the finished document. It requires no open container and
// exactly one top-level value. After a successful Build the builder is frozen
// and further calls to Build return the same value.
func (b *Builder) Build() (Value, error) {
	const op = "Build"
	if b.done {
		return b.root, nil
	}
	switch {
	case len(b.open) > 0:
		return Value{}, newError(IncompleteDocument, op, "%d container(s) still open", len(b.open))
	case len(b.roots) == 0:
		return Value{}, newError(IncompleteDocument, op, "no value was built")
	case len(b.roots) > 1:
		return Value{}, newError(IncompleteDocument, op, "%d top-level values, want 1", len(b.roots))
	}
	b.root, b.roots, b.done = b.roots[0], nil, true
	return b.root, nil
}

func (b *Builder) checkValuePlace(op string) error {
	if b.done {
		return newError(MisplacedValue, op, "document already built")
	}
	if top := b.top(); top != nil && top.kind == KindMap && !top.hasKey {
		return newError(MisplacedValue, op, "map expects a key")
	}
	return nil
}

func (b *Builder) attach(v Value) {
	top := b.top()
	switch {
	case top == nil:
		b.roots = append(b.roots, v)
	case top.kind == KindList:
		top.items = append(top.items, v)
	default:
		top.keys = append(top.keys, top.key)
		top.items = append(top.items, v)
		top.seen[top.key] = struct{}{}
		top.key, top.hasKey = "", false
	}
}

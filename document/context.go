package document

import "fmt"

// chain carries the builder and the first error of a call chain. Contexts
// hold a pointer to it and nothing else, so a context is only a view of the
// builder's current state: a stale context is checked by the builder like any
// other call.
type chain struct {
	b    *Builder
	err  error
	step int
}

func (c *chain) do(fn func() error) {
	c.step++
	if c.err != nil {
		return
	}
	if err := fn(); err != nil {
		c.err = fmt.Errorf("step %d: %w", c.step, err)
	}
}

// Chain is the unrestricted context: every builder call is offered.
type Chain struct{ c *chain }

// KeyContext follows Key: only a value or a container start may come next.
type KeyContext struct{ c *chain }

// MapContext is positioned inside a map with no pending key.
type MapContext struct{ c *chain }

// ListContext is positioned inside a list.
type ListContext struct{ c *chain }

// NewChain starts a chain on a fresh Builder.
func NewChain() Chain {
	return NewBuilder().Chain()
}

// Chain returns a chain driving b.
func (b *Builder) Chain() Chain {
	return Chain{c: &chain{b: b}}
}

func (ch Chain) Key(k string) KeyContext {
	ch.c.do(func() error { return ch.c.b.Key(k) })
	return KeyContext(ch)
}

func (ch Chain) Value(v Value) Chain {
	ch.c.do(func() error { return ch.c.b.Value(v) })
	return ch
}

func (ch Chain) StartMap() MapContext {
	ch.c.do(ch.c.b.StartMap)
	return MapContext(ch)
}

func (ch Chain) StartList() ListContext {
	ch.c.do(ch.c.b.StartList)
	return ListContext(ch)
}

func (ch Chain) EndMap() Chain {
	ch.c.do(ch.c.b.EndMap)
	return ch
}

func (ch Chain) EndList() Chain {
	ch.c.do(ch.c.b.EndList)
	return ch
}

// Err returns the first error recorded by the chain.
func (ch Chain) Err() error { return ch.c.err }

// Build finishes the document, or returns the first error of the chain.
func (ch Chain) Build() (Value, error) {
	if ch.c.err != nil {
		return Value{}, ch.c.err
	}
	var v Value
	ch.c.do(func() error {
		var err error
		v, err = ch.c.b.Build()
		return err
	})
	if ch.c.err != nil {
		return Value{}, ch.c.err
	}
	return v, nil
}

func (k KeyContext) Value(v Value) MapContext {
	k.c.do(func() error { return k.c.b.Value(v) })
	return MapContext(k)
}

func (k KeyContext) StartMap() MapContext {
	k.c.do(k.c.b.StartMap)
	return MapContext(k)
}

func (k KeyContext) StartList() ListContext {
	k.c.do(k.c.b.StartList)
	return ListContext(k)
}

func (m MapContext) Key(k string) KeyContext {
	m.c.do(func() error { return m.c.b.Key(k) })
	return KeyContext(m)
}

// EndMap closes the map. The parent is not known statically, so the
// unrestricted Chain is returned.
func (m MapContext) EndMap() Chain {
	m.c.do(m.c.b.EndMap)
	return Chain(m)
}

func (l ListContext) Value(v Value) ListContext {
	l.c.do(func() error { return l.c.b.Value(v) })
	return l
}

func (l ListContext) StartMap() MapContext {
	l.c.do(l.c.b.StartMap)
	return MapContext(l)
}

func (l ListContext) StartList() ListContext {
	l.c.do(l.c.b.StartList)
	return l
}

func (l ListContext) EndList() Chain {
	l.c.do(l.c.b.EndList)
	return Chain(l)
}

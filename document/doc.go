// Package document provides the structured-document value model used by every
// response the catalogue produces, and a state-checked builder for it.
//
// # Values
//
// A Value is one of seven variants: null, bool, int, double, string, list or
// map. Lists and maps own their children and keep insertion order; map keys
// are unique. Values are immutable: the List and Map views returned by the
// accessors expose no mutators, and constructors copy the slices they are given.
//
//	v := document.ListOf(document.Int(2), document.Int(3))
//	l, err := v.AsList() // err is a *document.Error of kind WrongType on mismatch
//
// # Builder
//
// Builder assembles a Value through a sequence of calls and rejects a call the
// moment it would make the document grammatically invalid:
//
//	b := document.NewBuilder()
//	_ = b.StartMap()
//	_ = b.Key("a")
//	_ = b.Value(document.Int(1))
//	_ = b.EndMap()
//	v, err := b.Build()
//
// A failed call leaves the builder exactly as it was, so the caller may issue a
// corrected call and continue.
//
// # Chains
//
// Chain wraps a Builder in per-state contexts so that only the calls valid in a
// given position are offered by the type system:
//
//	v, err := document.NewChain().
//		StartMap().
//		Key("request_id").Value(document.Int(1)).
//		Key("buses").StartList().Value(document.String("256")).EndList().
//		EndMap().
//		Build()
//
// The first failing call of a chain is recorded and the rest are skipped; Build
// reports it together with the step at which it happened.
//
// A Builder is not safe for concurrent use. Build independent documents in
// separate builders and combine the finished Values.
package document

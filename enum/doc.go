// Package enum provides a registry of closed enumeration types for the
// structmap decoder.
//
// Go has no native enumeration construct, so a type becomes an enumeration
// by registering its members under their declared names:
//
//	type Priority int
//
//	const (
//		Low Priority = iota
//		High
//	)
//
//	func init() {
//		enum.Register(map[string]Priority{
//			"LOW":  Low,
//			"HIGH": High,
//		})
//	}
//
// Once registered, the decoder treats Priority fields as enumerations:
// a source value is looked up as a member name, exactly as written. There
// is no case folding and no matching by underlying value.
//
// Register enumerations at program start, before the first decode of any
// struct type that uses them; the decoder caches per-type schemas on first
// use.
package enum

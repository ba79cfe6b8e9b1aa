// Package idl parses the subset of the XDR interface description language
// (RFC 4506 / rpcgen) that the libvirt remote protocol is written in, and
// produces a Protocol AST consumed by internal/codegen.
package idl

// Protocol is the root of a parsed .x interface file.
type Protocol struct {
	Name            string
	ProgramID       uint32
	ProtocolVersion uint32
	Constants       []Constant
	Types           []TypeDef
	Procedures      []Procedure
}

// Constant is a top-level "const NAME = value;" definition.
type Constant struct {
	Name  string
	Value ConstValue
}

// ConstValue is either a literal integer or a reference to another
// identifier (resolved later, against the constant table).
type ConstValue struct {
	Int   int64
	Ident string
	IsInt bool
}

// TypeDefKind discriminates the tagged TypeDef variant.
type TypeDefKind int

const (
	KindStruct TypeDefKind = iota
	KindEnum
	KindUnion
	KindTypedef
)

// TypeDef is a tagged variant over the four kinds of type definition the
// grammar accepts: struct, enum, union, typedef.
type TypeDef struct {
	Kind TypeDefKind
	Name string

	// KindStruct
	Fields []Field

	// KindEnum
	Variants []EnumVariant

	// KindUnion
	Discriminant Field
	Cases        []UnionCase
	Default      *Field // nil if no default arm

	// KindTypedef
	Target Type
}

// Field is a named, typed struct/union member.
type Field struct {
	Name string
	Type Type
}

// EnumVariant is one "NAME = value" (or bare "NAME") entry of an enum.
type EnumVariant struct {
	Name  string
	Value *ConstValue // nil if the variant has no explicit value
}

// UnionCase binds one or more discriminant values to an optional field.
// A void case (no field) is legal per the grammar.
type UnionCase struct {
	Values []ConstValue
	Field  *Field // nil for a void arm
}

// TypeKind discriminates the tagged Type variant.
type TypeKind int

const (
	TVoid TypeKind = iota
	TInt
	TUInt
	THyper
	TUHyper
	TFloat
	TDouble
	TBool
	TString
	TOpaque
	TArray
	TOptional
	TNamed
)

// LengthKind discriminates Opaque/Array length specifications.
type LengthKind int

const (
	LengthNone LengthKind = iota // no suffix at all (e.g. "string" with no "<...>")
	LengthFixed
	LengthVariable
)

// Length describes an array_suffix: "[N]" (Fixed) or "<N?>" (Variable, with
// an optional upper bound). N is a literal integer or resolved from Ident
// against the constant table (e.g. VIR_UUID_BUFLEN = 16); an identifier the
// parser could not resolve leaves N at 0 and Unresolved set, per spec.md
// §4.2 ("unresolved identifiers yield length 0 and the generator must flag
// the type").
type Length struct {
	Kind       LengthKind
	N          uint64
	Ident      string
	Unresolved bool
}

// Type is a tagged variant over every leaf the grammar's `type` production
// can produce, after `string<N>`/`opaque<N>`/`opaque[N]`/array-suffix/`*`
// lowering described in spec.md §4.2's semantic rules.
type Type struct {
	Kind TypeKind

	// TString: optional max length (string<N>). Zero Length.Kind means
	// unbounded ("string" with no "<...>").
	StringMax Length

	// TOpaque: fixed or variable length.
	OpaqueLength Length

	// TArray: element type plus fixed or variable length.
	Elem         *Type
	ArrayLength  Length

	// TOptional: the pointee type ("T *").
	Inner *Type

	// TNamed: reference to another TypeDef by name.
	Name string
}

// Procedure is one RPC entry point synthesized from a `<protocol>_procedure`
// enum variant, cross-referenced against `_args`/`_ret` structs.
type Procedure struct {
	Name     string
	Number   int64
	ArgsType string // struct name, empty if this procedure takes no arguments
	RetType  string // struct name, empty if this procedure returns nothing
	Priority Priority
}

// Priority is parsed from libvirt's procedure priority annotations but,
// per spec.md §9, not acted upon by the RPC engine itself.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityHigh
)

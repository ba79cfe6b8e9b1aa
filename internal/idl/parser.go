package idl

import (
	"strconv"
	"strings"
)

// wellKnownConstants resolves array/opaque/string length identifiers that
// the libvirt IDL uses but that are defined in C headers outside the .x
// files handed to this parser (spec.md §4.2: "A well-known constant table
// resolves identifiers used as array lengths where possible").
var wellKnownConstants = map[string]int64{
	"VIR_UUID_BUFLEN":    16,
	"REMOTE_UUID_BUFLEN": 16,
}

// Parser turns a token stream into a Protocol AST.
type Parser struct {
	lex  *Lexer
	cur  Token
	peek Token
}

// Parse parses src (raw, un-preprocessed IDL source) into a Protocol AST.
func Parse(src string) (*Protocol, error) {
	p := &Parser{lex: NewLexer(Preprocess(src))}
	p.advance()
	p.advance()
	return p.parseProtocol()
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) at(text string) bool {
	return (p.cur.Kind == TokPunct || p.cur.Kind == TokIdent) && p.cur.Text == text
}

func (p *Parser) expect(text string) error {
	if !p.at(text) {
		return newSyntaxError(p.cur.Offset, p.cur.Line, "'"+text+"'", p.cur.Text)
	}
	p.advance()
	return nil
}

func (p *Parser) expectIdent() (string, error) {
	if p.cur.Kind != TokIdent {
		return "", newSyntaxError(p.cur.Offset, p.cur.Line, "identifier", p.cur.Text)
	}
	name := p.cur.Text
	p.advance()
	return name, nil
}

func (p *Parser) parseProtocol() (*Protocol, error) {
	proto := &Protocol{}

	for p.cur.Kind != TokEOF {
		switch {
		case p.at("const"):
			c, err := p.parseConstDef()
			if err != nil {
				return nil, err
			}
			proto.Constants = append(proto.Constants, c)
		case p.at("struct"), p.at("enum"), p.at("union"), p.at("typedef"):
			td, err := p.parseTypeDef()
			if err != nil {
				return nil, err
			}
			proto.Types = append(proto.Types, td)
		default:
			return nil, newSyntaxError(p.cur.Offset, p.cur.Line, "'const', 'struct', 'enum', 'union', or 'typedef'", p.cur.Text)
		}
	}

	extractMetadata(proto)
	resolveLengths(proto)
	synthesizeProcedures(proto)

	return proto, nil
}

// ---------------------------------------------------------------------------
// const_def := "const" IDENT "=" const_value ";"
// ---------------------------------------------------------------------------

func (p *Parser) parseConstDef() (Constant, error) {
	if err := p.expect("const"); err != nil {
		return Constant{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return Constant{}, err
	}
	if err := p.expect("="); err != nil {
		return Constant{}, err
	}
	val, err := p.parseConstValue()
	if err != nil {
		return Constant{}, err
	}
	if err := p.expect(";"); err != nil {
		return Constant{}, err
	}
	return Constant{Name: name, Value: val}, nil
}

// const_value := integer | IDENT
// integer := ("0x" HEXDIGITS) | "-"? DIGITS
func (p *Parser) parseConstValue() (ConstValue, error) {
	if p.cur.Kind == TokInt {
		text := p.cur.Text
		p.advance()
		v, err := parseInteger(text)
		if err != nil {
			return ConstValue{}, newSyntaxError(p.cur.Offset, p.cur.Line, "integer literal", text)
		}
		return ConstValue{Int: v, IsInt: true}, nil
	}
	if p.at("-") {
		p.advance()
		if p.cur.Kind != TokInt {
			return ConstValue{}, newSyntaxError(p.cur.Offset, p.cur.Line, "integer literal after '-'", p.cur.Text)
		}
		text := p.cur.Text
		p.advance()
		v, err := parseInteger(text)
		if err != nil {
			return ConstValue{}, newSyntaxError(p.cur.Offset, p.cur.Line, "integer literal", text)
		}
		return ConstValue{Int: -v, IsInt: true}, nil
	}
	if p.cur.Kind == TokIdent {
		name := p.cur.Text
		p.advance()
		return ConstValue{Ident: name}, nil
	}
	return ConstValue{}, newSyntaxError(p.cur.Offset, p.cur.Line, "integer or identifier", p.cur.Text)
}

func parseInteger(text string) (int64, error) {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		return strconv.ParseInt(text[2:], 16, 64)
	}
	return strconv.ParseInt(text, 10, 64)
}

// ---------------------------------------------------------------------------
// type_def := struct_def | enum_def | union_def | typedef_def
// ---------------------------------------------------------------------------

func (p *Parser) parseTypeDef() (TypeDef, error) {
	switch {
	case p.at("struct"):
		return p.parseStructDef()
	case p.at("enum"):
		return p.parseEnumDef()
	case p.at("union"):
		return p.parseUnionDef()
	case p.at("typedef"):
		return p.parseTypedefDef()
	}
	return TypeDef{}, newSyntaxError(p.cur.Offset, p.cur.Line, "type definition", p.cur.Text)
}

// struct_def := "struct" IDENT "{" field* "}" ";"
func (p *Parser) parseStructDef() (TypeDef, error) {
	if err := p.expect("struct"); err != nil {
		return TypeDef{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return TypeDef{}, err
	}
	if err := p.expect("{"); err != nil {
		return TypeDef{}, err
	}

	var fields []Field
	for !p.at("}") {
		f, err := p.parseField()
		if err != nil {
			return TypeDef{}, err
		}
		fields = append(fields, f)
	}
	if err := p.expect("}"); err != nil {
		return TypeDef{}, err
	}
	if err := p.expect(";"); err != nil {
		return TypeDef{}, err
	}

	return TypeDef{Kind: KindStruct, Name: name, Fields: fields}, nil
}

// field := type IDENT array_suffix? ";"
func (p *Parser) parseField() (Field, error) {
	typ, err := p.parseType()
	if err != nil {
		return Field{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return Field{}, err
	}
	typ, err = p.maybeParseArraySuffix(typ)
	if err != nil {
		return Field{}, err
	}
	if err := p.expect(";"); err != nil {
		return Field{}, err
	}
	return Field{Name: name, Type: typ}, nil
}

// enum_def := "enum" IDENT "{" variant ("," variant)* ","? "}" ";"
func (p *Parser) parseEnumDef() (TypeDef, error) {
	if err := p.expect("enum"); err != nil {
		return TypeDef{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return TypeDef{}, err
	}
	if err := p.expect("{"); err != nil {
		return TypeDef{}, err
	}

	var variants []EnumVariant
	for !p.at("}") {
		v, err := p.parseEnumVariant()
		if err != nil {
			return TypeDef{}, err
		}
		variants = append(variants, v)
		if p.at(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect("}"); err != nil {
		return TypeDef{}, err
	}
	if err := p.expect(";"); err != nil {
		return TypeDef{}, err
	}

	return TypeDef{Kind: KindEnum, Name: name, Variants: variants}, nil
}

func (p *Parser) parseEnumVariant() (EnumVariant, error) {
	name, err := p.expectIdent()
	if err != nil {
		return EnumVariant{}, err
	}
	if !p.at("=") {
		return EnumVariant{Name: name}, nil
	}
	p.advance()
	val, err := p.parseConstValue()
	if err != nil {
		return EnumVariant{}, err
	}
	return EnumVariant{Name: name, Value: &val}, nil
}

// union_def := "union" IDENT "switch" "(" type IDENT ")"
//              "{" case* default? "}" ";"
func (p *Parser) parseUnionDef() (TypeDef, error) {
	if err := p.expect("union"); err != nil {
		return TypeDef{}, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return TypeDef{}, err
	}
	if err := p.expect("switch"); err != nil {
		return TypeDef{}, err
	}
	if err := p.expect("("); err != nil {
		return TypeDef{}, err
	}
	discType, err := p.parseType()
	if err != nil {
		return TypeDef{}, err
	}
	discName, err := p.expectIdent()
	if err != nil {
		return TypeDef{}, err
	}
	if err := p.expect(")"); err != nil {
		return TypeDef{}, err
	}
	if err := p.expect("{"); err != nil {
		return TypeDef{}, err
	}

	td := TypeDef{
		Kind:         KindUnion,
		Name:         name,
		Discriminant: Field{Name: discName, Type: discType},
	}

	for p.at("case") {
		c, err := p.parseUnionCase()
		if err != nil {
			return TypeDef{}, err
		}
		td.Cases = append(td.Cases, c)
	}
	if p.at("default") {
		p.advance()
		if err := p.expect(":"); err != nil {
			return TypeDef{}, err
		}
		f, err := p.parseFieldOrVoid()
		if err != nil {
			return TypeDef{}, err
		}
		td.Default = f
	}

	if err := p.expect("}"); err != nil {
		return TypeDef{}, err
	}
	if err := p.expect(";"); err != nil {
		return TypeDef{}, err
	}

	return td, nil
}

// case := "case" const_value ":" (field | "void" ";")
func (p *Parser) parseUnionCase() (UnionCase, error) {
	if err := p.expect("case"); err != nil {
		return UnionCase{}, err
	}
	val, err := p.parseConstValue()
	if err != nil {
		return UnionCase{}, err
	}
	values := []ConstValue{val}
	if err := p.expect(":"); err != nil {
		return UnionCase{}, err
	}
	f, err := p.parseFieldOrVoid()
	if err != nil {
		return UnionCase{}, err
	}
	return UnionCase{Values: values, Field: f}, nil
}

// field | "void" ";"
func (p *Parser) parseFieldOrVoid() (*Field, error) {
	if p.at("void") {
		p.advance()
		if err := p.expect(";"); err != nil {
			return nil, err
		}
		return nil, nil
	}
	f, err := p.parseField()
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// typedef_def := "typedef" type "*"? IDENT array_suffix? ";"
func (p *Parser) parseTypedefDef() (TypeDef, error) {
	if err := p.expect("typedef"); err != nil {
		return TypeDef{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return TypeDef{}, err
	}
	if p.at("*") {
		p.advance()
		typ = Type{Kind: TOptional, Inner: &typ}
	}
	name, err := p.expectIdent()
	if err != nil {
		return TypeDef{}, err
	}
	typ, err = p.maybeParseArraySuffix(typ)
	if err != nil {
		return TypeDef{}, err
	}
	if err := p.expect(";"); err != nil {
		return TypeDef{}, err
	}
	return TypeDef{Kind: KindTypedef, Name: name, Target: typ}, nil
}

// ---------------------------------------------------------------------------
// type production
// ---------------------------------------------------------------------------

func (p *Parser) parseType() (Type, error) {
	switch {
	case p.at("void"):
		p.advance()
		return Type{Kind: TVoid}, nil
	case p.at("int"):
		p.advance()
		return p.maybeOptional(Type{Kind: TInt})
	case p.at("hyper"):
		p.advance()
		return p.maybeOptional(Type{Kind: THyper})
	case p.at("float"):
		p.advance()
		return p.maybeOptional(Type{Kind: TFloat})
	case p.at("double"):
		p.advance()
		return p.maybeOptional(Type{Kind: TDouble})
	case p.at("bool"):
		p.advance()
		return p.maybeOptional(Type{Kind: TBool})
	case p.at("char"):
		p.advance()
		return p.maybeOptional(Type{Kind: TInt}) // char -> i8, widened to the 32-bit wire int form
	case p.at("short"):
		p.advance()
		return p.maybeOptional(Type{Kind: TInt}) // short -> i16, widened likewise
	case p.at("unsigned"):
		p.advance()
		switch {
		case p.at("int"):
			p.advance()
			return p.maybeOptional(Type{Kind: TUInt})
		case p.at("hyper"):
			p.advance()
			return p.maybeOptional(Type{Kind: TUHyper})
		case p.at("char"):
			p.advance()
			return p.maybeOptional(Type{Kind: TUInt}) // u8 widened to u32 wire form
		case p.at("short"):
			p.advance()
			return p.maybeOptional(Type{Kind: TUInt}) // u16 widened to u32 wire form
		default:
			// bare "unsigned" means "unsigned int" in rpcgen IDL.
			return p.maybeOptional(Type{Kind: TUInt})
		}
	case p.at("string"):
		p.advance()
		max := Length{Kind: LengthNone}
		if p.at("<") {
			p.advance()
			if !p.at(">") {
				l, err := p.parseLengthBound()
				if err != nil {
					return Type{}, err
				}
				l.Kind = LengthVariable
				max = l
			}
			if err := p.expect(">"); err != nil {
				return Type{}, err
			}
		}
		return p.maybeOptional(Type{Kind: TString, StringMax: max})
	case p.at("opaque"):
		p.advance()
		// The fixed-vs-variable distinction for "opaque" is resolved once the
		// caller sees the trailing array_suffix ("[N]" vs "<N?>"); until
		// then this is a placeholder the suffix parser rewrites.
		return Type{Kind: TOpaque}, nil
	case p.cur.Kind == TokIdent:
		name := p.cur.Text
		p.advance()
		return p.maybeOptional(Type{Kind: TNamed, Name: name})
	}
	return Type{}, newSyntaxError(p.cur.Offset, p.cur.Line, "a type", p.cur.Text)
}

// optional_type := (any non-opaque primitive/ident followed by "*")
func (p *Parser) maybeOptional(t Type) (Type, error) {
	if p.at("*") {
		p.advance()
		return Type{Kind: TOptional, Inner: &t}, nil
	}
	return t, nil
}

// array_suffix := "[" const_value "]" | "<" const_value? ">"
//
// Semantic rules (spec.md §4.2):
//   - opaque[N]  -> Opaque{Fixed(N)}
//   - opaque<N?> -> Opaque{Variable}
//   - string<N>  is handled directly in parseType (it never becomes an array)
//   - any other base type: [N] -> Array{Fixed(N)}, <N?> -> Array{Variable{max}}
func (p *Parser) maybeParseArraySuffix(t Type) (Type, error) {
	switch {
	case p.at("["):
		p.advance()
		l, err := p.parseLengthBound()
		if err != nil {
			return Type{}, err
		}
		l.Kind = LengthFixed
		if err := p.expect("]"); err != nil {
			return Type{}, err
		}
		if t.Kind == TOpaque {
			t.OpaqueLength = l
			return t, nil
		}
		elem := t
		return Type{Kind: TArray, Elem: &elem, ArrayLength: l}, nil

	case p.at("<"):
		p.advance()
		l := Length{Kind: LengthVariable}
		if !p.at(">") {
			bound, err := p.parseLengthBound()
			if err != nil {
				return Type{}, err
			}
			bound.Kind = LengthVariable
			l = bound
		}
		if err := p.expect(">"); err != nil {
			return Type{}, err
		}
		if t.Kind == TOpaque {
			t.OpaqueLength = l
			return t, nil
		}
		elem := t
		return Type{Kind: TArray, Elem: &elem, ArrayLength: l}, nil

	default:
		if t.Kind == TOpaque {
			// Bare "opaque" with no suffix at all: treat as variable with no
			// declared maximum, matching rpcgen's default.
			t.OpaqueLength = Length{Kind: LengthVariable}
		}
		return t, nil
	}
}

// parseLengthBound parses the const_value inside "[...]" or "<...>",
// leaving resolution against the constant table to the post-parse pass.
func (p *Parser) parseLengthBound() (Length, error) {
	cv, err := p.parseConstValue()
	if err != nil {
		return Length{}, err
	}
	if cv.IsInt {
		return Length{N: uint64(cv.Int)}, nil
	}
	return Length{Ident: cv.Ident, Unresolved: true}, nil
}

package codegen

import (
	"strings"
	"unicode"
)

// reservedTypeNames are target-language identifiers a generated type name
// would collide with if emitted verbatim.
var reservedTypeNames = map[string]bool{
	"String": true, "Vector": true, "Optional": true, "Result": true,
	"Error": true, "Type": true,
}

var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true,
	"select": true, "case": true, "defer": true, "go": true, "map": true,
	"struct": true, "chan": true, "else": true, "goto": true, "package": true,
	"switch": true, "const": true, "fallthrough": true, "if": true,
	"range": true, "type": true, "continue": true, "for": true, "import": true,
	"return": true, "var": true,
}

// TypeName implements spec.md §4.3's type-name mapping: strip a single
// leading "remote_" or "virNet" prefix, UpperCamelCase the remainder, and
// disambiguate a collision with a reserved target-language name by
// prefixing "Remote".
func TypeName(raw string) string {
	stripped := raw
	switch {
	case strings.HasPrefix(stripped, "remote_"):
		stripped = strings.TrimPrefix(stripped, "remote_")
	case strings.HasPrefix(stripped, "virNet"):
		stripped = strings.TrimPrefix(stripped, "virNet")
	}
	name := upperCamelCase(stripped)
	if reservedTypeNames[name] {
		name = "Remote" + name
	}
	return name
}

// FieldName implements spec.md §4.3's field-name mapping: snake_case,
// escaping a result that collides with a Go keyword.
func FieldName(raw string) string {
	name := snakeCase(raw)
	if goKeywords[name] {
		name += "_"
	}
	return name
}

// GoFieldName is the exported-identifier form of FieldName, used for struct
// field declarations (Go struct fields must be UpperCamelCase to be visible
// to the reflective codec in internal/xdr).
func GoFieldName(raw string) string {
	return upperCamelCase(raw)
}

// EnumVariantName implements spec.md §4.3's enum-variant mapping: strip the
// enum's own uppercased name prefix if present, else strip "REMOTE_" or
// "VIR_", then UpperCamelCase.
func EnumVariantName(enumName, variant string) string {
	prefix := strings.ToUpper(enumName) + "_"
	switch {
	case strings.HasPrefix(variant, prefix):
		variant = strings.TrimPrefix(variant, prefix)
	case strings.HasPrefix(variant, "REMOTE_"):
		variant = strings.TrimPrefix(variant, "REMOTE_")
	case strings.HasPrefix(variant, "VIR_"):
		variant = strings.TrimPrefix(variant, "VIR_")
	}
	return upperCamelCase(variant)
}

// ConstantName maps a top-level IDL constant name to an exported Go
// identifier: strip a well-known protocol prefix, then UpperCamelCase.
func ConstantName(raw string) string {
	for _, prefix := range []string{"REMOTE_", "VIR_", "QEMU_", "LXC_"} {
		if strings.HasPrefix(raw, prefix) {
			raw = strings.TrimPrefix(raw, prefix)
			break
		}
	}
	return upperCamelCase(raw)
}

// MethodName implements spec.md §4.3's RPC-method-name mapping: strip
// REMOTE_PROC_ / QEMU_PROC_ / LXC_PROC_, lowercase with underscores.
func MethodName(procName string) string {
	for _, prefix := range []string{"REMOTE_PROC_", "QEMU_PROC_", "LXC_PROC_"} {
		if strings.HasPrefix(procName, prefix) {
			return strings.ToLower(strings.TrimPrefix(procName, prefix))
		}
	}
	return strings.ToLower(procName)
}

// GoMethodName produces the exported Go method name for an RPC procedure,
// e.g. "connect_open" -> "ConnectOpen".
func GoMethodName(procName string) string {
	return upperCamelCase(MethodName(procName))
}

func upperCamelCase(s string) string {
	parts := splitWords(s)
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(strings.ToLower(p))
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

func snakeCase(s string) string {
	parts := splitWords(s)
	lower := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			lower = append(lower, strings.ToLower(p))
		}
	}
	return strings.Join(lower, "_")
}

// splitWords breaks an identifier on '_' boundaries, treating consecutive
// uppercase runs in already-camel input as their own word too.
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-':
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

package idl

import "strings"

// extractMetadata implements spec.md §4.2's "Metadata extraction" pass: it
// scans the parsed constants for the program-ID and protocol-version
// conventions libvirt's .x files follow.
func extractMetadata(proto *Protocol) {
	for _, c := range proto.Constants {
		if !c.Value.IsInt {
			continue
		}
		switch {
		case strings.HasSuffix(c.Name, "_PROGRAM"):
			proto.ProgramID = uint32(c.Value.Int)
			proto.Name = strings.TrimSuffix(c.Name, "_PROGRAM")
		case strings.HasSuffix(c.Name, "_PROTOCOL_VERSION"):
			proto.ProtocolVersion = uint32(c.Value.Int)
		}
	}
}

// constantTable builds a name -> value lookup from both the protocol's own
// integer constants and the well-known table, for resolving array/opaque/
// string length identifiers during the post-parse pass.
func constantTable(proto *Protocol) map[string]int64 {
	table := make(map[string]int64, len(proto.Constants)+len(wellKnownConstants))
	for k, v := range wellKnownConstants {
		table[k] = v
	}
	// Two passes so a constant defined via another Ident reference resolves
	// regardless of declaration order.
	for _, c := range proto.Constants {
		if c.Value.IsInt {
			table[c.Name] = c.Value.Int
		}
	}
	for _, c := range proto.Constants {
		if !c.Value.IsInt {
			if v, ok := table[c.Value.Ident]; ok {
				table[c.Name] = v
			}
		}
	}
	return table
}

// resolveLengths walks every TypeDef, resolving Length.Ident entries left
// behind by the parser against the constant table. An identifier that still
// cannot be resolved is left with Unresolved=true and N=0 for the generator
// to flag, per spec.md §4.2.
func resolveLengths(proto *Protocol) {
	table := constantTable(proto)
	for i := range proto.Types {
		resolveTypeDefLengths(&proto.Types[i], table)
	}
}

func resolveLength(l *Length, table map[string]int64) {
	if l.Ident == "" || !l.Unresolved {
		return
	}
	if v, ok := table[l.Ident]; ok {
		l.N = uint64(v)
		l.Unresolved = false
	}
}

func resolveTypeLengths(t *Type, table map[string]int64) {
	if t == nil {
		return
	}
	resolveLength(&t.StringMax, table)
	resolveLength(&t.OpaqueLength, table)
	resolveLength(&t.ArrayLength, table)
	resolveTypeLengths(t.Elem, table)
	resolveTypeLengths(t.Inner, table)
}

func resolveTypeDefLengths(td *TypeDef, table map[string]int64) {
	switch td.Kind {
	case KindStruct:
		for i := range td.Fields {
			resolveTypeLengths(&td.Fields[i].Type, table)
		}
	case KindUnion:
		resolveTypeLengths(&td.Discriminant.Type, table)
		for i := range td.Cases {
			if td.Cases[i].Field != nil {
				resolveTypeLengths(&td.Cases[i].Field.Type, table)
			}
		}
		if td.Default != nil {
			resolveTypeLengths(&td.Default.Type, table)
		}
	case KindTypedef:
		resolveTypeLengths(&td.Target, table)
	}
}

// synthesizeProcedures implements spec.md §4.2's procedure-table extraction:
// the enum named "<protocol>_procedure" supplies one Procedure per variant,
// cross-referenced against "<prefix>_<base>_args"/"_ret" structs.
func synthesizeProcedures(proto *Protocol) {
	protoLower := strings.ToLower(proto.Name)
	enumName := protoLower + "_procedure"

	var procEnum *TypeDef
	for i := range proto.Types {
		if proto.Types[i].Kind == KindEnum && strings.ToLower(proto.Types[i].Name) == enumName {
			procEnum = &proto.Types[i]
			break
		}
	}
	if procEnum == nil {
		return
	}

	structNames := make(map[string]bool, len(proto.Types))
	for _, td := range proto.Types {
		if td.Kind == KindStruct {
			structNames[td.Name] = true
		}
	}

	for _, variant := range procEnum.Variants {
		if variant.Value == nil || !variant.Value.IsInt {
			continue
		}
		prefix, base, ok := splitProcedureVariant(variant.Name)
		if !ok {
			continue
		}

		argsName := prefix + "_" + base + "_args"
		retName := prefix + "_" + base + "_ret"

		proc := Procedure{
			Name:     base,
			Number:   variant.Value.Int,
			Priority: PriorityLow,
		}
		if structNames[argsName] {
			proc.ArgsType = argsName
		}
		if structNames[retName] {
			proc.RetType = retName
		}
		proto.Procedures = append(proto.Procedures, proc)
	}
}

// splitProcedureVariant splits a "<PREFIX>_<BASE>" enum variant name (e.g.
// "REMOTE_PROC_CONNECT_OPEN") into a lowercase prefix ("remote") and base
// ("connect_open") matching the naming convention of the corresponding
// "<prefix>_<base>_args"/"_ret" structs.
func splitProcedureVariant(name string) (prefix, base string, ok bool) {
	lower := strings.ToLower(name)
	for _, marker := range []string{"_proc_"} {
		if idx := strings.Index(lower, marker); idx >= 0 {
			return lower[:idx], lower[idx+len(marker):], true
		}
	}
	return "", "", false
}

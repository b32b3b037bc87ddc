package ctypes

// Equal checks if two types are identical
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch ta := a.(type) {
	case Tvoid:
		_, ok := b.(Tvoid)
		return ok
	case Tint:
		tb, ok := b.(Tint)
		return ok && ta.Size == tb.Size && ta.Sign == tb.Sign
	case Tlong:
		tb, ok := b.(Tlong)
		return ok && ta.Sign == tb.Sign && ta.LongLong == tb.LongLong
	case Tfloat:
		tb, ok := b.(Tfloat)
		return ok && ta.Size == tb.Size
	case Tpointer:
		tb, ok := b.(Tpointer)
		return ok && Equal(ta.Elem, tb.Elem)
	case Tarray:
		tb, ok := b.(Tarray)
		return ok && ta.Size == tb.Size && Equal(ta.Elem, tb.Elem)
	case Tstruct:
		tb, ok := b.(Tstruct)
		return ok && ta.Name == tb.Name
	case Tunion:
		tb, ok := b.(Tunion)
		return ok && ta.Name == tb.Name
	case Tenum:
		tb, ok := b.(Tenum)
		return ok && ta.Name == tb.Name
	case Tnamed:
		tb, ok := b.(Tnamed)
		return ok && ta.Name == tb.Name
	case Tfunction:
		tb, ok := b.(Tfunction)
		if !ok || ta.Prototype != tb.Prototype || ta.VarArg != tb.VarArg || len(ta.Params) != len(tb.Params) {
			return false
		}
		if !Equal(ta.Return, tb.Return) {
			return false
		}
		for i, p := range ta.Params {
			if !Equal(p, tb.Params[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Compatible reports whether two declarations of one identifier may
// coexist: arrays of unknown size match any size, and a function without
// a prototype matches any parameter list with the same return type.
func Compatible(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch ta := a.(type) {
	case Tpointer:
		tb, ok := b.(Tpointer)
		return ok && Compatible(ta.Elem, tb.Elem)
	case Tarray:
		tb, ok := b.(Tarray)
		if !ok || !Compatible(ta.Elem, tb.Elem) {
			return false
		}
		return ta.Size < 0 || tb.Size < 0 || ta.Size == tb.Size
	case Tfunction:
		tb, ok := b.(Tfunction)
		if !ok || !Compatible(ta.Return, tb.Return) {
			return false
		}
		if !ta.Prototype || !tb.Prototype {
			return true
		}
		if ta.VarArg != tb.VarArg || len(ta.Params) != len(tb.Params) {
			return false
		}
		for i, p := range ta.Params {
			if !Compatible(p, tb.Params[i]) {
				return false
			}
		}
		return true
	}
	return Equal(a, b)
}

package ctypes

import "github.com/raymyers/cfront/pkg/cabs"

// Resolver maps a typedef name to its type. It returns nil for unknown
// names, which are then kept as Tnamed.
type Resolver func(name string) Type

// FromSpec computes the base type named by a declaration specifier
func FromSpec(spec *cabs.DeclSpec, resolve Resolver) Type {
	if spec == nil {
		return Int()
	}
	if spec.Tag != nil {
		switch spec.Tag.Kind {
		case cabs.TagUnion:
			return Tunion{Name: spec.Tag.Name}
		case cabs.TagEnum:
			return Tenum{Name: spec.Tag.Name}
		}
		return Tstruct{Name: spec.Tag.Name}
	}
	if spec.TypedefName != "" {
		if resolve != nil {
			if t := resolve(spec.TypedefName); t != nil {
				return t
			}
		}
		return Tnamed{Name: spec.TypedefName}
	}

	counts := make(map[string]int)
	for _, s := range spec.TypeSpecs {
		counts[s]++
	}
	unsigned := counts["unsigned"] > 0
	switch {
	case counts["void"] > 0:
		return Void()
	case counts["_Bool"] > 0:
		return Tint{Size: IBool, Sign: Unsigned}
	case counts["char"] > 0:
		return signedOr(unsigned, Char(), UChar())
	case counts["short"] > 0:
		return signedOr(unsigned, Short(), Tint{Size: I16, Sign: Unsigned})
	case counts["float"] > 0:
		return Float()
	case counts["double"] > 0:
		return Double()
	case counts["long"] >= 2:
		return signedOr(unsigned, Tlong{Sign: Signed, LongLong: true}, Tlong{Sign: Unsigned, LongLong: true})
	case counts["long"] == 1:
		return signedOr(unsigned, Long(), Tlong{Sign: Unsigned})
	}
	return signedOr(unsigned, Int(), UInt())
}

func signedOr(unsigned bool, s, u Type) Type {
	if unsigned {
		return u
	}
	return s
}

// FromDeclarator computes the type of the entity a declarator declares.
// Pieces are innermost first, so they are applied to the base type from
// the last one back.
func FromDeclarator(d *cabs.Declarator, resolve Resolver) Type {
	t := FromSpec(d.Spec, resolve)
	for i := len(d.Pieces) - 1; i >= 0; i-- {
		piece := d.Pieces[i]
		switch piece.Kind {
		case cabs.PointerPiece:
			t = Pointer(t)
		case cabs.ArrayPiece:
			t = Array(t, arraySize(piece.Size))
		case cabs.FunctionPiece:
			t = functionType(t, piece.Fun, resolve)
		}
	}
	return t
}

func functionType(ret Type, fi *cabs.FunctionInfo, resolve Resolver) Type {
	if fi == nil || !fi.HasPrototype {
		return Tfunction{Return: ret}
	}
	var params []Type
	for _, p := range fi.Params {
		params = append(params, Decay(FromDeclarator(p, resolve)))
	}
	fn := Func(ret, params...).(Tfunction)
	fn.VarArg = fi.IsVariadic
	return fn
}

// Decay applies the parameter adjustments: arrays become pointers to
// their element and functions become pointers to functions.
func Decay(t Type) Type {
	switch tt := t.(type) {
	case Tarray:
		return Pointer(tt.Elem)
	case Tfunction:
		return Pointer(tt)
	}
	return t
}

func arraySize(e cabs.Expr) int64 {
	if c, ok := e.(cabs.Constant); ok && c.Value >= 0 {
		return c.Value
	}
	return -1
}

package path

import (
	"fmt"
	"strconv"

	"github.com/roach88/woql/internal/ir"
)

// Pattern is a compiled path pattern. Only the types in this file implement
// it.
type Pattern interface {
	// IR encodes the pattern as a PathPattern wire object.
	IR() ir.IRObject
	// String renders the pattern back into the mini-language.
	String() string
	pattern()
}

// Predicate follows an edge forwards. An empty Name is the "." wildcard.
type Predicate struct {
	Name string
}

// InversePredicate follows an edge backwards.
type InversePredicate struct {
	Name string
}

// Sequence matches Left then Right.
type Sequence struct {
	Left, Right Pattern
}

// Or matches either branch.
type Or struct {
	Left, Right Pattern
}

// Star matches Inner zero or more times.
type Star struct {
	Inner Pattern
}

// Plus matches Inner one or more times.
type Plus struct {
	Inner Pattern
}

// Repeat matches Inner between From and To times inclusive.
type Repeat struct {
	Inner    Pattern
	From, To int
}

func (Predicate) pattern()        {}
func (InversePredicate) pattern() {}
func (Sequence) pattern()         {}
func (Or) pattern()               {}
func (Star) pattern()             {}
func (Plus) pattern()             {}
func (Repeat) pattern()           {}

func (p Predicate) IR() ir.IRObject {
	obj := ir.Obj(ir.O("@type", ir.IRString("PathPredicate")))
	if p.Name != "" {
		obj["predicate"] = ir.IRString(p.Name)
	}
	return obj
}

func (p InversePredicate) IR() ir.IRObject {
	obj := ir.Obj(ir.O("@type", ir.IRString("InversePathPredicate")))
	if p.Name != "" {
		obj["predicate"] = ir.IRString(p.Name)
	}
	return obj
}

func (p Sequence) IR() ir.IRObject {
	return ir.Obj(
		ir.O("@type", ir.IRString("PathSequence")),
		ir.O("sequence", ir.IRArray{p.Left.IR(), p.Right.IR()}),
	)
}

func (p Or) IR() ir.IRObject {
	return ir.Obj(
		ir.O("@type", ir.IRString("PathOr")),
		ir.O("or", ir.IRArray{p.Left.IR(), p.Right.IR()}),
	)
}

func (p Star) IR() ir.IRObject {
	return ir.Obj(
		ir.O("@type", ir.IRString("PathStar")),
		ir.O("star", p.Inner.IR()),
	)
}

func (p Plus) IR() ir.IRObject {
	return ir.Obj(
		ir.O("@type", ir.IRString("PathPlus")),
		ir.O("plus", p.Inner.IR()),
	)
}

func (p Repeat) IR() ir.IRObject {
	return ir.Obj(
		ir.O("@type", ir.IRString("PathTimes")),
		ir.O("times", p.Inner.IR()),
		ir.O("from", ir.IRInt(p.From)),
		ir.O("to", ir.IRInt(p.To)),
	)
}

func (p Predicate) String() string {
	if p.Name == "" {
		return "."
	}
	return p.Name
}

func (p InversePredicate) String() string {
	if p.Name == "" {
		return "<."
	}
	return "<" + p.Name
}

func (p Sequence) String() string {
	left := p.Left.String()
	switch p.Left.(type) {
	case Sequence, Or:
		left = "(" + left + ")"
	}
	right := p.Right.String()
	if _, ok := p.Right.(Or); ok {
		right = "(" + right + ")"
	}
	return left + "," + right
}

func (p Or) String() string {
	left := p.Left.String()
	if _, ok := p.Left.(Or); ok {
		left = "(" + left + ")"
	}
	return left + "|" + p.Right.String()
}

func (p Star) String() string   { return group(p.Inner) + "*" }
func (p Plus) String() string   { return group(p.Inner) + "+" }
func (p Repeat) String() string { return group(p.Inner) + "{" + strconv.Itoa(p.From) + "," + strconv.Itoa(p.To) + "}" }

func group(p Pattern) string {
	switch p.(type) {
	case Sequence, Or:
		return "(" + p.String() + ")"
	}
	return p.String()
}

// IsPattern reports whether obj carries one of the PathPattern wire types.
func IsPattern(obj ir.IRObject) bool {
	switch obj.Type() {
	case "PathPredicate", "InversePathPredicate", "PathSequence", "PathOr",
		"PathStar", "PathPlus", "PathTimes":
		return true
	}
	return false
}

// FromIR decodes a PathPattern wire object. N-ary sequence and or lists are
// folded to the right.
func FromIR(v ir.IRValue) (Pattern, error) {
	obj, ok := v.(ir.IRObject)
	if !ok {
		return nil, fmt.Errorf("path pattern must be an object, got %T", v)
	}

	switch t := obj.Type(); t {
	case "PathPredicate":
		name, err := optionalString(obj, "predicate")
		return Predicate{Name: name}, err
	case "InversePathPredicate":
		name, err := optionalString(obj, "predicate")
		return InversePredicate{Name: name}, err
	case "PathSequence":
		parts, err := patternList(obj, "sequence")
		if err != nil {
			return nil, err
		}
		return foldRight(parts, func(l, r Pattern) Pattern { return Sequence{Left: l, Right: r} }), nil
	case "PathOr":
		parts, err := patternList(obj, "or")
		if err != nil {
			return nil, err
		}
		return foldRight(parts, func(l, r Pattern) Pattern { return Or{Left: l, Right: r} }), nil
	case "PathStar":
		inner, err := FromIR(obj["star"])
		if err != nil {
			return nil, fmt.Errorf("star: %w", err)
		}
		return Star{Inner: inner}, nil
	case "PathPlus":
		inner, err := FromIR(obj["plus"])
		if err != nil {
			return nil, fmt.Errorf("plus: %w", err)
		}
		return Plus{Inner: inner}, nil
	case "PathTimes":
		inner, err := FromIR(obj["times"])
		if err != nil {
			return nil, fmt.Errorf("times: %w", err)
		}
		from, fromOK := obj["from"].(ir.IRInt)
		to, toOK := obj["to"].(ir.IRInt)
		if !fromOK || !toOK {
			return nil, fmt.Errorf("PathTimes requires integer from and to")
		}
		return Repeat{Inner: inner, From: int(from), To: int(to)}, nil
	default:
		return nil, fmt.Errorf("unknown path pattern type %q", t)
	}
}

func optionalString(obj ir.IRObject, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(ir.IRString)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return string(s), nil
}

func patternList(obj ir.IRObject, key string) ([]Pattern, error) {
	arr, ok := obj[key].(ir.IRArray)
	if !ok || len(arr) == 0 {
		return nil, fmt.Errorf("%s must be a non-empty list", key)
	}
	parts := make([]Pattern, len(arr))
	for i, elem := range arr {
		p, err := FromIR(elem)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		parts[i] = p
	}
	return parts, nil
}

func foldRight(parts []Pattern, join func(l, r Pattern) Pattern) Pattern {
	acc := parts[len(parts)-1]
	for i := len(parts) - 2; i >= 0; i-- {
		acc = join(parts[i], acc)
	}
	return acc
}

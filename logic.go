package fusez

// Tribool is a three-valued truth value. Indeterminate is the zero value
// and, for AllOfTri and AnyOfTri, means that no element was observed.
type Tribool uint8

const (
	Indeterminate Tribool = iota
	False
	True
)

// Bool collapses t to a bool, mapping Indeterminate to ifIndeterminate.
func (t Tribool) Bool(ifIndeterminate bool) bool {
	switch t {
	case True:
		return true
	case False:
		return false
	default:
		return ifIndeterminate
	}
}

// String implements fmt.Stringer.
func (t Tribool) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "indeterminate"
	}
}

// AllOfTri reports whether every element satisfies pred: True if all do,
// False as soon as one does not, Indeterminate for an empty input.
//
// The whole source is always traversed and pred is called for every
// element, even once the answer is settled.
func AllOfTri[T any](pred func(T) bool) Drain[T, Tribool, Tribool] {
	return AccumulateInto(Indeterminate, func(acc *Tribool, v T) {
		if !pred(v) {
			*acc = False
		} else if *acc == Indeterminate {
			*acc = True
		}
	})
}

// AnyOfTri reports whether some element satisfies pred: True if one does,
// False if none does, Indeterminate for an empty input. Like AllOfTri it
// never stops early.
func AnyOfTri[T any](pred func(T) bool) Drain[T, Tribool, Tribool] {
	return AccumulateInto(Indeterminate, func(acc *Tribool, v T) {
		if pred(v) {
			*acc = True
		} else if *acc == Indeterminate {
			*acc = False
		}
	})
}

// AllOf is AllOfTri collapsed to a bool. An empty input is vacuously true.
func AllOf[T any](pred func(T) bool) Drain[T, Tribool, bool] {
	return ResultTransform(AllOfTri(pred), func(t Tribool) bool { return t.Bool(true) })
}

// AnyOf is AnyOfTri collapsed to a bool. An empty input yields false.
func AnyOf[T any](pred func(T) bool) Drain[T, Tribool, bool] {
	return ResultTransform(AnyOfTri(pred), func(t Tribool) bool { return t.Bool(false) })
}

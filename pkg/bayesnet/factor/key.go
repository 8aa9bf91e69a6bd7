package factor

import "strings"

// sep joins outcome labels inside an encoded Key
const sep = "\x1f"

// Key identifies one row of a factor table: the outcome label of every scope
// variable, in the owning factor's scope order.
//
// Keys are comparable values, so two keys are equal iff their labels are
// element-wise equal. They can only be built through a Factor (KeyOf, KeyFor),
// which checks them against that factor's scope.
type Key struct {
	enc string
}

func makeKey(vals []string) Key {
	return Key{enc: strings.Join(vals, sep)}
}

// Values returns the outcome labels of the key in scope order
func (k Key) Values() []string {
	if k.enc == "" {
		return nil
	}
	return strings.Split(k.enc, sep)
}

// String renders the key as [a b c]
func (k Key) String() string {
	return "[" + strings.Join(k.Values(), " ") + "]"
}

// ValidLabel reports whether s can be used as an outcome label
func ValidLabel(s string) bool {
	return s != "" && !strings.Contains(s, sep)
}

package peephole

// Tuple is the constant kind the optimizer itself ever introduces: the
// folded value of a run of LOAD_CONSTs consumed by a BUILD_TUPLE. Any
// other Go value may appear in a Program's Consts list; the optimizer
// only ever inspects values it needs to fold or test for truthiness.
type Tuple []interface{}

// truthy mirrors PyObject_IsTrue for the constant kinds the optimizer's
// dead-conditional check actually needs to evaluate. Any value outside
// this set is conservatively truthy, matching Python's default object
// truthiness.
func truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case Tuple:
		return len(x) != 0
	default:
		return true
	}
}

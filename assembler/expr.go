package assembler

import (
	"math"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ErrParseExpression is an expression that did not evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// evaluate computes a Starlark integer expression. Every label defined so
// far is visible as an integer.
func (s *session) evaluate(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, addr := range s.labels.All() {
		pred[name] = starlark.MakeUint(uint(addr))
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// expression reads $(expr), pushing its value. On the first pass an
// expression that fails, possibly on a label defined further on, is
// deferred; on the final pass the failure is an error.
func (s *session) expression(code string, start int) (end int) {
	depth := 0
	index := start + 1
	for ; index < len(code); index++ {
		c := code[index]
		if c == '\n' {
			return start
		}
		if c == '(' {
			depth++
		}
		if c == ')' {
			depth--
			if depth == 0 {
				break
			}
		}
	}
	if index >= len(code) {
		return start
	}
	end = index + 1
	expr := code[start+2 : index]

	value, err := s.evaluate(expr)
	switch {
	case err != nil:
		if !s.first {
			s.messages.addError(start, end, ErrParseExpression(expr).Error())
		}
		s.params.Push(Value{Deferred: true, Start: start, End: end})
	case value < 0:
		s.pushNumber(uint64(-value), true, value >= math.MinInt32, start, end)
	default:
		s.pushNumber(uint64(value), false, true, start, end)
	}

	return
}

package cli

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/getmockd/roster/pkg/student"
)

// where is a compiled --where predicate over the fields of a student, for
// example `gpa >= 95 && department == "CS"`.
type where struct {
	source  string
	program *vm.Program
}

func compileWhere(source string) (*where, error) {
	if source == "" {
		return nil, nil
	}
	program, err := expr.Compile(source, expr.Env(student.Student{}.Map()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}
	return &where{source: source, program: program}, nil
}

// apply keeps the records matching the predicate, in order. A nil predicate
// keeps everything.
func (w *where) apply(records []student.Student) ([]student.Student, error) {
	if w == nil {
		return records, nil
	}
	out := make([]student.Student, 0, len(records))
	for _, s := range records {
		ok, err := expr.Run(w.program, s.Map())
		if err != nil {
			return nil, fmt.Errorf("evaluate --where %q on student %d: %w", w.source, s.ID, err)
		}
		if ok.(bool) {
			out = append(out, s)
		}
	}
	return out, nil
}

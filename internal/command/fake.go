package command

import (
	"context"
	"fmt"
)

// Result is a canned response for Fake.
type Result struct {
	Output string
	Err    error
}

// Fake is a Runner that answers from a table keyed by command line. Unknown
// commands fail as if the binary were missing.
type Fake struct {
	Results map[string]Result
	Calls   []string
}

func (f *Fake) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := Line(name, args...)
	f.Calls = append(f.Calls, line)

	res, ok := f.Results[line]
	if !ok {
		return nil, &CommandError{Cmd: line, ExitCode: -1, Err: fmt.Errorf("executable file not found")}
	}
	return []byte(res.Output), res.Err
}

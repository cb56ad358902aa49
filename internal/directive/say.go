package directive

import "context"

// Say announces the next group of steps. The runner prints the message;
// applying it touches nothing.
type Say struct {
	Message string
}

func (Say) Kind() Kind { return KindSay }

func (s Say) Describe() string { return s.Message }

func (Say) Apply(context.Context, *Env) (Result, error) {
	return ok, nil
}

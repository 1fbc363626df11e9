package block

import (
	"runtime"
	"strings"
)

// Scope is an open block that ends when [Scope.End] is called. End runs at
// most once, so it is safe to both defer it and call it early.
//
//	defer s.Scope(id, "decode").End()
type Scope struct {
	session *Session
	done    bool
}

// Scope opens block id and returns a handle that ends it.
func (s *Session) Scope(id ID, label string) *Scope {
	if s == nil {
		return &Scope{done: true}
	}

	_, file, line, _ := runtime.Caller(1)
	s.BeginBlock(id, label, file, line, 0)

	return &Scope{session: s}
}

// Function is like [Session.Scope], but labels the block with the name of the
// calling function.
func (s *Session) Function(id ID) *Scope {
	if s == nil {
		return &Scope{done: true}
	}

	label := "unknown"

	pc, file, line, ok := runtime.Caller(1)
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			label = shortFuncName(fn.Name())
		}
	}

	s.BeginBlock(id, label, file, line, 0)

	return &Scope{session: s}
}

// Time runs fn inside block id. The block is ended even if fn panics.
func (s *Session) Time(id ID, label string, fn func()) {
	if s == nil {
		fn()
		return
	}

	_, file, line, _ := runtime.Caller(1)
	s.BeginBlock(id, label, file, line, 0)

	defer s.End()

	fn()
}

// AddBytes attributes bytes to the innermost open block of the session.
func (sc *Scope) AddBytes(bytes uint64) {
	if sc.done {
		return
	}

	sc.session.AddBytes(bytes)
}

// End closes the block. Calls after the first are no-ops.
func (sc *Scope) End() {
	if sc.done {
		return
	}

	sc.done = true
	sc.session.End()
}

// shortFuncName strips the import path from a fully qualified function
// name, e.g. "example.com/pkg.(*T).Run" becomes "(*T).Run".
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return name
}

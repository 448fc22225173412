// Package ctl bridges a declarative config.GraphConfig into a runnable
// graph.TaskGraphConf[string, string], the way cmd/htgsctl and cmd/htgsdot
// both need: a small, built-in registry of string-transform task kinds
// stands in for the compile-time-generic ITask implementations a real HTGS
// program would write by hand, since a JSON file cannot itself instantiate
// an arbitrary Go generic type.
package ctl

import (
	"strings"

	"github.com/htgs-go/htgs/internal/task"
)

// KindRegistry maps a config.TaskConfig.Kind string to a constructor for a
// fresh task.ITask[string, string] instance.
type KindRegistry map[string]func() task.ITask[string, string]

// DefaultKinds is the built-in set of string-transform task kinds
// cmd/htgsctl and cmd/htgsdot offer out of the box.
func DefaultKinds() KindRegistry {
	return KindRegistry{
		"upper":   func() task.ITask[string, string] { return &upperTask{} },
		"lower":   func() task.ITask[string, string] { return &lowerTask{} },
		"reverse": func() task.ITask[string, string] { return &reverseTask{} },
		"trim":    func() task.ITask[string, string] { return &trimTask{} },
	}
}

// Names returns the set of kind strings the registry recognizes, for
// config.Validator's knownKinds.
func (r KindRegistry) Names() map[string]bool {
	names := make(map[string]bool, len(r))
	for k := range r {
		names[k] = true
	}
	return names
}

type upperTask struct{}

func (*upperTask) Initialize(int, int) {}
func (*upperTask) ExecuteTask(data string, h *task.Handle[string, string]) {
	h.AddResult(strings.ToUpper(data))
}
func (*upperTask) Shutdown()                        {}
func (*upperTask) Name() string                     { return "upper" }
func (*upperTask) Copy() task.ITask[string, string] { return &upperTask{} }

type lowerTask struct{}

func (*lowerTask) Initialize(int, int) {}
func (*lowerTask) ExecuteTask(data string, h *task.Handle[string, string]) {
	h.AddResult(strings.ToLower(data))
}
func (*lowerTask) Shutdown()                       {}
func (*lowerTask) Name() string                    { return "lower" }
func (*lowerTask) Copy() task.ITask[string, string] { return &lowerTask{} }

type reverseTask struct{}

func (*reverseTask) Initialize(int, int) {}
func (*reverseTask) ExecuteTask(data string, h *task.Handle[string, string]) {
	r := []rune(data)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	h.AddResult(string(r))
}
func (*reverseTask) Shutdown()                       {}
func (*reverseTask) Name() string                    { return "reverse" }
func (*reverseTask) Copy() task.ITask[string, string] { return &reverseTask{} }

type trimTask struct{}

func (*trimTask) Initialize(int, int) {}
func (*trimTask) ExecuteTask(data string, h *task.Handle[string, string]) {
	h.AddResult(strings.TrimSpace(data))
}
func (*trimTask) Shutdown()                       {}
func (*trimTask) Name() string                    { return "trim" }
func (*trimTask) Copy() task.ITask[string, string] { return &trimTask{} }

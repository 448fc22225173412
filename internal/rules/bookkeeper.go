package rules

import (
	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/task"
)

// Bookkeeper fans every item it receives out to a fixed set of rules, each
// with its own output type and connector. It never produces output
// itself, hence task.ITask[T, contracts.NoData]: all real output leaves
// through the RuleSchedulers wired to it via AddRule.
type Bookkeeper[T any] struct {
	name  string
	rules []ruleApplier[T]
}

// NewBookkeeper creates an empty Bookkeeper; rules are attached with
// AddRule during graph construction.
func NewBookkeeper[T any](name string) *Bookkeeper[T] {
	return &Bookkeeper[T]{name: name}
}

// AddRule attaches a rule scheduler. Order determines the order in which
// rules see each item, which matters only if rules have side effects
// visible to one another (e.g. sharing a useLocks rule instance).
func (b *Bookkeeper[T]) AddRule(rs ruleApplier[T]) {
	b.rules = append(b.rules, rs)
}

func (b *Bookkeeper[T]) Name() string { return b.name }

func (b *Bookkeeper[T]) Initialize(pipelineID, numPipelines int) {}

func (b *Bookkeeper[T]) ExecuteTask(data T, _ *task.Handle[T, contracts.NoData]) {
	for _, r := range b.rules {
		r.Apply(data)
	}
}

// InputTerminated notifies every rule that no more data is coming, giving
// each a chance to flush pending output before CanTerminate is checked.
func (b *Bookkeeper[T]) InputTerminated() {
	for _, r := range b.rules {
		r.Terminate()
	}
}

// CanTerminate additionally requires every rule to report done, so a rule
// buffering state (e.g. a batching rule waiting for a partial batch) can
// hold its Bookkeeper's replica open past its own input's termination.
// Manager consults this once InputTerminated has run, retrying until it
// reports true before Shutdown proceeds.
func (b *Bookkeeper[T]) CanTerminate(inputTerminated bool) bool {
	if !inputTerminated {
		return false
	}
	for _, r := range b.rules {
		if !r.CanTerminate() {
			return false
		}
	}
	return true
}

func (b *Bookkeeper[T]) Shutdown() {}

func (b *Bookkeeper[T]) Copy() task.ITask[T, contracts.NoData] {
	return &Bookkeeper[T]{name: b.name}
}

var (
	_ task.ITask[int, contracts.NoData] = (*Bookkeeper[int])(nil)
	_ task.Finisher                     = (*Bookkeeper[int])(nil)
	_ task.Terminator                   = (*Bookkeeper[int])(nil)
)

package rules

import (
	"sync"

	"github.com/htgs-go/htgs/internal/connector"
)

// ruleApplier is the type-erased-in-U (but not in T) view a Bookkeeper[T]
// uses to drive every attached rule regardless of each rule's own output
// type. Go generics can erase U this way because the interface only ever
// needs to name T, which the enclosing Bookkeeper[T] already fixes.
type ruleApplier[T any] interface {
	Apply(data T)
	Flush()
	Name() string
	CanTerminate() bool
	Terminate()
}

// RuleScheduler binds one IRule[T, U] to the output connector it produces
// into (on which it counts as one producer) and, when shared across ExecutionPipeline replicas, a mutex
// serializing access to the rule's internal state.
type RuleScheduler[T, U any] struct {
	name   string
	rule   IRule[T, U]
	output *connector.Connector[U]

	useLocks bool
	mu       *sync.Mutex // shared across replicas when useLocks is set

	terminated bool
}

// NewRuleScheduler wires rule to output. When useLocks is
// true, every sibling scheduler produced from this one via Copy(true, ...)
// shares this instance's mutex, serializing concurrent Apply/CanTerminate/
// Terminate calls across ExecutionPipeline replicas that hold the same
// rule instance.
func NewRuleScheduler[T, U any](rule IRule[T, U], output *connector.Connector[U], useLocks bool) *RuleScheduler[T, U] {
	return &RuleScheduler[T, U]{
		name:     rule.Name(),
		rule:     rule,
		output:   output,
		useLocks: useLocks,
		mu:       &sync.Mutex{},
	}
}

func (rs *RuleScheduler[T, U]) Name() string { return rs.name }

func (rs *RuleScheduler[T, U]) Initialize() {
	rs.rule.Initialize()
}

// Apply runs the rule against data. When useLocks is set, this scheduler
// shares its rule and mutex with sibling schedulers cloned from the same
// ExecutionPipeline stage, so every replica's calls are serialized -
// required because a shared rule instance is the whole point of the
// useLocks protocol: state accumulated from replica 0's data must be
// visible to the decision made for replica 1's data.
func (rs *RuleScheduler[T, U]) Apply(data T) {
	if rs.useLocks {
		rs.mu.Lock()
		defer rs.mu.Unlock()
	}
	rs.rule.ApplyRule(data, &RuleHandle[U]{conn: rs.output})
}

// Flush is a no-op placeholder kept symmetrical with Terminate; rules flush
// through Terminate's call to Shutdown, matching the point at which the
// original library invokes a rule's own shutdown hook.
func (rs *RuleScheduler[T, U]) Flush() {}

func (rs *RuleScheduler[T, U]) CanTerminate() bool {
	if rs.useLocks {
		rs.mu.Lock()
		defer rs.mu.Unlock()
	}
	return rs.rule.CanTerminate()
}

// Terminate flushes any state the rule is holding, marks it done, and
// signals ProducerFinished on this scheduler's own output connector - the
// one producer AddRuleEdge registered on it. It is idempotent: multiple
// ExecutionPipeline replicas sharing a useLocks rule may each observe
// input termination and call this, but the underlying rule's Shutdown
// only runs once per scheduler instance.
func (rs *RuleScheduler[T, U]) Terminate() {
	if rs.useLocks {
		rs.mu.Lock()
		defer rs.mu.Unlock()
	}
	if rs.terminated {
		return
	}
	rs.rule.Shutdown(&RuleHandle[U]{conn: rs.output})
	rs.terminated = true
	if rs.output != nil {
		rs.output.ProducerFinished()
	}
}

// Copy produces a sibling scheduler for another ExecutionPipeline replica.
// When useLocks is true, the same rule instance and mutex are reused, so
// state written by one replica is visible to the next; otherwise the rule
// is cloned so each replica gets independent state.
func (rs *RuleScheduler[T, U]) Copy(useLocks bool, output *connector.Connector[U]) *RuleScheduler[T, U] {
	if useLocks {
		return &RuleScheduler[T, U]{
			name:     rs.name,
			rule:     rs.rule,
			output:   output,
			useLocks: true,
			mu:       rs.mu,
		}
	}
	return &RuleScheduler[T, U]{
		name:   rs.name,
		rule:   rs.rule.Copy(),
		output: output,
		mu:     &sync.Mutex{},
	}
}

var _ ruleApplier[int] = (*RuleScheduler[int, int])(nil)

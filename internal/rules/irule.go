// Package rules implements conditional fan-out: a Bookkeeper task applies
// every attached rule to each item it receives, and each rule decides,
// independently and possibly with a completely different output type,
// whether and where to forward that item.
package rules

import "github.com/htgs-go/htgs/internal/connector"

// IRule is a single fan-out decision applied to every item a Bookkeeper
// receives. A rule may hold its own state across calls (e.g. to batch
// items, or to alternate output edges) and must report that state through
// CanTerminate so its Bookkeeper knows when it is safe to shut down.
type IRule[T, U any] interface {
	// Initialize is called once per replica before the first ApplyRule.
	Initialize()

	// ApplyRule inspects data and forwards zero or more results through
	// handle. It must not block.
	ApplyRule(data T, handle *RuleHandle[U])

	// CanTerminate reports whether the rule has flushed any state it was
	// buffering and is willing to let its Bookkeeper terminate. Most
	// rules are stateless and always return true.
	CanTerminate() bool

	// Shutdown is called once, after the rule's Bookkeeper's input
	// connector has terminated, giving a stateful rule a chance to flush
	// pending output through one final ApplyRule-style call sequence
	// before CanTerminate is consulted.
	Shutdown(handle *RuleHandle[U])

	// Name returns the rule's display name.
	Name() string

	// Copy returns a new rule instance for an additional replica or
	// graph clone.
	Copy() IRule[T, U]
}

// RuleHandle is the narrow API ApplyRule and Shutdown use to forward
// results onto the rule's own dedicated output connector.
type RuleHandle[U any] struct {
	conn *connector.Connector[U]
}

// AddResult forwards one item downstream of this rule.
func (h *RuleHandle[U]) AddResult(data U) {
	if h.conn != nil {
		h.conn.Produce(data)
	}
}

// StatelessRule is an embeddable IRule base that always reports
// CanTerminate/Shutdown as trivially satisfied, for rules with no state to
// flush - the common case.
type StatelessRule[T, U any] struct{}

func (StatelessRule[T, U]) Initialize()                       {}
func (StatelessRule[T, U]) CanTerminate() bool                { return true }
func (StatelessRule[T, U]) Shutdown(handle *RuleHandle[U])    {}

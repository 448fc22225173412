package rules

import (
	"sync"
	"testing"

	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/connector"
	"github.com/htgs-go/htgs/internal/task"
)

type parityRule struct {
	StatelessRule[int, int]
	even bool
}

func (r *parityRule) Name() string { return "parity" }
func (r *parityRule) ApplyRule(data int, handle *RuleHandle[int]) {
	if (data%2 == 0) == r.even {
		handle.AddResult(data)
	}
}
func (r *parityRule) Copy() IRule[int, int] { return &parityRule{even: r.even} }

func TestBookkeeperFansOutByParity(t *testing.T) {
	in := connector.New[int]("in")
	evenOut := connector.New[int]("even")
	oddOut := connector.New[int]("odd")
	in.AddProducers(1)
	evenOut.AddProducers(1)
	oddOut.AddProducers(1)

	bk := NewBookkeeper[int]("bk")
	bk.AddRule(NewRuleScheduler[int, int](&parityRule{even: true}, evenOut, false))
	bk.AddRule(NewRuleScheduler[int, int](&parityRule{even: false}, oddOut, false))

	mgr := task.NewManager[int, contracts.NoData]("bk", bk, 1)
	mgr.SetInputConnector(in)

	var wg sync.WaitGroup
	mgr.Initialize(0, 1)
	mgr.Start(&wg)

	for i := 1; i <= 6; i++ {
		in.Produce(i)
	}
	in.ProducerFinished()
	wg.Wait()

	var evens, odds []int
	for {
		v, ok := evenOut.Consume()
		if !ok {
			break
		}
		evens = append(evens, v)
	}
	for {
		v, ok := oddOut.Consume()
		if !ok {
			break
		}
		odds = append(odds, v)
	}

	if len(evens) != 3 || len(odds) != 3 {
		t.Fatalf("evens=%v odds=%v; want 3 each", evens, odds)
	}
	for _, v := range evens {
		if v%2 != 0 {
			t.Fatalf("odd value %d routed to evens", v)
		}
	}
	for _, v := range odds {
		if v%2 == 0 {
			t.Fatalf("even value %d routed to odds", v)
		}
	}
}

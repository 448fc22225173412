package graph

import (
	"fmt"

	godot "github.com/emicklei/dot"

	"github.com/htgs-go/htgs/contracts"
)

// RenderDot renders the graph's tasks and the connectors joining them as
// Graphviz DOT notation, mirroring the original library's genDot walk
// over each task's bound connectors.
func (b *Builder) RenderDot(flags contracts.DotGenFlag) string {
	g := godot.NewGraph(godot.Directed)
	g.Attr("rankdir", "LR")

	tasks := b.Tasks()
	nodes := make(map[contracts.AnyTaskManager]godot.Node, len(tasks))
	for _, t := range tasks {
		label := fmt.Sprintf("%s\\nthreads=%d", t.Name(), t.NumThreads())
		n := g.Node(t.Name()).Attr("label", label).Attr("shape", "box")
		if flags.Has(contracts.DotGenFlagColorPipelines) {
			n = n.Attr("style", "filled").Attr("fillcolor", contracts.PipelineColor(t.PipelineID()))
		}
		nodes[t] = n
	}

	edgeLabel := func(c contracts.AnyConnector) string {
		label := c.Name()
		if flags.Has(contracts.DotGenFlagShowInOutTypes) {
			label = fmt.Sprintf("%s\\n[%s]", label, c.TypeName())
		}
		return label
	}

	for _, t := range tasks {
		out := t.OutputConnector()
		if out == nil {
			continue
		}
		for _, u := range tasks {
			in := u.InputConnector()
			if in == nil || in != out {
				continue
			}
			g.Edge(nodes[t], nodes[u], edgeLabel(out))
		}
	}

	if !flags.Has(contracts.DotGenFlagHideMemEdges) {
		for _, t := range tasks {
			for name, c := range t.MemoryInEdges() {
				memNode := g.Node(c.DotID()).Attr("label", name).Attr("shape", "ellipse")
				g.Edge(memNode, nodes[t], edgeLabel(c))
			}
			for name, c := range t.MemoryOutEdges() {
				memNode := g.Node(c.DotID()).Attr("label", name).Attr("shape", "ellipse")
				g.Edge(nodes[t], memNode, edgeLabel(c))
			}
		}
	}

	return g.String()
}

// Package viewer imports BPMN 2.0 diagram markup and renders it for a
// page canvas.
package viewer

import (
	"github.com/papercomputeco/sketchflow/pkg/page"
)

// NodeKind groups BPMN flow node types by how they are drawn.
type NodeKind string

const (
	KindStart   NodeKind = "start"
	KindEnd     NodeKind = "end"
	KindTask    NodeKind = "task"
	KindGateway NodeKind = "gateway"
	KindEvent   NodeKind = "event"
)

// Node is a flow node of the process.
type Node struct {
	ID   string
	Name string
	Kind NodeKind
	// Type is the BPMN element name, e.g. "userTask" or "exclusiveGateway".
	Type string
	// Bounds is the diagram interchange shape, when the markup has one.
	Bounds *page.Rect
}

// Flow is a sequence flow between two nodes.
type Flow struct {
	ID     string
	Name   string
	Source string
	Target string
}

// Diagram is an imported process.
type Diagram struct {
	ProcessID string
	Name      string
	Nodes     []Node
	Flows     []Flow
}

// Node looks up a node by id.
func (d *Diagram) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Outgoing returns the flows leaving id, in document order.
func (d *Diagram) Outgoing(id string) []Flow {
	var out []Flow
	for _, f := range d.Flows {
		if f.Source == id {
			out = append(out, f)
		}
	}
	return out
}

// Bounds is the union of all node shapes. It reports false when no node
// carries interchange bounds.
func (d *Diagram) Bounds() (page.Rect, bool) {
	var (
		minX, minY, maxX, maxY float64
		found                  bool
	)
	for _, n := range d.Nodes {
		if n.Bounds == nil {
			continue
		}
		b := *n.Bounds
		if !found {
			minX, minY, maxX, maxY = b.Left, b.Top, b.Right(), b.Bottom()
			found = true
			continue
		}
		minX = min(minX, b.Left)
		minY = min(minY, b.Top)
		maxX = max(maxX, b.Right())
		maxY = max(maxY, b.Bottom())
	}
	if !found {
		return page.Rect{}, false
	}
	return page.Rect{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// Walk returns the nodes in flow order: breadth first from the start events,
// followed by anything unreachable in document order.
func (d *Diagram) Walk() []Node {
	visited := make(map[string]bool, len(d.Nodes))
	var queue []string
	for _, n := range d.Nodes {
		if n.Kind == KindStart {
			queue = append(queue, n.ID)
			visited[n.ID] = true
		}
	}

	ordered := make([]Node, 0, len(d.Nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if n, ok := d.Node(id); ok {
			ordered = append(ordered, n)
		}
		for _, f := range d.Outgoing(id) {
			if !visited[f.Target] {
				visited[f.Target] = true
				queue = append(queue, f.Target)
			}
		}
	}

	for _, n := range d.Nodes {
		if !visited[n.ID] {
			ordered = append(ordered, n)
		}
	}
	return ordered
}

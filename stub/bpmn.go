package stub

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Grid layout: columns run left to right, branch rows stack downwards.
const (
	startX        = 100
	rowY          = 150
	spacing       = 220
	rowSpacing    = 160
	eventSize     = 36
	gatewaySize   = 50
	taskWidth     = 160
	taskHeight    = 80
	extraLineSize = 18
)

const (
	processID = "Process_1"
	startID   = "StartEvent_1"
	endID     = "EndEvent_1"
	splitID   = "Gateway_Split_1"
	joinID    = "Gateway_Join_1"

	startName = "شروع"
	endName   = "پایان"
)

type nodeKind int

const (
	kindTask nodeKind = iota
	kindStart
	kindEnd
	kindGateway
)

type node struct {
	id       string
	kind     nodeKind
	name     string
	col, row int
}

type edge struct {
	id       string
	src, dst string
}

// graph collects process nodes and flows in emission order.
type graph struct {
	nodes []node
	edges []edge
}

func (g *graph) add(n node) string {
	g.nodes = append(g.nodes, n)
	return n.id
}

func (g *graph) flow(src, dst string) {
	g.edges = append(g.edges, edge{id: fmt.Sprintf("Flow_%d", len(g.edges)+1), src: src, dst: dst})
}

func (g *graph) task(id, step string, col, row int) string {
	return g.add(node{id: id, kind: kindTask, name: TaskLabel(step), col: col, row: row})
}

// chain adds one task per step on row 0 from column col, linked in order
// after prev. It returns the last node id.
func (g *graph) chain(prev string, steps []string, col int) string {
	for i, s := range steps {
		id := g.task(fmt.Sprintf("Activity_%d", i+1), s, col+i, 0)
		g.flow(prev, id)
		prev = id
	}
	return prev
}

// BuildLinear renders steps as start -> task per step -> end, with
// interchange shapes and edges so viewers can lay it out as-is.
func BuildLinear(steps []string) string {
	var g graph
	g.add(node{id: startID, kind: kindStart, name: startName})
	last := g.chain(startID, steps, 1)
	g.flow(last, g.add(node{id: endID, kind: kindEnd, name: endName, col: len(steps) + 1}))
	return g.render()
}

// BuildBranched renders the steps before a decision, then an exclusive split
// into the yes and no paths, joined again before the end event.
func BuildBranched(before []string, b Branch) string {
	var g graph
	g.add(node{id: startID, kind: kindStart, name: startName})
	last := g.chain(startID, before, 1)

	col := len(before) + 1
	split := g.add(node{id: splitID, kind: kindGateway, name: b.Question, col: col})
	g.flow(last, split)

	yes := g.task("Activity_Yes_1", b.Yes, col+1, 0)
	no := g.task("Activity_No_1", b.No, col+1, 1)
	g.flow(split, yes)
	g.flow(split, no)

	noEnd, joinCol := no, col+2
	if b.AfterNo != "" {
		noEnd = g.task("Activity_No_2", b.AfterNo, col+2, 1)
		g.flow(no, noEnd)
		joinCol++
	}

	join := g.add(node{id: joinID, kind: kindGateway, col: joinCol})
	g.flow(yes, join)
	g.flow(noEnd, join)
	g.flow(join, g.add(node{id: endID, kind: kindEnd, name: endName, col: joinCol + 1}))

	return g.render()
}

type shape struct {
	id         string
	x, y, w, h float64
}

func (g *graph) layout() map[string]shape {
	shapes := make(map[string]shape, len(g.nodes))
	for _, n := range g.nodes {
		s := shape{
			id: n.id,
			x:  float64(startX + spacing*n.col),
			y:  float64(rowY + rowSpacing*n.row),
			w:  eventSize,
			h:  eventSize,
		}
		switch n.kind {
		case kindGateway:
			s.w, s.h = gatewaySize, gatewaySize
		case kindTask:
			lines := strings.Count(n.name, "\n") + 1
			s.w = taskWidth
			s.h = taskHeight + float64(max(0, lines-2)*extraLineSize)
			// keep the task centred on the flow line between events
			s.x -= taskWidth/2 - eventSize/2
		}
		shapes[n.id] = s
	}
	return shapes
}

func (g *graph) render() string {
	var proc strings.Builder
	for _, n := range g.nodes {
		fmt.Fprintf(&proc, "\n    <bpmn:%s id=%q name=\"%s\"/>", n.kind.element(), n.id, escape(n.name))
	}
	for _, e := range g.edges {
		fmt.Fprintf(&proc, "\n    <bpmn:sequenceFlow id=%q sourceRef=%q targetRef=%q/>", e.id, e.src, e.dst)
	}

	shapes := g.layout()

	var di strings.Builder
	for _, n := range g.nodes {
		s := shapes[n.id]
		fmt.Fprintf(&di, "\n      <bpmndi:BPMNShape id=\"%s_di\" bpmnElement=%q>", s.id, s.id)
		fmt.Fprintf(&di, "\n        <dc:Bounds x=\"%.0f\" y=\"%.0f\" width=\"%.0f\" height=\"%.0f\"/>", s.x, s.y, s.w, s.h)
		di.WriteString("\n      </bpmndi:BPMNShape>")
	}
	for _, e := range g.edges {
		src, dst := shapes[e.src], shapes[e.dst]
		fmt.Fprintf(&di, "\n      <bpmndi:BPMNEdge id=\"%s_di\" bpmnElement=%q>", e.id, e.id)
		fmt.Fprintf(&di, "\n        <di:waypoint x=\"%.0f\" y=\"%.0f\"/>", src.x+src.w, src.y+src.h/2)
		fmt.Fprintf(&di, "\n        <di:waypoint x=\"%.0f\" y=\"%.0f\"/>", dst.x, dst.y+dst.h/2)
		di.WriteString("\n      </bpmndi:BPMNEdge>")
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
                  xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL"
                  xmlns:bpmndi="http://www.omg.org/spec/BPMN/20100524/DI"
                  xmlns:dc="http://www.omg.org/spec/DD/20100524/DC"
                  xmlns:di="http://www.omg.org/spec/DD/20100524/DI"
                  id="Definitions_1"
                  targetNamespace="http://example.com/bpmn">
  <bpmn:process id="%s" isExecutable="false">%s
  </bpmn:process>
  <bpmndi:BPMNDiagram id="BPMNDiagram_1">
    <bpmndi:BPMNPlane id="BPMNPlane_1" bpmnElement="%s">%s
    </bpmndi:BPMNPlane>
  </bpmndi:BPMNDiagram>
</bpmn:definitions>
`, processID, proc.String(), processID, di.String())
}

func (k nodeKind) element() string {
	switch k {
	case kindStart:
		return "startEvent"
	case kindEnd:
		return "endEvent"
	case kindGateway:
		return "exclusiveGateway"
	default:
		return "task"
	}
}

func escape(s string) string {
	var sb strings.Builder
	// strings.Builder never fails a write
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

package viewer

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/papercomputeco/sketchflow/pkg/page"
)

type xmlDefinitions struct {
	XMLName   xml.Name     `xml:"definitions"`
	Processes []xmlProcess `xml:"process"`
	Diagrams  []xmlDiagram `xml:"BPMNDiagram"`
}

type xmlProcess struct {
	ID       string       `xml:"id,attr"`
	Name     string       `xml:"name,attr"`
	Elements []xmlElement `xml:",any"`
}

type xmlElement struct {
	XMLName   xml.Name
	ID        string `xml:"id,attr"`
	Name      string `xml:"name,attr"`
	SourceRef string `xml:"sourceRef,attr"`
	TargetRef string `xml:"targetRef,attr"`
}

type xmlDiagram struct {
	Plane struct {
		Shapes []xmlShape `xml:"BPMNShape"`
	} `xml:"BPMNPlane"`
}

type xmlShape struct {
	Element string `xml:"bpmnElement,attr"`
	Bounds  struct {
		X      float64 `xml:"x,attr"`
		Y      float64 `xml:"y,attr"`
		Width  float64 `xml:"width,attr"`
		Height float64 `xml:"height,attr"`
	} `xml:"Bounds"`
}

// Reasons shown to the user when markup is rejected.
const (
	reasonUnreadable = "نمودار دریافتی قابل خواندن نیست."
	reasonNoProcess  = "نمودار دریافتی هیچ فرایندی ندارد."
	reasonBadRef     = "نمودار دریافتی ارجاع نامعتبر دارد."
)

// ImportError is a rejected markup. Message is user facing.
type ImportError struct {
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err == nil {
		return "import diagram: " + e.Message
	}
	return "import diagram: " + e.Err.Error()
}

func (e *ImportError) Unwrap() error { return e.Err }

// Reason implements the reason reporting convert.RenderError looks for.
func (e *ImportError) Reason() string { return e.Message }

// Parse decodes BPMN markup into a Diagram. Only the first process is used.
func Parse(markup string) (*Diagram, error) {
	var defs xmlDefinitions
	if err := xml.NewDecoder(strings.NewReader(markup)).Decode(&defs); err != nil {
		return nil, &ImportError{Message: reasonUnreadable, Err: fmt.Errorf("decode xml: %w", err)}
	}
	if len(defs.Processes) == 0 {
		return nil, &ImportError{Message: reasonNoProcess}
	}

	proc := defs.Processes[0]
	d := &Diagram{ProcessID: proc.ID, Name: proc.Name}

	for _, el := range proc.Elements {
		typ := el.XMLName.Local
		if typ == "sequenceFlow" {
			d.Flows = append(d.Flows, Flow{ID: el.ID, Name: el.Name, Source: el.SourceRef, Target: el.TargetRef})
			continue
		}
		kind, ok := kindOf(typ)
		if !ok {
			continue
		}
		d.Nodes = append(d.Nodes, Node{ID: el.ID, Name: el.Name, Kind: kind, Type: typ})
	}

	ids := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		ids[n.ID] = i
	}
	for _, f := range d.Flows {
		_, src := ids[f.Source]
		_, dst := ids[f.Target]
		if !src || !dst {
			return nil, &ImportError{Message: reasonBadRef, Err: fmt.Errorf("flow %q references unknown node", f.ID)}
		}
	}

	for _, diag := range defs.Diagrams {
		for _, s := range diag.Plane.Shapes {
			i, ok := ids[s.Element]
			if !ok {
				continue
			}
			d.Nodes[i].Bounds = &page.Rect{
				Left:   s.Bounds.X,
				Top:    s.Bounds.Y,
				Width:  s.Bounds.Width,
				Height: s.Bounds.Height,
			}
		}
	}

	return d, nil
}

func kindOf(typ string) (NodeKind, bool) {
	switch {
	case typ == "startEvent":
		return KindStart, true
	case typ == "endEvent":
		return KindEnd, true
	case strings.HasSuffix(typ, "Gateway"):
		return KindGateway, true
	case typ == "task" || strings.HasSuffix(typ, "Task") || typ == "subProcess" || typ == "callActivity":
		return KindTask, true
	case strings.HasSuffix(typ, "Event"):
		return KindEvent, true
	default:
		return "", false
	}
}

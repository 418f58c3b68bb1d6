// Package diagfile reads, writes and exports diagram documents. The
// on-disk document is plain data: nodes keyed by id, links referencing
// node ids. Decoding validates every reference before constructing
// anything, so a bad file never leaves partial state behind.
package diagfile

import (
	"fmt"

	"fsmdraw/pkg/diagram"
)

// document is the serialized form shared by the JSON and YAML codecs.
type document struct {
	Nodes []documentNode `json:"nodes" yaml:"nodes"`
	Links []documentLink `json:"links,omitempty" yaml:"links,omitempty"`
}

type documentNode struct {
	ID     string  `json:"id" yaml:"id"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Shape  string  `json:"shape,omitempty" yaml:"shape,omitempty"`
	Color  string  `json:"color,omitempty" yaml:"color,omitempty"`
	Text   string  `json:"text,omitempty" yaml:"text,omitempty"`
	Accept bool    `json:"accept,omitempty" yaml:"accept,omitempty"`
}

type documentLink struct {
	Kind  string `json:"kind" yaml:"kind"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
	Arrow string `json:"arrow,omitempty" yaml:"arrow,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`

	// transition
	From          string  `json:"from,omitempty" yaml:"from,omitempty"`
	To            string  `json:"to,omitempty" yaml:"to,omitempty"`
	Parallel      float64 `json:"parallel,omitempty" yaml:"parallel,omitempty"`
	Perpendicular float64 `json:"perpendicular,omitempty" yaml:"perpendicular,omitempty"`
	Bias          float64 `json:"bias,omitempty" yaml:"bias,omitempty"`

	// self and entry
	Node  string  `json:"node,omitempty" yaml:"node,omitempty"`
	Angle float64 `json:"angle,omitempty" yaml:"angle,omitempty"`
	DX    float64 `json:"dx,omitempty" yaml:"dx,omitempty"`
	DY    float64 `json:"dy,omitempty" yaml:"dy,omitempty"`
}

func arrowName(a diagram.ArrowKind) string {
	if a == diagram.ArrowTee {
		return "tee"
	}
	return "triangle"
}

func parseArrow(name string) (diagram.ArrowKind, error) {
	switch name {
	case "triangle", "":
		return diagram.ArrowTriangle, nil
	case "tee":
		return diagram.ArrowTee, nil
	}
	return diagram.ArrowTriangle, fmt.Errorf("unknown arrow kind %q", name)
}

// toDocument flattens a diagram into its serialized form.
func toDocument(d *diagram.Diagram) document {
	var doc document
	for _, n := range d.Nodes {
		doc.Nodes = append(doc.Nodes, documentNode{
			ID:     n.ID,
			X:      n.X,
			Y:      n.Y,
			Shape:  n.Shape.String(),
			Color:  n.Color,
			Text:   n.Text,
			Accept: n.Accept,
		})
	}
	for _, l := range d.Links {
		switch l := l.(type) {
		case *diagram.Transition:
			doc.Links = append(doc.Links, documentLink{
				Kind:          "transition",
				From:          l.From.ID,
				To:            l.To.ID,
				Text:          l.Text,
				Arrow:         arrowName(l.Arrow),
				Color:         l.Color,
				Parallel:      l.ParallelPart,
				Perpendicular: l.PerpendicularPart,
				Bias:          l.StraightBias,
			})
		case *diagram.SelfTransition:
			doc.Links = append(doc.Links, documentLink{
				Kind:  "self",
				Node:  l.Node.ID,
				Angle: l.AnchorAngle,
				Text:  l.Text,
				Arrow: arrowName(l.Arrow),
				Color: l.Color,
			})
		case *diagram.EntryArrow:
			doc.Links = append(doc.Links, documentLink{
				Kind: "entry",
				Node: l.Node.ID,
				DX:   l.DeltaX,
				DY:   l.DeltaY,
				Text: l.Text,
			})
		}
	}
	return doc
}

// fromDocument reconstructs a diagram, validating that every link
// reference resolves. On any error the returned diagram is nil and no
// partial state escapes.
func fromDocument(doc document) (*diagram.Diagram, error) {
	d := diagram.New()
	byID := make(map[string]*diagram.Node, len(doc.Nodes))
	for i, dn := range doc.Nodes {
		if dn.ID == "" {
			return nil, fmt.Errorf("node %d: missing id", i)
		}
		if byID[dn.ID] != nil {
			return nil, fmt.Errorf("node %d: duplicate id %q", i, dn.ID)
		}
		shape, err := diagram.ParseShape(dn.Shape)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", dn.ID, err)
		}
		n := &diagram.Node{
			ID:     dn.ID,
			X:      dn.X,
			Y:      dn.Y,
			Shape:  shape,
			Color:  dn.Color,
			Text:   dn.Text,
			Accept: dn.Accept,
		}
		byID[dn.ID] = n
		d.AddNode(n)
	}

	resolve := func(i int, id string) (*diagram.Node, error) {
		n := byID[id]
		if n == nil {
			return nil, fmt.Errorf("link %d: unresolved node reference %q", i, id)
		}
		return n, nil
	}

	for i, dl := range doc.Links {
		arrow, err := parseArrow(dl.Arrow)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		switch dl.Kind {
		case "transition":
			from, err := resolve(i, dl.From)
			if err != nil {
				return nil, err
			}
			to, err := resolve(i, dl.To)
			if err != nil {
				return nil, err
			}
			d.AddLink(&diagram.Transition{
				From:              from,
				To:                to,
				Text:              dl.Text,
				Arrow:             arrow,
				Color:             dl.Color,
				ParallelPart:      dl.Parallel,
				PerpendicularPart: dl.Perpendicular,
				StraightBias:      dl.Bias,
			})
		case "self":
			n, err := resolve(i, dl.Node)
			if err != nil {
				return nil, err
			}
			s := diagram.NewSelfTransition(n, dl.Angle)
			s.Text = dl.Text
			s.Arrow = arrow
			s.Color = dl.Color
			d.AddLink(s)
		case "entry":
			n, err := resolve(i, dl.Node)
			if err != nil {
				return nil, err
			}
			d.AddLink(&diagram.EntryArrow{
				Node:   n,
				DeltaX: dl.DX,
				DeltaY: dl.DY,
				Text:   dl.Text,
			})
		default:
			return nil, fmt.Errorf("link %d: unknown kind %q", i, dl.Kind)
		}
	}
	return d, nil
}

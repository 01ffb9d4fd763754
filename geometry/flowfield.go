package geometry

import "github.com/golang/geo/r2"

// FlowField samples the ambient flow (current, wind) at any point.
type FlowField interface {
	Sample(p r2.Point) r2.Point
}

// FlowFieldFunc adapts a plain function to FlowField.
type FlowFieldFunc func(p r2.Point) r2.Point

// Sample calls f.
func (f FlowFieldFunc) Sample(p r2.Point) r2.Point { return f(p) }

// ConstantFlowField is a FlowField that returns the same vector everywhere,
// useful for tests and simple planning scenarios.
type ConstantFlowField struct {
	Vector r2.Point
}

// Sample returns f.Vector regardless of p.
func (f ConstantFlowField) Sample(r2.Point) r2.Point { return f.Vector }

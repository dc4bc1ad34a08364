// Package scene defines the minimal scene-graph contract the
// measurement tools operate on, together with a default in-memory
// implementation. The rendering engine behind it stays abstract: any
// host that can enumerate objects and cast rays can drive the tools.
package scene

import (
	"sort"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Flag carries per-object behaviour bits
type Flag uint8

const (
	// FlagToolOwned marks geometry created by a measurement tool.
	// Hit testing skips these so a tool never clicks on itself.
	FlagToolOwned Flag = 1 << iota

	// FlagNoRaycast excludes an object from ray casting entirely
	FlagNoRaycast
)

// Has reports whether all bits of other are set
func (f Flag) Has(other Flag) bool {
	return f&other == other
}

// Object is a node in the scene graph
type Object interface {
	// Name returns the display name of the object
	Name() string

	// Flags returns the behaviour bits of the object
	Flags() Flag

	// Children returns the directly attached child objects
	Children() []Object

	// Intersect tests the ray against the object's own geometry and
	// returns the nearest intersection point with its ray distance.
	// Children are walked by the graph, not by the object.
	Intersect(r geometry.Ray) (geometry.Vector3, float64, bool)
}

// Hit is a single ray intersection
type Hit struct {
	Object   Object
	Point    geometry.Vector3
	Distance float64
}

// Graph is the scene contract the measurement session works against
type Graph interface {
	// Add attaches a top-level object
	Add(o Object)

	// Remove detaches a top-level object. Removing an object that is
	// not present is a no-op.
	Remove(o Object)

	// IntersectRay casts the ray against every object and its
	// children and returns all hits ordered by distance
	IntersectRay(r geometry.Ray) []Hit
}

// Node provides the common object state. Concrete objects embed it and
// add their geometry.
type Node struct {
	name     string
	flags    Flag
	children []Object
}

// NewNode creates the shared object state
func NewNode(name string, flags Flag) Node {
	return Node{name: name, flags: flags}
}

// Name returns the display name of the object
func (n *Node) Name() string { return n.name }

// Flags returns the behaviour bits of the object
func (n *Node) Flags() Flag { return n.flags }

// Children returns the directly attached child objects
func (n *Node) Children() []Object { return n.children }

// AddChild attaches a child object
func (n *Node) AddChild(o Object) {
	if o == nil {
		return
	}
	n.children = append(n.children, o)
}

// RemoveChild detaches a child object if present
func (n *Node) RemoveChild(o Object) {
	for i, c := range n.children {
		if c == o {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// World is the default slice-backed Graph
type World struct {
	objects []Object
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{}
}

// Add attaches a top-level object
func (w *World) Add(o Object) {
	if o == nil {
		return
	}
	w.objects = append(w.objects, o)
}

// Remove detaches a top-level object. Unknown objects are ignored.
func (w *World) Remove(o Object) {
	for i, existing := range w.objects {
		if existing == o {
			w.objects = append(w.objects[:i], w.objects[i+1:]...)
			return
		}
	}
}

// Objects returns the top-level objects in insertion order
func (w *World) Objects() []Object {
	return w.objects
}

// IntersectRay casts the ray against all objects and their children
// and returns the hits ordered by distance
func (w *World) IntersectRay(r geometry.Ray) []Hit {
	var hits []Hit
	for _, o := range w.objects {
		hits = collectHits(o, r, hits)
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func collectHits(o Object, r geometry.Ray, hits []Hit) []Hit {
	if !o.Flags().Has(FlagNoRaycast) {
		if point, dist, ok := o.Intersect(r); ok {
			hits = append(hits, Hit{Object: o, Point: point, Distance: dist})
		}
	}
	for _, child := range o.Children() {
		hits = collectHits(child, r, hits)
	}
	return hits
}

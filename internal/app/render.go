package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/label"
	"github.com/philipparndt/gomeasure/pkg/scene"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

var (
	markerColor    = rl.NewColor(255, 80, 80, 255)
	lineColor      = rl.NewColor(255, 200, 0, 255)
	fillColor      = rl.NewColor(128, 100, 0, 140)
	wireframeColor = rl.NewColor(100, 100, 100, 200)
	labelBgColor   = rl.NewColor(20, 20, 20, 220)
	labelEdgeColor = rl.NewColor(100, 100, 100, 255)
)

const labelFontSize = 16

// uploadMesh converts the model into a GPU mesh and replaces the
// previous one
func (a *App) uploadMesh(model *stl.Model) {
	if a.Model.uploaded {
		rl.UnloadMesh(&a.Model.mesh)
	}
	a.Model.mesh = meshFromModel(model)
	a.Model.material = rl.LoadMaterialDefault()
	a.Model.edges = modelEdges(model)
	a.Model.uploaded = true
}

// meshFromModel builds a raylib mesh with per-vertex baked lighting,
// so the default material renders shaded geometry without a shader
func meshFromModel(model *stl.Model) rl.Mesh {
	triangleCount := len(model.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)

	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	idx := 0
	for _, triangle := range model.Triangles {
		normal := triangle.CalculateNormal()

		// Min 30% ambient, max 100% diffuse
		intensity := math.Max(0.3, -normal.Dot(lightDir))
		base := 200.0
		r := uint8(base * intensity * 0.5)
		g := uint8(base * intensity * 0.6)
		b := uint8(base * intensity)

		for _, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			texcoords[idx*2+0] = 0
			texcoords[idx*2+1] = 0
			colors[idx*4+0] = r
			colors[idx*4+1] = g
			colors[idx*4+2] = b
			colors[idx*4+3] = 255
			idx++
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
		mesh.Colors = &colors[0]
	}

	rl.UploadMesh(&mesh, false)
	return mesh
}

type edgeKey [6]float32

// modelEdges deduplicates the triangle edges once at load time, so the
// wireframe pass is a flat iteration
func modelEdges(model *stl.Model) [][2]rl.Vector3 {
	seen := make(map[edgeKey]bool, len(model.Triangles)*3)
	edges := make([][2]rl.Vector3, 0, len(model.Triangles)*3)

	add := func(p, q geometry.Vector3) {
		a := rlVec(p)
		b := rlVec(q)
		key := edgeKey{a.X, a.Y, a.Z, b.X, b.Y, b.Z}
		rev := edgeKey{b.X, b.Y, b.Z, a.X, a.Y, a.Z}
		if seen[key] || seen[rev] {
			return
		}
		seen[key] = true
		edges = append(edges, [2]rl.Vector3{a, b})
	}

	for _, t := range model.Triangles {
		add(t.V1, t.V2)
		add(t.V2, t.V3)
		add(t.V3, t.V1)
	}
	return edges
}

// drawWireframe overlays the deduplicated model edges
func (a *App) drawWireframe() {
	for _, e := range a.Model.edges {
		rl.DrawLine3D(e[0], e[1], wireframeColor)
	}
}

// drawAnnotations draws the measurement geometry in screen space on
// top of the 3D render, so lines and markers stay visible on the model
func (a *App) drawAnnotations() {
	width := float64(rl.GetScreenWidth())
	height := float64(rl.GetScreenHeight())
	for _, o := range a.world.Objects() {
		a.drawAnnotation(o, width, height)
	}
}

func (a *App) drawAnnotation(o scene.Object, width, height float64) {
	switch obj := o.(type) {
	case *scene.PointCloud:
		a.drawMarkers(obj, width, height)
	case *scene.Polyline:
		a.drawStrip(obj, width, height)
	case *scene.TriangleFan:
		a.drawFan(obj, width, height)
	case *label.Label:
		a.drawLabel(obj, width, height)
	}
	for _, child := range o.Children() {
		a.drawAnnotation(child, width, height)
	}
}

// toScreen projects a world point; the depth decides front-of-camera
// visibility
func (a *App) toScreen(p geometry.Vector3, width, height float64) (rl.Vector2, float64) {
	x, y, z := a.Camera.orbit.Project(p, width, height)
	return rl.Vector2{X: float32(x), Y: float32(y)}, z
}

func (a *App) drawMarkers(p *scene.PointCloud, width, height float64) {
	buf := p.Buffer()
	for i := 0; i < buf.DrawCount(); i++ {
		v, z := a.toScreen(buf.Vertex(i), width, height)
		if z <= 0.01 {
			continue
		}
		rl.DrawCircleV(v, 4, markerColor)
	}
}

func (a *App) drawStrip(l *scene.Polyline, width, height float64) {
	buf := l.Buffer()
	for i := 1; i < buf.DrawCount(); i++ {
		pa, za := a.toScreen(buf.Vertex(i-1), width, height)
		pb, zb := a.toScreen(buf.Vertex(i), width, height)
		if za <= 0.01 && zb <= 0.01 {
			continue
		}
		rl.DrawLineEx(pa, pb, 2, lineColor)
	}
}

func (a *App) drawFan(f *scene.TriangleFan, width, height float64) {
	buf := f.Buffer()
	for base := 0; base+2 < buf.DrawCount(); base += 3 {
		v0, z0 := a.toScreen(buf.Vertex(base), width, height)
		v1, z1 := a.toScreen(buf.Vertex(base+1), width, height)
		v2, z2 := a.toScreen(buf.Vertex(base+2), width, height)
		if z0 <= 0.01 || z1 <= 0.01 || z2 <= 0.01 {
			continue
		}
		// DrawTriangle wants counter-clockwise winding
		cross := (v1.X-v0.X)*(v2.Y-v0.Y) - (v1.Y-v0.Y)*(v2.X-v0.X)
		if cross > 0 {
			v1, v2 = v2, v1
		}
		rl.DrawTriangle(v0, v1, v2, fillColor)
	}
}

// drawLabel draws overlay label text in a bordered box centered on the
// projected anchor
func (a *App) drawLabel(l *label.Label, width, height float64) {
	v, z := a.toScreen(l.Position(), width, height)
	if z <= 0.01 {
		return
	}

	text := l.Text()
	size := rl.MeasureTextEx(a.UI.font, text, labelFontSize, 1)
	box := rl.Rectangle{
		X:      v.X - size.X/2 - 8,
		Y:      v.Y - size.Y/2 - 4,
		Width:  size.X + 16,
		Height: size.Y + 8,
	}
	rl.DrawRectangleRec(box, labelBgColor)
	rl.DrawRectangleLinesEx(box, 1, labelEdgeColor)
	rl.DrawTextEx(a.UI.font, text,
		rl.Vector2{X: box.X + 8, Y: box.Y + 4}, labelFontSize, 1, rl.White)
}

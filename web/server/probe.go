package server

import (
	"net/http"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"

	"github.com/df07/go-light2d/pkg/core"
	"github.com/df07/go-light2d/pkg/csg"
	"github.com/df07/go-light2d/pkg/geometry"
	"github.com/df07/go-light2d/pkg/integrator"
	"github.com/df07/go-light2d/pkg/renderer"
	"github.com/df07/go-light2d/pkg/scene"
)

// ProbeResponse describes the distance field of a scene at one pixel
type ProbeResponse struct {
	Scene        string      `json:"scene"`
	PixelX       int         `json:"pixelX"`
	PixelY       int         `json:"pixelY"`
	Point        [2]float32  `json:"point"` // Normalized scene coordinates
	SD           float32     `json:"sd"`
	Inside       bool        `json:"inside"`
	Emissive     float32     `json:"emissive"`
	Reflectivity float32     `json:"reflectivity"`
	Gradient     [2]float32  `json:"gradient"`
	Normal       [2]float32  `json:"normal"` // Unit gradient, zero when the gradient vanishes
	Nearest      *ShapeProbe `json:"nearest,omitempty"`
	Primitives   int         `json:"primitives"`
}

// ShapeProbe describes the primitive closest to the probed point
type ShapeProbe struct {
	Kind         string                 `json:"kind"`
	Distance     float32                `json:"distance"`
	Emissive     float32                `json:"emissive"`
	Reflectivity float32                `json:"reflectivity"`
	Properties   map[string]interface{} `json:"properties"`
}

// probePoint evaluates the scene at p
func probePoint(sceneObj *scene.Scene, p core.Vec2) ProbeResponse {
	result := sceneObj.Evaluate(p)
	grad := integrator.Gradient(sceneObj, p)

	response := ProbeResponse{
		Point:        [2]float32{p.X, p.Y},
		SD:           result.SD,
		Inside:       result.SD < 0,
		Emissive:     result.Emissive,
		Reflectivity: result.Reflectivity,
		Gradient:     [2]float32{grad.X, grad.Y},
		Primitives:   sceneObj.GetPrimitiveCount(),
	}
	if length := ms2.Norm(grad); length > 0 && !math32.IsInf(length, 0) {
		n := ms2.Scale(1/length, grad)
		response.Normal = [2]float32{n.X, n.Y}
	}
	response.Nearest = nearestLeaf(sceneObj.Root, p)
	return response
}

// nearestLeaf finds the primitive whose boundary is closest to p
func nearestLeaf(root csg.Node, p core.Vec2) *ShapeProbe {
	var nearest *ShapeProbe
	for _, leaf := range csg.Leaves(root) {
		d := geometry.Distance(leaf.Shape, p)
		if nearest != nil && math32.Abs(d) >= math32.Abs(nearest.Distance) {
			continue
		}
		nearest = &ShapeProbe{
			Kind:         geometry.Name(leaf.Shape),
			Distance:     d,
			Emissive:     leaf.Material.Emissive,
			Reflectivity: leaf.Material.Reflectivity,
			Properties:   shapeProperties(leaf.Shape),
		}
	}
	return nearest
}

// shapeProperties extracts the geometric parameters of a shape
func shapeProperties(shape geometry.Shape) map[string]interface{} {
	properties := make(map[string]interface{})
	switch s := shape.(type) {
	case geometry.Circle:
		properties["center"] = [2]float32{s.Center.X, s.Center.Y}
		properties["radius"] = s.Radius
	case geometry.Plane:
		properties["point"] = [2]float32{s.Point.X, s.Point.Y}
		properties["normal"] = [2]float32{s.Normal.X, s.Normal.Y}
	case geometry.Segment:
		properties["a"] = [2]float32{s.A.X, s.A.Y}
		properties["b"] = [2]float32{s.B.X, s.B.Y}
	case geometry.Capsule:
		properties["a"] = [2]float32{s.A.X, s.A.Y}
		properties["b"] = [2]float32{s.B.X, s.B.Y}
		properties["radius"] = s.Radius
	case geometry.Rectangle:
		properties["center"] = [2]float32{s.Center.X, s.Center.Y}
		properties["theta"] = s.Theta
		properties["halfSize"] = [2]float32{s.HalfX, s.HalfY}
	case geometry.Triangle:
		properties["vertices"] = [3][2]float32{{s.A.X, s.A.Y}, {s.B.X, s.B.Y}, {s.C.X, s.C.Y}}
	}
	return properties
}

// handleProbe evaluates the scene distance field under a pixel
func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	probeReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, probeReq); err != nil {
		writeJSON(w, statusForError(err), map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= probeReq.Width || pixelY < 0 || pixelY >= probeReq.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := scene.Create(probeReq.Scene)
	if err != nil {
		writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}

	x, y := renderer.PixelPosition(pixelX, pixelY, probeReq.Width, probeReq.Height)
	response := probePoint(sceneObj, core.NewVec2(x, y))
	response.Scene = probeReq.Scene
	response.PixelX = pixelX
	response.PixelY = pixelY

	writeJSON(w, http.StatusOK, response)
}

package server

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/df07/go-rect-raytracer/pkg/core"
	"github.com/df07/go-rect-raytracer/pkg/geometry"
	"github.com/df07/go-rect-raytracer/pkg/renderer"
	"github.com/df07/go-rect-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Origin    [3]float64   `json:"origin"`
	Direction [3]float64   `json:"direction"`
	Color     [4]float64   `json:"color"` // Traced radiance before clamping
	Hex       string       `json:"hex"`   // Encoded pixel color
	Hits      []InspectHit `json:"hits"`  // Nearest first
}

// InspectHit describes one drawable crossed by the inspection ray
type InspectHit struct {
	Index          int                    `json:"index"` // Position in the scene's drawable list
	GeometryType   string                 `json:"geometryType"`
	Distance       float64                `json:"distance"`
	Point          [3]float64             `json:"point"`
	Emittance      [4]float64             `json:"emittance"`
	Transparency   [4]float64             `json:"transparency"`
	Reflectiveness [4]float64             `json:"reflectiveness"`
	Scattering     [4]float64             `json:"scattering"`
	Geometry       map[string]interface{} `json:"geometry"`
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(drawable core.Drawable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := drawable.(type) {
	case *geometry.Rect:
		properties["center"] = vecArray(geom.Center())
		properties["right"] = vecArray(geom.Right())
		properties["down"] = vecArray(geom.Down())
		properties["normal"] = vecArray(geom.Normal())
		return "rect", properties

	default:
		center, radius := drawable.OuterBounds()
		properties["center"] = vecArray(center)
		properties["radius"] = radius
		return fmt.Sprintf("%T", drawable), properties
	}
}

// inspectPixel casts the primary ray through a pixel and reports every hit
// along it together with the traced color
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (*InspectResponse, error) {
	camera, err := renderer.NewCamera(sceneObj.Width, sceneObj.Height,
		sceneObj.Camera.Position, sceneObj.Camera.Right, sceneObj.Camera.Down)
	if err != nil {
		return nil, err
	}
	ray := camera.GetRay(pixelX, pixelY)

	hits := []InspectHit{}
	for i, drawable := range sceneObj.Drawables {
		hit, isHit := drawable.Intersect(ray)
		if !isHit {
			continue
		}
		geometryType, geometryProps := extractGeometryInfo(drawable)
		light := hit.Properties.Light
		hits = append(hits, InspectHit{
			Index:          i,
			GeometryType:   geometryType,
			Distance:       hit.Distance,
			Point:          vecArray(ray.At(hit.Distance)),
			Emittance:      colorArray(light.Emittance),
			Transparency:   colorArray(light.Transparency),
			Reflectiveness: colorArray(light.Reflectiveness),
			Scattering:     colorArray(light.Scattering),
			Geometry:       geometryProps,
		})
	}
	slices.SortStableFunc(hits, func(a, b InspectHit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	color := renderer.NewRenderer(sceneObj.Drawables).Trace(sceneObj.Env, ray)
	rgba := color.RGBA8()

	return &InspectResponse{
		Origin:    vecArray(ray.Origin),
		Direction: vecArray(ray.Direction),
		Color:     colorArray(color),
		Hex:       fmt.Sprintf("#%02x%02x%02x", rgba[0], rgba[1], rgba[2]),
		Hits:      hits,
	}, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	req, err := parseRenderRequest(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= sceneObj.Width || pixelY < 0 || pixelY >= sceneObj.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	response, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func colorArray(c core.Color) [4]float64 {
	return [4]float64{c.R, c.G, c.B, c.A}
}

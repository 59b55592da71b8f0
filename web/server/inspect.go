package server

import (
	"net/http"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/object"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
	"golang.org/x/xerrors"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Material     map[string]interface{} `json:"material,omitempty"`
	Geometry     map[string]interface{} `json:"geometry,omitempty"`

	// Set when a transparent surface lies in front of the opaque hit
	Transparent *TransparentInfo `json:"transparent,omitempty"`
}

// TransparentInfo describes the nearest transparent surface on the ray
type TransparentInfo struct {
	Distance float64    `json:"distance"`
	Color    [3]float64 `json:"color"`
	Alpha    float64    `json:"alpha"`
}

func vecJSON(v core.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// inspectPixel casts the ray through the center of image pixel (x, y), with
// y counted from the top row, and describes what it hits first
func inspectPixel(sc *scene.Scene, x, y int) InspectResponse {
	camY := sc.Camera.Height() - 1 - y
	ray := sc.Camera.GetRay(float64(x)+0.5, float64(camY)+0.5)

	var resp InspectResponse
	var opaqueObj *object.Opaque
	opaque := object.FindOpaqueIntersection(ray, sc.OpaqueObjs)
	if opaque.Hit() {
		// Match the record back to its object for the geometry description
		for _, obj := range sc.OpaqueObjs {
			if hit, ok := obj.Shape.Hit(ray, core.Epsilon, opaque.T); ok && hit.T == opaque.T {
				opaqueObj = obj
				break
			}
		}
		resp = InspectResponse{
			Hit:      true,
			Point:    vecJSON(opaque.Point),
			Normal:   vecJSON(opaque.Normal),
			Distance: opaque.T,
			Material: describeMaterial(opaque.Material, opaque.Texture),
		}
		if opaqueObj != nil {
			resp.GeometryType, resp.Geometry = describeShape(opaqueObj.Shape)
		}
	}

	trans := object.FindTransparentIntersection(ray, sc.TransparentObjs)
	if trans.Hit() && (!opaque.Hit() || trans.T < opaque.T) {
		resp.Transparent = &TransparentInfo{
			Distance: trans.T,
			Color:    vecJSON(trans.Color),
			Alpha:    trans.Alpha,
		}
	}
	return resp
}

// describeMaterial reports the Phong coefficients and texture of a surface
func describeMaterial(mat *material.Material, tex material.Texture) map[string]interface{} {
	properties := map[string]interface{}{}
	if mat != nil {
		properties["ambient"] = vecJSON(mat.Ambient)
		properties["diffuse"] = vecJSON(mat.Diffuse)
		properties["specular"] = vecJSON(mat.Specular)
		properties["shininess"] = mat.Shininess
		properties["reflectivity"] = mat.Reflectivity
	}

	switch t := tex.(type) {
	case nil:
	case *material.SolidColor:
		properties["texture"] = "solid"
	case *material.CheckerTexture:
		if t.Solid {
			properties["texture"] = "solidChecker"
		} else {
			properties["texture"] = "checker"
		}
		properties["textureScale"] = t.Scale
	case *material.ImageTexture:
		properties["texture"] = "image"
		properties["textureSize"] = [2]int{t.Width, t.Height}
	default:
		properties["texture"] = "unknown"
	}
	return properties
}

// describeShape extracts detailed geometry information
func describeShape(shape geometry.Shape) (string, map[string]interface{}) {
	properties := map[string]interface{}{}

	switch geom := shape.(type) {
	case *geometry.Plane:
		properties["point"] = vecJSON(geom.Point)
		properties["normal"] = vecJSON(geom.Normal)
		return "plane", properties

	case *geometry.Sphere:
		properties["center"] = vecJSON(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Ellipsoid:
		properties["center"] = vecJSON(geom.Center)
		properties["radii"] = vecJSON(geom.Radii)
		return "ellipsoid", properties

	case *geometry.Cylinder:
		properties["center"] = vecJSON(geom.Center)
		properties["axis"] = vecJSON(geom.Axis)
		properties["radius"] = geom.Radius
		properties["length"] = geom.Length
		properties["capped"] = geom.Capped
		return "cylinder", properties

	case *geometry.Cone:
		properties["baseCenter"] = vecJSON(geom.BaseCenter)
		properties["baseRadius"] = geom.BaseRadius
		properties["topCenter"] = vecJSON(geom.TopCenter)
		properties["topRadius"] = geom.TopRadius
		properties["capped"] = geom.Capped
		return "cone", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecJSON(geom.V0), vecJSON(geom.V1), vecJSON(geom.V2)}
		return "triangle", properties

	case *geometry.TriangleMesh:
		properties["triangleCount"] = geom.Len()
		return "triangle_mesh", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, err := parseSceneRequest(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, xerrors.Errorf("invalid scene parameters: %w", err))
		return
	}

	x, err := parseIntParam(query, "x", -1, 0, req.Width-1)
	if err == nil && x < 0 {
		err = xerrors.New("missing x coordinate")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, req.Height-1)
	if err == nil && y < 0 {
		err = xerrors.New("missing y coordinate")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sc, x, y))
}

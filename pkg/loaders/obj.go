package loaders

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"golang.org/x/xerrors"
)

// LoadOBJ loads a Wavefront OBJ file as a triangle mesh. A missing or
// malformed file is logged and yields an empty mesh, so a scene still renders
// without it.
func LoadOBJ(filename string) *geometry.TriangleMesh {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		glog.Warningf("Could not open OBJ file %s: %v", filename, err)
		return &geometry.TriangleMesh{}
	}
	defer file.Close()

	mesh, err := ParseOBJ(file)
	if err != nil {
		glog.Warningf("Could not parse OBJ file %s: %v", filename, err)
		return &geometry.TriangleMesh{}
	}

	glog.Infof("Loaded %s: %s triangles in %v", filename, humanize.Comma(int64(mesh.Len())), time.Since(startTime))
	return mesh
}

// ParseOBJ reads vertex ("v x y z") and face ("f i j k ...") records.
// Face indices are 1-based, may be negative (relative to the vertices read so
// far) and may carry texture/normal indices after slashes, which are ignored.
// Faces with more than three vertices are split into a triangle fan. All
// other record types are skipped.
func ParseOBJ(r io.Reader) (*geometry.TriangleMesh, error) {
	var vertices []core.Vec3
	var faces [][3]int

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "v":
			v, err := parseVertex(parts[1:])
			if err != nil {
				return nil, xerrors.Errorf("line %d: %w", lineNo, err)
			}
			vertices = append(vertices, v)
		case "f":
			if len(parts) < 4 {
				return nil, xerrors.Errorf("line %d: face needs at least 3 vertices, got %d", lineNo, len(parts)-1)
			}
			indices := make([]int, 0, len(parts)-1)
			for _, ref := range parts[1:] {
				idx, err := parseFaceIndex(ref, len(vertices))
				if err != nil {
					return nil, xerrors.Errorf("line %d: %w", lineNo, err)
				}
				indices = append(indices, idx)
			}
			for i := 1; i+1 < len(indices); i++ {
				faces = append(faces, [3]int{indices[0], indices[i], indices[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("while reading OBJ data: %w", err)
	}

	return geometry.NewTriangleMesh(vertices, faces), nil
}

func parseVertex(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, xerrors.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, xerrors.Errorf("invalid vertex coordinate %q: %w", fields[i], err)
		}
		xyz[i] = f
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// parseFaceIndex converts an OBJ vertex reference to a 0-based index
func parseFaceIndex(ref string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	idx, err := strconv.Atoi(ref)
	if err != nil {
		return 0, xerrors.Errorf("invalid face index %q: %w", ref, err)
	}

	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += vertexCount
	default:
		return 0, xerrors.New("face index 0 is not valid in OBJ")
	}

	if idx < 0 || idx >= vertexCount {
		return 0, xerrors.Errorf("face index %s out of range (have %d vertices)", ref, vertexCount)
	}
	return idx, nil
}

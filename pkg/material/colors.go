package material

import "github.com/df07/go-implicit-raytracer/pkg/core"

// Named colors
var (
	Black     = core.NewVec3(0, 0, 0)
	White     = core.NewVec3(1, 1, 1)
	Red       = core.NewVec3(1, 0, 0)
	Green     = core.NewVec3(0, 1, 0)
	Blue      = core.NewVec3(0, 0, 1)
	Yellow    = core.NewVec3(1, 1, 0)
	Cyan      = core.NewVec3(0, 1, 1)
	Magenta   = core.NewVec3(1, 0, 1)
	Gray      = core.NewVec3(0.5, 0.5, 0.5)
	LightGray = core.NewVec3(0.75, 0.75, 0.75)
	DarkGray  = core.NewVec3(0.25, 0.25, 0.25)
	PaleGreen = core.NewVec3(0.6, 0.98, 0.6)
)

var namedColors = map[string]core.Vec3{
	"black":     Black,
	"white":     White,
	"red":       Red,
	"green":     Green,
	"blue":      Blue,
	"yellow":    Yellow,
	"cyan":      Cyan,
	"magenta":   Magenta,
	"gray":      Gray,
	"lightGray": LightGray,
	"darkGray":  DarkGray,
	"paleGreen": PaleGreen,
}

// NamedColor looks up one of the colors above by name
func NamedColor(name string) (core.Vec3, bool) {
	c, ok := namedColors[name]
	return c, ok
}

package material

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// Material holds Phong reflectance coefficients. Materials are immutable once
// built and are shared by pointer between objects.
type Material struct {
	Ambient   core.Vec3
	Diffuse   core.Vec3
	Specular  core.Vec3
	Shininess float64

	// Reflectivity in [0,1] is used only by the recursive ray seam.
	Reflectivity float64
}

// NewMaterial creates a material from ambient, diffuse and specular
// reflectances and a shininess exponent
func NewMaterial(ambient, diffuse, specular core.Vec3, shininess float64) *Material {
	return &Material{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
	}
}

// NewFlatMaterial creates a material with a single color used as both the
// ambient and diffuse reflectance and no highlight
func NewFlatMaterial(c core.Vec3) *Material {
	return NewMaterial(c, c, core.Vec3{}, 1)
}

// WithReflectivity returns a copy of m with the given reflectivity
func (m *Material) WithReflectivity(r float64) *Material {
	cp := *m
	cp.Reflectivity = max(0, min(1, r))
	return &cp
}

// Classic OpenGL material table. Shininess values are the table's 0-1 values
// scaled by 128.
var (
	Brass = NewMaterial(
		core.NewVec3(0.329412, 0.223529, 0.027451),
		core.NewVec3(0.780392, 0.568627, 0.113725),
		core.NewVec3(0.992157, 0.941176, 0.807843), 27.8974)
	Bronze = NewMaterial(
		core.NewVec3(0.2125, 0.1275, 0.054),
		core.NewVec3(0.714, 0.4284, 0.18144),
		core.NewVec3(0.393548, 0.271906, 0.166721), 25.6)
	PolishedBronze = NewMaterial(
		core.NewVec3(0.25, 0.148, 0.06475),
		core.NewVec3(0.4, 0.2368, 0.1036),
		core.NewVec3(0.774597, 0.458561, 0.200621), 76.8)
	Chrome = NewMaterial(
		core.NewVec3(0.25, 0.25, 0.25),
		core.NewVec3(0.4, 0.4, 0.4),
		core.NewVec3(0.774597, 0.774597, 0.774597), 76.8)
	Copper = NewMaterial(
		core.NewVec3(0.19125, 0.0735, 0.0225),
		core.NewVec3(0.7038, 0.27048, 0.0828),
		core.NewVec3(0.256777, 0.137622, 0.086014), 12.8)
	PolishedCopper = NewMaterial(
		core.NewVec3(0.2295, 0.08825, 0.0275),
		core.NewVec3(0.5508, 0.2118, 0.066),
		core.NewVec3(0.580594, 0.223257, 0.0695701), 51.2)
	Gold = NewMaterial(
		core.NewVec3(0.24725, 0.1995, 0.0745),
		core.NewVec3(0.75164, 0.60648, 0.22648),
		core.NewVec3(0.628281, 0.555802, 0.366065), 51.2)
	PolishedGold = NewMaterial(
		core.NewVec3(0.24725, 0.2245, 0.0645),
		core.NewVec3(0.34615, 0.3143, 0.0903),
		core.NewVec3(0.797357, 0.723991, 0.208006), 83.2)
	Pewter = NewMaterial(
		core.NewVec3(0.105882, 0.058824, 0.113725),
		core.NewVec3(0.427451, 0.470588, 0.541176),
		core.NewVec3(0.333333, 0.333333, 0.521569), 9.84615)
	Silver = NewMaterial(
		core.NewVec3(0.19225, 0.19225, 0.19225),
		core.NewVec3(0.50754, 0.50754, 0.50754),
		core.NewVec3(0.508273, 0.508273, 0.508273), 51.2)
	PolishedSilver = NewMaterial(
		core.NewVec3(0.23125, 0.23125, 0.23125),
		core.NewVec3(0.2775, 0.2775, 0.2775),
		core.NewVec3(0.773911, 0.773911, 0.773911), 89.6)

	BlackPlastic = NewMaterial(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0.01, 0.01, 0.01),
		core.NewVec3(0.5, 0.5, 0.5), 32)
	CyanPlastic = NewMaterial(
		core.NewVec3(0, 0.1, 0.06),
		core.NewVec3(0, 0.50980392, 0.50980392),
		core.NewVec3(0.50196078, 0.50196078, 0.50196078), 32)
	GreenPlastic = NewMaterial(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0.1, 0.35, 0.1),
		core.NewVec3(0.45, 0.55, 0.45), 32)
	RedPlastic = NewMaterial(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0.5, 0, 0),
		core.NewVec3(0.7, 0.6, 0.6), 32)
	BluePlastic = NewMaterial(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, 0.5),
		core.NewVec3(0.6, 0.6, 0.7), 32)
	WhitePlastic = NewMaterial(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0.55, 0.55, 0.55),
		core.NewVec3(0.7, 0.7, 0.7), 32)
	YellowPlastic = NewMaterial(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0.5, 0.5, 0),
		core.NewVec3(0.6, 0.6, 0.5), 32)

	BlackRubber = NewMaterial(
		core.NewVec3(0.02, 0.02, 0.02),
		core.NewVec3(0.01, 0.01, 0.01),
		core.NewVec3(0.4, 0.4, 0.4), 10)
	GreenRubber = NewMaterial(
		core.NewVec3(0, 0.05, 0),
		core.NewVec3(0.4, 0.5, 0.4),
		core.NewVec3(0.04, 0.7, 0.04), 10)
	RedRubber = NewMaterial(
		core.NewVec3(0.05, 0, 0),
		core.NewVec3(0.5, 0.4, 0.4),
		core.NewVec3(0.7, 0.04, 0.04), 10)
	WhiteRubber = NewMaterial(
		core.NewVec3(0.05, 0.05, 0.05),
		core.NewVec3(0.5, 0.5, 0.5),
		core.NewVec3(0.7, 0.7, 0.7), 10)
)

var presets = map[string]*Material{
	"brass":          Brass,
	"bronze":         Bronze,
	"polishedBronze": PolishedBronze,
	"chrome":         Chrome,
	"copper":         Copper,
	"polishedCopper": PolishedCopper,
	"gold":           Gold,
	"polishedGold":   PolishedGold,
	"pewter":         Pewter,
	"silver":         Silver,
	"polishedSilver": PolishedSilver,
	"blackPlastic":   BlackPlastic,
	"cyanPlastic":    CyanPlastic,
	"greenPlastic":   GreenPlastic,
	"redPlastic":     RedPlastic,
	"bluePlastic":    BluePlastic,
	"whitePlastic":   WhitePlastic,
	"yellowPlastic":  YellowPlastic,
	"blackRubber":    BlackRubber,
	"greenRubber":    GreenRubber,
	"redRubber":      RedRubber,
	"whiteRubber":    WhiteRubber,
}

// Preset looks up a named material from the table above
func Preset(name string) (*Material, bool) {
	m, ok := presets[name]
	return m, ok
}

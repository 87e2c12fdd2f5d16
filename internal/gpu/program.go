package gpu

import (
	"fmt"
	"image"
)

// Source is everything a backend may need to build one program. The WGSL
// vertex/fragment pair is the portable form; Kage and CPU are the renditions
// used by the ebiten and software backends.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
	Kage     []byte
	CPU      Fragment

	// Textures lists the sampled textures in slot order.
	Textures []string
	// Uniforms lists the non-texture inputs by name.
	Uniforms []string
}

// WGSL joins the vertex and fragment stages into one shader module.
func (s Source) WGSL() string { return s.Vertex + "\n" + s.Fragment }

// LocationKind separates texture slots from value uniforms.
type LocationKind uint8

const (
	TextureLocation LocationKind = iota + 1
	UniformLocation
)

// Location is a resolved binding point of a program.
type Location struct {
	Kind  LocationKind
	Slot  int
	Name  string
	owner string
}

// Valid reports whether the location was resolved.
func (l Location) Valid() bool { return l.Kind != 0 }

// Layout is the name-to-location table of a program, built once from its
// Source. Backends embed it to implement Program.Location.
type Layout struct {
	name      string
	locations map[string]Location
}

// NewLayout indexes the declared inputs of src.
func NewLayout(src Source) (Layout, error) {
	if len(src.Textures) > MaxTextures {
		return Layout{}, Errorf(ShaderError, src.Name, "%d textures declared, at most %d supported", len(src.Textures), MaxTextures)
	}
	l := Layout{name: src.Name, locations: make(map[string]Location, len(src.Textures)+len(src.Uniforms))}
	for i, n := range src.Textures {
		if _, dup := l.locations[n]; dup {
			return Layout{}, Errorf(ShaderError, src.Name, "input %q declared twice", n)
		}
		l.locations[n] = Location{Kind: TextureLocation, Slot: i, Name: n, owner: src.Name}
	}
	for i, n := range src.Uniforms {
		if _, dup := l.locations[n]; dup {
			return Layout{}, Errorf(ShaderError, src.Name, "input %q declared twice", n)
		}
		l.locations[n] = Location{Kind: UniformLocation, Slot: i, Name: n, owner: src.Name}
	}
	return l, nil
}

// Name returns the program name.
func (l Layout) Name() string { return l.name }

// Location resolves name.
func (l Layout) Location(name string) (Location, error) {
	loc, ok := l.locations[name]
	if !ok {
		return Location{}, Errorf(ShaderError, l.name, "no input named %q", name)
	}
	return loc, nil
}

// Bindings collects the textures and uniform values of one pass.
type Bindings struct {
	Textures [MaxTextures]Texture
	Uniforms map[string][]float32
	err      error
}

// SetTexture binds t at a texture location.
func (b *Bindings) SetTexture(loc Location, t Texture) {
	if loc.Kind != TextureLocation {
		b.fail(loc, "texture")
		return
	}
	b.Textures[loc.Slot] = t
}

// SetVec2 assigns a vec2 uniform.
func (b *Bindings) SetVec2(loc Location, v [2]float32) { b.setValue(loc, v[:]) }

// SetVec4 assigns a vec4 uniform.
func (b *Bindings) SetVec4(loc Location, v [4]float32) { b.setValue(loc, v[:]) }

func (b *Bindings) setValue(loc Location, v []float32) {
	if loc.Kind != UniformLocation {
		b.fail(loc, "uniform")
		return
	}
	if b.Uniforms == nil {
		b.Uniforms = make(map[string][]float32)
	}
	b.Uniforms[loc.Name] = append([]float32(nil), v...)
}

func (b *Bindings) fail(loc Location, want string) {
	if b.err != nil {
		return
	}
	if !loc.Valid() {
		b.err = fmt.Errorf("unresolved location used as %s", want)
		return
	}
	b.err = fmt.Errorf("%s.%s is not a %s", loc.owner, loc.Name, want)
}

// Err reports the first misuse of a location.
func (b *Bindings) Err() error { return b.err }

// Sampler gives CPU fragments texel access to a bound texture.
type Sampler interface {
	Size() image.Point
	// Fetch returns the texel at integer coordinates as normalized RGBA.
	// Coordinates outside the texture return zero.
	Fetch(x, y int) [4]float32
}

// FragmentInput is what a CPU fragment sees for one target pixel.
type FragmentInput struct {
	// Position is the pixel centre in target space.
	Position [2]float32
	Sources  [MaxTextures]Sampler
	Uniforms map[string][]float32
}

// Uniform returns the value bound to name, or nil.
func (in *FragmentInput) Uniform(name string) []float32 { return in.Uniforms[name] }

// Fragment is the CPU rendition of a fragment stage. Output is premultiplied
// RGBA in [0, 1].
type Fragment func(in *FragmentInput) [4]float32

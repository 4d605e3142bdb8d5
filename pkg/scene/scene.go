package scene

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/samber/lo"
)

// DefaultTexturePath is where the textured scenes look for the earth map
const DefaultTexturePath = "assets/earthmap.jpg"

// Scene describes a renderable setup: default settings and a way to build its world
type Scene interface {
	DefaultSettings() Settings
	// Build creates the world, using random for any procedural content.
	// The returned world is already built.
	Build(random *rand.Rand) (*World, error)
}

// Options configure catalog scenes that depend on external assets
type Options struct {
	TexturePath string
}

var catalog = map[string]func(Options) Scene{
	"bouncing-spheres":  func(Options) Scene { return &BouncingSpheres{} },
	"checkered-spheres": func(Options) Scene { return &CheckeredSpheres{} },
	"earth":             func(o Options) Scene { return &Earth{TexturePath: o.TexturePath} },
	"quads":             func(Options) Scene { return &Quads{} },
	"simple-light":      func(Options) Scene { return &SimpleLight{} },
	"empty-cornell-box": func(Options) Scene { return &EmptyCornellBox{} },
	"cornell-box":       func(Options) Scene { return &CornellBox{} },
	"cornell-smoke":     func(Options) Scene { return &CornellSmoke{} },
	"everything":        func(o Options) Scene { return &Everything{TexturePath: o.TexturePath} },
}

// Names returns the catalog scene names in sorted order
func Names() []string {
	names := lo.Keys(catalog)
	sort.Strings(names)
	return names
}

// Lookup returns the named catalog scene with default options
func Lookup(name string) (Scene, error) {
	return LookupWithOptions(name, Options{})
}

// LookupWithOptions returns the named catalog scene configured with opts
func LookupWithOptions(name string, opts Options) (Scene, error) {
	factory, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	return factory(opts), nil
}

func texturePathOrDefault(path string) string {
	if path == "" {
		return DefaultTexturePath
	}
	return path
}

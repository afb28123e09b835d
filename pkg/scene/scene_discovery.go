package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-light2d/pkg/core"
)

// ErrUnknownScene is returned by Create for an id that is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Transport   string `json:"transport"`   // "emissive" or "reflective"
	Width       int    `json:"width"`       // Recommended image width
	Height      int    `json:"height"`      // Recommended image height
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type entry struct {
	description string
	group       string
	create      func() *Scene
}

const (
	groupBasics     = "Basics"
	groupReflection = "Reflection"
)

var registry = map[string]entry{
	"basic":      {"Single emissive circle", groupBasics, NewBasicScene},
	"csg":        {"Union of two overlapping circles", groupBasics, NewCSGScene},
	"shapes":     {"Circle intersected with a half plane", groupBasics, NewShapesScene},
	"ring":       {"Center light with a ring of ten dimmer lights", groupBasics, NewRingScene},
	"gallery":    {"One of every primitive shape and CSG operator", groupBasics, NewGalleryScene},
	"reflection": {"Light beside two tilted mirror squares", groupReflection, NewReflectionScene},
	"mirrors":    {"Light bouncing between two facing mirrors", groupReflection, NewMirrorsScene},
}

// Create builds the built-in scene with the given id
func Create(id string) (*Scene, error) {
	e, ok := registry[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return e.create(), nil
}

// ListScenes returns every built-in scene sorted by id
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for id, e := range registry {
		s := e.create()
		scenes = append(scenes, SceneInfo{
			ID:          id,
			Name:        titleCase(id),
			Description: e.description,
			Group:       e.group,
			Transport:   s.SamplingConfig.Transport.String(),
			Width:       s.Width,
			Height:      s.Height,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// ListAllScenes returns the built-in scenes grouped by category, basics first
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, s := range ListScenes() {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for name := range groupMap {
		if name != groupBasics {
			groupNames = append(groupNames, name)
		}
	}
	sort.Strings(groupNames)

	if basics, ok := groupMap[groupBasics]; ok {
		response.Groups = append(response.Groups, SceneGroup{Name: groupBasics, Scenes: basics})
	}
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}

	return response
}

// IsReflective reports whether the scene uses reflective transport
func IsReflective(s *Scene) bool {
	return s.SamplingConfig.Transport == core.TransportReflective
}

// titleCase converts an id-style string to title case
// e.g., "light-ring" -> "Light Ring"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}

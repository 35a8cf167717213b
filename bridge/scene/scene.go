// Package scene is an in-memory stand-in for the host application's
// object registry. The pipeline inserts remeshed results here the way
// the host would insert them into its scene graph.
package scene

import (
	"fmt"
	"sync"

	"github.com/limbicnation/remesh/bridge/math"
	"github.com/limbicnation/remesh/bridge/mesh"
)

// Object couples a mesh with a name and a world placement.
type Object struct {
	Name      string
	Transform *math.Transform
	Mesh      *mesh.Mesh
}

// NewObject builds an object with an identity transform.
func NewObject(name string, m *mesh.Mesh) *Object {
	return &Object{
		Name:      name,
		Transform: math.TransformCreate(),
		Mesh:      m,
	}
}

// Scene is a name-keyed object registry. Names are unique; collisions
// get a numeric suffix like the host application (`cube.001`).
type Scene struct {
	mu      sync.RWMutex
	objects map[string]*Object
	order   []string
	active  string
}

func New() *Scene {
	return &Scene{
		objects: make(map[string]*Object),
	}
}

// Add inserts the object, renaming it with a `.NNN` suffix if the name
// is taken, and makes it the active object. The final name is returned.
func (s *Scene) Add(o *Object) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := o.Name
	if name == "" {
		name = mesh.DefaultMeshName
	}
	if _, taken := s.objects[name]; taken {
		base := name
		for i := 1; ; i++ {
			name = fmt.Sprintf("%s.%03d", base, i)
			if _, taken := s.objects[name]; !taken {
				break
			}
		}
	}
	o.Name = name
	if o.Transform == nil {
		o.Transform = math.TransformCreate()
	}
	s.objects[name] = o
	s.order = append(s.order, name)
	s.active = name
	return name
}

func (s *Scene) Get(name string) (*Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[name]
	return o, ok
}

// Objects returns the scene contents in insertion order.
func (s *Scene) Objects() []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Object, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.objects[name])
	}
	return out
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Active returns the most recently added or activated object.
func (s *Scene) Active() *Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == "" {
		return nil
	}
	return s.objects[s.active]
}

func (s *Scene) SetActive(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[name]; !ok {
		return fmt.Errorf("no object named %q", name)
	}
	s.active = name
	return nil
}

package proxsim

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/danielrh/prox/pkg/geom"
	"github.com/danielrh/prox/pkg/prox"
)

// Scene is a declarative simulation setup. Either describe the population
// explicitly, or give a region plus counts and let the simulator scatter
// randomly.
type Scene struct {
	Region  *SceneRegion  `yaml:"region,omitempty"`
	Objects []SceneObject `yaml:"objects,omitempty"`
	Queries []SceneQuery  `yaml:"queries,omitempty"`

	// RandomObjects/RandomQueries are scattered over Region in addition to
	// the explicit entries.
	RandomObjects int `yaml:"random_objects,omitempty"`
	RandomQueries int `yaml:"random_queries,omitempty"`
}

type SceneRegion struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

type SceneObject struct {
	// ID is a UUID string; omitted ids are drawn from the simulator's rng.
	ID       string     `yaml:"id,omitempty"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity,omitempty"`
	Radius   float64    `yaml:"radius"`
}

type SceneQuery struct {
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity,omitempty"`
	// MinSolidAngle is in steradians.
	MinSolidAngle float64 `yaml:"min_solid_angle"`
	// MaxRadius of zero or omitted means unlimited.
	MaxRadius float64 `yaml:"max_radius,omitempty"`
}

func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var scene Scene
	if err := yaml.Unmarshal(raw, &scene); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if (scene.RandomObjects > 0 || scene.RandomQueries > 0) && scene.Region == nil {
		return nil, fmt.Errorf("scene %s: random population needs a region", path)
	}
	return &scene, nil
}

func (s *Scene) Save(path string) error {
	raw, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func (s *Scene) region() Region {
	if s.Region == nil {
		return Region{}
	}
	return Region{Min: vec(s.Region.Min), Max: vec(s.Region.Max)}
}

// Populate instantiates the scene's population into the simulator at time t.
func (s *Scene) Populate(sim *Simulator, t geom.Time) error {
	for i, so := range s.Objects {
		var id prox.ObjectID
		if so.ID != "" {
			parsed, err := uuid.Parse(so.ID)
			if err != nil {
				return fmt.Errorf("scene object %d: bad id %q: %w", i, so.ID, err)
			}
			id = parsed
		} else {
			sim.rng.Read(id[:])
		}
		sim.AddObject(prox.NewObject(
			id,
			geom.NewMotionVector(t, vec(so.Position), vec(so.Velocity)),
			geom.NewBoundingSphere(geom.Vector3{}, so.Radius),
		))
	}

	for _, sq := range s.Queries {
		radius := sq.MaxRadius
		if radius <= 0 {
			radius = prox.InfiniteRadius
		}
		sim.AddQuery(prox.NewQueryWithRadius(
			geom.NewMotionVector(t, vec(sq.Position), vec(sq.Velocity)),
			geom.NewSolidAngle(sq.MinSolidAngle),
			radius,
		))
	}

	if s.RandomObjects > 0 || s.RandomQueries > 0 {
		sim.Initialize(t, s.region(), s.RandomObjects, s.RandomQueries)
	}
	return nil
}

func vec(v [3]float64) geom.Vector3 {
	return geom.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

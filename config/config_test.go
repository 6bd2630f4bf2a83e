package config_test

import (
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/viam-labs/simkit/config"
)

func TestEntityValidate(t *testing.T) {
	e := config.Entity{}
	err := e.Validate("entities.0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"name" is required`)

	e.Name = "cube"
	err = e.Validate("entities.0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"type" is required`)

	e.Type = config.EntityType("hologram")
	err = e.Validate("entities.0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown entity type")

	e.Type = config.EntityTypeRigidObject
	test.That(t, e.Validate("entities.0"), test.ShouldBeNil)
	test.That(t, e.Tracked(), test.ShouldBeTrue)

	e.JointPositions = map[string]float64{"hinge": 0.5}
	err = e.Validate("entities.0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "joint_positions")

	e.Type = config.EntityTypeArticulation
	test.That(t, e.Validate("entities.0"), test.ShouldBeNil)
}

func TestConfigValidateAggregates(t *testing.T) {
	cfg := config.Config{
		Sim: config.Sim{Dt: -1, Decimation: 0},
		Entities: []config.Entity{
			{Name: "a", Type: config.EntityTypeRigidObject},
			{Name: "a", Type: config.EntityTypeRigidObject},
		},
	}
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	msg := err.Error()
	test.That(t, msg, test.ShouldContainSubstring, "environment")
	test.That(t, msg, test.ShouldContainSubstring, "num_instances")
	test.That(t, msg, test.ShouldContainSubstring, "dt must be positive")
	test.That(t, msg, test.ShouldContainSubstring, "decimation")
	test.That(t, msg, test.ShouldContainSubstring, `duplicate entity name "a"`)
}

func TestFrankaCabinetConfig(t *testing.T) {
	cfg := config.FrankaCabinetConfig()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.Environment, test.ShouldEqual, "franka-cabinet-v0")
	test.That(t, cfg.Sim.Dt, test.ShouldAlmostEqual, 1.0/120.0)
	test.That(t, cfg.Sim.Gravity(), test.ShouldAlmostEqual, 9.81)

	tracked := cfg.TrackedEntities()
	names := make([]string, 0, len(tracked))
	for _, e := range tracked {
		names = append(names, e.Name)
	}
	test.That(t, names, test.ShouldResemble, []string{"robot", "cabinet", "cube"})

	cabinet := cfg.FindEntity("cabinet")
	test.That(t, cabinet, test.ShouldNotBeNil)
	test.That(t, cabinet.JointPositions["drawer_top_joint"], test.ShouldAlmostEqual, 0.5)
	test.That(t, cabinet.Frame.Quaternion(), test.ShouldResemble, [4]float64{1, 0, 0, 0})
	test.That(t, cabinet.Attributes.Float64("mass", 0), test.ShouldAlmostEqual, 10)

	cube := cfg.FindEntity("cube")
	test.That(t, cube.Frame.Translation[2], test.ShouldAlmostEqual, 1.2)
	// an omitted orientation reads as identity
	test.That(t, cube.Frame.Quaternion(), test.ShouldResemble, [4]float64{1, 0, 0, 0})

	test.That(t, cfg.FindEntity("missing"), test.ShouldBeNil)
}

func TestFromReader(t *testing.T) {
	t.Setenv("SIMKIT_TEST_INSTANCES", "4")
	doc := `{
		"environment": "franka-cabinet-v0",
		"num_instances": ${SIMKIT_TEST_INSTANCES},
		"env_spacing": 2.5,
		"sim": {"dt": 0.008333, "decimation": 2, "episode_length_sec": 16},
		"entities": [
			{"name": "plane", "type": "ground_plane"},
			{"name": "cube", "type": "rigid_object", "attributes": {"size": 0.05}}
		]
	}`
	cfg, err := config.FromReader(strings.NewReader(doc))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.NumInstances, test.ShouldEqual, 4)
	test.That(t, cfg.FindEntity("cube").Attributes.Float64("size", 0), test.ShouldAlmostEqual, 0.05)

	// unknown fields are a config error, not silently dropped
	_, err = config.FromReader(strings.NewReader(`{"environment": "x", "numinstances": 1}`))
	test.That(t, err, test.ShouldNotBeNil)

	// invalid configs are rejected at read time
	_, err = config.FromReader(strings.NewReader(`{"environment": "x"}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid")
}

func TestAttributeMap(t *testing.T) {
	am := config.AttributeMap{
		"name":  "cube",
		"size":  0.05,
		"count": 3.0,
		"fixed": true,
		"color": []interface{}{0.75, 0.5, 0.25},
	}
	test.That(t, am.Has("size"), test.ShouldBeTrue)
	test.That(t, am.Has("absent"), test.ShouldBeFalse)
	test.That(t, am.String("name"), test.ShouldEqual, "cube")
	test.That(t, am.String("absent"), test.ShouldEqual, "")
	test.That(t, am.Float64("size", 0), test.ShouldAlmostEqual, 0.05)
	test.That(t, am.Float64("absent", 1.5), test.ShouldAlmostEqual, 1.5)
	test.That(t, am.Int("count", 0), test.ShouldEqual, 3)
	test.That(t, am.Bool("fixed", false), test.ShouldBeTrue)
	vec := am.Vec3("color", r3.Vector{})
	test.That(t, vec.X, test.ShouldAlmostEqual, 0.75)
	test.That(t, vec.Z, test.ShouldAlmostEqual, 0.25)

	test.That(t, func() { am.String("size") }, test.ShouldPanic)
	test.That(t, func() { am.Int("name", 0) }, test.ShouldPanic)
	test.That(t, func() { am.Vec3("size", r3.Vector{}) }, test.ShouldPanic)
}

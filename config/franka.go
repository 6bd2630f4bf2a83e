package config

// FrankaCabinetConfig returns the built-in franka-cabinet scene: a ground
// plane, a fixed-base franka arm, an articulated storage cabinet, a dynamic
// cube, and a dome light, stepped at 120 Hz with a decimation of 2.
//
// Joint seeds mirror the task the scene was built for: the arm starts in a
// ready pose above the cabinet and the cabinet's top drawer starts half open.
func FrankaCabinetConfig() *Config {
	return &Config{
		Environment:  "franka-cabinet-v0",
		NumInstances: 1,
		EnvSpacing:   2.5,
		Sim: Sim{
			Dt:               1.0 / 120.0,
			Decimation:       2,
			EpisodeLengthSec: 16,
		},
		Entities: []Entity{
			{
				Name: "plane",
				Type: EntityTypeGroundPlane,
				Attributes: AttributeMap{
					"static_friction":  1.0,
					"dynamic_friction": 1.0,
					"restitution":      0.0,
				},
			},
			{
				Name:  "robot",
				Type:  EntityTypeArticulation,
				Model: "franka",
				Frame: &Frame{
					Translation: [3]float64{0.5, 0.5, 0},
					Orientation: [4]float64{1, 0, 0, 0},
				},
				JointPositions: map[string]float64{
					"panda_joint1":        1.157,
					"panda_joint2":        -1.066,
					"panda_joint3":        -0.155,
					"panda_joint4":        -2.239,
					"panda_joint5":        -1.841,
					"panda_joint6":        1.003,
					"panda_joint7":        0.469,
					"panda_finger_joint1": 0.035,
					"panda_finger_joint2": 0.035,
				},
				Attributes: AttributeMap{
					"fix_root_link": true,
				},
			},
			{
				Name:  "cabinet",
				Type:  EntityTypeArticulation,
				Model: "sektion_cabinet",
				Frame: &Frame{
					Translation: [3]float64{0, 0, 0.4},
					Orientation: [4]float64{1, 0, 0, 0},
				},
				JointPositions: map[string]float64{
					"door_left_joint":     0,
					"door_right_joint":    0,
					"drawer_bottom_joint": 0,
					"drawer_top_joint":    0.5,
				},
				Attributes: AttributeMap{
					"mass":          10.0,
					"fix_root_link": true,
				},
			},
			{
				Name: "cube",
				Type: EntityTypeRigidObject,
				Frame: &Frame{
					Translation: [3]float64{0, 0, 1.2},
				},
				Attributes: AttributeMap{
					"size": 0.05,
					"mass": 1.0,
				},
			},
			{
				Name: "light",
				Type: EntityTypeLight,
				Attributes: AttributeMap{
					"intensity": 2000.0,
					"color":     []interface{}{0.75, 0.75, 0.75},
				},
			},
		},
	}
}

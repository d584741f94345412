package vpl

// Config controls the per-frame illumination evaluator
type Config struct {
	// UseRaycasting evaluates a phantom VPL at the source axis hit instead of
	// the direct per-VPL path. Spot sources only; force-disabled otherwise.
	UseRaycasting bool `yaml:"use_raycasting"`

	// SecondaryBounce adds a coarse second-order reflection phantom.
	SecondaryBounce bool `yaml:"secondary_bounce"`

	// UseIndirectShadows is forwarded opaquely to the host light bridge; the
	// evaluator does not interpret shadow semantics.
	UseIndirectShadows bool `yaml:"use_indirect_shadows"`

	// AutomaticWeights recomputes VPL importance weights incrementally from
	// inter-VPL spacing instead of using the authored Weight fields.
	AutomaticWeights bool `yaml:"automatic_weights"`

	// DistanceScale divides distances before radiometric falloff.
	DistanceScale float64 `yaml:"distance_scale"`

	// AvgReflectance is the scene-average reflectance used by the secondary
	// bounce estimate.
	AvgReflectance float64 `yaml:"avg_refl"`

	// AvgSecondaryDistance places the secondary phantom behind the primary
	// reflection along the source direction.
	AvgSecondaryDistance float64 `yaml:"avg_secondary_distance"`
}

// DefaultConfig returns an evaluator configuration with the direct path only
func DefaultConfig() Config {
	return Config{
		DistanceScale:        1.0,
		AvgReflectance:       0.3,
		AvgSecondaryDistance: 1.0,
	}
}

// normalized returns the config with degenerate scales replaced by defaults
func (c Config) normalized() Config {
	if c.DistanceScale <= 0 {
		c.DistanceScale = 1.0
	}
	if c.AvgSecondaryDistance <= 0 {
		c.AvgSecondaryDistance = 1.0
	}
	return c
}

package trace

// SampleCSV is the flat CSV row format for generated VPL samples
type SampleCSV struct {
	PosX       float64 `csv:"pos_x"`
	PosY       float64 `csv:"pos_y"`
	PosZ       float64 `csv:"pos_z"`
	DirX       float64 `csv:"dir_x"`
	DirY       float64 `csv:"dir_y"`
	DirZ       float64 `csv:"dir_z"`
	ColorR     float64 `csv:"color_r"`
	ColorG     float64 `csv:"color_g"`
	ColorB     float64 `csv:"color_b"`
	Intensity  float64 `csv:"intensity"`
	Range      float64 `csv:"range"`
	Population int     `csv:"population"`
}

// ToCSV flattens a sample into its CSV row representation
func (s Sample) ToCSV() SampleCSV {
	return SampleCSV{
		PosX: s.Position.X, PosY: s.Position.Y, PosZ: s.Position.Z,
		DirX: s.Direction.X, DirY: s.Direction.Y, DirZ: s.Direction.Z,
		ColorR: s.Color.X, ColorG: s.Color.Y, ColorB: s.Color.Z,
		Intensity:  s.Intensity,
		Range:      s.Range,
		Population: s.Population,
	}
}

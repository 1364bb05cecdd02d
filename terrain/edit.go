package terrain

// EditState is the modal's working copy of the editable attributes. It is
// filled from the source entry on every reset and never written back except
// through Merge.
type EditState struct {
	Texture string
	Type    string
	Cost    Numeric
	Mask    Numeric
}

// Reset mirrors src. A nil src resets to the defaults of an empty entry.
func (s *EditState) Reset(src *Terrain) {
	var base Terrain
	if src != nil {
		base = *src
	}
	base = base.WithDefaults()
	s.Texture = base.Texture
	s.Type = base.Type
	s.Cost = base.Cost
	s.Mask = base.Mask
}

// SetType stores the normalized form of raw.
func (s *EditState) SetType(raw string) {
	s.Type = NormalizeType(raw)
}

// SetCost stores raw verbatim, including text that is not a number.
func (s *EditState) SetCost(raw string) {
	s.Cost = Numeric(raw)
}

// SetMask stores raw verbatim, including text that is not a number.
func (s *EditState) SetMask(raw string) {
	s.Mask = Numeric(raw)
}

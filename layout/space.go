package layout

// SpaceConfig hands out space widths for a line. Extra pixels are given to
// the first spaces consumed, one pixel each.
type SpaceConfig struct {
	Width int
	Extra int
}

// UniformSpaces returns a SpaceConfig without extra pixels.
func UniformSpaces(width int) SpaceConfig { return SpaceConfig{Width: width} }

// PeekNextWidth returns the width of the next n spaces without consuming them.
func (s SpaceConfig) PeekNextWidth(n int) int {
	return n*s.Width + min(n, s.Extra)
}

// Consume returns the width of the next n spaces and marks them used.
func (s *SpaceConfig) Consume(n int) int {
	w := s.PeekNextWidth(n)
	s.Extra -= min(n, s.Extra)
	return w
}

package slides

// Clamp bounds index to [0, length-1]. An empty deck clamps to 0.
func Clamp(index, length int) int {
	if length <= 0 || index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}

// Next advances one slide without wrapping past the last one.
func Next(index, length int) int {
	return Clamp(index+1, length)
}

// Prev steps back one slide without wrapping past the first one.
func Prev(index, length int) int {
	return Clamp(index-1, length)
}

// Position describes where a viewer is inside a deck.
type Position struct {
	Index     int  `json:"index"`
	Total     int  `json:"total"`
	PrevIndex int  `json:"prevIndex"`
	NextIndex int  `json:"nextIndex"`
	HasPrev   bool `json:"hasPrev"`
	HasNext   bool `json:"hasNext"`
}

// Number is the 1-based slide number shown to viewers.
func (p Position) Number() int {
	if p.Total == 0 {
		return 0
	}
	return p.Index + 1
}

// PositionOf computes the navigation state for index within a deck of length slides.
func PositionOf(index, length int) Position {
	i := Clamp(index, length)
	return Position{
		Index:     i,
		Total:     max(length, 0),
		PrevIndex: Prev(i, length),
		NextIndex: Next(i, length),
		HasPrev:   i > 0,
		HasNext:   i < length-1,
	}
}

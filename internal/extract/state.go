package extract

// State is the accumulated partial field map for one trip or expense,
// built up across extraction turns. Values are scalars (string, number,
// boolean, or null).
type State map[string]any

// Clone returns a shallow copy of the state.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge overwrites current with every key present in update and returns the
// merged copy. Keys absent from update are untouched; neither input is
// modified. Merging the same update twice yields the same result as merging
// once.
func Merge(current, update State) State {
	merged := make(State, len(current)+len(update))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	return merged
}

package rating

// Store holds per-player rating state for a single replay. Players are
// created from the seed function on first access.
type Store[T any] struct {
	seed  func(player string) T
	items map[string]*T
	order []string
}

// NewStore creates an empty store that seeds new players with seed.
func NewStore[T any](seed func(player string) T) *Store[T] {
	return &Store[T]{
		seed:  seed,
		items: make(map[string]*T),
	}
}

// GetOrCreate returns the player's state, seeding it on first appearance.
func (s *Store[T]) GetOrCreate(player string) *T {
	if v, ok := s.items[player]; ok {
		return v
	}
	v := s.seed(player)
	s.items[player] = &v
	s.order = append(s.order, player)
	return &v
}

// Get returns the player's state without creating it.
func (s *Store[T]) Get(player string) (*T, bool) {
	v, ok := s.items[player]
	return v, ok
}

// Players returns player names in order of first appearance.
func (s *Store[T]) Players() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of players seen.
func (s *Store[T]) Len() int {
	return len(s.order)
}

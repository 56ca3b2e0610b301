package rating

// SkillModel is a Bayesian rating environment for two-team matches.
type SkillModel interface {
	// Prior is the belief assigned to a player on first appearance.
	Prior() Gaussian
	// RateTeams updates every player after winners beat losers. The returned
	// slices have the same order and length as the inputs.
	RateTeams(winners, losers []Gaussian) ([]Gaussian, []Gaussian, error)
}

package rating

// MockSkillModel is a SkillModel whose behaviour is set per test.
type MockSkillModel struct {
	PriorFunc     func() Gaussian
	RateTeamsFunc func(winners, losers []Gaussian) ([]Gaussian, []Gaussian, error)
	RateCalls     int
}

var _ SkillModel = (*MockSkillModel)(nil)

func (m *MockSkillModel) Prior() Gaussian {
	if m.PriorFunc != nil {
		return m.PriorFunc()
	}
	return Gaussian{Mu: DefaultMu, Sigma: DefaultSigma}
}

func (m *MockSkillModel) RateTeams(winners, losers []Gaussian) ([]Gaussian, []Gaussian, error) {
	m.RateCalls++
	if m.RateTeamsFunc != nil {
		return m.RateTeamsFunc(winners, losers)
	}
	return winners, losers, nil
}

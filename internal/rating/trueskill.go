package rating

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultMu    = 25.0
	DefaultSigma = DefaultMu / 3
	DefaultBeta  = DefaultSigma / 2
	DefaultTau   = DefaultSigma / 100
)

// ErrNonFiniteUpdate is returned when an update produces NaN or Inf.
var ErrNonFiniteUpdate = errors.New("skill update is not finite")

// TrueSkill is a two-team TrueSkill environment without draws. With exactly
// two teams the factor graph has a single comparison, so the update below is
// the exact closed form rather than an approximation loop.
type TrueSkill struct {
	mu    float64
	sigma float64
	beta  float64
	tau   float64
}

// Option configures a TrueSkill environment.
type Option func(*TrueSkill)

// WithPrior sets the belief given to new players.
func WithPrior(mu, sigma float64) Option {
	return func(ts *TrueSkill) {
		if sigma > 0 {
			ts.mu = mu
			ts.sigma = sigma
		}
	}
}

// WithBeta sets the performance noise per player.
func WithBeta(beta float64) Option {
	return func(ts *TrueSkill) {
		if beta > 0 {
			ts.beta = beta
		}
	}
}

// WithTau sets the dynamics factor added to every variance before a match.
func WithTau(tau float64) Option {
	return func(ts *TrueSkill) {
		if tau >= 0 {
			ts.tau = tau
		}
	}
}

// NewTrueSkill creates an environment with the standard defaults.
func NewTrueSkill(opts ...Option) *TrueSkill {
	ts := &TrueSkill{
		mu:    DefaultMu,
		sigma: DefaultSigma,
		beta:  DefaultBeta,
		tau:   DefaultTau,
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

var _ SkillModel = (*TrueSkill)(nil)

func (ts *TrueSkill) Prior() Gaussian {
	return Gaussian{Mu: ts.mu, Sigma: ts.sigma}
}

// RateTeams applies one win of winners over losers.
func (ts *TrueSkill) RateTeams(winners, losers []Gaussian) ([]Gaussian, []Gaussian, error) {
	if len(winners) == 0 || len(losers) == 0 {
		return nil, nil, fmt.Errorf("rating %d vs %d players: empty team", len(winners), len(losers))
	}

	tau2 := ts.tau * ts.tau
	n := float64(len(winners) + len(losers))
	c2 := n * ts.beta * ts.beta
	var muW, muL float64
	for _, g := range winners {
		c2 += g.Sigma*g.Sigma + tau2
		muW += g.Mu
	}
	for _, g := range losers {
		c2 += g.Sigma*g.Sigma + tau2
		muL += g.Mu
	}
	c := math.Sqrt(c2)

	t := (muW - muL) / c
	v := vWin(t)
	w := v * (v + t)

	update := func(team []Gaussian, sign float64) ([]Gaussian, error) {
		out := make([]Gaussian, len(team))
		for i, g := range team {
			variance := g.Sigma*g.Sigma + tau2
			mu := g.Mu + sign*variance/c*v
			sigma := math.Sqrt(variance * math.Max(1-variance/c2*w, 0))
			if math.IsNaN(mu) || math.IsInf(mu, 0) || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
				return nil, ErrNonFiniteUpdate
			}
			out[i] = Gaussian{Mu: mu, Sigma: sigma}
		}
		return out, nil
	}

	newW, err := update(winners, 1)
	if err != nil {
		return nil, nil, err
	}
	newL, err := update(losers, -1)
	if err != nil {
		return nil, nil, err
	}
	return newW, newL, nil
}

// vWin is the additive mean correction for a win with zero draw margin.
func vWin(t float64) float64 {
	denom := normCDF(t)
	if denom < 1e-300 {
		// pdf/cdf tends to -t as t goes to -Inf.
		return -t
	}
	return normPDF(t) / denom
}

func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

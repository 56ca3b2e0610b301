package rating

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ratings/internal/match"
)

const (
	// marginWeight bounds the margin bonus: a 6-0 6-0 sweep scales by 1.1.
	marginWeight = 0.1
	fullSetGames = 6.0
)

// SkillEngine replays a match history through a Bayesian skill model,
// scaling each mean update by the match's margin of victory.
type SkillEngine struct {
	model SkillModel
}

// NewSkillEngine creates an engine. A nil model disables skill ratings.
func NewSkillEngine(model SkillModel) *SkillEngine {
	return &SkillEngine{model: model}
}

// Available reports whether a skill model is configured.
func (e *SkillEngine) Available() bool {
	return e != nil && e.model != nil
}

// MarginScale is 1 + 0.1 * (mean absolute set margin / 6) over the sets played.
func MarginScale(sets []match.SetScore) float64 {
	if len(sets) == 0 {
		return 1.0
	}
	total := 0
	for _, s := range sets {
		total += s.Margin()
	}
	mean := float64(total) / float64(len(sets))
	return 1.0 + marginWeight*(mean/fullSetGames)
}

// Compute returns skill ratings ordered by conservative score descending.
// When no model is available, or the model fails, the result is empty:
// callers must read that as "skill ratings unavailable", not "no players".
func (e *SkillEngine) Compute(records []match.Record) []SkillRating {
	out := make([]SkillRating, 0)
	if !e.Available() {
		log.Warn("Skill rating model unavailable, returning no skill ratings")
		return out
	}

	store := NewStore(func(string) Gaussian { return e.model.Prior() })

	for _, rec := range match.Chronological(records) {
		winners, losers := rec.Winners(), rec.Losers()
		w := []*Gaussian{store.GetOrCreate(rec.Team1.A), store.GetOrCreate(rec.Team1.B)}
		l := []*Gaussian{store.GetOrCreate(rec.Team2.A), store.GetOrCreate(rec.Team2.B)}
		if rec.Winner == match.Team2 {
			w, l = l, w
		}

		oldW := []Gaussian{*w[0], *w[1]}
		oldL := []Gaussian{*l[0], *l[1]}
		newW, newL, err := e.model.RateTeams(oldW, oldL)
		if err != nil {
			log.Error("Skill rating update failed, returning no skill ratings", "error", err, "winners", winners, "losers", losers, "date", rec.Date)
			return make([]SkillRating, 0)
		}

		scale := MarginScale(rec.Sets)
		for i := range w {
			w[i].Mu = oldW[i].Mu + (newW[i].Mu-oldW[i].Mu)*scale
			w[i].Sigma = newW[i].Sigma
			l[i].Mu = oldL[i].Mu + (newL[i].Mu-oldL[i].Mu)*scale
			l[i].Sigma = newL[i].Sigma
		}
	}

	for _, p := range store.Players() {
		g, _ := store.Get(p)
		out = append(out, SkillRating{
			Player:       p,
			Mu:           round2(g.Mu),
			Sigma:        round2(g.Sigma),
			Conservative: round2(g.Conservative()),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Conservative != out[j].Conservative {
			return out[i].Conservative > out[j].Conservative
		}
		return out[i].Player < out[j].Player
	})
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

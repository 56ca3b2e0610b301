package match

// DeriveWinner decides the winning side from the played sets.
//
// A set goes to the side with more games; a set with level games counts for
// nobody. The side with strictly more sets wins. Level sets only happen on
// malformed input, so the tie-break is: more total games wins, and if games
// are level as well, team 2 wins.
func DeriveWinner(sets []SetScore) Side {
	var sets1, sets2, games1, games2 int
	for _, s := range sets {
		games1 += s.Team1
		games2 += s.Team2
		switch {
		case s.Team1 > s.Team2:
			sets1++
		case s.Team2 > s.Team1:
			sets2++
		}
	}

	switch {
	case sets1 > sets2:
		return Team1
	case sets2 > sets1:
		return Team2
	case games1 > games2:
		return Team1
	default:
		return Team2
	}
}

// SetsWon returns the number of sets taken by each side.
func SetsWon(sets []SetScore) (team1, team2 int) {
	for _, s := range sets {
		switch {
		case s.Team1 > s.Team2:
			team1++
		case s.Team2 > s.Team1:
			team2++
		}
	}
	return team1, team2
}

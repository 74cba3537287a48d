package playtomic

// Finished reports whether the match was played and its result confirmed.
func (m Match) Finished() bool {
	return m.GameStatus == GameStatusPlayed && m.ResultsStatus == ResultsStatusConfirmed
}

// Singles returns the two players of a one-against-one match and the user id
// of the winner. The winner is empty when the result is level. ok is false
// for any other team layout.
func (m Match) Singles() (a, b Player, winnerID string, ok bool) {
	if len(m.Teams) != 2 || len(m.Teams[0].Players) != 1 || len(m.Teams[1].Players) != 1 {
		return Player{}, Player{}, "", false
	}
	a, b = m.Teams[0].Players[0], m.Teams[1].Players[0]

	switch {
	case m.Teams[0].TeamResult == TeamResultWon:
		return a, b, a.UserID, true
	case m.Teams[1].TeamResult == TeamResultWon:
		return a, b, b.UserID, true
	}

	// Without a team result, the team that won more sets wins.
	var setsA, setsB int
	for _, set := range m.Results {
		scoreA, scoreB := set.Scores[m.Teams[0].ID], set.Scores[m.Teams[1].ID]
		switch {
		case scoreA > scoreB:
			setsA++
		case scoreB > scoreA:
			setsB++
		}
	}
	switch {
	case setsA > setsB:
		winnerID = a.UserID
	case setsB > setsA:
		winnerID = b.UserID
	}
	return a, b, winnerID, true
}

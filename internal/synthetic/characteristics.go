package synthetic

import (
	"github.com/preston-bernstein/league-stats-service/internal/domain/matches"
)

// Rating labels used by Characteristics.
const (
	VeryStrong   = "Very Strong"
	Strong       = "Strong"
	Moderate     = "Moderate"
	Weak         = "Weak"
	VeryWeak     = "Very Weak"
	Inconsistent = "Inconsistent"
)

// Trait is a rated strength or weakness.
type Trait struct {
	Category string `json:"category"`
	Rating   string `json:"rating"`
}

// MentalTrait is a rated mental aspect.
type MentalTrait struct {
	Aspect string `json:"aspect"`
	Rating string `json:"rating"`
}

// Characteristics describes a team's profile. Early goals and counter attacks
// are simulated; the rest follows from the results.
type Characteristics struct {
	Synthetic  bool          `json:"synthetic"`
	Strengths  []Trait       `json:"strengths"`
	Weaknesses []Trait       `json:"weaknesses"`
	Style      []string      `json:"style"`
	Mental     []MentalTrait `json:"mental"`
}

type halfTally struct {
	goalsFor     int
	goalsAgainst int
	matches      int
}

type venueTally struct {
	firstHalf  halfTally
	secondHalf halfTally
	comebacks  int
	lostLeads  int
}

// Characteristics profiles team from the results it played in; other results are ignored.
func (g *Generator) Characteristics(team string, results []matches.MatchResult) Characteristics {
	var home, away venueTally
	var played, cleanSheets, earlyGoals, counterFor, counterAgainst int
	var possessionSum float64

	for _, m := range results {
		side, ok := m.SideOf(team)
		if !ok {
			continue
		}
		played++
		venue := &away
		base := 45.0
		if side.Home {
			venue = &home
			base = 55.0
		}

		venue.firstHalf.goalsFor += side.HTFor
		venue.firstHalf.goalsAgainst += side.HTAgainst
		venue.firstHalf.matches++
		venue.secondHalf.goalsFor += side.GoalsFor - side.HTFor
		venue.secondHalf.goalsAgainst += side.GoalsAgainst - side.HTAgainst
		venue.secondHalf.matches++

		if side.HTFor < side.HTAgainst && side.GoalsFor > side.GoalsAgainst {
			venue.comebacks++
		}
		if side.HTFor > side.HTAgainst && side.GoalsFor < side.GoalsAgainst {
			venue.lostLeads++
		}
		if side.GoalsAgainst == 0 {
			cleanSheets++
		}
		if side.HTFor > 0 && g.float() > 0.7 {
			earlyGoals++
		}

		possession := base + float64(side.GoalsFor-side.GoalsAgainst)*2
		possessionSum += min(max(possession, 30), 70)

		if side.GoalsFor > side.HTFor {
			counterFor += g.intN(2)
		}
		if side.GoalsAgainst > side.HTAgainst {
			counterAgainst += g.intN(2)
		}
	}

	c := Characteristics{
		Synthetic:  true,
		Strengths:  make([]Trait, 0),
		Weaknesses: make([]Trait, 0),
		Style:      make([]string, 0),
		Mental:     make([]MentalTrait, 0, 3),
	}

	homeFirstHalf := float64(home.firstHalf.goalsFor) / float64(atLeastOne(home.firstHalf.matches))
	if homeFirstHalf > 1.5 {
		c.Strengths = append(c.Strengths, Trait{"First Half Performance (Home)", pick(homeFirstHalf > 2, VeryStrong, Strong)})
	}

	awayScoring := float64(away.firstHalf.goalsFor+away.secondHalf.goalsFor) / float64(atLeastOne(away.firstHalf.matches))
	if awayScoring < 1 {
		c.Weaknesses = append(c.Weaknesses, Trait{"Away Scoring", pick(awayScoring < 0.5, VeryWeak, Weak)})
	}

	var cleanSheetRatio, avgPossession float64
	if played > 0 {
		cleanSheetRatio = float64(cleanSheets) / float64(played)
		avgPossession = possessionSum / float64(played)
	}
	if cleanSheetRatio > 0.3 {
		c.Strengths = append(c.Strengths, Trait{"Defensive Stability", pick(cleanSheetRatio > 0.4, VeryStrong, Strong)})
	}

	counterRatio := float64(counterFor) / float64(atLeastOne(counterAgainst))
	if counterRatio < 1 {
		c.Weaknesses = append(c.Weaknesses, Trait{"Counter Attack Defense", pick(counterRatio < 0.5, VeryWeak, Weak)})
	}

	if avgPossession > 52 {
		c.Style = append(c.Style, "Possession based")
		if avgPossession > 55 {
			c.Strengths = append(c.Strengths, Trait{"Ball Control", pick(avgPossession > 60, VeryStrong, Strong)})
		}
	} else {
		c.Style = append(c.Style, "Counter-attacking")
	}

	comebacks := home.comebacks + away.comebacks
	lostLeads := home.lostLeads + away.lostLeads
	c.Mental = append(c.Mental,
		MentalTrait{"Taking Initiative", pick(float64(earlyGoals) > float64(played)*0.3, Strong, Moderate)},
		MentalTrait{"Comeback Ability", pick(comebacks > lostLeads, Strong, Inconsistent)},
		MentalTrait{"Pressure Handling", pressureRating(lostLeads)},
	)

	if home.firstHalf.goalsFor > home.secondHalf.goalsFor {
		c.Style = append(c.Style, "Fast Starting")
	} else {
		c.Style = append(c.Style, "Strong Finishing")
	}
	if float64(cleanSheets) > float64(played)*0.3 {
		c.Style = append(c.Style, "Defensive Solidity")
	}
	return c
}

func pressureRating(lostLeads int) string {
	switch {
	case lostLeads == 0:
		return Strong
	case lostLeads > 2:
		return Inconsistent
	default:
		return Moderate
	}
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func atLeastOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

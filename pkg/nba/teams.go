package nba

import "sort"

// teamNames maps NBA team IDs to full team names. The catalog is static;
// the league has had the same 30 franchises since 2004.
var teamNames = map[int]string{
	1610612737: "Atlanta Hawks",
	1610612738: "Boston Celtics",
	1610612739: "Cleveland Cavaliers",
	1610612740: "New Orleans Pelicans",
	1610612741: "Chicago Bulls",
	1610612742: "Dallas Mavericks",
	1610612743: "Denver Nuggets",
	1610612744: "Golden State Warriors",
	1610612745: "Houston Rockets",
	1610612746: "LA Clippers",
	1610612747: "Los Angeles Lakers",
	1610612748: "Miami Heat",
	1610612749: "Milwaukee Bucks",
	1610612750: "Minnesota Timberwolves",
	1610612751: "Brooklyn Nets",
	1610612752: "New York Knicks",
	1610612753: "Orlando Magic",
	1610612754: "Indiana Pacers",
	1610612755: "Philadelphia 76ers",
	1610612756: "Phoenix Suns",
	1610612757: "Portland Trail Blazers",
	1610612758: "Sacramento Kings",
	1610612759: "San Antonio Spurs",
	1610612760: "Oklahoma City Thunder",
	1610612761: "Toronto Raptors",
	1610612762: "Utah Jazz",
	1610612763: "Memphis Grizzlies",
	1610612764: "Washington Wizards",
	1610612765: "Detroit Pistons",
	1610612766: "Charlotte Hornets",
}

// TeamName returns the full team name for an ID, or "Unknown".
func TeamName(teamID int) string {
	if name, ok := teamNames[teamID]; ok {
		return name
	}
	return "Unknown"
}

// AllTeamIDs returns every team ID in ascending order.
func AllTeamIDs() []int {
	ids := make([]int, 0, len(teamNames))
	for id := range teamNames {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

package config

// Parameter catalogs defining the full sweep space for every run. These are
// process-wide constants, not runtime inputs: a request is only ever built
// from values declared here.

// MeasureTypes are the lineup measure types fetched and merged per
// combination. Declaration order decides which measure type wins duplicate
// columns during the merge, so it must stay stable.
var MeasureTypes = []string{
	"Base",
	"Advanced",
	"Four Factors",
	"Misc",
	"Scoring",
	"Opponent",
	"Defense",
}

// GroupQuantities are the lineup sizes fetched (5-man, 3-man, 2-man).
var GroupQuantities = []int{5, 3, 2}

// PerModes are the aggregation modes requested per lineup combination.
var PerModes = []string{
	"Totals",
	"PerGame",
	"Per100Possessions",
}

// SeasonTypes partition every statistic at the top level.
var SeasonTypes = []string{
	"Regular Season",
	"Playoffs",
}

// PTMeasureTypes are the player-tracking measure types.
var PTMeasureTypes = []string{
	"SpeedDistance",
	"CatchShoot",
	"Drives",
	"Passing",
	"Possessions",
	"Rebounding",
	"Defense",
	"Efficiency",
	"PullUpShot",
	"PostTouch",
	"PaintTouch",
	"ElbowTouch",
}

// SynergyPlayTypes are the play-type categories.
var SynergyPlayTypes = []string{
	"Transition",
	"Isolation",
	"PRBallHandler",
	"PRRollman",
	"Postup",
	"Spotup",
	"Handoff",
	"Cut",
	"OffScreen",
	"OffRebound",
	"Misc",
}

// DefenseCategories are the defense-tracking shot categories.
var DefenseCategories = []string{
	"Overall",
	"2 Pointers",
	"3 Pointers",
	"Less Than 6Ft",
	"Less Than 10Ft",
	"Greater Than 15Ft",
}

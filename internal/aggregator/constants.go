package aggregator

// Linear-weights and league-baseline constants. These reproduce the
// tracker's hard-coded values for output parity.
// TODO(product): confirm season-specific sourcing for the wOBA weights,
// the FIP constant, and the xFIP batted-ball rates before trusting them
// beyond display parity.
const (
	wobaBB  = 0.69
	wobaHBP = 0.72
	woba1B  = 0.89
	woba2B  = 1.27
	woba3B  = 1.62
	wobaHR  = 2.10

	leagueWOBA     = 0.320
	wobaScale      = 1.25
	leagueRunsPerPA = 0.11

	fipConstant = 3.10

	// xFIP expected-HR estimate when pitch-level data is unavailable:
	// 35% of balls in play are fly balls, 10% of those leave the park.
	xfipFlyBallRate  = 0.35
	xfipHRPerFlyBall = 0.10
)

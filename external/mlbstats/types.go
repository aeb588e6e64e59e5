package mlbstats

// Raw payload shapes for the three consumed endpoints. Parsing happens at
// this boundary; anything malformed becomes a provider error upstream code
// treats as "source unavailable".

type scheduleEnvelope struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk int64              `json:"gamePk"`
	Status scheduleGameStatus `json:"status"`
}

type scheduleGameStatus struct {
	DetailedState string `json:"detailedState"`
}

type boxscoreEnvelope struct {
	Teams boxscoreTeams `json:"teams"`
}

type boxscoreTeams struct {
	Home boxscoreTeam `json:"home"`
	Away boxscoreTeam `json:"away"`
}

type boxscoreTeam struct {
	Team    boxscoreTeamInfo          `json:"team"`
	Players map[string]boxscorePlayer `json:"players"`
}

type boxscoreTeamInfo struct {
	Abbreviation string `json:"abbreviation"`
}

type boxscorePlayer struct {
	Person   boxscorePerson   `json:"person"`
	Position boxscorePosition `json:"position"`
	Stats    *boxscoreStats   `json:"stats"`
}

type boxscorePerson struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type boxscorePosition struct {
	Abbreviation string `json:"abbreviation"`
}

type boxscoreStats struct {
	Batting  battingStats  `json:"batting"`
	Pitching pitchingStats `json:"pitching"`
}

// Counting stats are pointers: an empty batting block (pitcher who never hit)
// must stay distinguishable from a real zero.
type battingStats struct {
	Hits        *int `json:"hits"`
	Runs        *int `json:"runs"`
	RBI         *int `json:"rbi"`
	Doubles     *int `json:"doubles"`
	Triples     *int `json:"triples"`
	HomeRuns    *int `json:"homeRuns"`
	BaseOnBalls *int `json:"baseOnBalls"`
	StrikeOuts  *int `json:"strikeOuts"`
	StolenBases *int `json:"stolenBases"`
	TotalBases  *int `json:"totalBases"`
}

type pitchingStats struct {
	Outs           *int   `json:"outs"`
	InningsPitched string `json:"inningsPitched"`
	StrikeOuts     *int   `json:"strikeOuts"`
	BaseOnBalls    *int   `json:"baseOnBalls"`
	EarnedRuns     *int   `json:"earnedRuns"`
	Hits           *int   `json:"hits"`
}

type liveFeedEnvelope struct {
	GamePk   int64        `json:"gamePk"`
	LiveData liveFeedData `json:"liveData"`
}

type liveFeedData struct {
	Plays liveFeedPlays `json:"plays"`
}

type liveFeedPlays struct {
	AllPlays []liveFeedPlay `json:"allPlays"`
}

type liveFeedPlay struct {
	Result  liveFeedResult   `json:"result"`
	Matchup liveFeedMatchup  `json:"matchup"`
	Runners []liveFeedRunner `json:"runners"`
}

type liveFeedResult struct {
	Event     string `json:"event"`
	EventType string `json:"eventType"`
	RBI       int    `json:"rbi"`
}

type liveFeedMatchup struct {
	Batter  liveFeedPlayerRef `json:"batter"`
	Pitcher liveFeedPlayerRef `json:"pitcher"`
}

type liveFeedPlayerRef struct {
	ID int64 `json:"id"`
}

type liveFeedRunner struct {
	Movement liveFeedMovement      `json:"movement"`
	Details  liveFeedRunnerDetails `json:"details"`
}

type liveFeedMovement struct {
	End string `json:"end"`
}

type liveFeedRunnerDetails struct {
	Runner liveFeedPlayerRef `json:"runner"`
}

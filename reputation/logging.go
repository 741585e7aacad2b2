package reputation

import "iptrust/rules"

// ResultsLogger is where the reputation engine writes the high level scoring
// results.
type ResultsLogger interface {
	BlacklistHit(ip string)
	RuleMatched(ip string, rule rules.Rule)
	ScoreComputed(ip string, score int)
	ReputationUnavailable(ip string, err error)
}

package logging

import (
	"github.com/rs/zerolog"

	"iptrust/reputation"
	"iptrust/rules"
)

// NewZerologResultsLogger creates a results logger that writes scoring results
// to Zerolog.
func NewZerologResultsLogger(logger zerolog.Logger) reputation.ResultsLogger {
	return &zerologResultsLogger{logger: logger}
}

type zerologResultsLogger struct {
	logger zerolog.Logger
}

func (l *zerologResultsLogger) BlacklistHit(ip string) {
	l.logger.Info().Str("ip", ip).Msg("Blacklisted IP, reputation forced to 0")
}

func (l *zerologResultsLogger) RuleMatched(ip string, rule rules.Rule) {
	l.logger.Debug().Str("ip", ip).Str("attribute", string(rule.Attribute())).Int("points", rule.Points()).Str("rule", rule.String()).Msg("Rule matched")
}

func (l *zerologResultsLogger) ScoreComputed(ip string, score int) {
	l.logger.Info().Str("ip", ip).Int("score", score).Msg("Reputation score computed")
}

func (l *zerologResultsLogger) ReputationUnavailable(ip string, err error) {
	l.logger.Warn().Err(err).Str("ip", ip).Msg("Reputation unavailable")
}

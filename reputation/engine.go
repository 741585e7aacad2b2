package reputation

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"iptrust/rules"
	"iptrust/trust"
)

// ClampRange bounds the final score when configured. The engine itself imposes
// no bounds.
type ClampRange struct {
	Min int
	Max int
}

// Config holds the engine's explicit scoring policy choices.
type Config struct {
	// CaseInsensitiveValues switches exact-value comparison from exact
	// case-sensitive equality to case folding.
	CaseInsensitiveValues bool

	// NeutralScore, when set, is returned instead of a
	// ReputationUnavailableError when geolocation resolution fails. Nil means
	// resolution failures are surfaced to the caller.
	NeutralScore *int

	// Clamp, when set, bounds the final score to [Min, Max].
	Clamp *ClampRange
}

// Engine computes trust scores for IP addresses. It is safe for concurrent use;
// GetReputation blocks only inside the resolver call.
type Engine struct {
	logger        zerolog.Logger
	resolver      trust.GeoResolver
	blacklist     trust.Blacklist
	resultsLogger ResultsLogger
	config        Config

	mu    sync.RWMutex
	index map[trust.Attribute][]rules.Rule
}

// NewEngine creates a reputation engine over the given blacklist and rule
// collection. The collection is indexed by attribute; looking up only the rules
// for attributes present in the bag is semantically identical to a full scan
// because scores sum commutatively.
func NewEngine(logger zerolog.Logger, resolver trust.GeoResolver, bl trust.Blacklist, c *rules.Collection, config Config, resultsLogger ResultsLogger) *Engine {
	e := &Engine{
		logger:        logger,
		resolver:      resolver,
		blacklist:     bl,
		resultsLogger: resultsLogger,
		config:        config,
	}
	e.PutRules(c)
	return e
}

// PutRules atomically replaces the engine's rule set. Concurrent scorers see
// either the old or the new set, never a mix.
func (e *Engine) PutRules(c *rules.Collection) {
	index := make(map[trust.Attribute][]rules.Rule)
	for _, r := range c.All() {
		index[r.Attribute()] = append(index[r.Attribute()], r)
	}

	e.mu.Lock()
	e.index = index
	e.mu.Unlock()
}

// IsBlacklisted reports whether ip is in the blacklist.
func (e *Engine) IsBlacklisted(ip string) bool {
	return e.blacklist.Contains(ip)
}

// AddToBlacklist adds ip to the blacklist.
func (e *Engine) AddToBlacklist(ip string) error {
	return e.blacklist.Add(ip)
}

// RemoveFromBlacklist removes ip from the blacklist.
func (e *Engine) RemoveFromBlacklist(ip string) error {
	return e.blacklist.Remove(ip)
}

// GetReputation computes the trust score for ip. Blacklisted IPs score 0
// without a resolver call. When resolution fails the engine returns a
// *trust.ReputationUnavailableError, unless a neutral score was explicitly
// configured.
func (e *Engine) GetReputation(ctx context.Context, ip string) (score int, err error) {
	if e.blacklist.Contains(ip) {
		e.resultsLogger.BlacklistHit(ip)
		return 0, nil
	}

	bag, err := e.resolver.Resolve(ctx, ip)
	if err != nil {
		if e.config.NeutralScore != nil {
			e.logger.Debug().Err(err).Str("ip", ip).Int("neutralScore", *e.config.NeutralScore).Msg("Resolution failed, returning configured neutral score")
			return *e.config.NeutralScore, nil
		}

		err = &trust.ReputationUnavailableError{IP: ip, Err: err}
		e.resultsLogger.ReputationUnavailable(ip, err)
		return 0, err
	}

	e.mu.RLock()
	index := e.index
	e.mu.RUnlock()

	for attr, value := range bag {
		for _, r := range index[attr] {
			if r.Match().Matches(value, e.config.CaseInsensitiveValues) {
				score += r.Points()
				e.resultsLogger.RuleMatched(ip, r)
			}
		}
	}

	if c := e.config.Clamp; c != nil {
		if score < c.Min {
			score = c.Min
		}
		if score > c.Max {
			score = c.Max
		}
	}

	e.resultsLogger.ScoreComputed(ip, score)
	return score, nil
}

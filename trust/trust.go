package trust

import "context"

// AttributeBag holds the resolved geolocation fields for one IP at one point in
// time. It is produced once per resolution and read-only afterward.
type AttributeBag map[Attribute]string

// GeoResolver turns an IP address into an AttributeBag. Implementations must
// return a *ResolutionError on failure so callers can tell a transport problem
// apart from an IP with no data.
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) (AttributeBag, error)
}

// Blacklist is an override set of IP strings. Membership forces the reputation
// score to 0 without consulting the resolver or the rules.
type Blacklist interface {
	Contains(ip string) bool
	Add(ip string) error
	Remove(ip string) error
	Put(ips []string)
}

// ReputationEngine computes a trust score for an IP by combining a blacklist
// check with rule matching against resolved geolocation attributes.
type ReputationEngine interface {
	GetReputation(ctx context.Context, ip string) (int, error)
	IsBlacklisted(ip string) bool
	AddToBlacklist(ip string) error
	RemoveFromBlacklist(ip string) error
}

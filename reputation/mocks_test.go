package reputation

import (
	"context"
	"sync"

	"iptrust/rules"
	"iptrust/trust"
)

type mockResolver struct {
	bag           trust.AttributeBag
	err           error
	resolveCalled int
}

func (m *mockResolver) Resolve(ctx context.Context, ip string) (trust.AttributeBag, error) {
	m.resolveCalled++
	if m.err != nil {
		return nil, m.err
	}
	return m.bag, nil
}

type mockBlacklist struct {
	mu  sync.RWMutex
	ips map[string]bool
}

func newMockBlacklist(ips ...string) *mockBlacklist {
	m := &mockBlacklist{ips: make(map[string]bool)}
	for _, ip := range ips {
		m.ips[ip] = true
	}
	return m
}

func (m *mockBlacklist) Contains(ip string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ips[ip]
}

func (m *mockBlacklist) Add(ip string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ips[ip] = true
	return nil
}

func (m *mockBlacklist) Remove(ip string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ips, ip)
	return nil
}

func (m *mockBlacklist) Put(ips []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ips = make(map[string]bool)
	for _, ip := range ips {
		m.ips[ip] = true
	}
}

type mockResultsLogger struct {
	blacklistHits     int
	rulesMatched      []rules.Rule
	scoresComputed    []int
	unavailableLogged int
}

func (m *mockResultsLogger) BlacklistHit(ip string) {
	m.blacklistHits++
}

func (m *mockResultsLogger) RuleMatched(ip string, rule rules.Rule) {
	m.rulesMatched = append(m.rulesMatched, rule)
}

func (m *mockResultsLogger) ScoreComputed(ip string, score int) {
	m.scoresComputed = append(m.scoresComputed, score)
}

func (m *mockResultsLogger) ReputationUnavailable(ip string, err error) {
	m.unavailableLogged++
}

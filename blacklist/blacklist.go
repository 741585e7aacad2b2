package blacklist

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/btree"
	"github.com/rs/zerolog"

	"iptrust/trust"
)

// DefaultFileName is where the store persists its IPs when no other file is
// configured. One IP per line, sorted.
const DefaultFileName = "blacklist.txt"

var errEmptyIP = errors.New("blacklist: IP address must be a non-empty string")

// Store is a file-persisted set of blacklisted IP addresses. Mutations build a
// new snapshot and swap it in, so concurrent readers always see either the
// pre- or post-mutation set, never a partial one. Persistence failures are
// logged and never corrupt the in-memory set.
type Store struct {
	logger   zerolog.Logger
	fs       trust.FileSystem
	fileName string
	mu       sync.RWMutex
	tree     *btree.BTree
}

type ipItem string

func (i ipItem) Less(other btree.Item) bool {
	return i < other.(ipItem)
}

// NewStore creates a blacklist store, loading any previously persisted IPs from
// fileName. A missing or unreadable file yields an empty set.
func NewStore(logger zerolog.Logger, fs trust.FileSystem, fileName string) *Store {
	s := &Store{logger: logger, fs: fs, fileName: fileName}
	s.tree = newTree(s.readFromDisk())
	return s
}

// Contains reports whether ip is blacklisted. Exact string membership; no CIDR
// expansion.
func (s *Store) Contains(ip string) bool {
	s.mu.RLock()
	t := s.tree
	s.mu.RUnlock()
	return t.Has(ipItem(ip))
}

// Add inserts ip into the blacklist and persists the new set.
func (s *Store) Add(ip string) error {
	if ip == "" {
		return errEmptyIP
	}

	s.mu.Lock()
	t := s.tree.Clone()
	t.ReplaceOrInsert(ipItem(ip))
	s.tree = t
	s.mu.Unlock()

	s.writeToDisk(t)
	return nil
}

// Remove deletes ip from the blacklist and persists the new set.
func (s *Store) Remove(ip string) error {
	if ip == "" {
		return errEmptyIP
	}

	s.mu.Lock()
	t := s.tree.Clone()
	t.Delete(ipItem(ip))
	s.tree = t
	s.mu.Unlock()

	s.writeToDisk(t)
	return nil
}

// Put replaces the whole blacklist with the given IPs and persists it.
func (s *Store) Put(ips []string) {
	t := newTree(ips)

	s.mu.Lock()
	s.tree = t
	s.mu.Unlock()

	s.writeToDisk(t)
}

// Len returns the number of blacklisted IPs.
func (s *Store) Len() int {
	s.mu.RLock()
	t := s.tree
	s.mu.RUnlock()
	return t.Len()
}

func newTree(ips []string) *btree.BTree {
	t := btree.New(2)
	for _, ip := range ips {
		if ip = strings.TrimSpace(ip); ip != "" {
			t.ReplaceOrInsert(ipItem(ip))
		}
	}
	return t
}

func (s *Store) readFromDisk() []string {
	data, err := s.fs.ReadFile(s.fileName)
	if err != nil {
		return nil
	}
	return strings.Split(string(data), "\n")
}

func (s *Store) writeToDisk(t *btree.BTree) {
	ips := make([]string, 0, t.Len())
	t.Ascend(func(i btree.Item) bool {
		ips = append(ips, string(i.(ipItem)))
		return true
	})

	if err := s.fs.WriteFile(s.fileName, []byte(strings.Join(ips, "\n"))); err != nil {
		s.logger.Error().Err(err).Str("file", s.fileName).Msg("Error while writing blacklist to disk")
	}
}

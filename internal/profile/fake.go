package profile

import (
	"path/filepath"
	"sync"
)

// Call records one store operation for assertion in tests.
type Call struct {
	Op        string // "disassociate" or "associate"
	DeviceKey string
	Profile   string
}

// FakeStore is an in-memory profile store for tests.
type FakeStore struct {
	mu sync.Mutex

	// Present lists profile paths that Exists reports as present.
	Present map[string]bool
	// DisassociateErr and AssociateErr, when set, fail the matching op for
	// the listed device keys (or all keys when the map value for "" is set).
	DisassociateErr map[string]error
	AssociateErr    map[string]error

	Calls []Call
}

func NewFakeStore(present ...string) *FakeStore {
	s := &FakeStore{Present: make(map[string]bool)}
	for _, p := range present {
		s.Present[p] = true
	}
	return s
}

func (s *FakeStore) ResolvePath(profileName string) string {
	if filepath.IsAbs(profileName) {
		return profileName
	}
	return filepath.Join(`C:\fake\color`, profileName)
}

func (s *FakeStore) Exists(profilePath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Present[profilePath]
}

func (s *FakeStore) Disassociate(deviceKey, profilePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, Call{Op: "disassociate", DeviceKey: deviceKey, Profile: profilePath})
	return lookupErr(s.DisassociateErr, deviceKey)
}

func (s *FakeStore) AssociateDefault(deviceKey, profilePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, Call{Op: "associate", DeviceKey: deviceKey, Profile: profilePath})
	return lookupErr(s.AssociateErr, deviceKey)
}

// CallsSnapshot returns a copy of the recorded calls.
func (s *FakeStore) CallsSnapshot() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.Calls))
	copy(out, s.Calls)
	return out
}

func lookupErr(m map[string]error, key string) error {
	if m == nil {
		return nil
	}
	if err, ok := m[key]; ok {
		return err
	}
	return m[""]
}

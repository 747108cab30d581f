package refresh

import "sync"

// FakeRefresher records fired methods and can fail selected ones.
type FakeRefresher struct {
	mu    sync.Mutex
	Errs  map[Method]error
	Fired []Method
}

func (f *FakeRefresher) Refresh(method Method) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Fired = append(f.Fired, method)
	if f.Errs == nil {
		return nil
	}
	return f.Errs[method]
}

// FiredSnapshot returns a copy of the fired method list.
func (f *FakeRefresher) FiredSnapshot() []Method {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Method, len(f.Fired))
	copy(out, f.Fired)
	return out
}

package notify

import "sync"

// Notification is one captured title/body pair.
type Notification struct {
	Title string
	Body  string
}

// FakeNotifier captures notifications for tests.
type FakeNotifier struct {
	mu   sync.Mutex
	Err  error
	Seen []Notification
}

func (f *FakeNotifier) Notify(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Seen = append(f.Seen, Notification{Title: title, Body: body})
	return f.Err
}

// SeenSnapshot returns a copy of the captured notifications.
func (f *FakeNotifier) SeenSnapshot() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.Seen))
	copy(out, f.Seen)
	return out
}

package client

import "sync"

// State is a snapshot of the authenticated user. Resolving is true until the
// first SetUser or Clear settles whether anyone is signed in.
type State struct {
	UserID    string
	Email     string
	Token     string
	Resolving bool
}

func (s State) Authenticated() bool {
	return s.UserID != "" && s.Token != ""
}

type subscriber struct {
	id int
	fn func(State)
}

// Session is the single source of truth for who is signed in. Collections
// subscribe to it to drop their caches when the user changes.
type Session struct {
	// deliver orders publications: a subscriber sees states in the order
	// they were set, starting with the one current when it subscribed.
	deliver sync.Mutex

	mu     sync.Mutex
	state  State
	nextID int
	subs   []subscriber
}

func NewSession() *Session {
	return &Session{state: State{Resolving: true}}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe calls fn with the current state right away and again after every
// change, in subscription order. The returned func removes the subscription.
// fn must not change the session itself.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	current := s.state
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Session) SetUser(userID, email, token string) {
	s.update(func(State) State {
		return State{UserID: userID, Email: email, Token: token}
	})
}

func (s *Session) Clear() {
	s.update(func(State) State { return State{} })
}

func (s *Session) SetResolving(resolving bool) {
	s.update(func(st State) State {
		st.Resolving = resolving
		return st
	})
}

// update publishes outside mu so subscribers may read the session.
func (s *Session) update(change func(State) State) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	next := change(s.state)
	s.state = next
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}

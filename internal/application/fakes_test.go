package application

import (
	"context"
	"sync"
	"sync/atomic"

	"chatpool/internal/domain"
	"chatpool/internal/ports"
)

// fakeGateway hands out scripted sessions, one per dial, so tests can make
// consecutive attempts behave differently (rate-limited once, then fine).
type fakeGateway struct {
	mu       sync.Mutex
	make     func(account domain.Account, dial int) *fakeSession
	sessions []*fakeSession
}

func newFakeGateway(make func(account domain.Account, dial int) *fakeSession) *fakeGateway {
	return &fakeGateway{make: make}
}

var _ ports.SessionGateway = (*fakeGateway)(nil)

func (g *fakeGateway) NewSession(account domain.Account) ports.Session {
	g.mu.Lock()
	defer g.mu.Unlock()

	sess := g.make(account, len(g.sessions))
	g.sessions = append(g.sessions, sess)
	return sess
}

func (g *fakeGateway) dials() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.sessions)
}

type fakeSession struct {
	identity domain.UserRef
	guilds   []*fakeGuild
	users    []*fakeUser

	loginErr   error
	readyErr   error
	neverReady bool
	profileErr error

	loginToken    string
	profileFetches atomic.Int32
	closed        atomic.Bool
}

var _ ports.Session = (*fakeSession)(nil)

func (s *fakeSession) Login(_ context.Context, token string) error {
	s.loginToken = token
	return s.loginErr
}

func (s *fakeSession) Connect(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *fakeSession) WaitUntilReady(ctx context.Context) error {
	if s.neverReady {
		<-ctx.Done()
		return ctx.Err()
	}

	return s.readyErr
}

func (s *fakeSession) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *fakeSession) Closed() bool {
	return s.closed.Load()
}

func (s *fakeSession) Identity() domain.UserRef {
	return s.identity
}

func (s *fakeSession) Guilds(context.Context) ([]ports.Guild, error) {
	guilds := make([]ports.Guild, 0, len(s.guilds))
	for _, guild := range s.guilds {
		guilds = append(guilds, guild)
	}
	return guilds, nil
}

func (s *fakeSession) Users(context.Context) ([]ports.User, error) {
	users := make([]ports.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

func (s *fakeSession) FetchProfile(_ context.Context, userID string) (domain.Profile, error) {
	s.profileFetches.Add(1)
	if s.profileErr != nil {
		return domain.Profile{}, s.profileErr
	}

	return domain.Profile{User: domain.UserRef{ID: userID}}, nil
}

type fakeGuild struct {
	id       string
	name     string
	leaveErr error
	leaves   int
}

var _ ports.Guild = (*fakeGuild)(nil)

func (g *fakeGuild) ID() string   { return g.id }
func (g *fakeGuild) Name() string { return g.name }

func (g *fakeGuild) Leave(context.Context) error {
	g.leaves++
	return g.leaveErr
}

type fakeUser struct {
	ref        domain.UserRef
	blocked    bool
	unblockErr error
	unblocks   int
}

var _ ports.User = (*fakeUser)(nil)

func (u *fakeUser) Ref() domain.UserRef { return u.ref }
func (u *fakeUser) Blocked() bool       { return u.blocked }

func (u *fakeUser) Unblock(context.Context) error {
	u.unblocks++
	return u.unblockErr
}

// readySession is the common case: every dial produces a session that logs
// in and becomes ready immediately.
func readySession(identity domain.UserRef, mutate func(*fakeSession)) func(domain.Account, int) *fakeSession {
	return func(domain.Account, int) *fakeSession {
		sess := &fakeSession{identity: identity}
		if mutate != nil {
			mutate(sess)
		}
		return sess
	}
}

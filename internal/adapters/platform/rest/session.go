package rest

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"chatpool/internal/domain"
	"chatpool/internal/ports"
)

type session struct {
	gateway *Gateway
	account domain.Account

	mu            sync.Mutex
	token         string
	identity      domain.UserRef
	guilds        []guildPayload
	relationships []relationshipPayload

	ready    chan struct{}
	readyErr error

	closed    atomic.Bool
	closeOnce sync.Once
	done      chan struct{}
}

var _ ports.Session = (*session)(nil)

func newSession(gateway *Gateway, account domain.Account) *session {
	return &session{
		gateway: gateway,
		account: account,
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *session) Login(ctx context.Context, token string) error {
	var me userPayload
	if err := s.gateway.do(ctx, token, http.MethodGet, "/users/@me", &me); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.identity = me.ref()
	s.mu.Unlock()

	return nil
}

// Connect loads the initial state snapshot, signals readiness, then idles
// until the context is cancelled or the session is closed.
func (s *session) Connect(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	var guilds []guildPayload
	var relationships []relationshipPayload

	err := s.gateway.do(ctx, token, http.MethodGet, "/users/@me/guilds", &guilds)
	if err == nil {
		err = s.gateway.do(ctx, token, http.MethodGet, "/users/@me/relationships", &relationships)
	}

	s.mu.Lock()
	if err != nil {
		s.readyErr = fmt.Errorf("load initial state: %w", err)
	} else {
		s.guilds = guilds
		s.relationships = relationships
	}
	s.mu.Unlock()
	close(s.ready)

	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return nil
	}
}

func (s *session) WaitUntilReady(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyErr
}

func (s *session) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)
	})

	return nil
}

func (s *session) Closed() bool {
	return s.closed.Load()
}

func (s *session) Identity() domain.UserRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.identity
}

func (s *session) Guilds(context.Context) ([]ports.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guilds := make([]ports.Guild, 0, len(s.guilds))
	for _, payload := range s.guilds {
		guilds = append(guilds, &guild{session: s, payload: payload})
	}

	return guilds, nil
}

func (s *session) Users(context.Context) ([]ports.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]ports.User, 0, len(s.relationships)+1)
	users = append(users, &user{session: s, ref: s.identity})
	for _, payload := range s.relationships {
		users = append(users, &user{
			session: s,
			ref:     payload.User.ref(),
			blocked: payload.Type == relationshipBlocked,
		})
	}

	return users, nil
}

func (s *session) FetchProfile(ctx context.Context, userID string) (domain.Profile, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	var payload profilePayload
	if err := s.gateway.do(ctx, token, http.MethodGet, "/users/"+userID+"/profile", &payload); err != nil {
		return domain.Profile{}, err
	}

	return domain.Profile{
		User:    payload.User.ref(),
		Bio:     payload.Bio,
		Premium: payload.Premium,
	}, nil
}

type guild struct {
	session *session
	payload guildPayload
}

var _ ports.Guild = (*guild)(nil)

func (g *guild) ID() string   { return g.payload.ID }
func (g *guild) Name() string { return g.payload.Name }

func (g *guild) Leave(ctx context.Context) error {
	g.session.mu.Lock()
	token := g.session.token
	g.session.mu.Unlock()

	return g.session.gateway.do(ctx, token, http.MethodDelete, "/users/@me/guilds/"+g.payload.ID, nil)
}

type user struct {
	session *session
	ref     domain.UserRef
	blocked bool
}

var _ ports.User = (*user)(nil)

func (u *user) Ref() domain.UserRef { return u.ref }
func (u *user) Blocked() bool       { return u.blocked }

func (u *user) Unblock(ctx context.Context) error {
	u.session.mu.Lock()
	token := u.session.token
	u.session.mu.Unlock()

	return u.session.gateway.do(ctx, token, http.MethodDelete, "/users/@me/relationships/"+u.ref.ID, nil)
}

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommandPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestAccountListShowsConfiguredAccounts(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))

	stdout, _, err := executeCLI(t, home, "account", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "acc-1")
	assert.Contains(t, stdout, "Alice")
	assert.Contains(t, stdout, "bob#0002")
}

func TestVerifyCommandReportsStanding(t *testing.T) {
	platform := newPlatformStub(t)
	platform.users["token-1"] = stubUser{id: "1001", username: "alice", discriminator: "0001"}
	platform.users["token-2"] = stubUser{id: "1002", username: "bob", discriminator: "0002", profileStatus: http.StatusForbidden}

	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	require.NoError(t, writeTokenFixture(home, "chatpool/acc-1/token", "token-1"))
	require.NoError(t, writeTokenFixture(home, "chatpool/acc-2/token", "token-2"))

	stdout, _, err := executeCLI(t, home, "verify", "--retry-delay", "1ms")
	require.NoError(t, err)
	assert.Contains(t, stdout, "accounts: 2, failed: 0")
	assert.Contains(t, stdout, "Alice (acc-1)")
	assert.Contains(t, stdout, "in good standing")
	assert.Contains(t, stdout, "NOT in good standing")
}

func TestVerifyCommandJSONOutput(t *testing.T) {
	platform := newPlatformStub(t)
	platform.users["token-1"] = stubUser{id: "1001", username: "alice", discriminator: "0001"}

	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	require.NoError(t, writeTokenFixture(home, "chatpool/acc-1/token", "token-1"))

	stdout, _, err := executeCLI(t, home, "verify", "--account", "acc-1", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"account_id": "acc-1"`)
	assert.Contains(t, stdout, `"good": true`)
}

func TestVerifyCommandShowsSpinnerMessage(t *testing.T) {
	platform := newPlatformStub(t)
	platform.delay = 150 * time.Millisecond
	platform.users["token-1"] = stubUser{id: "1001", username: "alice", discriminator: "0001"}

	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	require.NoError(t, writeTokenFixture(home, "chatpool/acc-1/token", "token-1"))

	_, stderr, err := executeCLI(t, home, "verify", "--account", "acc-1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Verifying accounts")
}

func TestLeaveCommandLeavesEveryGuild(t *testing.T) {
	platform := newPlatformStub(t)
	platform.users["token-1"] = stubUser{
		id: "1001", username: "alice", discriminator: "0001",
		guilds: []stubGuild{{id: "g1", name: "alpha"}, {id: "g2", name: "beta"}},
	}

	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	require.NoError(t, writeTokenFixture(home, "chatpool/acc-1/token", "token-1"))

	stdout, _, err := executeCLI(t, home, "leave", "--account", "acc-1", "--pace", "1ms")
	require.NoError(t, err)
	assert.Contains(t, stdout, "succeeded: 2, skipped: 0, failed: 0")
	assert.ElementsMatch(t, []string{
		"DELETE /users/@me/guilds/g1",
		"DELETE /users/@me/guilds/g2",
	}, platform.deleted())
}

func TestUnblockCommandSkipsNonBlockedUsers(t *testing.T) {
	platform := newPlatformStub(t)
	platform.users["token-1"] = stubUser{
		id: "1001", username: "alice", discriminator: "0001",
		relationships: []stubRelationship{
			{id: "2001", relType: 2, username: "mallory", discriminator: "0666"},
			{id: "2002", relType: 1, username: "carol", discriminator: "0003"},
		},
	}

	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))
	require.NoError(t, writeTokenFixture(home, "chatpool/acc-1/token", "token-1"))

	stdout, _, err := executeCLI(t, home, "unblock", "--account", "acc-1", "--pace", "1ms")
	require.NoError(t, err)
	assert.Contains(t, stdout, "succeeded: 1, skipped: 1, failed: 0")
	assert.ElementsMatch(t, []string{"DELETE /users/@me/relationships/2001"}, platform.deleted())
}

func TestBatchCommandFailsForUnknownAccount(t *testing.T) {
	newPlatformStub(t)

	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home))

	_, _, err := executeCLI(t, home, "verify", "--account", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestVerifyCommandFailsWithEmptyRoster(t *testing.T) {
	newPlatformStub(t)

	home := t.TempDir()

	_, _, err := executeCLI(t, home, "verify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no accounts configured")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeRosterFixture(home string) error {
	configDir := filepath.Join(home, ".chatpool")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	accounts := `version = 1

[[accounts]]
id = "acc-1"
name = "Alice"
email = "alice@example.com"

[accounts.user]
id = "1001"
username = "alice"
discriminator = "0001"

[accounts.auth]
method = "token"
secret_ref = "chatpool/acc-1/token"

[[accounts]]
id = "acc-2"
name = ""

[accounts.user]
id = "1002"
username = "bob"
discriminator = "0002"

[accounts.auth]
method = "token"
secret_ref = "chatpool/acc-2/token"
`

	return os.WriteFile(filepath.Join(configDir, "accounts.toml"), []byte(accounts), 0o644)
}

func writeTokenFixture(home, key, token string) error {
	path := filepath.Join(home, ".chatpool", "secrets", filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

type stubGuild struct {
	id   string
	name string
}

type stubRelationship struct {
	id            string
	relType       int
	username      string
	discriminator string
}

type stubUser struct {
	id            string
	username      string
	discriminator string
	guilds        []stubGuild
	relationships []stubRelationship

	// non-zero, non-200 status returned by the profile endpoint
	profileStatus int
}

type platformStub struct {
	users map[string]stubUser
	delay time.Duration

	mu      sync.Mutex
	deletes []string
}

func newPlatformStub(t *testing.T) *platformStub {
	t.Helper()

	stub := &platformStub{users: map[string]stubUser{}}
	server := httptest.NewServer(http.HandlerFunc(stub.handle))
	t.Cleanup(server.Close)
	t.Setenv("CHATPOOL_BASE_URL", server.URL)

	return stub
}

func (p *platformStub) deleted() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.deletes...)
}

func (p *platformStub) handle(w http.ResponseWriter, r *http.Request) {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	user, ok := p.users[r.Header.Get("Authorization")]
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/users/@me":
		writeJSON(w, userJSON(user.id, user.username, user.discriminator))

	case r.Method == http.MethodGet && r.URL.Path == "/users/@me/guilds":
		guilds := make([]map[string]any, 0, len(user.guilds))
		for _, guild := range user.guilds {
			guilds = append(guilds, map[string]any{"id": guild.id, "name": guild.name})
		}
		writeJSON(w, guilds)

	case r.Method == http.MethodGet && r.URL.Path == "/users/@me/relationships":
		relationships := make([]map[string]any, 0, len(user.relationships))
		for _, rel := range user.relationships {
			relationships = append(relationships, map[string]any{
				"id":   rel.id,
				"type": rel.relType,
				"user": userJSON(rel.id, rel.username, rel.discriminator),
			})
		}
		writeJSON(w, relationships)

	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/profile"):
		if user.profileStatus != 0 && user.profileStatus != http.StatusOK {
			w.WriteHeader(user.profileStatus)
			return
		}
		writeJSON(w, map[string]any{
			"user": userJSON(user.id, user.username, user.discriminator),
			"bio":  "",
		})

	case r.Method == http.MethodDelete:
		p.mu.Lock()
		p.deletes = append(p.deletes, fmt.Sprintf("DELETE %s", r.URL.Path))
		p.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func userJSON(id, username, discriminator string) map[string]any {
	return map[string]any{
		"id":            id,
		"username":      username,
		"discriminator": discriminator,
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Gate tracks which sessions have entered today's password. Sessions live in
// memory only; restarting the service relocks everyone, which matches the
// ephemeral session-storage behavior of the dashboard.
type Gate struct {
	mu       sync.Mutex
	secret   string
	errTTL   time.Duration
	now      func() time.Time
	sessions map[string]*session
}

type session struct {
	unlockedDate string
	errMsg       string
	errTimer     *time.Timer
}

func NewGate(secret string) *Gate {
	return &Gate{
		secret:   secret,
		errTTL:   3 * time.Second,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// NewSession issues an opaque session identifier.
func (g *Gate) NewSession() string {
	return uuid.NewString()
}

// IsUnlockedToday reports whether the session entered the correct password on
// the current calendar day.
func (g *Gate) IsUnlockedToday(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sessions[id]
	return ok && s.unlockedDate == g.now().Format(dateLayout)
}

// AttemptUnlock compares the trimmed input against today's derived password.
// On a match the session is marked unlocked for today. On a mismatch the
// unlock state is left untouched and a transient error message is recorded;
// it clears itself after the error TTL, and a newer mismatch supersedes any
// pending clear.
func (g *Gate) AttemptUnlock(id, input string) bool {
	today := g.now()
	want := DerivedPassword(today.Format("20060102"), g.secret)

	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.session(id)

	if strings.TrimSpace(input) == want {
		s.unlockedDate = today.Format(dateLayout)
		s.errMsg = ""
		if s.errTimer != nil {
			s.errTimer.Stop()
			s.errTimer = nil
		}
		return true
	}

	s.errMsg = "パスワードが違います"
	if s.errTimer != nil {
		s.errTimer.Stop()
	}
	s.errTimer = time.AfterFunc(g.errTTL, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if cur, ok := g.sessions[id]; ok {
			cur.errMsg = ""
			cur.errTimer = nil
		}
	})
	return false
}

// ErrorMessage returns the pending mismatch message, if any.
func (g *Gate) ErrorMessage(id string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.sessions[id]; ok {
		return s.errMsg
	}
	return ""
}

func (g *Gate) session(id string) *session {
	s, ok := g.sessions[id]
	if !ok {
		s = &session{}
		g.sessions[id] = s
	}
	return s
}

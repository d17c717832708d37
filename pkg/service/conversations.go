// Package service runs preference elicitation conversations on top of the resolver.
// It owns the preference record between turns and persists it with the session.
package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/tripscope/pkg/domain"
	"github.com/umputun/tripscope/pkg/llm"
	"github.com/umputun/tripscope/pkg/preference"
)

//go:generate moq -out mocks/session_store.go -pkg mocks -skip-ensure -fmt goimports . SessionStore
//go:generate moq -out mocks/questioner.go -pkg mocks -skip-ensure -fmt goimports . Questioner

// maxSaveAttempts limits re-resolving a message when its session keeps changing concurrently
const maxSaveAttempts = 5

// SessionStore persists conversation sessions
type SessionStore interface {
	CreateSession(ctx context.Context, s *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	// UpdateSession saves s if the stored session still has the given turn count, domain.ErrConflict otherwise
	UpdateSession(ctx context.Context, s *domain.Session, turns int) error
	DeleteSession(ctx context.Context, id string) error
}

// Questioner phrases a question about a missing preference
type Questioner interface {
	Question(ctx context.Context, req llm.QuestionRequest) (string, error)
}

// Conversations manages preference elicitation sessions
type Conversations struct {
	resolver   *preference.Resolver
	store      SessionStore
	questioner Questioner
	sanitizer  *bluemonday.Policy
	now        func() time.Time
}

// Turn is the state of a conversation after a message
type Turn struct {
	SessionID   string
	Preferences preference.Record
	Filled      []preference.FieldID // fields set by this message
	Missing     []preference.FieldID
	NextField   preference.FieldID // empty when complete
	Question    string
	Complete    bool
	Turns       int
}

// ResolveRequest is a single stateless resolve call
type ResolveRequest struct {
	Text        string
	Preferences map[string]string
	Threshold   float64
}

// NewConversations makes a conversation service. Questioner is optional,
// without it questions are made from field descriptions.
func NewConversations(resolver *preference.Resolver, store SessionStore, questioner Questioner) *Conversations {
	return &Conversations{
		resolver:   resolver,
		store:      store,
		questioner: questioner,
		sanitizer:  bluemonday.StrictPolicy(),
		now:        time.Now,
	}
}

// Schema returns the preference schema of the conversations
func (c *Conversations) Schema() *preference.Schema {
	return c.resolver.Schema()
}

// Start creates a new session. Optional text is resolved as the first message.
func (c *Conversations) Start(ctx context.Context, text string) (*Turn, error) {
	schema := c.resolver.Schema()
	rec := schema.EmptyRecord()
	var filled []preference.FieldID

	clean := c.sanitize(text)
	if clean != "" {
		resolved, err := c.resolver.Resolve(ctx, preference.ResolveRequest{Text: clean, Existing: &rec})
		if err != nil {
			return nil, fmt.Errorf("resolve first message: %w", err)
		}
		filled = preference.Diff(rec, resolved)
		rec = resolved
	}

	session := domain.NewSession(c.now())
	session.Preferences = rec.Values()
	if clean != "" {
		session.Turns = 1
	}
	if err := c.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	lgr.Printf("[DEBUG] started session %s, filled %v", session.ID, filled)

	return c.turn(ctx, session, rec, filled, clean), nil
}

// Reply resolves a traveler's message against the session preferences and saves the result.
// Nothing is saved if resolving fails. When another message of the same session was saved in
// between, the message is resolved again against the fresh record, so no field set by either
// message is lost.
func (c *Conversations) Reply(ctx context.Context, sessionID, text string) (*Turn, error) {
	clean := c.sanitize(text)

	var session *domain.Session
	var resolved preference.Record
	var filled []preference.FieldID
	var critical error
	retrier := repeater.NewBackoff(maxSaveAttempts, 10*time.Millisecond, repeater.WithMaxDelay(200*time.Millisecond))
	err := retrier.Do(ctx, func() error {
		var err error
		session, resolved, filled, err = c.reply(ctx, sessionID, clean)
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			critical = err
			return nil // stop retrying
		}
		return err
	})
	if critical != nil {
		return nil, critical
	}
	if err != nil {
		return nil, fmt.Errorf("save session %s after %d attempts: %w", sessionID, maxSaveAttempts, err)
	}
	lgr.Printf("[DEBUG] session %s turn %d, filled %v", session.ID, session.Turns, filled)

	return c.turn(ctx, session, resolved, filled, clean), nil
}

// reply makes a single read-resolve-save pass of a message
func (c *Conversations) reply(ctx context.Context, sessionID, clean string) (*domain.Session, preference.Record,
	[]preference.FieldID, error) {
	session, rec, err := c.load(ctx, sessionID)
	if err != nil {
		return nil, preference.Record{}, nil, err
	}

	resolved, err := c.resolver.Resolve(ctx, preference.ResolveRequest{Text: clean, Existing: &rec})
	if err != nil {
		return nil, preference.Record{}, nil, fmt.Errorf("resolve message: %w", err)
	}

	readTurns := session.Turns
	session.Preferences = resolved.Values()
	session.Turns++
	session.UpdatedAt = c.now()
	if err := c.store.UpdateSession(ctx, session, readTurns); err != nil {
		return nil, preference.Record{}, nil, fmt.Errorf("save session: %w", err)
	}
	return session, resolved, preference.Diff(rec, resolved), nil
}

// Get returns the current state of a session
func (c *Conversations) Get(ctx context.Context, sessionID string) (*Turn, error) {
	session, rec, err := c.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.turn(ctx, session, rec, nil, ""), nil
}

// Delete removes a session
func (c *Conversations) Delete(ctx context.Context, sessionID string) error {
	if !domain.ValidSessionID(sessionID) {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	if err := c.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Resolve fills preferences from text without a session
func (c *Conversations) Resolve(ctx context.Context, req ResolveRequest) (*Turn, error) {
	existing, err := c.resolver.Schema().RecordFrom(req.Preferences)
	if err != nil {
		return nil, err
	}
	resolved, err := c.resolver.Resolve(ctx, preference.ResolveRequest{
		Text:      c.sanitize(req.Text),
		Existing:  &existing,
		Threshold: req.Threshold,
	})
	if err != nil {
		return nil, err
	}

	schema := c.resolver.Schema()
	res := &Turn{
		Preferences: resolved,
		Filled:      preference.Diff(existing, resolved),
		Missing:     schema.MissingFields(resolved),
		Complete:    resolved.Complete(),
	}
	if id, desc, ok := schema.NextMissingField(resolved); ok {
		res.NextField = id
		res.Question = c.question(ctx, schema, resolved, id, desc, c.sanitize(req.Text))
	}
	return res, nil
}

// load reads the session and its preferences as a record of the current schema
func (c *Conversations) load(ctx context.Context, sessionID string) (*domain.Session, preference.Record, error) {
	if !domain.ValidSessionID(sessionID) {
		return nil, preference.Record{}, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	session, err := c.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, preference.Record{}, fmt.Errorf("load session: %w", err)
	}
	rec, err := c.resolver.Schema().RecordFrom(session.Preferences)
	if err != nil {
		return nil, preference.Record{}, fmt.Errorf("session %s preferences: %w", sessionID, err)
	}
	return session, rec, nil
}

// turn builds the response with a question about the next missing field
func (c *Conversations) turn(ctx context.Context, s *domain.Session, rec preference.Record, filled []preference.FieldID, lastMsg string) *Turn {
	schema := c.resolver.Schema()
	res := &Turn{
		SessionID:   s.ID,
		Preferences: rec,
		Filled:      filled,
		Missing:     schema.MissingFields(rec),
		Turns:       s.Turns,
	}

	id, desc, ok := schema.NextMissingField(rec)
	if !ok {
		res.Complete = true
		return res
	}
	res.NextField = id
	res.Question = c.question(ctx, schema, rec, id, desc, lastMsg)
	return res
}

// question asks the questioner, falls back to a question made from the description on failure
func (c *Conversations) question(ctx context.Context, schema *preference.Schema, rec preference.Record,
	id preference.FieldID, desc, lastMsg string) string {
	if c.questioner == nil {
		return llm.FallbackQuestion(string(id), desc)
	}

	values := schema.Values(id)
	names := make([]string, 0, len(values))
	for _, v := range values {
		names = append(names, v.Name)
	}

	q, err := c.questioner.Question(ctx, llm.QuestionRequest{
		Field:       string(id),
		Description: desc,
		Values:      names,
		Known:       rec.Values(),
		LastMessage: lastMsg,
	})
	if err != nil {
		lgr.Printf("[WARN] failed to generate question for %s: %v", id, err)
		return llm.FallbackQuestion(string(id), desc)
	}
	return q
}

// sanitize strips markup from user text
func (c *Conversations) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(c.sanitizer.Sanitize(text)))
}

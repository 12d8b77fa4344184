package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/logger"
)

// ErrStale is returned by Task.Run when a newer query superseded the task.
var ErrStale = errors.New("query superseded by a newer one")

// Options configures a Session.
type Options struct {
	// MaxHistory caps the query history. 0 disables history.
	MaxHistory int

	// NotFoundTemplate is shown when an evaluated query matches nothing.
	// "{query}" is replaced by the query text.
	NotFoundTemplate string

	// Config is the configuration the session was opened against. Hosts
	// resolve the session's links with it.
	Config *domain.Configuration

	Logger logger.Logger
}

// Session holds the state of one filter box: the current query, its result
// and the query history. Only the most recently issued query may commit.
type Session struct {
	id      string
	surface Surface
	matcher Matcher
	opts    Options
	log     logger.Logger

	mu      sync.Mutex
	query   string
	result  Result
	history []string
	seq     uint64
	cancel  context.CancelFunc
	closed  bool
}

// New creates a session for surface.
func New(surface Surface, matcher Matcher, opts Options) *Session {
	if opts.MaxHistory < 0 {
		opts.MaxHistory = 0
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:      id,
		surface: surface,
		matcher: matcher,
		opts:    opts,
		log:     log.With(logger.String("session", id), logger.String("surface", string(surface))),
	}
}

func (s *Session) ID() string       { return s.id }
func (s *Session) Surface() Surface { return s.surface }

// Config returns the configuration the session was opened against, if any.
func (s *Session) Config() *domain.Configuration { return s.opts.Config }

// SetQuery issues a query and evaluates it synchronously.
func (s *Session) SetQuery(text string) (Result, error) {
	task, err := s.Begin(text)
	if err != nil {
		return Result{}, err
	}
	return task.Run(context.Background())
}

// Begin issues a query without evaluating it. The previous pending task, if
// any, is cancelled and can no longer commit.
func (s *Session) Begin(text string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		err := s.closedError()
		s.log.Warn("Dropping query on closed session", logger.Error(err))
		return nil, err
	}

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.seq++
	s.query = text
	s.remember(text)

	return &Task{session: s, seq: s.seq, query: text, ctx: ctx}, nil
}

// Query returns the most recently issued query.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Result returns the last committed result.
func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// History returns past queries, most recent first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Seq returns the sequence number of the latest issued query.
func (s *Session) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Close tears the session down. Pending tasks are cancelled.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// remember moves text to the front of the history. Callers hold mu.
func (s *Session) remember(text string) {
	q := strings.TrimSpace(text)
	if q == "" || s.opts.MaxHistory == 0 {
		return
	}

	for i, h := range s.history {
		if h == q {
			s.history = append(s.history[:i], s.history[i+1:]...)
			break
		}
	}
	s.history = append([]string{q}, s.history...)
	if len(s.history) > s.opts.MaxHistory {
		s.history = s.history[:s.opts.MaxHistory]
	}
}

func (s *Session) commit(t *Task, res Result) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Result{}, s.closedError()
	}
	if t.seq != s.seq || t.ctx.Err() != nil {
		return Result{}, ErrStale
	}
	s.result = res
	return res, nil
}

func (s *Session) closedError() error {
	return &domain.QueryError{Session: s.id, Reason: "session is closed", Err: domain.ErrSessionClosed}
}

// Task is one issued query waiting to be evaluated.
type Task struct {
	session *Session
	seq     uint64
	query   string
	ctx     context.Context
}

func (t *Task) Seq() uint64       { return t.seq }
func (t *Task) Query() string     { return t.query }
func (t *Task) Session() *Session { return t.session }

// Done is closed once a newer query supersedes the task or the session closes.
func (t *Task) Done() <-chan struct{} {
	return t.ctx.Done()
}

// Run evaluates the query and commits the result if the task is still the
// latest one. A superseded task returns ErrStale and changes nothing.
func (t *Task) Run(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if t.ctx.Err() != nil {
		return Result{}, ErrStale
	}

	res := t.session.matcher.Match(t.query)
	res.Query = t.query
	res.Seq = t.seq
	if strings.TrimSpace(t.query) != "" && res.Count == 0 && !res.Throttled {
		res.NotFound = domain.FormatNotFound(t.session.opts.NotFoundTemplate, t.query)
	}

	return t.session.commit(t, res)
}

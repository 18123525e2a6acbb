package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quizgen/quizgen-service/internal/events"
	"github.com/quizgen/quizgen-service/internal/gateway"
	"github.com/quizgen/quizgen-service/internal/history"
	"github.com/quizgen/quizgen-service/internal/models"
	"github.com/quizgen/quizgen-service/internal/utils"
	"github.com/quizgen/quizgen-service/internal/validator"
)

// Clock supplies the current time. Injected so tests control timestamps.
type Clock func() time.Time

// SessionService is the application state machine. It owns the single live
// AppState (view, active session, question cursor, timer, loading flag and
// error banner) and serializes every transition behind one mutex. Callers
// never see the live state; Snapshot returns detached copies.
type SessionService struct {
	generator gateway.Generator
	history   *history.Store
	publisher events.EventPublisher
	validator *validator.Validator
	logger    utils.Logger
	clock     Clock

	mu      sync.Mutex
	view    models.AppView
	current *models.QuizSession
	cursor  int
	elapsed int
	loading bool
	errMsg  string

	// genSeq identifies the generation a gateway call belongs to. Leaving the
	// loading state bumps it, so a response from an abandoned generation is
	// recognized as stale and discarded.
	genSeq uint64
}

// NewSessionService creates the state machine in the home view.
func NewSessionService(
	generator gateway.Generator,
	historyStore *history.Store,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger utils.Logger,
	clock Clock,
) *SessionService {
	if clock == nil {
		clock = time.Now
	}
	return &SessionService{
		generator: generator,
		history:   historyStore,
		publisher: publisher,
		validator: v,
		logger:    logger,
		clock:     clock,
		view:      models.ViewHome,
	}
}

// Generate validates the configuration, enters the loading state and calls the
// generation gateway. On success the new session becomes active and the view
// switches to the quiz. On failure the view returns home with a generic error
// banner; the underlying cause is logged, never surfaced. If the caller left
// the loading state while the call was in flight (GoHome), the late result is
// discarded.
//
// The gateway call runs outside the state lock, so the rest of the state
// machine stays responsive during generation.
func (s *SessionService) Generate(ctx context.Context, config models.QuizConfig) (*models.QuizSession, error) {
	if err := s.validator.Validate(config); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, ErrGenerationInProgress
	}
	if s.view != models.ViewHome && s.view != models.ViewHistory {
		s.mu.Unlock()
		return nil, ErrNotOnHomeView
	}
	s.loading = true
	s.errMsg = ""
	s.genSeq++
	seq := s.genSeq
	s.mu.Unlock()

	generated, genErr := s.generator.Generate(ctx, config)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.genSeq != seq || !s.loading {
		s.logger.Info("Discarding stale generation result", "sequence", seq)
		return nil, ErrGenerationSuperseded
	}
	s.loading = false

	if genErr != nil {
		s.logger.LogError(genErr, "Quiz generation failed", "source_type", config.SourceType)
		s.view = models.ViewHome
		s.errMsg = UserGenerationErrorMessage
		s.publish(ctx, events.NewGenerationFailedEvent(string(config.SourceType), genErr.Error()))
		return nil, fmt.Errorf("%w: %w", gateway.ErrGenerationFailed, genErr)
	}

	session := models.NewQuizSession(generated.Title, generated.Questions, s.clock())
	s.current = session
	s.view = models.ViewQuiz
	s.cursor = 0
	s.elapsed = 0

	s.logger.Info("Quiz session started",
		"session_id", session.ID,
		"title", session.Title,
		"question_count", session.QuestionCount())
	s.publish(ctx, events.NewQuizGeneratedEvent(
		session.ID, session.Title, session.QuestionCount(),
		string(config.SourceType), string(config.Difficulty)))

	return session, nil
}

// SubmitAnswer records the answer for the current question and reports whether
// it was correct. Each question accepts exactly one answer; a second submission
// is rejected. The session is replaced copy-on-write so snapshots already
// handed out never change.
func (s *SessionService) SubmitAnswer(answer string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireActiveQuiz(); err != nil {
		return false, err
	}

	question := s.current.Questions[s.cursor]
	if s.current.Answered(question.ID) {
		return false, ErrAnswerAlreadyRecorded
	}

	updated := s.current.Clone()
	updated.UserAnswers[question.ID] = answer
	correct := question.IsCorrect(answer)
	if correct {
		updated.Score++
	}
	s.current = updated

	return correct, nil
}

// NextQuestion advances past the current question once it has been answered.
// On the last question it finalizes the session instead: the elapsed time is
// frozen into the session, the session enters history, and the view switches
// to results. Returns whether the session was completed by this call.
func (s *SessionService) NextQuestion(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireActiveQuiz(); err != nil {
		return false, err
	}
	if !s.current.Answered(s.current.Questions[s.cursor].ID) {
		return false, ErrQuestionNotAnswered
	}

	if s.cursor < s.current.QuestionCount()-1 {
		s.cursor++
		return false, nil
	}

	finalized := s.current.Clone()
	finalized.Completed = true
	finalized.TimeSpentSeconds = s.elapsed
	s.current = finalized
	s.view = models.ViewResults

	s.history.Prepend(finalized)

	s.logger.Info("Quiz session completed",
		"session_id", finalized.ID,
		"score", finalized.Score,
		"question_count", finalized.QuestionCount(),
		"time_spent_seconds", finalized.TimeSpentSeconds)
	s.publish(ctx, events.NewSessionCompletedEvent(
		finalized.ID, finalized.Title,
		finalized.Score, finalized.QuestionCount(),
		Percentage(finalized), finalized.TimeSpentSeconds))

	return true, nil
}

// Retry starts a fresh session over the same questions as the one currently
// shown on the results view. The new session has its own identity and a reset
// score, answers and timer; the completed original stays in history untouched.
func (s *SessionService) Retry() (*models.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewResults || s.current == nil {
		return nil, ErrNotOnResultsView
	}

	session := s.current.NewRetrySession(s.clock())
	s.current = session
	s.view = models.ViewQuiz
	s.cursor = 0
	s.elapsed = 0

	s.logger.Info("Quiz session retried", "session_id", session.ID, "title", session.Title)
	return session, nil
}

// GoHome returns to the home view from anywhere. An unfinished session is
// abandoned and discarded, never entering history. An in-flight generation is
// cancelled by invalidating its sequence; its eventual result is discarded.
// The error banner is left as-is; only DismissError clears it.
func (s *SessionService) GoHome(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		s.loading = false
		s.genSeq++
		s.logger.Info("In-flight generation cancelled")
	}

	if s.current != nil && !s.current.Completed {
		s.logger.Info("Quiz session abandoned",
			"session_id", s.current.ID,
			"answered", s.current.AnsweredCount(),
			"question_count", s.current.QuestionCount())
		s.publish(ctx, events.NewSessionAbandonedEvent(
			s.current.ID, s.current.AnsweredCount(), s.current.QuestionCount()))
	}

	s.current = nil
	s.view = models.ViewHome
	s.cursor = 0
	s.elapsed = 0
}

// ShowHistory switches from the home view to the history view. The history
// view is a read-only listing; GoHome leaves it again.
func (s *SessionService) ShowHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewHome {
		return ErrNotOnHomeView
	}
	s.view = models.ViewHistory
	return nil
}

// OpenHistoryEntry presents a past session on the results view. The stored
// session is frozen; reopening it never re-runs scoring or touches history.
func (s *SessionService) OpenHistoryEntry(id string) (*models.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewHome && s.view != models.ViewHistory {
		return nil, ErrNotOnHomeView
	}

	session, ok := s.history.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHistoryEntryNotFound, id)
	}

	s.current = session
	s.view = models.ViewResults
	s.cursor = 0
	s.elapsed = 0
	return session, nil
}

// DismissError clears the error banner.
func (s *SessionService) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// Tick advances the quiz timer. It only counts while a quiz is actively being
// taken; on the home, loading, results and history states it is a no-op.
func (s *SessionService) Tick(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == models.ViewQuiz && s.current != nil && !s.current.Completed {
		s.elapsed += seconds
	}
}

// Snapshot returns a detached copy of the application state. The embedded
// session is cloned, so later transitions never mutate a handed-out snapshot.
func (s *SessionService) Snapshot() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := models.AppState{
		View:            s.view,
		CurrentQuestion: s.cursor,
		ElapsedSeconds:  s.elapsed,
		IsLoading:       s.loading,
		Error:           s.errMsg,
	}
	if s.current != nil {
		state.CurrentQuiz = s.current.Clone()
	}
	return state
}

// CompletedSession returns the completed session currently shown on the
// results view, for results, export and share endpoints.
func (s *SessionService) CompletedSession() (*models.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewResults || s.current == nil {
		return nil, ErrNotOnResultsView
	}
	if !s.current.Completed {
		return nil, ErrSessionNotCompleted
	}
	return s.current, nil
}

// requireActiveQuiz checks that a quiz is being taken. Callers hold the lock.
func (s *SessionService) requireActiveQuiz() error {
	if s.view != models.ViewQuiz || s.current == nil {
		return ErrNoActiveSession
	}
	if s.current.Completed {
		return ErrSessionCompleted
	}
	return nil
}

// publish emits a lifecycle event, logging instead of failing the transition
// when the publisher errors. Callers hold the lock.
func (s *SessionService) publish(ctx context.Context, event *events.QuizEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish lifecycle event", "event_type", event.Type, "error", err)
	}
}

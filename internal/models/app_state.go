package models

// AppView identifies which screen the application is presenting.
type AppView string

const (
	ViewHome    AppView = "home"
	ViewQuiz    AppView = "quiz"
	ViewResults AppView = "results"
	ViewHistory AppView = "history"
)

// AppState is a snapshot of the process-wide application state, as exposed to
// the presentation layer. The state machine owns the live copy; snapshots are
// detached values.
type AppState struct {
	View            AppView      `json:"view"`
	CurrentQuiz     *QuizSession `json:"current_quiz,omitempty"`
	CurrentQuestion int          `json:"current_question"`
	ElapsedSeconds  int          `json:"elapsed_seconds"`
	IsLoading       bool         `json:"is_loading"`
	Error           string       `json:"error,omitempty"`
}

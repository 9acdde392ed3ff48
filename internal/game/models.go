package game

type Phase string

const (
	PhaseRunning   Phase = "running"
	PhaseExhausted Phase = "exhausted"
	PhaseFailed    Phase = "failed"
	PhaseAborted   Phase = "aborted"
	PhaseDone      Phase = "done"
)

// Style is a presentation hint for emphasized output.
type Style string

const (
	StyleSuccess   Style = "success"
	StyleFailure   Style = "failure"
	StyleHighlight Style = "highlight"
	StyleScore     Style = "score"
)

type Quiz struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Result describes a finished session. Outcome is PhaseExhausted, PhaseFailed
// or PhaseAborted.
type Result struct {
	Score   int   `json:"score"`
	Asked   int   `json:"asked"`
	Total   int   `json:"total"`
	Outcome Phase `json:"outcome"`
}

func (r Result) Aborted() bool {
	return r.Outcome == PhaseAborted
}

package domain

import "time"

// SessionStatus is the lifecycle state of a discovery session.
// Every status other than running is terminal.
type SessionStatus string

const (
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
	SessionCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionFailed || s == SessionCancelled
}

// ScoringMode picks the quality formula applied to provider output.
type ScoringMode string

const (
	ScoringEnhanced ScoringMode = "enhanced"
	ScoringLegacy   ScoringMode = "legacy"
)

// SessionConfig is what a caller supplies to start a discovery run.
// Zero values are replaced with service defaults.
type SessionConfig struct {
	SessionType            string      `json:"sessionType" bson:"sessionType"`
	BatchSize              int         `json:"batchSize" bson:"batchSize"`
	MaxExercisesPerTerm    int         `json:"maxExercisesPerTerm" bson:"maxExercisesPerTerm"`
	MaxTerms               int         `json:"maxTerms,omitempty" bson:"maxTerms,omitempty"`
	TestMode               bool        `json:"testMode" bson:"testMode"`
	SportFilter            string      `json:"sportFilter,omitempty" bson:"sportFilter,omitempty"`
	FitnessComponentFilter string      `json:"fitnessComponentFilter,omitempty" bson:"fitnessComponentFilter,omitempty"`
	PurposeFilter          string      `json:"purposeFilter,omitempty" bson:"purposeFilter,omitempty"`
	IncludeVariations      bool        `json:"includeVariations,omitempty" bson:"includeVariations,omitempty"`
	PriorityOnly           bool        `json:"priorityOnly,omitempty" bson:"priorityOnly,omitempty"`
	QualityThreshold       int         `json:"qualityThreshold" bson:"qualityThreshold"`
	Scoring                ScoringMode `json:"scoring" bson:"scoring"`
}

type SessionProgress struct {
	CurrentBatch   int `json:"currentBatch" bson:"currentBatch"`
	TotalBatches   int `json:"totalBatches" bson:"totalBatches"`
	TermsProcessed int `json:"termsProcessed" bson:"termsProcessed"`
	TotalTerms     int `json:"totalTerms" bson:"totalTerms"`
	ExercisesFound int `json:"exercisesFound" bson:"exercisesFound"`
}

// SessionResults summarises a finished run. DuplicatesRemoved and BelowThreshold
// are counted by separate filtering stages.
type SessionResults struct {
	TotalExercises    int            `json:"totalExercises" bson:"totalExercises"`
	RawExercises      int            `json:"rawExercises" bson:"rawExercises"`
	DuplicatesRemoved int            `json:"duplicatesRemoved" bson:"duplicatesRemoved"`
	BelowThreshold    int            `json:"belowThreshold" bson:"belowThreshold"`
	AverageQuality    float64        `json:"averageQuality" bson:"averageQuality"`
	DurationMs        int64          `json:"durationMs" bson:"durationMs"`
	ByCategory        map[string]int `json:"byCategory,omitempty" bson:"byCategory,omitempty"`
	ByMethod          map[string]int `json:"byMethod,omitempty" bson:"byMethod,omitempty"`
}

type SessionError struct {
	Term      string    `json:"term" bson:"term"`
	Error     string    `json:"error" bson:"error"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Session is one discovery run.
type Session struct {
	SessionID   string          `json:"sessionId" bson:"_id"`
	Config      SessionConfig   `json:"config" bson:"config"`
	Status      SessionStatus   `json:"status" bson:"status"`
	Progress    SessionProgress `json:"progress" bson:"progress"`
	Results     *SessionResults `json:"results,omitempty" bson:"results,omitempty"`
	Errors      []SessionError  `json:"errors" bson:"errors"`
	StartedAt   time.Time       `json:"startedAt" bson:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Clone returns a deep copy safe to hand to readers.
func (s Session) Clone() Session {
	out := s
	if s.Results != nil {
		r := *s.Results
		r.ByCategory = cloneCounts(s.Results.ByCategory)
		r.ByMethod = cloneCounts(s.Results.ByMethod)
		out.Results = &r
	}
	out.Errors = make([]SessionError, len(s.Errors))
	copy(out.Errors, s.Errors)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

func cloneCounts(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

package job

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// ErrInvalidRequest marks submission validation failures. Errors carrying this
// marker are surfaced synchronously to the Submit caller.
var ErrInvalidRequest = errors.New("invalid download request")

// UnknownValue is the placeholder for speed and ETA before the first
// successful parse of a progress line.
const UnknownValue = "unknown"

// Request describes a download submission. AppID is treated as an opaque
// identifier of the content to fetch. Username and password must be supplied
// together; a guard code is only meaningful alongside both.
type Request struct {
	AppID           string
	Name            string
	Username        string
	Password        string
	GuardCode       string
	ValidateInstall bool
}

// Validate checks the request for submission errors.
func (r Request) Validate() error {
	appID := strings.TrimSpace(r.AppID)
	if appID == "" {
		return errors.New("app id is required")
	}
	for _, ch := range appID {
		if !unicode.IsDigit(ch) {
			return errors.New("app id must be numeric")
		}
	}
	hasUser := strings.TrimSpace(r.Username) != ""
	hasPass := r.Password != ""
	if hasUser != hasPass {
		return errors.New("username and password must be provided together")
	}
	if r.GuardCode != "" && !hasUser {
		return errors.New("guard code requires username and password")
	}
	return nil
}

// Anonymous reports whether the download runs without account credentials.
func (r Request) Anonymous() bool {
	return strings.TrimSpace(r.Username) == "" || r.Password == ""
}

// Job tracks one download through its lifecycle. All mutable fields are owned
// by the supervisor while the job is active and guarded by the scheduler lock.
type Job struct {
	ID        string
	AppID     string
	Name      string
	Anonymous bool
	Validate  bool

	Status      Status
	Progress    float64 // 0..100
	Speed       string
	ETA         string
	ErrorDetail string

	SubmittedAt time.Time
	StartedAt   time.Time
	TerminalAt  time.Time
}

// New creates a Queued job from a validated request. The assigned ID is
// stable for the job's lifetime and never reused.
func New(req Request) *Job {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "App " + strings.TrimSpace(req.AppID)
	}
	return &Job{
		ID:          uuid.NewString(),
		AppID:       strings.TrimSpace(req.AppID),
		Name:        name,
		Anonymous:   req.Anonymous(),
		Validate:    req.ValidateInstall,
		Status:      StatusQueued,
		Speed:       UnknownValue,
		ETA:         UnknownValue,
		SubmittedAt: time.Now(),
	}
}

// Clone returns a copy safe to hand to external consumers.
func (j *Job) Clone() Job {
	return *j
}

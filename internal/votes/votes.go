// Package votes records blind-comparison votes to the operational log.
//
// Recording is append-only: votes are never aggregated in process and do not
// alter the catalog's evaluation fields.
package votes

import (
	"context"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/StreamMUSE/streammuse/internal/metrics"
	"github.com/StreamMUSE/streammuse/pkg/logging"
)

// Request is the client payload of a vote.
type Request struct {
	AudioAID       string `json:"audio_a_id"`
	AudioBID       string `json:"audio_b_id"`
	Winner         string `json:"winner"`
	ComparisonType string `json:"comparison_type"`
	UserID         string `json:"user_id,omitempty"`
}

// Vote is a recorded comparison.
type Vote struct {
	ID             string   `json:"id"`
	AudioAID       string   `json:"audio_a_id"`
	AudioBID       string   `json:"audio_b_id"`
	Winner         string   `json:"winner"`
	ComparisonType string   `json:"comparison_type"`
	UserID         string   `json:"user_id,omitempty"`
	Timestamp      utc.Time `json:"timestamp"`
}

// Recorder writes votes to a logger.
type Recorder struct {
	logger *zerolog.Logger
	clock  func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the vote log.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(r *Recorder) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRecorder creates a Recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		logger: logging.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends one vote line and returns the stored vote. Field values
// are taken as given.
func (r *Recorder) Record(ctx context.Context, req Request) Vote {
	v := Vote{
		ID:             uuid.NewString(),
		AudioAID:       req.AudioAID,
		AudioBID:       req.AudioBID,
		Winner:         req.Winner,
		ComparisonType: req.ComparisonType,
		UserID:         req.UserID,
		Timestamp:      utc.New(r.clock()),
	}

	event := r.logger.Info().
		Str("vote_id", v.ID).
		Str("audio_a_id", v.AudioAID).
		Str("audio_b_id", v.AudioBID).
		Str("winner", v.Winner).
		Str("comparison_type", v.ComparisonType).
		Time("timestamp", v.Timestamp.Time)
	if v.UserID != "" {
		event = event.Str("user_id", v.UserID)
	}
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		event = event.Str("request_id", reqID)
	}
	event.Msg("New comparison result")

	metrics.VotesRecorded.Inc()
	return v
}

type requestIDKey struct{}

// WithRequestID tags votes recorded under ctx with a request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Transcript is one inbound IVR call transcript. Append-only per call;
// ingestion never edits an existing row.
type Transcript struct {
	ID              uuid.UUID
	LeadID          uuid.UUID
	CallDate        time.Time
	DurationSeconds int
	Transcript      string
	Sentiment       *string
	Intent          *string
	Entities        map[string]any
	CallerNumber    *string
	AgentID         *string
	RecordingURL    *string
	CreatedAt       time.Time
}

type AppendTranscriptParams struct {
	LeadID          uuid.UUID
	CallDate        time.Time
	DurationSeconds int
	Transcript      string
	Sentiment       *string
	Intent          *string
	Entities        map[string]any
	CallerNumber    *string
	AgentID         *string
	RecordingURL    *string
}

func (r *Repository) AppendTranscript(ctx context.Context, params AppendTranscriptParams) (Transcript, error) {
	entitiesJSON, err := json.Marshal(params.Entities)
	if err != nil {
		return Transcript{}, err
	}

	var transcript Transcript
	err = r.pool.QueryRow(ctx, `
		INSERT INTO ivr_transcripts (
			lead_id, call_date, duration_seconds, transcript, sentiment, intent,
			entities, caller_number, agent_id, recording_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, lead_id, call_date, duration_seconds, transcript, sentiment, intent,
			caller_number, agent_id, recording_url, created_at
	`,
		params.LeadID, params.CallDate, params.DurationSeconds, params.Transcript,
		params.Sentiment, params.Intent, entitiesJSON, params.CallerNumber,
		params.AgentID, params.RecordingURL,
	).Scan(
		&transcript.ID, &transcript.LeadID, &transcript.CallDate, &transcript.DurationSeconds,
		&transcript.Transcript, &transcript.Sentiment, &transcript.Intent,
		&transcript.CallerNumber, &transcript.AgentID, &transcript.RecordingURL,
		&transcript.CreatedAt,
	)
	if err != nil {
		return Transcript{}, err
	}

	transcript.Entities = params.Entities
	return transcript, nil
}

// ListTranscripts returns a lead's call transcripts, most recent call first.
func (r *Repository) ListTranscripts(ctx context.Context, leadID uuid.UUID) ([]Transcript, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, call_date, duration_seconds, transcript, sentiment, intent,
			entities, caller_number, agent_id, recording_url, created_at
		FROM ivr_transcripts
		WHERE lead_id = $1
		ORDER BY call_date DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transcripts := make([]Transcript, 0)
	for rows.Next() {
		var transcript Transcript
		var rawEntities []byte
		if err := rows.Scan(
			&transcript.ID, &transcript.LeadID, &transcript.CallDate, &transcript.DurationSeconds,
			&transcript.Transcript, &transcript.Sentiment, &transcript.Intent, &rawEntities,
			&transcript.CallerNumber, &transcript.AgentID, &transcript.RecordingURL,
			&transcript.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(rawEntities) > 0 {
			_ = json.Unmarshal(rawEntities, &transcript.Entities)
		}
		transcripts = append(transcripts, transcript)
	}
	return transcripts, rows.Err()
}

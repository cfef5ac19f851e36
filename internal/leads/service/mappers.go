package service

import (
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/internal/leads/transport"

	"github.com/google/uuid"
)

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:             lead.ID,
		Name:           lead.Name,
		Email:          lead.Email,
		Phone:          lead.Phone,
		Company:        lead.Company,
		Title:          lead.Title,
		Source:         transport.LeadSource(lead.Source),
		Urgency:        transport.Urgency(lead.Urgency),
		Status:         transport.LeadStatus(lead.Status),
		Score:          lead.Score,
		AssignedTo:     lead.AssignedTo,
		EstimatedValue: lead.EstimatedValue,
		CreatedAt:      lead.CreatedAt,
		UpdatedAt:      lead.UpdatedAt,
	}
}

func toActorRef(kind string, id *uuid.UUID) transport.ActorRef {
	return transport.ActorRef{Kind: transport.ActorRefKind(kind), ID: id}
}

func toScoreResponse(score repository.LeadScore) transport.LeadScoreResponse {
	var factors *transport.ScoreFactors
	if score.FactorUrgency != nil || score.FactorAccount != nil || score.FactorEngage != nil ||
		score.FactorCompany != nil || score.FactorIndustry != nil {
		factors = &transport.ScoreFactors{
			Urgency:     score.FactorUrgency,
			AccountType: score.FactorAccount,
			Engagement:  score.FactorEngage,
			CompanySize: score.FactorCompany,
			Industry:    score.FactorIndustry,
		}
	}

	return transport.LeadScoreResponse{
		ID:           score.ID,
		LeadID:       score.LeadID,
		Score:        score.Score,
		Factors:      factors,
		Confidence:   score.Confidence,
		CalculatedBy: toActorRef(score.CalculatedKind, score.CalculatedByID),
		Notes:        score.Notes,
		CreatedAt:    score.CreatedAt,
	}
}

func toActivityResponse(activity repository.LeadActivity) transport.LeadActivityResponse {
	return transport.LeadActivityResponse{
		ID:          activity.ID,
		LeadID:      activity.LeadID,
		Type:        transport.ActivityType(activity.Type),
		Action:      activity.Action,
		Details:     activity.Details,
		PerformedBy: toActorRef(activity.PerformedKind, activity.PerformedByID),
		Metadata:    activity.Metadata,
		CreatedAt:   activity.CreatedAt,
	}
}

func toTranscriptResponse(transcript repository.Transcript) transport.TranscriptResponse {
	var sentiment *transport.Sentiment
	if transcript.Sentiment != nil {
		value := transport.Sentiment(*transcript.Sentiment)
		sentiment = &value
	}

	return transport.TranscriptResponse{
		ID:              transcript.ID,
		LeadID:          transcript.LeadID,
		CallDate:        transcript.CallDate,
		DurationSeconds: transcript.DurationSeconds,
		Transcript:      transcript.Transcript,
		Sentiment:       sentiment,
		Intent:          transcript.Intent,
		Entities:        transcript.Entities,
		CallerNumber:    transcript.CallerNumber,
		AgentID:         transcript.AgentID,
		RecordingURL:    transcript.RecordingURL,
		CreatedAt:       transcript.CreatedAt,
	}
}

func toLeadResponses(leads []repository.Lead) []transport.LeadResponse {
	out := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, toLeadResponse(lead))
	}
	return out
}

func toScoreResponses(scores []repository.LeadScore) []transport.LeadScoreResponse {
	out := make([]transport.LeadScoreResponse, 0, len(scores))
	for _, score := range scores {
		out = append(out, toScoreResponse(score))
	}
	return out
}

func toActivityResponses(activities []repository.LeadActivity) []transport.LeadActivityResponse {
	out := make([]transport.LeadActivityResponse, 0, len(activities))
	for _, activity := range activities {
		out = append(out, toActivityResponse(activity))
	}
	return out
}

func toTranscriptResponses(transcripts []repository.Transcript) []transport.TranscriptResponse {
	out := make([]transport.TranscriptResponse, 0, len(transcripts))
	for _, transcript := range transcripts {
		out = append(out, toTranscriptResponse(transcript))
	}
	return out
}

// Package service orchestrates the public lead operations. Every method
// composes the caller's access scope exactly once, hands the scope to the
// repository, records mutations in the activity ledger, and publishes a
// domain event. Handlers above this layer never see roles or scopes.
package service

import (
	"context"
	"fmt"
	"strings"

	"leadcrm_backend/internal/access"
	"leadcrm_backend/internal/events"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/internal/leads/transport"
	"leadcrm_backend/platform/apperr"
	"leadcrm_backend/platform/logger"
	"leadcrm_backend/platform/phone"

	"github.com/google/uuid"
)

// recentActivityLimit caps the activity slice embedded in the detail view.
// Full history stays in the ledger; the detail endpoint is a dashboard view.
const recentActivityLimit = 50

// Store is the persistence surface the service depends on.
type Store interface {
	repository.LeadReader
	repository.LeadWriter
	repository.ScoreLedger
	repository.ActivityLedger
	repository.TranscriptLedger
	repository.StatsReader
}

// Config provides the pagination bounds.
type Config interface {
	GetDefaultPageSize() int
	GetMaxPageSize() int
}

type Service struct {
	store           Store
	composer        *access.Composer
	bus             events.Bus
	log             *logger.Logger
	defaultPageSize int
	maxPageSize     int
}

func New(store Store, composer *access.Composer, bus events.Bus, cfg Config, log *logger.Logger) *Service {
	return &Service{
		store:           store,
		composer:        composer,
		bus:             bus,
		log:             log,
		defaultPageSize: cfg.GetDefaultPageSize(),
		maxPageSize:     cfg.GetMaxPageSize(),
	}
}

// List returns the leads visible to the actor, filtered and paginated.
func (s *Service) List(ctx context.Context, actor access.Actor, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	scope := s.composer.Compose(actor)

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	leads, total, err := s.store.List(ctx, scope, repository.ListParams{
		Status:          (*string)(req.Status),
		Source:          (*string)(req.Source),
		Urgency:         (*string)(req.Urgency),
		MinScore:        req.MinScore,
		Search:          req.Search,
		IncludeArchived: req.IncludeArchived,
		Offset:          (page - 1) * limit,
		Limit:           limit,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	s.publishAccess(ctx, actor, "list", nil)

	return transport.LeadListResponse{
		Data: toLeadResponses(leads),
		Pagination: transport.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

// Stats returns dashboard aggregates over the actor's visible lead set.
func (s *Service) Stats(ctx context.Context, actor access.Actor) (transport.StatsResponse, error) {
	scope := s.composer.Compose(actor)

	stats, err := s.store.GetStats(ctx, scope)
	if err != nil {
		return transport.StatsResponse{}, err
	}

	s.publishAccess(ctx, actor, "stats", nil)

	return transport.StatsResponse{
		TotalLeads:          stats.TotalLeads,
		QualifiedLeads:      stats.QualifiedLeads,
		AvgScore:            stats.AvgScore,
		TotalEstimatedValue: stats.TotalEstimatedValue,
	}, nil
}

// Get returns a lead with its transcripts, score history, and recent
// activities. Missing and out-of-scope ids are the same NotFound.
func (s *Service) Get(ctx context.Context, actor access.Actor, leadID uuid.UUID) (transport.LeadDetailResponse, error) {
	scope := s.composer.Compose(actor)

	lead, err := s.store.GetByID(ctx, leadID, scope)
	if err != nil {
		return transport.LeadDetailResponse{}, mapRepoError(err)
	}

	transcripts, err := s.store.ListTranscripts(ctx, leadID)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}
	scores, err := s.store.ListScores(ctx, leadID)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}
	activities, err := s.store.ListRecentActivities(ctx, leadID, recentActivityLimit)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}

	s.publishAccess(ctx, actor, "get", &leadID)

	return transport.LeadDetailResponse{
		LeadResponse: toLeadResponse(lead),
		Transcripts:  toTranscriptResponses(transcripts),
		Scores:       toScoreResponses(scores),
		Activities:   toActivityResponses(activities),
	}, nil
}

// Create inserts a new lead. Creation has no target record to hide behind a
// NotFound, so actors without write visibility get an explicit Forbidden.
func (s *Service) Create(ctx context.Context, actor access.Actor, req transport.CreateLeadRequest) (transport.CreateLeadResponse, error) {
	if !s.composer.CanCreate(actor) {
		return transport.CreateLeadResponse{}, apperr.Forbidden("not allowed to create leads")
	}

	urgency := transport.UrgencyMedium
	if req.Urgency != nil {
		urgency = *req.Urgency
	}

	lead, err := s.store.Create(ctx, repository.CreateLeadParams{
		Name:           strings.TrimSpace(req.Name),
		Email:          optionalString(req.Email),
		Phone:          phone.NormalizeE164(req.Phone),
		Company:        optionalString(req.Company),
		Title:          optionalString(req.Title),
		Source:         string(req.Source),
		Urgency:        string(urgency),
		AssignedTo:     req.AssignedTo,
		EstimatedValue: req.EstimatedValue,
	})
	if err != nil {
		return transport.CreateLeadResponse{}, err
	}

	warning := s.recordActivity(ctx, "create", repository.AppendActivityParams{
		LeadID:        lead.ID,
		Type:          string(transport.ActivityCreated),
		Action:        "Lead created",
		Details:       optionalString(fmt.Sprintf("Created from source %s", lead.Source)),
		PerformedKind: string(transport.ActorKindUser),
		PerformedByID: &actor.ID,
	})

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		Source:     lead.Source,
		AssignedTo: lead.AssignedTo,
		CreatedBy:  actor.ID,
	})

	return transport.CreateLeadResponse{Data: toLeadResponse(lead), Warning: warning}, nil
}

// Update applies a partial patch to a lead visible to the actor.
func (s *Service) Update(ctx context.Context, actor access.Actor, leadID uuid.UUID, req transport.UpdateLeadRequest) (transport.UpdateLeadResponse, error) {
	scope := s.composer.Compose(actor)

	params := repository.UpdateLeadParams{
		Name:           req.Name,
		Email:          req.Email,
		Company:        req.Company,
		Title:          req.Title,
		Source:         (*string)(req.Source),
		Urgency:        (*string)(req.Urgency),
		Status:         (*string)(req.Status),
		AssignedTo:     req.AssignedTo.Value,
		AssignedToSet:  req.AssignedTo.Set,
		EstimatedValue: req.EstimatedValue,
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}

	lead, err := s.store.Update(ctx, leadID, scope, params)
	if err != nil {
		return transport.UpdateLeadResponse{}, mapRepoError(err)
	}

	activityType, action := updateActivity(req)
	warning := s.recordActivity(ctx, "update", repository.AppendActivityParams{
		LeadID:        lead.ID,
		Type:          string(activityType),
		Action:        action,
		Details:       optionalString(changedFieldsSummary(req)),
		PerformedKind: string(transport.ActorKindUser),
		PerformedByID: &actor.ID,
	})

	s.bus.Publish(ctx, events.LeadUpdated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		UpdatedBy: actor.ID,
	})

	return transport.UpdateLeadResponse{Data: toLeadResponse(lead), Warning: warning}, nil
}

// AppendScore records a new score snapshot and updates the lead's current
// score atomically. Scores outside [0,100] are rejected before any write.
func (s *Service) AppendScore(ctx context.Context, actor access.Actor, leadID uuid.UUID, req transport.AppendScoreRequest) (transport.AppendScoreResponse, error) {
	if req.Score < 0 || req.Score > 100 {
		return transport.AppendScoreResponse{}, apperr.Validation("score must be between 0 and 100")
	}

	scope := s.composer.Compose(actor)

	params := repository.AppendScoreParams{
		Score:          req.Score,
		Confidence:     req.Confidence,
		CalculatedKind: string(transport.ActorKindUser),
		CalculatedByID: &actor.ID,
		Notes:          optionalString(req.Notes),
	}
	if req.Factors != nil {
		params.FactorUrgency = req.Factors.Urgency
		params.FactorAccount = req.Factors.AccountType
		params.FactorEngage = req.Factors.Engagement
		params.FactorCompany = req.Factors.CompanySize
		params.FactorIndustry = req.Factors.Industry
	}

	score, err := s.store.AppendScore(ctx, leadID, scope, params)
	if err != nil {
		return transport.AppendScoreResponse{}, mapRepoError(err)
	}

	warning := s.recordActivity(ctx, "score", repository.AppendActivityParams{
		LeadID:        leadID,
		Type:          string(transport.ActivityScoreUpdate),
		Action:        fmt.Sprintf("Score set to %d", score.Score),
		PerformedKind: string(transport.ActorKindUser),
		PerformedByID: &actor.ID,
		Metadata:      map[string]any{"scoreId": score.ID.String(), "score": score.Score},
	})

	s.bus.Publish(ctx, events.LeadScored{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		ScoreID:   score.ID,
		Score:     score.Score,
	})

	return transport.AppendScoreResponse{Data: toScoreResponse(score), Warning: warning}, nil
}

// Archive logically deletes a lead. The row is kept and stays reachable by
// id; default list views stop returning it.
func (s *Service) Archive(ctx context.Context, actor access.Actor, leadID uuid.UUID) (transport.ArchiveLeadResponse, error) {
	scope := s.composer.Compose(actor)

	lead, err := s.store.Archive(ctx, leadID, scope, string(transport.ArchivedStatus))
	if err != nil {
		return transport.ArchiveLeadResponse{}, mapRepoError(err)
	}

	warning := s.recordActivity(ctx, "archive", repository.AppendActivityParams{
		LeadID:        lead.ID,
		Type:          string(transport.ActivityArchive),
		Action:        "Lead archived",
		Details:       optionalString("Status set to " + string(transport.ArchivedStatus)),
		PerformedKind: string(transport.ActorKindUser),
		PerformedByID: &actor.ID,
	})

	s.bus.Publish(ctx, events.LeadArchived{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		ArchivedBy: actor.ID,
	})

	return transport.ArchiveLeadResponse{
		Message: "lead archived",
		Data:    toLeadResponse(lead),
		Warning: warning,
	}, nil
}

// AttachTranscript ingests an IVR call transcript for a lead visible to the
// actor. The activity entry carries the system sentinel: the transcript
// originates from the call platform, not from the authenticated operator.
func (s *Service) AttachTranscript(ctx context.Context, actor access.Actor, leadID uuid.UUID, req transport.AttachTranscriptRequest) (transport.AttachTranscriptResponse, error) {
	scope := s.composer.Compose(actor)

	if _, err := s.store.GetByID(ctx, leadID, scope); err != nil {
		return transport.AttachTranscriptResponse{}, mapRepoError(err)
	}

	transcript, err := s.store.AppendTranscript(ctx, repository.AppendTranscriptParams{
		LeadID:          leadID,
		CallDate:        req.CallDate,
		DurationSeconds: req.DurationSeconds,
		Transcript:      req.Transcript,
		Sentiment:       (*string)(req.Sentiment),
		Intent:          optionalString(req.Intent),
		Entities:        req.Entities,
		CallerNumber:    optionalString(req.CallerNumber),
		AgentID:         optionalString(req.AgentID),
		RecordingURL:    optionalString(req.RecordingURL),
	})
	if err != nil {
		return transport.AttachTranscriptResponse{}, err
	}

	metadata := map[string]any{"transcriptId": transcript.ID.String()}
	if req.Sentiment != nil {
		metadata["sentiment"] = string(*req.Sentiment)
	}
	warning := s.recordActivity(ctx, "transcript", repository.AppendActivityParams{
		LeadID:        leadID,
		Type:          string(transport.ActivityIVRCall),
		Action:        "IVR call transcript attached",
		Details:       optionalString(fmt.Sprintf("Call on %s, %d seconds", req.CallDate.Format("2006-01-02"), req.DurationSeconds)),
		PerformedKind: string(transport.ActorKindSystem),
		Metadata:      metadata,
	})

	s.bus.Publish(ctx, events.TranscriptAttached{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       leadID,
		TranscriptID: transcript.ID,
		CallDate:     transcript.CallDate,
	})

	return transport.AttachTranscriptResponse{Data: toTranscriptResponse(transcript), Warning: warning}, nil
}

// AddActivity records a manual activity entry (note, call log, email log)
// against a lead visible to the actor.
func (s *Service) AddActivity(ctx context.Context, actor access.Actor, leadID uuid.UUID, req transport.AddActivityRequest) (transport.AddActivityResponse, error) {
	scope := s.composer.Compose(actor)

	if _, err := s.store.GetByID(ctx, leadID, scope); err != nil {
		return transport.AddActivityResponse{}, mapRepoError(err)
	}

	activity, err := s.store.AppendActivity(ctx, repository.AppendActivityParams{
		LeadID:        leadID,
		Type:          string(req.Type),
		Action:        req.Action,
		Details:       optionalString(req.Details),
		PerformedKind: string(transport.ActorKindUser),
		PerformedByID: &actor.ID,
		Metadata:      req.Metadata,
	})
	if err != nil {
		return transport.AddActivityResponse{}, err
	}

	return transport.AddActivityResponse{Data: toActivityResponse(activity)}, nil
}

// recordActivity appends a ledger entry for a mutation that already
// committed. Failure degrades the response to carry a warning; it never
// rolls the mutation back.
func (s *Service) recordActivity(ctx context.Context, operation string, params repository.AppendActivityParams) string {
	if _, err := s.store.AppendActivity(ctx, params); err != nil {
		s.log.AuditDegraded(operation, params.LeadID.String(), err)
		return transport.WarningAuditDegraded
	}
	return ""
}

func (s *Service) publishAccess(ctx context.Context, actor access.Actor, action string, leadID *uuid.UUID) {
	s.bus.Publish(ctx, events.LeadAccessed{
		BaseEvent: events.NewBaseEvent(),
		ActorID:   actor.ID,
		Action:    action,
		LeadID:    leadID,
	})
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if repository.IsNotFound(err) {
		return apperr.NotFound("lead not found")
	}
	return err
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// updateActivity picks the ledger entry type for a patch. Status changes and
// reassignments dominate generic field edits.
func updateActivity(req transport.UpdateLeadRequest) (transport.ActivityType, string) {
	switch {
	case req.Status != nil:
		return transport.ActivityStatusChange, "Status changed to " + string(*req.Status)
	case req.AssignedTo.Set && req.AssignedTo.Value != nil:
		return transport.ActivityAssignment, "Lead assigned"
	case req.AssignedTo.Set:
		return transport.ActivityAssignment, "Lead unassigned"
	default:
		return transport.ActivityNote, "Lead updated"
	}
}

func changedFieldsSummary(req transport.UpdateLeadRequest) string {
	fields := make([]string, 0, 10)
	appendIf := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	appendIf(req.Name != nil, "name")
	appendIf(req.Email != nil, "email")
	appendIf(req.Phone != nil, "phone")
	appendIf(req.Company != nil, "company")
	appendIf(req.Title != nil, "title")
	appendIf(req.Source != nil, "source")
	appendIf(req.Urgency != nil, "urgency")
	appendIf(req.Status != nil, "status")
	appendIf(req.AssignedTo.Set, "assignedTo")
	appendIf(req.EstimatedValue != nil, "estimatedValue")
	if len(fields) == 0 {
		return ""
	}
	return "Changed: " + strings.Join(fields, ", ")
}

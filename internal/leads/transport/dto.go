package transport

import (
	"time"

	"github.com/google/uuid"
)

// Enum values
type LeadSource string

const (
	LeadSourceIVR      LeadSource = "IVR"
	LeadSourceWebForm  LeadSource = "WEB_FORM"
	LeadSourceReferral LeadSource = "REFERRAL"
	LeadSourceOutbound LeadSource = "OUTBOUND"
	LeadSourceOther    LeadSource = "OTHER"
)

type Urgency string

const (
	UrgencyLow      Urgency = "LOW"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyCritical Urgency = "CRITICAL"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "NEW"
	LeadStatusContacted   LeadStatus = "CONTACTED"
	LeadStatusQualified   LeadStatus = "QUALIFIED"
	LeadStatusProposal    LeadStatus = "PROPOSAL"
	LeadStatusNegotiation LeadStatus = "NEGOTIATION"
	LeadStatusClosedWon   LeadStatus = "CLOSED_WON"
	LeadStatusClosedLost  LeadStatus = "CLOSED_LOST"
)

// ArchivedStatus is the terminal status applied by DELETE /leads/:id.
// The row is retained for audit; no transition graph is enforced beyond
// membership in the enumeration.
const ArchivedStatus = LeadStatusClosedLost

type ActivityType string

const (
	ActivityNote         ActivityType = "NOTE"
	ActivityCall         ActivityType = "CALL"
	ActivityEmail        ActivityType = "EMAIL"
	ActivityScoreUpdate  ActivityType = "SCORE_UPDATE"
	ActivityStatusChange ActivityType = "STATUS_CHANGE"
	ActivityAssignment   ActivityType = "ASSIGNMENT"
	ActivityArchive      ActivityType = "ARCHIVE"
	ActivityIVRCall      ActivityType = "IVR_CALL"
	ActivityCreated      ActivityType = "CREATED"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// ActorRefKind distinguishes human actors from system-originated actions.
type ActorRefKind string

const (
	ActorKindUser   ActorRefKind = "user"
	ActorKindSystem ActorRefKind = "system"
)

// ActorRef identifies who performed an action. System actions (automated
// scoring, IVR ingestion) carry no user id.
type ActorRef struct {
	Kind ActorRefKind `json:"kind"`
	ID   *uuid.UUID   `json:"id,omitempty"`
}

// UserRef builds a human performer reference.
func UserRef(id uuid.UUID) ActorRef {
	return ActorRef{Kind: ActorKindUser, ID: &id}
}

// SystemRef builds the system performer sentinel.
func SystemRef() ActorRef {
	return ActorRef{Kind: ActorKindSystem}
}

// Request DTOs

type CreateLeadRequest struct {
	Name           string     `json:"name" validate:"required,min=1,max=200"`
	Email          string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string     `json:"phone" validate:"required,min=5,max=20"`
	Company        string     `json:"company,omitempty" validate:"max=200"`
	Title          string     `json:"title,omitempty" validate:"max=200"`
	Source         LeadSource `json:"source" validate:"required,oneof=IVR WEB_FORM REFERRAL OUTBOUND OTHER"`
	Urgency        *Urgency   `json:"urgency,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssignedTo     *uuid.UUID `json:"assignedTo,omitempty"`
	EstimatedValue *float64   `json:"estimatedValue,omitempty" validate:"omitempty,gte=0"`
}

type UpdateLeadRequest struct {
	Name           *string      `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email          *string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string      `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Company        *string      `json:"company,omitempty" validate:"omitempty,max=200"`
	Title          *string      `json:"title,omitempty" validate:"omitempty,max=200"`
	Source         *LeadSource  `json:"source,omitempty" validate:"omitempty,oneof=IVR WEB_FORM REFERRAL OUTBOUND OTHER"`
	Urgency        *Urgency     `json:"urgency,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status         *LeadStatus  `json:"status,omitempty" validate:"omitempty,oneof=NEW CONTACTED QUALIFIED PROPOSAL NEGOTIATION CLOSED_WON CLOSED_LOST"`
	AssignedTo     OptionalUUID `json:"assignedTo,omitempty" validate:"-"`
	EstimatedValue *float64     `json:"estimatedValue,omitempty" validate:"omitempty,gte=0"`
}

type AppendScoreRequest struct {
	Score      int           `json:"score"`
	Factors    *ScoreFactors `json:"factors,omitempty"`
	Confidence *float64      `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	Notes      string        `json:"notes,omitempty" validate:"max=2000"`
}

// ScoreFactors is the optional weighted breakdown behind a score snapshot.
// Each contribution is independent; the schema imposes no relation between
// them and the total.
type ScoreFactors struct {
	Urgency     *float64 `json:"urgency,omitempty"`
	AccountType *float64 `json:"accountType,omitempty"`
	Engagement  *float64 `json:"engagement,omitempty"`
	CompanySize *float64 `json:"companySize,omitempty"`
	Industry    *float64 `json:"industry,omitempty"`
}

type AttachTranscriptRequest struct {
	CallDate        time.Time      `json:"callDate" validate:"required"`
	DurationSeconds int            `json:"durationSeconds" validate:"gte=0"`
	Transcript      string         `json:"transcript" validate:"required"`
	Sentiment       *Sentiment     `json:"sentiment,omitempty" validate:"omitempty,oneof=POSITIVE NEUTRAL NEGATIVE"`
	Intent          string         `json:"intent,omitempty" validate:"max=500"`
	Entities        map[string]any `json:"entities,omitempty"`
	CallerNumber    string         `json:"callerNumber,omitempty" validate:"max=20"`
	AgentID         string         `json:"agentId,omitempty" validate:"max=100"`
	RecordingURL    string         `json:"recordingUrl,omitempty" validate:"omitempty,url"`
}

type AddActivityRequest struct {
	Type     ActivityType   `json:"type" validate:"required,oneof=NOTE CALL EMAIL STATUS_CHANGE ASSIGNMENT"`
	Action   string         `json:"action" validate:"required,min=1,max=200"`
	Details  string         `json:"details,omitempty" validate:"max=4000"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type ListLeadsRequest struct {
	Status          *LeadStatus `form:"status" validate:"omitempty,oneof=NEW CONTACTED QUALIFIED PROPOSAL NEGOTIATION CLOSED_WON CLOSED_LOST"`
	Source          *LeadSource `form:"source" validate:"omitempty,oneof=IVR WEB_FORM REFERRAL OUTBOUND OTHER"`
	Urgency         *Urgency    `form:"urgency" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	MinScore        *int        `form:"minScore" validate:"omitempty,gte=0,lte=100"`
	Search          string      `form:"search" validate:"max=100"`
	IncludeArchived bool        `form:"includeArchived"`
	Page            int         `form:"page" validate:"omitempty,min=1"`
	Limit           int         `form:"limit" validate:"omitempty,min=1"`
}

// Response DTOs

type LeadResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          *string    `json:"email,omitempty"`
	Phone          string     `json:"phone"`
	Company        *string    `json:"company,omitempty"`
	Title          *string    `json:"title,omitempty"`
	Source         LeadSource `json:"source"`
	Urgency        Urgency    `json:"urgency"`
	Status         LeadStatus `json:"status"`
	Score          *int       `json:"score"`
	AssignedTo     *uuid.UUID `json:"assignedTo,omitempty"`
	EstimatedValue *float64   `json:"estimatedValue,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type LeadScoreResponse struct {
	ID           uuid.UUID     `json:"id"`
	LeadID       uuid.UUID     `json:"leadId"`
	Score        int           `json:"score"`
	Factors      *ScoreFactors `json:"factors,omitempty"`
	Confidence   *float64      `json:"confidence,omitempty"`
	CalculatedBy ActorRef      `json:"calculatedBy"`
	Notes        *string       `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type LeadActivityResponse struct {
	ID          uuid.UUID      `json:"id"`
	LeadID      uuid.UUID      `json:"leadId"`
	Type        ActivityType   `json:"type"`
	Action      string         `json:"action"`
	Details     *string        `json:"details,omitempty"`
	PerformedBy ActorRef       `json:"performedBy"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type TranscriptResponse struct {
	ID              uuid.UUID      `json:"id"`
	LeadID          uuid.UUID      `json:"leadId"`
	CallDate        time.Time      `json:"callDate"`
	DurationSeconds int            `json:"durationSeconds"`
	Transcript      string         `json:"transcript"`
	Sentiment       *Sentiment     `json:"sentiment,omitempty"`
	Intent          *string        `json:"intent,omitempty"`
	Entities        map[string]any `json:"entities,omitempty"`
	CallerNumber    *string        `json:"callerNumber,omitempty"`
	AgentID         *string        `json:"agentId,omitempty"`
	RecordingURL    *string        `json:"recordingUrl,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

type LeadDetailResponse struct {
	LeadResponse
	Transcripts []TranscriptResponse   `json:"ivrTranscripts"`
	Scores      []LeadScoreResponse    `json:"scores"`
	Activities  []LeadActivityResponse `json:"activities"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type LeadListResponse struct {
	Data       []LeadResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type StatsResponse struct {
	TotalLeads          int     `json:"totalLeads"`
	QualifiedLeads      int     `json:"qualifiedLeads"`
	AvgScore            int     `json:"avgScore"`
	TotalEstimatedValue float64 `json:"totalEstimatedValue"`
}

// WarningAuditDegraded is set on mutation responses whose primary write
// committed but whose activity-log append failed.
const WarningAuditDegraded = "activity log entry could not be recorded"

type CreateLeadResponse struct {
	Data    LeadResponse `json:"data"`
	Warning string       `json:"warning,omitempty"`
}

type UpdateLeadResponse struct {
	Data    LeadResponse `json:"data"`
	Warning string       `json:"warning,omitempty"`
}

type AppendScoreResponse struct {
	Data    LeadScoreResponse `json:"data"`
	Warning string            `json:"warning,omitempty"`
}

type AttachTranscriptResponse struct {
	Data    TranscriptResponse `json:"data"`
	Warning string             `json:"warning,omitempty"`
}

type AddActivityResponse struct {
	Data LeadActivityResponse `json:"data"`
}

type ArchiveLeadResponse struct {
	Message string       `json:"message"`
	Data    LeadResponse `json:"data"`
	Warning string       `json:"warning,omitempty"`
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/opencollect/collect-api/internal/config"
	"github.com/opencollect/collect-api/internal/modules/model"
	"github.com/opencollect/collect-api/internal/modules/repo"
	"github.com/opencollect/collect-api/internal/pkg/depositproof"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventPublisher is satisfied by mq.Publisher; nil disables event emission.
type EventPublisher interface {
	PublishJSON(ctx context.Context, exchange, routingKey string, body any) error
}

// ProofArchiver is satisfied by blob.S3Deps; nil disables archiving.
type ProofArchiver interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// StateDataDTO is the wire shape of a state snapshot.
type StateDataDTO struct {
	State       string `json:"state"`
	Date        int64  `json:"date"`
	CurrentPage string `json:"currentPage"`
}

// SurveyUnitProjection is the full wire projection of a survey unit. The id
// is omitted from single-unit reads so the identifier the caller already
// holds is not echoed back; listings keep it.
type SurveyUnitProjection struct {
	ID              string          `json:"id,omitempty"`
	QuestionnaireID string          `json:"questionnaireId"`
	Personalization json.RawMessage `json:"personalization" swaggertype:"object"`
	Data            json.RawMessage `json:"data" swaggertype:"object"`
	Comment         json.RawMessage `json:"comment" swaggertype:"object"`
	StateData       *StateDataDTO   `json:"stateData"`
}

// ReducedProjection is the id-and-questionnaire-only listing shape served to
// guests and when the integration override is set.
type ReducedProjection struct {
	ID              string `json:"id"`
	QuestionnaireID string `json:"questionnaireId"`
}

// CampaignListing is a tagged variant: exactly one of Full or Reduced is set,
// and the handler renders whichever it received.
type CampaignListing struct {
	Full    []SurveyUnitProjection
	Reduced []ReducedProjection
}

// SurveyUnitSummary is the operational full-scan shape.
type SurveyUnitSummary struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaignId"`
}

// StateDataInput distinguishes absent fields from zero values; a snapshot is
// only persisted when state and date are both present.
type StateDataInput struct {
	State       *string `json:"state"`
	CurrentPage *string `json:"currentPage"`
	Date        *int64  `json:"date"`
}

// CreateSurveyUnitInput is the creation payload.
type CreateSurveyUnitInput struct {
	ID              string          `json:"id" binding:"required"`
	QuestionnaireID string          `json:"questionnaireId" binding:"required"`
	Data            json.RawMessage `json:"data" swaggertype:"object"`
	Comment         json.RawMessage `json:"comment" swaggertype:"object"`
	Personalization json.RawMessage `json:"personalization" swaggertype:"object"`
	StateData       *StateDataInput `json:"stateData"`
}

// DepositProof is a rendered proof document plus its download filename.
type DepositProof struct {
	Filename string
	Content  []byte
}

// StateChangedEvent is published when a state write lands a terminal state.
type StateChangedEvent struct {
	SurveyUnitID string `json:"survey_unit_id"`
	CampaignID   string `json:"campaign_id"`
	State        string `json:"state"`
	Date         int64  `json:"date"`
}

type SurveyUnitService interface {
	Get(ctx context.Context, caller *model.Caller, id string) (*SurveyUnitProjection, error)
	Update(ctx context.Context, caller *model.Caller, id string, body []byte) error
	ListByCampaign(ctx context.Context, caller *model.Caller, campaignID string) (*CampaignListing, error)
	Create(ctx context.Context, campaignID string, in CreateSurveyUnitInput) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]SurveyUnitSummary, error)
	GenerateDepositProof(ctx context.Context, caller *model.Caller, id string) (*DepositProof, error)
}

type surveyUnitService struct {
	units     repo.SurveyUnitRepo
	campaigns repo.CampaignRepo
	store     repo.SurveyUnitStore
	gate      AccessGate
	renderer  depositproof.Renderer
	publisher EventPublisher
	archiver  ProofArchiver
	cfg       *config.Config
	log       *zap.Logger
}

func NewSurveyUnitService(
	units repo.SurveyUnitRepo,
	campaigns repo.CampaignRepo,
	store repo.SurveyUnitStore,
	gate AccessGate,
	renderer depositproof.Renderer,
	publisher EventPublisher,
	archiver ProofArchiver,
	cfg *config.Config,
	log *zap.Logger,
) SurveyUnitService {
	return &surveyUnitService{
		units:     units,
		campaigns: campaigns,
		store:     store,
		gate:      gate,
		renderer:  renderer,
		publisher: publisher,
		archiver:  archiver,
		cfg:       cfg,
		log:       log,
	}
}

func projectionOf(su *model.SurveyUnit, withID bool) SurveyUnitProjection {
	p := SurveyUnitProjection{
		QuestionnaireID: su.QuestionnaireModelID,
	}
	if withID {
		p.ID = su.ID
	}
	if su.Data != nil {
		p.Data = json.RawMessage(su.Data.Value)
	}
	if su.Comment != nil {
		p.Comment = json.RawMessage(su.Comment.Value)
	}
	if su.Personalization != nil {
		p.Personalization = json.RawMessage(su.Personalization.Value)
	}
	if su.StateData != nil {
		p.StateData = &StateDataDTO{
			State:       su.StateData.State,
			Date:        su.StateData.Date,
			CurrentPage: su.StateData.CurrentPage,
		}
	}
	return p
}

func (s *surveyUnitService) Get(ctx context.Context, caller *model.Caller, id string) (*SurveyUnitProjection, error) {
	su, err := s.units.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load survey unit: %w", err)
	}
	if err := s.gate.CheckRead(ctx, caller, id); err != nil {
		return nil, err
	}
	p := projectionOf(su, false)
	return &p, nil
}

type updatePayload struct {
	Data            json.RawMessage `json:"data"`
	Comment         json.RawMessage `json:"comment"`
	Personalization json.RawMessage `json:"personalization"`
	StateData       json.RawMessage `json:"stateData"`
}

// Update applies a partial update: each top-level key present in the payload
// triggers exactly one storage write, absent keys are left untouched. Last
// writer wins, there is no concurrency check.
func (s *surveyUnitService) Update(ctx context.Context, caller *model.Caller, id string, body []byte) error {
	if err := s.gate.CheckWrite(ctx, caller, id); err != nil {
		return err
	}

	su, err := s.units.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load survey unit: %w", err)
	}

	var payload updatePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	for _, blob := range []struct {
		table repo.JSONTable
		value json.RawMessage
	}{
		{repo.TableData, payload.Data},
		{repo.TableComment, payload.Comment},
		{repo.TablePersonalization, payload.Personalization},
	} {
		if blob.value == nil {
			continue
		}
		if err := s.store.UpdateValue(ctx, blob.table, id, blob.value); err != nil {
			return fmt.Errorf("update %s: %w", blob.table, err)
		}
	}

	if payload.StateData != nil {
		if err := s.updateStateData(ctx, su, payload.StateData); err != nil {
			return err
		}
	}
	return nil
}

func (s *surveyUnitService) updateStateData(ctx context.Context, su *model.SurveyUnit, raw json.RawMessage) error {
	var in StateDataInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	// an incomplete snapshot is skipped, matching the legacy collection
	// clients that send state data incrementally
	if in.State == nil || in.CurrentPage == nil || in.Date == nil {
		s.log.Warn("incomplete state data payload, skipping state write",
			zap.String("survey_unit_id", su.ID))
		return nil
	}

	write := repo.StateDataWrite{State: *in.State, CurrentPage: *in.CurrentPage, Date: *in.Date}
	if err := s.store.UpsertStateData(ctx, su.ID, write); err != nil {
		return fmt.Errorf("upsert state data: %w", err)
	}

	if model.IsTerminalState(write.State) && s.publisher != nil {
		event := StateChangedEvent{
			SurveyUnitID: su.ID,
			CampaignID:   su.CampaignID,
			State:        write.State,
			Date:         write.Date,
		}
		if err := s.publisher.PublishJSON(ctx, s.cfg.RabbitMQ.Exchange, s.cfg.RabbitMQ.RoutingKeyState, event); err != nil {
			s.log.Error("failed to publish state change event",
				zap.Error(err),
				zap.String("survey_unit_id", su.ID),
				zap.String("state", write.State))
		}
	}
	return nil
}

func (s *surveyUnitService) ListByCampaign(ctx context.Context, caller *model.Caller, campaignID string) (*CampaignListing, error) {
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load campaign: %w", err)
	}

	units, err := s.units.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list survey units: %w", err)
	}

	if caller.IsGuest() || s.cfg.Pilotage.IntegrationOverride {
		reduced := make([]ReducedProjection, 0, len(units))
		for _, su := range units {
			reduced = append(reduced, ReducedProjection{ID: su.ID, QuestionnaireID: su.QuestionnaireModelID})
		}
		if len(reduced) == 0 {
			return nil, ErrNotFound
		}
		return &CampaignListing{Reduced: reduced}, nil
	}

	full := make([]SurveyUnitProjection, 0, len(units))
	for i := range units {
		su := &units[i]
		err := s.gate.CheckRead(ctx, caller, su.ID)
		switch {
		case err == nil:
			full = append(full, projectionOf(su, true))
		case errors.Is(err, ErrForbidden):
			// not habilitated for this unit, keep going
		default:
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	}
	if len(full) == 0 {
		return nil, ErrNotFound
	}
	return &CampaignListing{Full: full}, nil
}

// Create is only permitted outside the production profile; it upserts the
// parent row and inserts fresh sub-rows in one transaction.
func (s *surveyUnitService) Create(ctx context.Context, campaignID string, in CreateSurveyUnitInput) error {
	if !s.cfg.CreationAllowed() {
		return ErrNotFound
	}

	create := repo.CreateSurveyUnit{
		ID:              in.ID,
		QuestionnaireID: in.QuestionnaireID,
		Data:            in.Data,
		Comment:         in.Comment,
		Personalization: in.Personalization,
	}
	if sd := in.StateData; sd != nil && sd.State != nil && sd.Date != nil {
		write := repo.StateDataWrite{State: *sd.State, Date: *sd.Date}
		if sd.CurrentPage != nil {
			write.CurrentPage = *sd.CurrentPage
		}
		create.StateData = &write
	}

	if err := s.store.Insert(ctx, campaignID, create); err != nil {
		return fmt.Errorf("insert survey unit: %w", err)
	}
	return nil
}

func (s *surveyUnitService) Delete(ctx context.Context, id string) error {
	if _, err := s.units.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load survey unit: %w", err)
	}
	if err := s.units.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete survey unit: %w", err)
	}
	return nil
}

func (s *surveyUnitService) ListAll(ctx context.Context) ([]SurveyUnitSummary, error) {
	units, err := s.units.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list survey units: %w", err)
	}
	out := make([]SurveyUnitSummary, 0, len(units))
	for _, su := range units {
		out = append(out, SurveyUnitSummary{ID: su.ID, CampaignID: su.CampaignID})
	}
	return out, nil
}

// GenerateDepositProof renders the proof for a unit that has saved state.
// The rendered document is archived best effort when a bucket is configured.
func (s *surveyUnitService) GenerateDepositProof(ctx context.Context, caller *model.Caller, id string) (*DepositProof, error) {
	su, err := s.units.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load survey unit: %w", err)
	}
	if err := s.gate.CheckRead(ctx, caller, id); err != nil {
		return nil, err
	}
	if su.StateData == nil {
		return nil, ErrNotFound
	}

	content, err := s.renderer.Render(ctx, depositproof.Document{
		CampaignID:   su.CampaignID,
		SurveyUnitID: su.ID,
		UserID:       caller.ID,
		State:        su.StateData.State,
		Date:         time.UnixMilli(su.StateData.Date),
	})
	if err != nil {
		return nil, fmt.Errorf("render deposit proof: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.fo", su.CampaignID, caller.ID)

	if s.archiver != nil {
		if err := s.archiver.Put(ctx, "deposit-proofs/"+filename, content, "application/xml"); err != nil {
			s.log.Error("failed to archive deposit proof",
				zap.Error(err), zap.String("survey_unit_id", id))
		}
	}

	return &DepositProof{Filename: filename, Content: content}, nil
}

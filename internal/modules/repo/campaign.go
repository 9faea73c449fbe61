package repo

import (
	"context"

	"github.com/opencollect/collect-api/internal/modules/model"
	"gorm.io/gorm"
)

type CampaignRepo interface {
	GetByID(ctx context.Context, id string) (*model.Campaign, error)
	List(ctx context.Context) ([]CampaignSummary, error)
}

// CampaignSummary is a campaign with the ids of its questionnaire models.
type CampaignSummary struct {
	ID               string   `json:"id"`
	QuestionnaireIDs []string `json:"questionnaireIds"`
}

type campaignRepo struct{ db *gorm.DB }

func NewCampaignRepo(db *gorm.DB) CampaignRepo {
	return &campaignRepo{db: db}
}

func (r *campaignRepo) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	var c model.Campaign
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *campaignRepo) List(ctx context.Context) ([]CampaignSummary, error) {
	var campaigns []model.Campaign
	err := r.db.WithContext(ctx).
		Preload("QuestionnaireModels").
		Order("id ASC").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}

	out := make([]CampaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		s := CampaignSummary{ID: c.ID, QuestionnaireIDs: make([]string, 0, len(c.QuestionnaireModels))}
		for _, qm := range c.QuestionnaireModels {
			s.QuestionnaireIDs = append(s.QuestionnaireIDs, qm.ID)
		}
		out = append(out, s)
	}
	return out, nil
}

package repo

import (
	"context"

	"github.com/opencollect/collect-api/internal/modules/model"
	"gorm.io/gorm"
)

// SurveyUnitRepo is the read side of the survey-unit aggregate. Lookups
// reconstruct the unit together with its four optional blobs; a missing unit
// surfaces as gorm.ErrRecordNotFound, never a nil placeholder.
type SurveyUnitRepo interface {
	GetByID(ctx context.Context, id string) (*model.SurveyUnit, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]model.SurveyUnit, error)
	ListAll(ctx context.Context) ([]model.SurveyUnit, error)
	Delete(ctx context.Context, id string) error
}

type surveyUnitRepo struct{ db *gorm.DB }

func NewSurveyUnitRepo(db *gorm.DB) SurveyUnitRepo {
	return &surveyUnitRepo{db: db}
}

func (r *surveyUnitRepo) withBlobs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Data").
		Preload("Comment").
		Preload("Personalization").
		Preload("StateData")
}

func (r *surveyUnitRepo) GetByID(ctx context.Context, id string) (*model.SurveyUnit, error) {
	var su model.SurveyUnit
	if err := r.withBlobs(ctx).First(&su, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &su, nil
}

func (r *surveyUnitRepo) ListByCampaign(ctx context.Context, campaignID string) ([]model.SurveyUnit, error) {
	var units []model.SurveyUnit
	err := r.withBlobs(ctx).
		Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&units).Error
	return units, err
}

func (r *surveyUnitRepo) ListAll(ctx context.Context) ([]model.SurveyUnit, error) {
	var units []model.SurveyUnit
	err := r.db.WithContext(ctx).Order("id ASC").Find(&units).Error
	return units, err
}

// Delete removes the aggregate and all four sub-records in one transaction.
func (r *surveyUnitRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&model.Data{}, &model.Comment{}, &model.Personalization{}, &model.StateData{},
		} {
			if err := tx.Where("survey_unit_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.SurveyUnit{}, "id = ?", id).Error
	})
}

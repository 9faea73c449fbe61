package bootstrap

import (
	"context"
	"errors"

	"github.com/opencollect/collect-api/internal/config"
	"github.com/opencollect/collect-api/internal/modules/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	demoCampaignID      = "SIMPSONS2020X00"
	demoQuestionnaireID = "simpsons"
)

// EnsureDemoCampaignExists seeds a demo campaign and questionnaire model in
// non-production profiles so survey units can be created against something
// right away. Production data comes from the administrative import.
func EnsureDemoCampaignExists(ctx context.Context, d *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	if !cfg.CreationAllowed() {
		return nil
	}

	var campaign model.Campaign
	err := d.WithContext(ctx).First(&campaign, "id = ?", demoCampaignID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Info("seeding demo campaign", zap.String("campaign_id", demoCampaignID))
	return d.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Campaign{ID: demoCampaignID}).Error; err != nil {
			return err
		}
		return tx.Create(&model.QuestionnaireModel{
			ID:         demoQuestionnaireID,
			CampaignID: demoCampaignID,
		}).Error
	})
}

package model

// Campaign is a named collection of questionnaires deployed to a set of
// survey units. Campaigns are created by an administrative import and are
// read-only from this service's perspective.
type Campaign struct {
	ID string `gorm:"type:text;primaryKey" json:"id"`

	QuestionnaireModels []QuestionnaireModel `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Campaign) TableName() string { return "campaign" }

type QuestionnaireModel struct {
	ID         string `gorm:"type:text;primaryKey" json:"id"`
	CampaignID string `gorm:"type:text;not null;index" json:"campaign_id"`

	Campaign *Campaign `gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (QuestionnaireModel) TableName() string { return "questionnaire_model" }

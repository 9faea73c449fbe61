package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SurveyUnit is one respondent's instance of a questionnaire within a
// campaign. Its four value blobs live in four separate tables keyed by the
// survey-unit id, each 1:0-or-1; reads compose them, writes target exactly
// one sub-record at a time.
type SurveyUnit struct {
	ID                   string `gorm:"type:text;primaryKey" json:"id"`
	CampaignID           string `gorm:"type:text;not null;index" json:"campaign_id"`
	QuestionnaireModelID string `gorm:"type:text;not null" json:"questionnaire_model_id"`

	Campaign           *Campaign           `gorm:"foreignKey:CampaignID;references:ID;constraint:OnUpdate:CASCADE;" json:"-"`
	QuestionnaireModel *QuestionnaireModel `gorm:"foreignKey:QuestionnaireModelID;references:ID;constraint:OnUpdate:CASCADE;" json:"-"`

	Data            *Data            `gorm:"foreignKey:SurveyUnitID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Comment         *Comment         `gorm:"foreignKey:SurveyUnitID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Personalization *Personalization `gorm:"foreignKey:SurveyUnitID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	StateData       *StateData       `gorm:"foreignKey:SurveyUnitID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (SurveyUnit) TableName() string { return "survey_unit" }

// Data holds the questionnaire answers as an opaque JSON document.
type Data struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyUnitID string         `gorm:"type:text;not null;uniqueIndex:uq_data_survey_unit" json:"survey_unit_id"`
	Value        datatypes.JSON `gorm:"type:jsonb" swaggertype:"object" json:"value"`
}

func (Data) TableName() string { return "data" }

// Comment holds free-text annotations as an opaque JSON document.
type Comment struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyUnitID string         `gorm:"type:text;not null;uniqueIndex:uq_comment_survey_unit" json:"survey_unit_id"`
	Value        datatypes.JSON `gorm:"type:jsonb" swaggertype:"object" json:"value"`
}

func (Comment) TableName() string { return "comment" }

// Personalization holds per-respondent customization values.
type Personalization struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyUnitID string         `gorm:"type:text;not null;uniqueIndex:uq_personalization_survey_unit" json:"survey_unit_id"`
	Value        datatypes.JSON `gorm:"type:jsonb" swaggertype:"object" json:"value"`
}

func (Personalization) TableName() string { return "personalization" }

// Lifecycle states observed on a survey unit. Any value supplied by the
// caller is persisted as-is; the enum only names the known ones.
const (
	StateInit       = "INIT"
	StateInProgress = "IN_PROGRESS"
	StateCompleted  = "COMPLETED"
	StateValidated  = "VALIDATED"
)

// StateData is the current lifecycle snapshot of a survey unit. The unique
// index on survey_unit_id backs the single-statement upsert, so at most one
// row can exist per unit even under concurrent first writes.
type StateData struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyUnitID string    `gorm:"type:text;not null;uniqueIndex:uq_state_data_survey_unit" json:"survey_unit_id"`
	State        string    `gorm:"type:text;not null" json:"state"`
	CurrentPage  string    `gorm:"type:text" json:"current_page"`
	Date         int64     `gorm:"not null" json:"date"`
}

func (StateData) TableName() string { return "state_data" }

// IsTerminal reports whether the state marks the questionnaire as finished.
func (s *StateData) IsTerminal() bool {
	return s.State == StateCompleted || s.State == StateValidated
}

func IsTerminalState(state string) bool {
	return state == StateCompleted || state == StateValidated
}

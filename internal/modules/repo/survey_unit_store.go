package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// JSONTable names one of the three opaque-blob tables a partial update may
// target. The set is closed; table names are never taken from input.
type JSONTable string

const (
	TableData            JSONTable = "data"
	TableComment         JSONTable = "comment"
	TablePersonalization JSONTable = "personalization"
)

func (t JSONTable) valid() bool {
	switch t {
	case TableData, TableComment, TablePersonalization:
		return true
	}
	return false
}

// CreateSurveyUnit carries one survey unit to insert, blobs included. Nil
// blob fields are stored as SQL NULLs.
type CreateSurveyUnit struct {
	ID              string
	QuestionnaireID string
	Data            json.RawMessage
	Comment         json.RawMessage
	Personalization json.RawMessage
	StateData       *StateDataWrite
}

// StateDataWrite is a fully specified state snapshot ready to persist.
type StateDataWrite struct {
	State       string
	CurrentPage string
	Date        int64
}

// SurveyUnitStore is the write side: parameterized statements against the
// four sub-tables, keyed by survey-unit id. JSON values pass through opaque.
type SurveyUnitStore interface {
	UpdateValue(ctx context.Context, table JSONTable, surveyUnitID string, value json.RawMessage) error
	UpsertStateData(ctx context.Context, surveyUnitID string, sd StateDataWrite) error
	Insert(ctx context.Context, campaignID string, su CreateSurveyUnit) error
}

type surveyUnitStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSurveyUnitStore(db *gorm.DB, log *zap.Logger) SurveyUnitStore {
	return &surveyUnitStore{db: db, log: log}
}

// UpdateValue replaces the blob for one sub-table. A value that is not valid
// JSON is rejected instead of silently dropped.
func (s *surveyUnitStore) UpdateValue(ctx context.Context, table JSONTable, surveyUnitID string, value json.RawMessage) error {
	if !table.valid() {
		return fmt.Errorf("unknown json table %q", table)
	}
	if !json.Valid(value) {
		return fmt.Errorf("invalid json for table %s", table)
	}

	res := s.db.WithContext(ctx).Exec(
		fmt.Sprintf("UPDATE %s SET value = ? WHERE survey_unit_id = ?", table),
		string(value), surveyUnitID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		s.log.Debug("no row to update",
			zap.String("table", string(table)),
			zap.String("survey_unit_id", surveyUnitID))
	}
	return nil
}

// UpsertStateData writes the state snapshot in a single conditional statement
// keyed by survey_unit_id, so concurrent first writes cannot produce two rows.
func (s *surveyUnitStore) UpsertStateData(ctx context.Context, surveyUnitID string, sd StateDataWrite) error {
	return s.db.WithContext(ctx).Exec(
		`INSERT INTO state_data (id, survey_unit_id, state, current_page, date)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (survey_unit_id)
		 DO UPDATE SET state = EXCLUDED.state, current_page = EXCLUDED.current_page, date = EXCLUDED.date`,
		uuid.New(), surveyUnitID, sd.State, sd.CurrentPage, sd.Date,
	).Error
}

// Insert creates the whole aggregate: parent upsert, one fresh row per JSON
// sub-table, and a state row when a complete snapshot was supplied. The whole
// thing runs in one transaction so a failure leaves no partial aggregate.
func (s *surveyUnitStore) Insert(ctx context.Context, campaignID string, su CreateSurveyUnit) error {
	for _, blob := range []struct {
		table JSONTable
		value json.RawMessage
	}{
		{TableData, su.Data},
		{TableComment, su.Comment},
		{TablePersonalization, su.Personalization},
	} {
		if blob.value != nil && !json.Valid(blob.value) {
			return fmt.Errorf("invalid json for table %s", blob.table)
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			`INSERT INTO survey_unit (id, campaign_id, questionnaire_model_id)
			 VALUES (?, ?, ?)
			 ON CONFLICT (id)
			 DO UPDATE SET campaign_id = EXCLUDED.campaign_id, questionnaire_model_id = EXCLUDED.questionnaire_model_id`,
			su.ID, campaignID, su.QuestionnaireID,
		).Error
		if err != nil {
			return err
		}

		for _, blob := range []struct {
			table JSONTable
			value json.RawMessage
		}{
			{TableData, su.Data},
			{TableComment, su.Comment},
			{TablePersonalization, su.Personalization},
		} {
			// this path assumes a new survey unit, rows are inserted
			// unconditionally
			var value any
			if blob.value != nil {
				value = string(blob.value)
			}
			err := tx.Exec(
				fmt.Sprintf("INSERT INTO %s (id, survey_unit_id, value) VALUES (?, ?, ?)", blob.table),
				uuid.New(), su.ID, value,
			).Error
			if err != nil {
				return err
			}
		}

		if su.StateData == nil {
			return nil
		}
		s.log.Info("inserting state_data", zap.String("survey_unit_id", su.ID))
		return tx.Exec(
			"INSERT INTO state_data (id, survey_unit_id, state, current_page, date) VALUES (?, ?, ?, ?, ?)",
			uuid.New(), su.ID, su.StateData.State, su.StateData.CurrentPage, su.StateData.Date,
		).Error
	})
}

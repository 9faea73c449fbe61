package repo

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/opencollect/collect-api/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestDB creates a test database connection for survey-unit tests
func setupTestDB(t *testing.T) *gorm.DB {
	// Skip if no test database is configured
	dsn := "host=localhost user=collect password=collect dbname=collect port=15432 sslmode=disable"
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Skip("Test database not available, skipping integration tests")
		return nil
	}

	err = db.AutoMigrate(
		&model.Campaign{},
		&model.QuestionnaireModel{},
		&model.SurveyUnit{},
		&model.Data{},
		&model.Comment{},
		&model.Personalization{},
		&model.StateData{},
	)
	require.NoError(t, err)

	return db
}

// seedCampaign inserts the campaign and questionnaire the units hang off
func seedCampaign(t *testing.T, db *gorm.DB, campaignID, questionnaireID string) {
	require.NoError(t, db.Save(&model.Campaign{ID: campaignID}).Error)
	require.NoError(t, db.Save(&model.QuestionnaireModel{
		ID:         questionnaireID,
		CampaignID: campaignID,
	}).Error)
}

// cleanupSurveyUnits removes every record belonging to the given campaign
func cleanupSurveyUnits(t *testing.T, db *gorm.DB, campaignID string) {
	db.Exec(`DELETE FROM state_data WHERE survey_unit_id IN (SELECT id FROM survey_unit WHERE campaign_id = ?)`, campaignID)
	db.Exec(`DELETE FROM personalization WHERE survey_unit_id IN (SELECT id FROM survey_unit WHERE campaign_id = ?)`, campaignID)
	db.Exec(`DELETE FROM comment WHERE survey_unit_id IN (SELECT id FROM survey_unit WHERE campaign_id = ?)`, campaignID)
	db.Exec(`DELETE FROM data WHERE survey_unit_id IN (SELECT id FROM survey_unit WHERE campaign_id = ?)`, campaignID)
	db.Exec(`DELETE FROM survey_unit WHERE campaign_id = ?`, campaignID)
	db.Exec(`DELETE FROM questionnaire_model WHERE campaign_id = ?`, campaignID)
	db.Exec(`DELETE FROM campaign WHERE id = ?`, campaignID)
}

func TestSurveyUnitStore_Insert(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	ctx := context.Background()
	store := NewSurveyUnitStore(db, zap.NewNop())
	units := NewSurveyUnitRepo(db)

	seedCampaign(t, db, "TESTCAMP01", "q-test-01")
	defer cleanupSurveyUnits(t, db, "TESTCAMP01")

	t.Run("creates the full aggregate", func(t *testing.T) {
		err := store.Insert(ctx, "TESTCAMP01", CreateSurveyUnit{
			ID:              "it-su-full",
			QuestionnaireID: "q-test-01",
			Data:            json.RawMessage(`{"answer":42}`),
			Comment:         json.RawMessage(`{"note":"hello"}`),
			Personalization: json.RawMessage(`[{"name":"whoAnswers","value":"Homer"}]`),
			StateData:       &StateDataWrite{State: model.StateInit, CurrentPage: "p1", Date: 1000},
		})
		require.NoError(t, err)

		su, err := units.GetByID(ctx, "it-su-full")
		require.NoError(t, err)
		assert.Equal(t, "TESTCAMP01", su.CampaignID)
		assert.Equal(t, "q-test-01", su.QuestionnaireModelID)
		require.NotNil(t, su.Data)
		assert.JSONEq(t, `{"answer":42}`, string(su.Data.Value))
		require.NotNil(t, su.StateData)
		assert.Equal(t, model.StateInit, su.StateData.State)
		assert.Equal(t, "p1", su.StateData.CurrentPage)
	})

	t.Run("nil blobs become null sub-rows", func(t *testing.T) {
		err := store.Insert(ctx, "TESTCAMP01", CreateSurveyUnit{
			ID:              "it-su-bare",
			QuestionnaireID: "q-test-01",
		})
		require.NoError(t, err)

		su, err := units.GetByID(ctx, "it-su-bare")
		require.NoError(t, err)
		require.NotNil(t, su.Data)
		assert.Empty(t, []byte(su.Data.Value))
		assert.Nil(t, su.StateData)
	})

	t.Run("rejects invalid json before touching the database", func(t *testing.T) {
		err := store.Insert(ctx, "TESTCAMP01", CreateSurveyUnit{
			ID:              "it-su-badjson",
			QuestionnaireID: "q-test-01",
			Data:            json.RawMessage(`{broken`),
		})
		require.Error(t, err)

		_, err = units.GetByID(ctx, "it-su-badjson")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestSurveyUnitStore_UpdateValue(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	ctx := context.Background()
	store := NewSurveyUnitStore(db, zap.NewNop())
	units := NewSurveyUnitRepo(db)

	seedCampaign(t, db, "TESTCAMP02", "q-test-02")
	defer cleanupSurveyUnits(t, db, "TESTCAMP02")

	require.NoError(t, store.Insert(ctx, "TESTCAMP02", CreateSurveyUnit{
		ID:              "it-su-upd",
		QuestionnaireID: "q-test-02",
		Data:            json.RawMessage(`{"answer":1}`),
	}))

	t.Run("replaces one blob and leaves the others", func(t *testing.T) {
		err := store.UpdateValue(ctx, TableComment, "it-su-upd", json.RawMessage(`{"note":"updated"}`))
		require.NoError(t, err)

		su, err := units.GetByID(ctx, "it-su-upd")
		require.NoError(t, err)
		assert.JSONEq(t, `{"note":"updated"}`, string(su.Comment.Value))
		assert.JSONEq(t, `{"answer":1}`, string(su.Data.Value))
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		err := store.UpdateValue(ctx, TableData, "it-su-upd", json.RawMessage(`{broken`))
		assert.Error(t, err)
	})

	t.Run("rejects unknown table", func(t *testing.T) {
		err := store.UpdateValue(ctx, JSONTable("survey_unit"), "it-su-upd", json.RawMessage(`{}`))
		assert.Error(t, err)
	})

	t.Run("missing unit is a silent no-op", func(t *testing.T) {
		err := store.UpdateValue(ctx, TableData, "it-su-missing", json.RawMessage(`{"x":1}`))
		assert.NoError(t, err)
	})
}

func TestSurveyUnitStore_UpsertStateData(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	ctx := context.Background()
	store := NewSurveyUnitStore(db, zap.NewNop())

	seedCampaign(t, db, "TESTCAMP03", "q-test-03")
	defer cleanupSurveyUnits(t, db, "TESTCAMP03")

	require.NoError(t, store.Insert(ctx, "TESTCAMP03", CreateSurveyUnit{
		ID:              "it-su-state",
		QuestionnaireID: "q-test-03",
	}))

	t.Run("repeat writes keep a single row", func(t *testing.T) {
		require.NoError(t, store.UpsertStateData(ctx, "it-su-state",
			StateDataWrite{State: model.StateInit, CurrentPage: "p1", Date: 1000}))
		require.NoError(t, store.UpsertStateData(ctx, "it-su-state",
			StateDataWrite{State: model.StateCompleted, CurrentPage: "end", Date: 2000}))

		var rows []model.StateData
		require.NoError(t, db.Where("survey_unit_id = ?", "it-su-state").Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.Equal(t, model.StateCompleted, rows[0].State)
		assert.Equal(t, "end", rows[0].CurrentPage)
		assert.Equal(t, int64(2000), rows[0].Date)
	})
}

func TestSurveyUnitRepo_ReadAndDelete(t *testing.T) {
	db := setupTestDB(t)
	if db == nil {
		return
	}
	ctx := context.Background()
	store := NewSurveyUnitStore(db, zap.NewNop())
	units := NewSurveyUnitRepo(db)

	seedCampaign(t, db, "TESTCAMP04", "q-test-04")
	defer cleanupSurveyUnits(t, db, "TESTCAMP04")

	for _, id := range []string{"it-su-b", "it-su-a"} {
		require.NoError(t, store.Insert(ctx, "TESTCAMP04", CreateSurveyUnit{
			ID:              id,
			QuestionnaireID: "q-test-04",
			Data:            json.RawMessage(`{}`),
		}))
	}

	t.Run("unknown id surfaces record not found", func(t *testing.T) {
		_, err := units.GetByID(ctx, "it-su-nope")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("campaign listing is ordered by id", func(t *testing.T) {
		list, err := units.ListByCampaign(ctx, "TESTCAMP04")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "it-su-a", list[0].ID)
		assert.Equal(t, "it-su-b", list[1].ID)
	})

	t.Run("delete removes the aggregate and its sub-rows", func(t *testing.T) {
		require.NoError(t, units.Delete(ctx, "it-su-a"))

		_, err := units.GetByID(ctx, "it-su-a")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		var count int64
		require.NoError(t, db.Model(&model.Data{}).Where("survey_unit_id = ?", "it-su-a").Count(&count).Error)
		assert.Zero(t, count)
	})
}

package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/opencollect/collect-api/internal/modules/repo"
	"github.com/opencollect/collect-api/internal/modules/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListCampaigns(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		campaigns := &MockCampaignService{}
		campaigns.On("List", mock.Anything).Return([]repo.CampaignSummary{
			{ID: "SIMPSONS2020X00", QuestionnaireIDs: []string{"simpsons"}},
		}, nil)

		w := doRequest(testRouter(&MockSurveyUnitService{}, campaigns), http.MethodGet, "/api/campaigns", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"questionnaireIds":["simpsons"]`)
	})

	t.Run("storage failure", func(t *testing.T) {
		campaigns := &MockCampaignService{}
		campaigns.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

		w := doRequest(testRouter(&MockSurveyUnitService{}, campaigns), http.MethodGet, "/api/campaigns", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestListSurveyUnitsByCampaign(t *testing.T) {
	t.Run("full listing is a bare array with ids", func(t *testing.T) {
		units := &MockSurveyUnitService{}
		units.On("ListByCampaign", mock.Anything, mock.Anything, "C1").
			Return(&service.CampaignListing{Full: []service.SurveyUnitProjection{
				{ID: "SU1", QuestionnaireID: "Q1"},
			}}, nil)

		w := doRequest(testRouter(units, &MockCampaignService{}), http.MethodGet, "/api/campaign/C1/survey-units", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"SU1"`)
		assert.Contains(t, w.Body.String(), `"stateData"`)
	})

	t.Run("reduced listing has only id and questionnaire", func(t *testing.T) {
		units := &MockSurveyUnitService{}
		units.On("ListByCampaign", mock.Anything, mock.Anything, "C1").
			Return(&service.CampaignListing{Reduced: []service.ReducedProjection{
				{ID: "SU1", QuestionnaireID: "Q1"},
			}}, nil)

		w := doRequest(testRouter(units, &MockCampaignService{}), http.MethodGet, "/api/campaign/C1/survey-units", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":"SU1","questionnaireId":"Q1"}]`, w.Body.String())
	})

	t.Run("unknown campaign or empty listing", func(t *testing.T) {
		units := &MockSurveyUnitService{}
		units.On("ListByCampaign", mock.Anything, mock.Anything, "C1").
			Return(nil, service.ErrNotFound)

		w := doRequest(testRouter(units, &MockCampaignService{}), http.MethodGet, "/api/campaign/C1/survey-units", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("habilitation failure", func(t *testing.T) {
		units := &MockSurveyUnitService{}
		units.On("ListByCampaign", mock.Anything, mock.Anything, "C1").
			Return(nil, errors.New("pilotage unreachable"))

		w := doRequest(testRouter(units, &MockCampaignService{}), http.MethodGet, "/api/campaign/C1/survey-units", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "listing failed")
	})
}

func TestPostSurveyUnit(t *testing.T) {
	const body = `{"id":"SU1","questionnaireId":"Q1","data":{"a":1}}`

	t.Run("created", func(t *testing.T) {
		units := &MockSurveyUnitService{}
		units.On("Create", mock.Anything, "C1", mock.MatchedBy(func(in service.CreateSurveyUnitInput) bool {
			return in.ID == "SU1" && in.QuestionnaireID == "Q1"
		})).Return(nil)

		w := doRequest(testRouter(units, &MockCampaignService{}), http.MethodPost, "/api/campaign/C1/survey-unit", body)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "created")
	})

	t.Run("missing required fields", func(t *testing.T) {
		units := &MockSurveyUnitService{}

		w := doRequest(testRouter(units, &MockCampaignService{}), http.MethodPost, "/api/campaign/C1/survey-unit", `{"data":{}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		units.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("disabled in production", func(t *testing.T) {
		units := &MockSurveyUnitService{}
		units.On("Create", mock.Anything, "C1", mock.Anything).Return(service.ErrNotFound)

		w := doRequest(testRouter(units, &MockCampaignService{}), http.MethodPost, "/api/campaign/C1/survey-unit", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "creation is disabled in this profile")
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opencollect/collect-api/internal/modules/serializer"
	"github.com/opencollect/collect-api/internal/modules/service"
)

type CampaignHandler struct {
	campaigns service.CampaignService
	units     service.SurveyUnitService
}

func NewCampaignHandler(campaigns service.CampaignService, units service.SurveyUnitService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, units: units}
}

// ListCampaigns godoc
//
//	@Summary	List campaigns
//	@Description	All campaigns with the ids of their questionnaire models.
//	@Tags		campaign
//	@Produce	json
//	@Success	200	{array}	repo.CampaignSummary
//	@Router		/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.campaigns.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// ListSurveyUnitsByCampaign godoc
//
//	@Summary	List survey units of a campaign
//	@Description	Full projections gated per survey unit, or the reduced projection for guests and when the integration override is set. An empty result is a 404.
//	@Tags		campaign
//	@Produce	json
//	@Param		id	path	string	true	"Campaign ID"
//	@Success	200	{array}	service.SurveyUnitProjection
//	@Failure	404	{object}	serializer.Response
//	@Failure	500	{object}	serializer.Response
//	@Router		/campaign/{id}/survey-units [get]
func (h *CampaignHandler) ListSurveyUnitsByCampaign(c *gin.Context) {
	id := c.Param("id")
	listing, err := h.units.ListByCampaign(c.Request.Context(), currentCaller(c), id)
	switch {
	case err == nil:
		if listing.Reduced != nil {
			c.JSON(http.StatusOK, listing.Reduced)
			return
		}
		c.JSON(http.StatusOK, listing.Full)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
	default:
		// habilitation and storage failures both stay opaque here
		c.JSON(http.StatusInternalServerError, serializer.DBErr("listing failed", err))
	}
}

// PostSurveyUnit godoc
//
//	@Summary	Create a survey unit
//	@Description	Only available outside the production profile. Upserts the parent row and inserts fresh sub-records transactionally.
//	@Tags		campaign
//	@Accept		json
//	@Produce	json
//	@Param		id	path	string	true	"Campaign ID"
//	@Param		body	body	service.CreateSurveyUnitInput	true	"Survey unit"
//	@Success	200	{object}	serializer.Response{data=service.CreateSurveyUnitInput}
//	@Failure	400	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/campaign/{id}/survey-unit [post]
func (h *CampaignHandler) PostSurveyUnit(c *gin.Context) {
	id := c.Param("id")

	var in service.CreateSurveyUnitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	err := h.units.Create(c.Request.Context(), id, in)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, serializer.Response{Data: in, Msg: "created"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("creation is disabled in this profile"))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

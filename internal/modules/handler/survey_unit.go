package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opencollect/collect-api/internal/modules/model"
	"github.com/opencollect/collect-api/internal/modules/serializer"
	"github.com/opencollect/collect-api/internal/modules/service"
)

type SurveyUnitHandler struct {
	svc service.SurveyUnitService
}

func NewSurveyUnitHandler(svc service.SurveyUnitService) *SurveyUnitHandler {
	return &SurveyUnitHandler{svc: svc}
}

// currentCaller returns the identity resolved by the auth middleware.
func currentCaller(c *gin.Context) *model.Caller {
	return c.MustGet("caller").(*model.Caller)
}

// GetSurveyUnit godoc
//
//	@Summary	Get a survey unit
//	@Description	Full projection of a survey unit with its data, comment, personalization and state data.
//	@Tags		survey-unit
//	@Produce	json
//	@Param		id	path	string	true	"Survey unit ID"
//	@Success	200	{object}	service.SurveyUnitProjection
//	@Failure	403	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/survey-unit/{id} [get]
func (h *SurveyUnitHandler) GetSurveyUnit(c *gin.Context) {
	id := c.Param("id")
	projection, err := h.svc.Get(c.Request.Context(), currentCaller(c), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, projection)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr(""))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// PutSurveyUnit godoc
//
//	@Summary	Update a survey unit
//	@Description	Partial update: each of data, comment, personalization and stateData present in the body triggers exactly one storage write.
//	@Tags		survey-unit
//	@Accept		json
//	@Param		id	path	string	true	"Survey unit ID"
//	@Success	200
//	@Failure	400	{object}	serializer.Response
//	@Failure	403	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/survey-unit/{id} [put]
func (h *SurveyUnitHandler) PutSurveyUnit(c *gin.Context) {
	id := c.Param("id")

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	err = h.svc.Update(c.Request.Context(), currentCaller(c), id, body)
	switch {
	case err == nil:
		c.Status(http.StatusOK)
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr(""))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
	case errors.Is(err, service.ErrBadRequest):
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// DeleteSurveyUnit godoc
//
//	@Summary	Delete a survey unit
//	@Description	Removes the survey unit and its four sub-records.
//	@Tags		survey-unit
//	@Param		id	path	string	true	"Survey unit ID"
//	@Success	200
//	@Failure	404	{object}	serializer.Response
//	@Router		/survey-unit/{id} [delete]
func (h *SurveyUnitHandler) DeleteSurveyUnit(c *gin.Context) {
	id := c.Param("id")
	err := h.svc.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		c.Status(http.StatusOK)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}

// ListSurveyUnits godoc
//
//	@Summary	List all survey units
//	@Description	Operational full scan: survey unit ids with their campaign ids.
//	@Tags		survey-unit
//	@Produce	json
//	@Success	200	{array}	service.SurveyUnitSummary
//	@Router		/survey-units [get]
func (h *SurveyUnitHandler) ListSurveyUnits(c *gin.Context) {
	summaries, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetDepositProof godoc
//
//	@Summary	Download the deposit proof
//	@Description	Renders the document certifying the survey unit's submission state and streams it back.
//	@Tags		survey-unit
//	@Produce	application/octet-stream
//	@Param		id	path	string	true	"Survey unit ID"
//	@Success	200	{file}	binary
//	@Failure	403	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Failure	500	{object}	serializer.Response
//	@Router		/survey-unit/{id}/deposit-proof [get]
func (h *SurveyUnitHandler) GetDepositProof(c *gin.Context) {
	id := c.Param("id")
	proof, err := h.svc.GenerateDepositProof(c.Request.Context(), currentCaller(c), id)
	switch {
	case err == nil:
		c.Header("Content-Disposition", `attachment; filename="`+proof.Filename+`"`)
		c.Data(http.StatusOK, "application/octet-stream", proof.Content)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, serializer.ForbiddenErr(""))
	default:
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "export failed", err))
	}
}

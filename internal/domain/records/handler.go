package records

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medrec/medrec/pkg/pagination"
)

type Handler struct {
	svc *Service
	log zerolog.Logger
}

func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medical-records", h.ListRecords)
	api.POST("/medical-records", h.CreateRecord)
	api.GET("/medical-records/:id", h.GetRecord)
	api.PUT("/medical-records/:id", h.UpdateRecord)
	api.DELETE("/medical-records/:id", h.DeleteRecord)
	api.GET("/patients/:patient_id/summary", h.GetPatientSummary)
}

func (h *Handler) ListRecords(c echo.Context) error {
	pg := pagination.FromContext(c)
	filter := ListFilter{
		PatientID:  c.QueryParam("patient_id"),
		RecordType: c.QueryParam("record_type"),
	}

	recs, total, err := h.svc.ListRecords(c.Request().Context(), filter, pg.Limit, pg.Offset())
	if err != nil {
		return h.writeError(c, "list medical records", err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(recs, total, pg))
}

func (h *Handler) GetRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.writeError(c, "get medical record", ErrInvalidArgument)
	}
	rec, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, "get medical record", err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) CreateRecord(c echo.Context) error {
	var rec MedicalRecord
	if err := c.Bind(&rec); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.svc.CreateRecord(c.Request().Context(), &rec); err != nil {
		return h.writeError(c, "create medical record", err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) UpdateRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.writeError(c, "update medical record", ErrInvalidArgument)
	}
	var rec MedicalRecord
	if err := c.Bind(&rec); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	updated, err := h.svc.UpdateRecord(c.Request().Context(), id, &rec)
	if err != nil {
		return h.writeError(c, "update medical record", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.writeError(c, "delete medical record", ErrInvalidArgument)
	}
	if err := h.svc.DeleteRecord(c.Request().Context(), id); err != nil {
		return h.writeError(c, "delete medical record", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetPatientSummary(c echo.Context) error {
	sum, err := h.svc.GetPatientSummary(c.Request().Context(), c.Param("patient_id"))
	if err != nil {
		return h.writeError(c, "get patient summary", err)
	}
	return c.JSON(http.StatusOK, sum)
}

// writeError maps domain errors onto the wire. Store failures are logged
// here with the operation that hit them; the client only sees a generic
// message.
func (h *Handler) writeError(c echo.Context, op string, err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ErrInvalidArgument.Error()})
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": ErrNotFound.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		// Leave the response unwritten so the timeout middleware owns it.
		return err
	default:
		h.log.Error().Err(err).Str("operation", op).Msg("medical records store error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

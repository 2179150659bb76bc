package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/moonblock-go/internal/app"
	"github.com/randomtoy/moonblock-go/internal/domain"
	"github.com/randomtoy/moonblock-go/internal/ports"
)

type Handler struct {
	oracle       *app.Oracle
	sequencer    *app.Sequencer
	desk         *app.ComplaintDesk
	clock        ports.Clock
	clockOutHour int
}

func NewHandler(oracle *app.Oracle, seq *app.Sequencer, desk *app.ComplaintDesk, clock ports.Clock, clockOutHour int) *Handler {
	return &Handler{
		oracle:       oracle,
		sequencer:    seq,
		desk:         desk,
		clock:        clock,
		clockOutHour: clockOutHour,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	v1 := e.Group("/v1")
	v1.POST("/divination/single", h.Single)
	v1.POST("/divination/final", h.Final)

	v1.GET("/ritual", h.GetRitual)
	v1.POST("/ritual", h.BeginRitual)
	v1.POST("/ritual/throw", h.Throw)
	v1.DELETE("/ritual", h.ResetRitual)

	v1.GET("/complaints", h.ListComplaints)
	v1.POST("/complaints", h.FileComplaint)
	v1.POST("/complaints/:id/shred", h.ShredComplaint)
	v1.POST("/complaints/:id/burn", h.BurnComplaint)

	v1.GET("/clockout", h.ClockOut)
	v1.GET("/roast", h.Roast)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Single comments on one throw. Service failures are answered with
// fallback text, never with an error status.
func (h *Handler) Single(c echo.Context) error {
	var req SingleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}
	complaint, err := domain.ComplaintOrDefault(req.Complaint)
	if err != nil {
		return mapError(c, err)
	}
	outcome, err := domain.ParseOutcome(req.Outcome)
	if err != nil {
		return mapError(c, err)
	}
	if req.Index < 0 || req.Index >= domain.ThrowsPerRitual {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "index must be between 0 and 2"})
	}

	comment := h.oracle.CommentOnThrow(c.Request().Context(), ports.ThrowInput{
		Complaint: complaint,
		Outcome:   outcome,
		Index:     req.Index,
	})
	return c.JSON(http.StatusOK, SingleResponse{Text: comment.Text, Source: comment.Source})
}

// Final produces the verdict card for three outcomes.
func (h *Handler) Final(c echo.Context) error {
	var req FinalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}
	complaint, err := domain.ComplaintOrDefault(req.Complaint)
	if err != nil {
		return mapError(c, err)
	}
	outcomes, err := domain.ParseOutcomes(req.Outcomes)
	if err != nil {
		return mapError(c, err)
	}

	card := h.oracle.ProduceCard(c.Request().Context(), ports.CardInput{
		Complaint: complaint,
		Outcomes:  outcomes,
	})
	return c.JSON(http.StatusOK, card)
}

func (h *Handler) GetRitual(c echo.Context) error {
	return c.JSON(http.StatusOK, RitualResponse{Accepted: true, Ritual: h.sequencer.Snapshot()})
}

func (h *Handler) BeginRitual(c echo.Context) error {
	complaint, err := h.desk.RitualComplaint(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	snap, err := h.sequencer.Begin(complaint)
	return ritualResult(c, snap, err)
}

func (h *Handler) Throw(c echo.Context) error {
	snap, err := h.sequencer.RequestThrow()
	return ritualResult(c, snap, err)
}

func (h *Handler) ResetRitual(c echo.Context) error {
	return c.JSON(http.StatusOK, RitualResponse{Accepted: true, Ritual: h.sequencer.Reset()})
}

// ritualResult reports ignored commands as accepted=false with the
// unchanged state rather than as an error.
func ritualResult(c echo.Context, snap app.Snapshot, err error) error {
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, RitualResponse{Accepted: true, Ritual: snap})
	case errors.Is(err, domain.ErrInvalidSessionState):
		return c.JSON(http.StatusOK, RitualResponse{Accepted: false, Ritual: snap})
	default:
		return mapError(c, err)
	}
}

func (h *Handler) ListComplaints(c echo.Context) error {
	list, err := h.desk.History(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, ComplaintsResponse{Complaints: list})
}

func (h *Handler) FileComplaint(c echo.Context) error {
	var req ComplaintRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}
	complaint, err := h.desk.File(c.Request().Context(), req.Text)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, complaint)
}

func (h *Handler) ShredComplaint(c echo.Context) error {
	complaint, err := h.desk.Shred(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, complaint)
}

func (h *Handler) BurnComplaint(c echo.Context) error {
	complaint, err := h.desk.Burn(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, complaint)
}

func (h *Handler) ClockOut(c echo.Context) error {
	co := domain.UntilClockOut(h.clock.Now(), h.clockOutHour)
	return c.JSON(http.StatusOK, ClockOutResponse{
		RemainingSeconds: int64(co.Remaining.Seconds()),
		OffWork:          co.OffWork,
		Label:            co.Label(),
	})
}

func (h *Handler) Roast(c echo.Context) error {
	return c.JSON(http.StatusOK, RoastResponse{Text: h.oracle.Roast()})
}

func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrComplaintNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrComplaintNotDestroyed),
		errors.Is(err, domain.ErrComplaintNotCurrent),
		errors.Is(err, domain.ErrComplaintDestroyed):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidOutcome),
		errors.Is(err, domain.ErrWrongThrowCount),
		errors.Is(err, domain.ErrEmptyComplaint),
		errors.Is(err, domain.ErrComplaintTooLong):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID(c), "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

package patient

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rehabdesk/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)

	api.GET("/physicians", h.ListPhysicians)
	api.POST("/physicians", h.CreatePhysician)
	api.GET("/physicians/:id", h.GetPhysician)
	api.PUT("/physicians/:id", h.UpdatePhysician)
	api.DELETE("/physicians/:id", h.DeletePhysician)

	api.GET("/insurances", h.ListInsurances)
	api.POST("/insurances", h.CreateInsurance)
	api.GET("/insurances/:id", h.GetInsurance)
	api.PUT("/insurances/:id", h.UpdateInsurance)
	api.DELETE("/insurances/:id", h.DeleteInsurance)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func httpErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, ErrInUse):
		return echo.NewHTTPError(http.StatusConflict, "record has dependent visits")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return httpErr(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	patients, total, err := h.svc.ListPatients(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httpErr(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.UpdatePatient(c.Request().Context(), &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpErr(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return httpErr(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreatePhysician(c echo.Context) error {
	var p Physician
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreatePhysician(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPhysician(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPhysician(c.Request().Context(), id)
	if err != nil {
		return httpErr(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPhysicians(c echo.Context) error {
	pg := pagination.FromContext(c)
	physicians, total, err := h.svc.ListPhysicians(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httpErr(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(physicians, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdatePhysician(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var p Physician
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.UpdatePhysician(c.Request().Context(), &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpErr(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePhysician(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePhysician(c.Request().Context(), id); err != nil {
		return httpErr(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateInsurance(c echo.Context) error {
	var ins Insurance
	if err := c.Bind(&ins); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateInsurance(c.Request().Context(), &ins); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ins)
}

func (h *Handler) GetInsurance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ins, err := h.svc.GetInsurance(c.Request().Context(), id)
	if err != nil {
		return httpErr(err)
	}
	return c.JSON(http.StatusOK, ins)
}

func (h *Handler) ListInsurances(c echo.Context) error {
	pg := pagination.FromContext(c)
	insurances, total, err := h.svc.ListInsurances(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httpErr(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(insurances, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateInsurance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var ins Insurance
	if err := c.Bind(&ins); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ins.ID = id
	if err := h.svc.UpdateInsurance(c.Request().Context(), &ins); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpErr(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ins)
}

func (h *Handler) DeleteInsurance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteInsurance(c.Request().Context(), id); err != nil {
		return httpErr(err)
	}
	return c.NoContent(http.StatusNoContent)
}

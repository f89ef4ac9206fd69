package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-reports/internal/application/dto"
	"github.com/jhoicas/pos-reports/internal/application/report"
	"github.com/jhoicas/pos-reports/internal/domain"
)

// ReportHandler maneja los endpoints de reportes de ventas y utilidad.
type ReportHandler struct {
	uc       report.Generator
	pdf      report.Exporter
	validate *validator.Validate
	log      zerolog.Logger
}

// NewReportHandler construye el handler. pdf puede ser nil si la exportación no está habilitada.
func NewReportHandler(uc report.Generator, pdf report.Exporter, log zerolog.Logger) *ReportHandler {
	v := validator.New()
	// Los mensajes usan el nombre del parámetro de consulta, no el del campo Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ReportHandler{uc: uc, pdf: pdf, validate: v, log: log}
}

// Get godoc
// @Summary      Reporte de ventas, utilidad, daños y gastos
// @Description  Resumen del periodo, datos del gráfico por hora/día/mes, top 5 de productos
//               y listado detallado. startDate/endDate tienen prioridad sobre type/date.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type       query  string  false  "daily | weekly | monthly | yearly (default daily)"
// @Param        date       query  string  false  "YYYY-MM-DD (daily/weekly), YYYY-MM (monthly) o YYYY (yearly). Default: hoy."
// @Param        startDate  query  string  false  "Inicio del rango (YYYY-MM-DD)."
// @Param        endDate    query  string  false  "Fin del rango, inclusivo (YYYY-MM-DD)."
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	req, errResp := h.parseRequest(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errResp)
	}

	rep, err := h.uc.Generate(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(rep)
}

// ExportPDF godoc
// @Summary      Reporte en PDF
// @Description  Mismos parámetros que /api/reports; devuelve el documento como adjunto.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        type       query  string  false  "daily | weekly | monthly | yearly"
// @Param        date       query  string  false  "Fecha de referencia del periodo"
// @Param        startDate  query  string  false  "Inicio del rango (YYYY-MM-DD)."
// @Param        endDate    query  string  false  "Fin del rango, inclusivo (YYYY-MM-DD)."
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{
			Code: "NOT_IMPLEMENTED", Message: "exportación PDF no disponible",
		})
	}
	req, errResp := h.parseRequest(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errResp)
	}

	pdfBytes, filename, err := h.pdf.ExportPDF(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// parseRequest lee y valida los parámetros de consulta.
func (h *ReportHandler) parseRequest(c *fiber.Ctx) (dto.ReportRequest, *dto.ErrorResponse) {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return req, &dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"}
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return req, &dto.ErrorResponse{Code: "INVALID_PARAMS", Message: err.Error()}
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, validationMessage(fe))
		}
		return req, &dto.ErrorResponse{Code: "INVALID_PARAMS", Message: strings.Join(msgs, "; ")}
	}
	return req, nil
}

// fail traduce errores del caso de uso: entrada inválida → 400, el resto → 500 sin detalles.
func (h *ReportHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: err.Error(),
		})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("error generando reporte")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "no se pudo generar el reporte",
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s debe tener formato YYYY-MM-DD", fe.Field())
	case "max":
		return fmt.Sprintf("%s admite máximo %s caracteres", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s inválido (%s)", fe.Field(), fe.Tag())
	}
}

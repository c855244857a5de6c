package controller

import (
	"errors"

	"flow-validation-be/internal/pkg/serverutils"
	"flow-validation-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	GetReport(ctx *fiber.Ctx) error
	GetUtilityReport(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService  service.IReportService
	utilityService service.IUtilityService
}

func NewReportController(reportService service.IReportService, utilityService service.IUtilityService) IReportController {
	return &reportController{
		reportService:  reportService,
		utilityService: utilityService,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report")
	h.Get("/:sessionId", c.GetReport)
	h.Get("/:sessionId/utility", c.GetUtilityReport)
}

// GetReport serves the rendered HTML report, or the raw report structure
// with ?format=json.
func (c *reportController) GetReport(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "sessionId is required"))
	}

	if ctx.Query("format", "html") == "json" {
		report, err := c.reportService.GenerateReport(ctx.Context(), sessionId)
		if err != nil {
			return c.reportError(ctx, err)
		}
		return ctx.JSON(serverutils.SuccessResponse("Success generate report", report))
	}

	html, err := c.reportService.RenderReport(ctx.Context(), sessionId)
	if err != nil {
		return c.reportError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Send(html)
}

func (c *reportController) GetUtilityReport(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "sessionId is required"))
	}

	report, err := c.utilityService.GenerateUtilityReport(ctx.Context(), sessionId)
	if err != nil {
		if errors.Is(err, service.ErrUtilityModeDisabled) {
			return ctx.Status(fiber.StatusNotImplemented).JSON(serverutils.ErrorResponse(501, err.Error()))
		}
		return c.reportError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate utility report", report))
}

func (c *reportController) reportError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
}

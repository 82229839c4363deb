package handlers

import (
	"movie-i18n/internal/services"
	"movie-i18n/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LanguageHandler struct {
	service services.LanguageService
	logger  *logrus.Logger
}

func NewLanguageHandler(service services.LanguageService, logger *logrus.Logger) *LanguageHandler {
	return &LanguageHandler{
		service: service,
		logger:  logger,
	}
}

// GetLanguages godoc
// @Summary List languages
// @Description Get known languages, the languages and locales movies are translated into, and the default language
// @Tags languages
// @Produce json
// @Success 200 {object} utils.StandardResponse{data=models.LanguageSummary} "Languages"
// @Failure 500 {object} utils.StandardResponse "Failed to retrieve languages"
// @Router /languages [get]
func (h *LanguageHandler) GetLanguages(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get languages")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve languages")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Languages retrieved successfully", summary)
}

// GetLanguage godoc
// @Summary Get language by code
// @Tags languages
// @Produce json
// @Param code path string true "Language code (e.g. pt-BR)"
// @Success 200 {object} utils.StandardResponse{data=models.Language} "Language"
// @Failure 404 {object} utils.StandardResponse "Language not found"
// @Router /languages/{code} [get]
func (h *LanguageHandler) GetLanguage(c *fiber.Ctx) error {
	language, err := h.service.GetLanguageByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		code := utils.StatusFromError(err)
		if code >= fiber.StatusInternalServerError {
			h.logger.WithError(err).Error("Failed to get language")
			return utils.ErrorResponse(c, code, "Failed to retrieve language")
		}
		return utils.ErrorResponse(c, code, err.Error())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Language retrieved successfully", language)
}

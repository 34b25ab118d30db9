package handlers

import (
	"fmt"
	"log"
	"strings"

	"parfum/internal/models"
	"parfum/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PerfumeHandler handles HTTP requests for the perfume catalogue.
type PerfumeHandler struct {
	service  *services.PerfumeService
	validate *validator.Validate
}

// NewPerfumeHandler creates a new PerfumeHandler.
func NewPerfumeHandler(service *services.PerfumeService) *PerfumeHandler {
	return &PerfumeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only catalogue routes.
func (h *PerfumeHandler) RegisterPublicRoutes(router fiber.Router) {
	perfumeRoutes := router.Group("/perfumes")
	perfumeRoutes.Get("/", h.HandleGetPerfumes)
	perfumeRoutes.Get("/:id", h.HandleGetPerfumeByID)
}

// RegisterAdminRoutes registers the catalogue management routes.
func (h *PerfumeHandler) RegisterAdminRoutes(router fiber.Router) {
	perfumeRoutes := router.Group("/perfumes")
	perfumeRoutes.Post("/", h.HandleCreatePerfume)
	perfumeRoutes.Put("/:id", h.HandleUpdatePerfume)
	perfumeRoutes.Delete("/:id", h.HandleDeletePerfume)
}

// HandleGetPerfumes retrieves all perfumes.
func (h *PerfumeHandler) HandleGetPerfumes(c *fiber.Ctx) error {
	perfumes, err := h.service.GetAllPerfumes()
	if err != nil {
		log.Printf("Error getting all perfumes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve perfumes",
			"error":   err.Error(),
		})
	}
	return c.JSON(perfumes)
}

// HandleGetPerfumeByID retrieves a single perfume by its ID.
func (h *PerfumeHandler) HandleGetPerfumeByID(c *fiber.Ctx) error {
	perfumeID := c.Params("id")
	perfume, err := h.service.GetPerfumeByID(perfumeID)
	if err != nil {
		log.Printf("Error getting perfume by ID %s: %v", perfumeID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Perfume with ID %s not found", perfumeID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve perfume",
			"error":   err.Error(),
		})
	}
	return c.JSON(perfume)
}

// HandleCreatePerfume creates a new perfume.
func (h *PerfumeHandler) HandleCreatePerfume(c *fiber.Ctx) error {
	var perfume models.Perfume
	if err := c.BodyParser(&perfume); err != nil {
		log.Printf("Error parsing perfume request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(perfume); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.CreatePerfume(&perfume); err != nil {
		log.Printf("Error creating perfume: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create perfume",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(perfume)
}

// HandleUpdatePerfume updates an existing perfume.
func (h *PerfumeHandler) HandleUpdatePerfume(c *fiber.Ctx) error {
	perfumeID := c.Params("id")

	var perfume models.Perfume
	if err := c.BodyParser(&perfume); err != nil {
		log.Printf("Error parsing perfume update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	perfume.ID = perfumeID

	if err := h.service.UpdatePerfume(&perfume); err != nil {
		log.Printf("Error updating perfume %s: %v", perfumeID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Perfume with ID %s not found", perfumeID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update perfume",
			"error":   err.Error(),
		})
	}

	return c.JSON(perfume)
}

// HandleDeletePerfume deletes a perfume by its ID.
func (h *PerfumeHandler) HandleDeletePerfume(c *fiber.Ctx) error {
	perfumeID := c.Params("id")
	if err := h.service.DeletePerfume(perfumeID); err != nil {
		log.Printf("Error deleting perfume %s: %v", perfumeID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Perfume with ID %s not found", perfumeID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete perfume",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Perfume %s deleted successfully", perfumeID),
	})
}

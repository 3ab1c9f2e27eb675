package hajj_package

import (
	"errors"

	"github.com/balojey/abdullateef-api/dao"
	"github.com/balojey/abdullateef-api/logger"
	"github.com/balojey/abdullateef-api/types"
	packageTypes "github.com/balojey/abdullateef-api/types/hajj_package"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const notFoundMessage = "Hajj package not found"

// HajjPackageController handles hajj package HTTP requests
type HajjPackageController struct {
	DAO *dao.HajjPackageDAO
}

// NewHajjPackageController creates a new hajj package controller
func NewHajjPackageController(db *gorm.DB) *HajjPackageController {
	return &HajjPackageController{
		DAO: dao.NewHajjPackageDAO(db),
	}
}

func validationFailed(c *fiber.Ctx, fieldErrors []types.FieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
		Message: "Validation failed",
		Status:  fiber.StatusUnprocessableEntity,
		Errors:  fieldErrors,
	})
}

// respondError maps DAO errors onto HTTP statuses
func respondError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, dao.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Message: notFoundMessage,
			Status:  fiber.StatusNotFound,
		})
	case errors.Is(err, dao.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusUnprocessableEntity,
		})
	case errors.Is(err, dao.ErrDuplicate), errors.Is(err, dao.ErrReferenced):
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusConflict,
		})
	default:
		logger.Error("Failed to "+action, err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to " + action,
			Status:  fiber.StatusInternalServerError,
		})
	}
}

func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

func invalidID(c *fiber.Ctx) error {
	return validationFailed(c, []types.FieldError{{Field: "id", Rule: "uuid"}})
}

// Store creates a hajj package
func (hc *HajjPackageController) Store(c *fiber.Ctx) error {
	var req packageTypes.HajjPackageCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Warning("Failed to parse hajj package body: " + err.Error())
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusUnprocessableEntity,
		})
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return validationFailed(c, fieldErrors)
	}

	pkg, err := hc.DAO.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return respondError(c, err, "create hajj package")
	}

	return c.JSON(types.ApiResponse{
		Message: "Hajj package created successfully",
		Status:  fiber.StatusOK,
		Data:    pkg,
	})
}

// Index lists hajj packages page by page
func (hc *HajjPackageController) Index(c *fiber.Ctx) error {
	query := packageTypes.HajjPackageListQuery{Limit: packageTypes.DefaultListLimit}
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Message: "Invalid query parameters",
			Status:  fiber.StatusUnprocessableEntity,
		})
	}
	if fieldErrors := query.Validate(); len(fieldErrors) > 0 {
		return validationFailed(c, fieldErrors)
	}

	packages, err := hc.DAO.List(c.UserContext(), query.Limit, query.Offset)
	if err != nil {
		return respondError(c, err, "fetch hajj packages")
	}

	return c.JSON(types.ApiResponse{
		Message: "Hajj packages fetched successfully",
		Status:  fiber.StatusOK,
		Data:    packages,
	})
}

// Show returns one hajj package
func (hc *HajjPackageController) Show(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	pkg, err := hc.DAO.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "fetch hajj package")
	}

	return c.JSON(types.ApiResponse{
		Message: "Hajj package fetched successfully",
		Status:  fiber.StatusOK,
		Data:    pkg,
	})
}

// Update changes the fields present in the body
func (hc *HajjPackageController) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	var req packageTypes.HajjPackageUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Warning("Failed to parse hajj package body: " + err.Error())
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusUnprocessableEntity,
		})
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return validationFailed(c, fieldErrors)
	}

	pkg, err := hc.DAO.Update(c.UserContext(), id, req.ToUpdate())
	if err != nil {
		return respondError(c, err, "update hajj package")
	}

	return c.JSON(types.ApiResponse{
		Message: "Hajj package updated successfully",
		Status:  fiber.StatusOK,
		Data:    pkg,
	})
}

// Destroy deletes a hajj package and answers 204 with no body
func (hc *HajjPackageController) Destroy(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	if err := hc.DAO.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "delete hajj package")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/healthy-alternative/metrics"
	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/queue"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"go.uber.org/zap"
)

// DirectoryController serves the public catalogue: categories, providers,
// their services and reviews.
type DirectoryController struct {
	store  store.Directory
	events EventPublisher
	log    *zap.Logger
}

func NewDirectoryController(st store.Directory, events EventPublisher, log *zap.Logger) *DirectoryController {
	return &DirectoryController{store: st, events: events, log: log}
}

type reviewRequest struct {
	ProviderID  string `json:"providerId" validate:"required"`
	PatientName string `json:"patientName" validate:"notblank"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Content     string `json:"content" validate:"notblank"`
}

// GetCategories godoc
// @Summary List service categories
// @Tags directory
// @Produce json
// @Success 200 {array} models.ServiceCategory
// @Router /api/categories [get]
func (dc *DirectoryController) GetCategories(c *fiber.Ctx) error {
	categories, err := dc.store.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GetProviders godoc
// @Summary List providers matching the query filters
// @Tags directory
// @Produce json
// @Param serviceType query string false "Specialty or alias; all disables"
// @Param location query string false "City, state or zip fragment"
// @Param acceptsInsurance query bool false "Filter on insurance"
// @Success 200 {array} models.Provider
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/providers [get]
func (dc *DirectoryController) GetProviders(c *fiber.Ctx) error {
	filter, err := ParseProviderFilter(c.Queries())
	if err != nil {
		return err
	}
	providers, err := dc.store.ListProviders(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(providers)
}

// ParseProviderFilter builds a filter from query parameters. A boolean flag
// only constrains when its key is present with a non-empty value.
func ParseProviderFilter(query map[string]string) (models.ProviderFilter, error) {
	filter := models.ProviderFilter{
		ServiceType: query["serviceType"],
		Location:    query["location"],
	}

	flags := []struct {
		key string
		dst **bool
	}{
		{"acceptsInsurance", &filter.AcceptsInsurance},
		{"newPatientsWelcome", &filter.NewPatientsWelcome},
		{"telehealthAvailable", &filter.TelehealthAvailable},
		{"eveningHours", &filter.EveningHours},
	}
	invalid := map[string]string{}
	for _, f := range flags {
		raw := strings.TrimSpace(query[f.key])
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			invalid[f.key] = "must be true or false"
			continue
		}
		*f.dst = &b
	}
	if len(invalid) > 0 {
		return models.ProviderFilter{}, utils.NewValidationError("Invalid filter", invalid)
	}
	return filter, nil
}

func (dc *DirectoryController) GetFeaturedProviders(c *fiber.Ctx) error {
	providers, err := dc.store.FeaturedProviders(c.UserContext(), models.FeaturedLimit)
	if err != nil {
		return err
	}
	return c.JSON(providers)
}

func (dc *DirectoryController) GetProvider(c *fiber.Ctx) error {
	provider, err := dc.store.GetProvider(c.UserContext(), c.Params("id"))
	if errors.Is(err, utils.ErrNotFound) {
		return utils.Respond(c, fiber.StatusNotFound, utils.CodeNotFound, "Provider not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(provider)
}

func (dc *DirectoryController) GetProviderServices(c *fiber.Ctx) error {
	services, err := dc.store.ListServicesByProvider(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(services)
}

func (dc *DirectoryController) GetService(c *fiber.Ctx) error {
	service, err := dc.store.GetService(c.UserContext(), c.Params("id"))
	if errors.Is(err, utils.ErrNotFound) {
		return utils.Respond(c, fiber.StatusNotFound, utils.CodeNotFound, "Service not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(service)
}

func (dc *DirectoryController) GetProviderReviews(c *fiber.Ctx) error {
	reviews, err := dc.store.ListReviewsByProvider(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// CreateReview stores a review and folds it into the provider's rating.
// Reviews are marked verified on creation.
func (dc *DirectoryController) CreateReview(c *fiber.Ctx) error {
	var req reviewRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}

	review := &models.Review{
		ProviderID:  req.ProviderID,
		PatientName: strings.TrimSpace(req.PatientName),
		Rating:      req.Rating,
		Content:     req.Content,
		Verified:    true,
	}
	err := dc.store.CreateReview(c.UserContext(), review)
	if errors.Is(err, utils.ErrNotFound) {
		return utils.InvalidField("providerId", "provider does not exist")
	}
	if err != nil {
		return err
	}
	metrics.ReviewsCreated.Inc()

	publish(c.UserContext(), dc.events, dc.log, queue.EventReviewCreated, review.ProviderID, review)
	return c.Status(fiber.StatusCreated).JSON(review)
}

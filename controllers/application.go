package controllers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/meinhoongagan/healthy-alternative/models"
	"github.com/meinhoongagan/healthy-alternative/queue"
	"github.com/meinhoongagan/healthy-alternative/store"
	"github.com/meinhoongagan/healthy-alternative/utils"
	"go.uber.org/zap"
)

// ApplicationController takes join requests from practitioners.
type ApplicationController struct {
	store    store.Applications
	uploader PhotoUploader
	events   EventPublisher
	log      *zap.Logger
}

func NewApplicationController(st store.Applications, uploader PhotoUploader, events EventPublisher, log *zap.Logger) *ApplicationController {
	return &ApplicationController{store: st, uploader: uploader, events: events, log: log}
}

type applicationRequest struct {
	FirstName        string                      `json:"firstName" validate:"notblank,min=2"`
	LastName         string                      `json:"lastName" validate:"notblank,min=2"`
	Email            string                      `json:"email" validate:"required,email"`
	Phone            string                      `json:"phone" validate:"required,min=10"`
	Title            string                      `json:"title" validate:"required"`
	Specialties      []string                    `json:"specialties" validate:"required,min=1,dive,required"`
	YearsExperience  string                      `json:"yearsExperience" validate:"required"`
	Licenses         string                      `json:"licenses" validate:"required"`
	ClinicName       string                      `json:"clinicName" validate:"required"`
	Address          string                      `json:"address" validate:"required,min=5"`
	City             string                      `json:"city" validate:"required,min=2"`
	State            string                      `json:"state" validate:"required,min=2"`
	ZipCode          string                      `json:"zipCode" validate:"required,min=5"`
	Website          string                      `json:"website" validate:"omitempty,url"`
	Services         []models.ApplicationService `json:"services" validate:"required,min=1,dive"`
	AcceptsInsurance bool                        `json:"acceptsInsurance"`
	Languages        []string                    `json:"languages" validate:"required,min=1,dive,required"`
	Bio              string                      `json:"bio" validate:"required,min=50"`
	PhotoURL         string                      `json:"photoUrl" validate:"omitempty,url"`
	TermsAccepted    bool                        `json:"termsAccepted" validate:"eq=true"`
	BackgroundCheck  bool                        `json:"backgroundCheck" validate:"eq=true"`
}

// SubmitApplication persists the application for review.
func (ac *ApplicationController) SubmitApplication(c *fiber.Ctx) error {
	var req applicationRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return err
	}

	app := &models.ProviderApplication{
		ID:               "app_" + uuid.NewString(),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            models.NormalizeEmail(req.Email),
		Phone:            req.Phone,
		Title:            req.Title,
		Specialties:      req.Specialties,
		YearsExperience:  req.YearsExperience,
		Licenses:         req.Licenses,
		ClinicName:       req.ClinicName,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		Website:          req.Website,
		Services:         req.Services,
		AcceptsInsurance: req.AcceptsInsurance,
		Languages:        req.Languages,
		Bio:              req.Bio,
		PhotoURL:         req.PhotoURL,
		Status:           models.ApplicationUnderReview,
	}

	ctx := c.UserContext()
	app.PhotoURL = ac.rehostPhoto(ctx, app.ID, app.PhotoURL)

	if err := ac.store.CreateProviderApplication(ctx, app); err != nil {
		return err
	}
	ac.log.Info("provider application received",
		zap.String("application_id", app.ID),
		zap.String("clinic", app.ClinicName),
		zap.Strings("specialties", app.Specialties),
	)
	publish(ctx, ac.events, ac.log, queue.EventApplicationReceived, app.ID, app)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Application submitted successfully",
		"applicationId": app.ID,
		"status":        app.Status,
	})
}

// rehostPhoto keeps the submitted URL when the upload fails.
func (ac *ApplicationController) rehostPhoto(ctx context.Context, id, src string) string {
	if ac.uploader == nil || strings.TrimSpace(src) == "" {
		return src
	}
	hosted, err := ac.uploader.UploadFromURL(ctx, src, id)
	if err != nil {
		ac.log.Warn("applicant photo not uploaded", zap.String("application_id", id), zap.Error(err))
		return src
	}
	return hosted
}

package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"bookhive-api/internal/service"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newListingRoutesHandler(api, services, validate)
	newBidRoutesHandler(api, services, validate)
	newLendingRoutesHandler(api, services, validate)
}

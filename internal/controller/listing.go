package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"

	"bookhive-api/internal/entity"
	"bookhive-api/internal/service"
)

type listingRoutesHandler struct {
	listingService service.Listing
	validate       *validator.Validate
}

func newListingRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *listingRoutesHandler {
	h := &listingRoutesHandler{listingService: services.Listing, validate: v}

	outer.POST("/listings", h.PostListing)
	outer.GET("/listings", h.GetListings)
	outer.GET("/listings/:listingId", h.GetListing)
	outer.PUT("/listings/:listingId", h.UpdateListing)
	outer.DELETE("/listings/:listingId", h.DeleteListing)

	return h
}

type postListingInput struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Category    string          `json:"category" validate:"required,max=100"`
	Author      string          `json:"author" validate:"required,max=200"`
	Price       decimal.Decimal `json:"price"`
	Year        int             `json:"year" validate:"required"`
	Condition   string          `json:"condition" validate:"required,oneof=New LikeNew Good Fair Poor"`
	Description string          `json:"description" validate:"max=2000"`
	Photos      []string        `json:"photos" validate:"dive,url"`
}

// /listings
func (h *listingRoutesHandler) PostListing(c echo.Context) error {
	var input postListingInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreateListingInput{
		Name:        input.Name,
		Category:    input.Category,
		Author:      input.Author,
		Price:       input.Price,
		Year:        input.Year,
		Condition:   input.Condition,
		Description: input.Description,
		Photos:      input.Photos,
	}

	listing, err := h.listingService.CreateListing(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, listing); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrInvalidYear, service.ErrInvalidPrice:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Error"}); e != nil {
			return e
		}
	}

	return err
}

type getListingsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /listings
func (h *listingRoutesHandler) GetListings(c echo.Context) error {
	input := getListingsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	listings, err := h.listingService.GetListings(c.Request().Context(), pg)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: err.Error()}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, listings); e != nil {
		return e
	}

	return nil
}

// /listings/:listingId
func (h *listingRoutesHandler) GetListing(c echo.Context) error {
	listing, err := h.listingService.GetListingById(c.Request().Context(), c.Param("listingId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, listing); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrListingNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no listing with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Error"}); e != nil {
			return e
		}
	}

	return err
}

type updateListingInput struct {
	ListingId   string           `param:"listingId" validate:"required,max=100"`
	Name        string           `json:"name" validate:"max=200"`
	Category    string           `json:"category" validate:"max=100"`
	Author      string           `json:"author" validate:"max=200"`
	Price       *decimal.Decimal `json:"price"`
	Year        *int             `json:"year"`
	Condition   string           `json:"condition" validate:"omitempty,oneof=New LikeNew Good Fair Poor"`
	Description string           `json:"description" validate:"max=2000"`
	Photos      []string         `json:"photos" validate:"dive,url"`
}

// /listings/:listingId
func (h *listingRoutesHandler) UpdateListing(c echo.Context) error {
	var input updateListingInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.ListingId = c.Param("listingId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.EditListingInput{
		Name:        input.Name,
		Category:    input.Category,
		Author:      input.Author,
		Price:       input.Price,
		Year:        input.Year,
		Condition:   input.Condition,
		Description: input.Description,
		Photos:      input.Photos,
	}

	listing, err := h.listingService.EditListingById(c.Request().Context(), input.ListingId, model)
	if err == nil {
		if e := c.JSON(http.StatusOK, listing); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrListingNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no listing with given id"}); e != nil {
			return e
		}
	case service.ErrInvalidYear, service.ErrInvalidPrice:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: err.Error()}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Error"}); e != nil {
			return e
		}
	}

	return err
}

// /listings/:listingId
func (h *listingRoutesHandler) DeleteListing(c echo.Context) error {
	err := h.listingService.DeleteListingById(c.Request().Context(), c.Param("listingId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, "deleted"); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrListingNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no listing with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Error"}); e != nil {
			return e
		}
	}

	return err
}

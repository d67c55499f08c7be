package controller

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"

	"bookhive-api/internal/entity"
	"bookhive-api/internal/service"
)

type lendingRoutesHandler struct {
	lendingService service.Lending
	validate       *validator.Validate
}

func newLendingRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *lendingRoutesHandler {
	h := &lendingRoutesHandler{lendingService: services.Lending, validate: v}

	outer.POST("/lendings", h.PostLending)
	outer.GET("/lendings", h.GetLendings)
	outer.GET("/lendings/:lendingId", h.GetLending)
	outer.PUT("/lendings/:lendingId/return", h.ReturnLending)

	return h
}

type postLendingInput struct {
	ListingId string    `json:"listingId" validate:"required,uuid"`
	Lender    string    `json:"lender" validate:"required,max=100"`
	Borrower  string    `json:"borrower" validate:"required,max=100"`
	DueDate   time.Time `json:"dueDate" validate:"required"`
}

// /lendings
func (h *lendingRoutesHandler) PostLending(c echo.Context) error {
	var input postLendingInput
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

	model := &entity.CreateLendingInput{
		ListingId: input.ListingId,
		Lender:    input.Lender,
		Borrower:  input.Borrower,
		DueDate:   input.DueDate,
	}

	lending, err := h.lendingService.CreateLending(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, lending); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrListingNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no listing with given id"}); e != nil {
			return e
		}
	case service.ErrInvalidDueDate:
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

type getLendingsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /lendings
func (h *lendingRoutesHandler) GetLendings(c echo.Context) error {
	input := getLendingsInput{Limit: defaultLimit, Offset: defaultOffset}
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
	lendings, err := h.lendingService.GetLendings(c.Request().Context(), pg)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: err.Error()}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, lendings); e != nil {
		return e
	}

	return nil
}

// /lendings/:lendingId
func (h *lendingRoutesHandler) GetLending(c echo.Context) error {
	lending, err := h.lendingService.GetLendingById(c.Request().Context(), c.Param("lendingId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, lending); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrLendingNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no lending record with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Error"}); e != nil {
			return e
		}
	}

	return err
}

// /lendings/:lendingId/return
func (h *lendingRoutesHandler) ReturnLending(c echo.Context) error {
	lending, err := h.lendingService.ReturnLendingById(c.Request().Context(), c.Param("lendingId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, lending); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrLendingNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no lending record with given id"}); e != nil {
			return e
		}
	case service.ErrAlreadyReturned:
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

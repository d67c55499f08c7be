package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"

	"bookhive-api/internal/entity"
	"bookhive-api/internal/lifecycle"
	"bookhive-api/internal/service"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}

	outer.POST("/bids", h.PostBid)
	outer.GET("/bids", h.GetBids)
	outer.GET("/bids/listing/:listingId", h.GetListingBids)
	outer.GET("/bids/:bidId", h.GetBid)
	outer.GET("/bids/:bidId/highest", h.GetHighestSubBid)
	outer.PUT("/bids/:bidId", h.UpdateBid)
	outer.DELETE("/bids/:bidId", h.DeleteBid)
	outer.POST("/bids/:bidId/place", h.PlaceSubBid)

	return h
}

type postBidInput struct {
	ListingId string    `json:"listingId" validate:"required,uuid"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	Location  string    `json:"location" validate:"required,max=200"`
}

// /bids
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
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

	model := &entity.CreateBidInput{
		ListingId: input.ListingId,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Location:  input.Location,
	}

	bid, err := h.bidService.CreateBid(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, bid); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrListingNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no listing with given id"}); e != nil {
			return e
		}
	case lifecycle.ErrInvalidWindow, lifecycle.ErrStartInPast, lifecycle.ErrInvalidLocation:
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

type getBidsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

func newGetBidsInput() getBidsInput {
	return getBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /bids
func (h *bidRoutesHandler) GetBids(c echo.Context) error {
	var input = newGetBidsInput()
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
	bids, err := h.bidService.GetBids(c.Request().Context(), pg)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: err.Error()}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, bids); e != nil {
		return e
	}

	return nil
}

type getListingBidsInput struct {
	ListingId string `param:"listingId" validate:"required,max=100"`
	Limit     int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset    int32  `query:"offset" validate:"gte=0"`
}

// /bids/listing/:listingId
func (h *bidRoutesHandler) GetListingBids(c echo.Context) error {
	input := getListingBidsInput{Limit: defaultLimit, Offset: defaultOffset}
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

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	bids, err := h.bidService.GetListingBids(c.Request().Context(), input.ListingId, pg)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: err.Error()}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, bids); e != nil {
		return e
	}

	return nil
}

// /bids/:bidId
func (h *bidRoutesHandler) GetBid(c echo.Context) error {
	bid, err := h.bidService.GetBidById(c.Request().Context(), c.Param("bidId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no bid with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Error"}); e != nil {
			return e
		}
	}

	return err
}

// /bids/:bidId/highest
func (h *bidRoutesHandler) GetHighestSubBid(c echo.Context) error {
	highest, err := h.bidService.GetHighestSubBid(c.Request().Context(), c.Param("bidId"))
	if err == nil {
		if highest == nil {
			if e := c.JSON(http.StatusOK, struct{}{}); e != nil {
				return e
			}

			return nil
		}
		if e := c.JSON(http.StatusOK, highest); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no bid with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Error"}); e != nil {
			return e
		}
	}

	return err
}

type updateBidInput struct {
	BidId     string     `param:"bidId" validate:"required,max=100"`
	Location  *string    `json:"location"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// /bids/:bidId
// The body is a partial patch; fields outside the allow-list are dropped by
// the bind target itself.
func (h *bidRoutesHandler) UpdateBid(c echo.Context) error {
	var input updateBidInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.BidId = c.Param("bidId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	patch := &lifecycle.UpdatePatch{
		Location:  input.Location,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}

	bid, err := h.bidService.EditBidById(c.Request().Context(), input.BidId, patch)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no bid with given id"}); e != nil {
			return e
		}
	case lifecycle.ErrBidExpired:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Cannot update expired bid", Status: string(lifecycle.StatusExpired)}); e != nil {
			return e
		}
	case lifecycle.ErrEmptyUpdate, lifecycle.ErrInvalidLocation, lifecycle.ErrInvalidWindow, lifecycle.ErrCannotDeferActiveStart:
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

// /bids/:bidId
func (h *bidRoutesHandler) DeleteBid(c echo.Context) error {
	err := h.bidService.DeleteBidById(c.Request().Context(), c.Param("bidId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, "deleted"); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no bid with given id"}); e != nil {
			return e
		}
	case lifecycle.ErrBidExpired:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Cannot delete expired bid", Status: string(lifecycle.StatusExpired)}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Error"}); e != nil {
			return e
		}
	}

	return err
}

type placeSubBidInput struct {
	BidId  string          `param:"bidId" validate:"required,max=100"`
	Bidder string          `json:"bidder" validate:"required,max=100"`
	Amount decimal.Decimal `json:"amount"`
}

// /bids/:bidId/place
func (h *bidRoutesHandler) PlaceSubBid(c echo.Context) error {
	var input placeSubBidInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: "Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.BidId = c.Param("bidId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{Reason: getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	bid, err := h.bidService.PlaceSubBid(c.Request().Context(), input.BidId, input.Bidder, input.Amount)
	if err == nil {
		if e := c.JSON(http.StatusOK, bid); e != nil {
			return e
		}

		return nil
	}

	var notActive *lifecycle.NotActiveError
	if errors.As(err, &notActive) {
		if e := c.JSON(http.StatusBadRequest, errorResponse{
			Reason: "Sub-bids can only be placed on an active bid, this one is " + lifecycle.Label(notActive.Status),
			Status: string(notActive.Status),
		}); e != nil {
			return e
		}

		return err
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{Reason: "There is no bid with given id"}); e != nil {
			return e
		}
	case lifecycle.ErrInvalidSubBid:
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

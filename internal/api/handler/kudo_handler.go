package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kudoshq/kudos-api/internal/api/metrics"
	"github.com/kudoshq/kudos-api/internal/core/domain"
	"github.com/kudoshq/kudos-api/internal/core/ports"
)

// Style defaults applied when the author does not pick one.
const (
	defaultBackground = domain.ColorRed
	defaultText       = domain.ColorWhite
	defaultEmoji      = domain.EmojiThumbsUp
)

type KudoHandler struct {
	kudoService ports.KudoService
}

func NewKudoHandler(kudoService ports.KudoService) *KudoHandler {
	return &KudoHandler{kudoService: kudoService}
}

// Create sends a kudo from the session user to a colleague.
//
// @Summary      Send a kudo
// @Tags         kudos
// @Accept       json
// @Produce      json
// @Param        body  body      createKudoRequest  true  "Kudo details"
// @Success      201   {object}  domain.Kudo
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /kudos [post]
func (h *KudoHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createKudoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	kudo, err := h.kudoService.Create(c.Request().Context(), ports.CreateKudoInput{
		AuthorID:    userID,
		RecipientID: req.RecipientID,
		Message:     req.Message,
		Style:       styleFromRequest(req),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "recipient not found"})
		}
		return err
	}

	metrics.KudosCreatedTotal.WithLabelValues(string(kudo.Style.Emoji)).Inc()
	return c.JSON(http.StatusCreated, kudo)
}

// Feed returns the kudos received by the session user.
//
// @Summary      Received kudos feed
// @Tags         kudos
// @Produce      json
// @Param        sort    query     string  false  "Sort order"  Enums(date, sender, emoji)
// @Param        filter  query     string  false  "Text filter over message and author name"
// @Success      200     {array}   ports.FeedEntry
// @Router       /home [get]
func (h *KudoHandler) Feed(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var q feedQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	entries, err := h.kudoService.Feed(c.Request().Context(), ports.FeedFilter{
		RecipientID: userID,
		Sort:        domain.FeedSort(q.Sort),
		Search:      q.Filter,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Recent returns the three most recently sent kudos across all users.
//
// @Summary      Recent kudos widget
// @Tags         kudos
// @Produce      json
// @Success      200  {array}  ports.RecentEntry
// @Router       /home/recent [get]
func (h *KudoHandler) Recent(c echo.Context) error {
	entries, err := h.kudoService.Recent(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

func styleFromRequest(req createKudoRequest) domain.KudoStyle {
	style := domain.KudoStyle{
		BackgroundColor: domain.KudoColor(req.Style.BackgroundColor),
		TextColor:       domain.KudoColor(req.Style.TextColor),
		Emoji:           domain.KudoEmoji(req.Style.Emoji),
	}
	if !domain.ValidColor(style.BackgroundColor) {
		style.BackgroundColor = defaultBackground
	}
	if !domain.ValidColor(style.TextColor) {
		style.TextColor = defaultText
	}
	if !domain.ValidEmoji(style.Emoji) {
		style.Emoji = defaultEmoji
	}
	return style
}

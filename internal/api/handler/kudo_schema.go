package handler

// createKudoRequest is the transport shape for POST /kudos. The author is
// always the session user; only the recipient comes from the payload.
type createKudoRequest struct {
	RecipientID string `json:"recipient_id" form:"recipient_id" validate:"required"`
	Message     string `json:"message" form:"message" validate:"required,max=500"`
	Style       struct {
		BackgroundColor string `json:"background_color" form:"background_color" validate:"omitempty,oneof=RED GREEN YELLOW BLUE WHITE"`
		TextColor       string `json:"text_color" form:"text_color" validate:"omitempty,oneof=RED GREEN YELLOW BLUE WHITE"`
		Emoji           string `json:"emoji" form:"emoji" validate:"omitempty,oneof=THUMBSUP PARTY HANDSUP"`
	} `json:"style" form:"style"`
}

// feedQuery captures the sort and filter query parameters of GET /home.
type feedQuery struct {
	Sort   string `query:"sort" validate:"omitempty,oneof=date sender emoji"`
	Filter string `query:"filter" validate:"omitempty,max=200"`
}

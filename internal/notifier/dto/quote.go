package dto

import "time"

// Quote is a point-in-time market snapshot for one symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	CurrentPrice  float64   `json:"current_price"`
	PreviousClose float64   `json:"previous_close"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Volume        int64     `json:"volume"`
	High52Week    float64   `json:"high_52_week"`
	Low52Week     float64   `json:"low_52_week"`
	Currency      string    `json:"currency"`
	Exchange      string    `json:"exchange"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Timestamp     time.Time `json:"timestamp"`
}

// QuotesRequest asks for several quotes at once.
type QuotesRequest struct {
	Symbols []string `json:"symbols"`
}

// QuotesResponse lists the quotes that could be fetched. Failed symbols are omitted.
type QuotesResponse struct {
	Quotes []Quote `json:"quotes"`
}

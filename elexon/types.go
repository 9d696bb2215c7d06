package elexon

import "time"

const BASE_URL = "https://data.elexon.co.uk/bmrs/api/v1"

const windAndSolarPath = "/forecast/generation/wind-and-solar/day-ahead"

// Item is one row of the wind and solar generation forecast.
type Item struct {
	PublishTime      time.Time `json:"publishTime"`
	ProcessType      string    `json:"processType"`
	BusinessType     string    `json:"businessType"`
	PsrType          string    `json:"psrType"`
	StartTime        string    `json:"startTime"`
	SettlementDate   string    `json:"settlementDate"`
	SettlementPeriod int       `json:"settlementPeriod"`
	Quantity         *float64  `json:"quantity"`
}

type response struct {
	Data []Item `json:"data"`
}

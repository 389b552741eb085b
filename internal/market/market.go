package market

import (
	"strings"
	"time"
)

// SectorIndex is the sector label marking an instrument as a market index
// rather than a tradable.
const SectorIndex = "Index"

// ClosePrice is one point of an instrument's historical series.
type ClosePrice struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Instrument is a market index or tradable from a snapshot. ChangePercent is
// change/(value−change)×100 and arrives consistent from the data source.
type Instrument struct {
	Symbol         string       `json:"symbol"`
	Name           string       `json:"name"`
	Value          float64      `json:"value"`
	Change         float64      `json:"change"`
	ChangePercent  float64      `json:"changePercent"`
	Timestamp      time.Time    `json:"timestamp"`
	High52Week     float64      `json:"high52Week"`
	Low52Week      float64      `json:"low52Week"`
	MarketCap      float64      `json:"marketCap"`
	Volume         float64      `json:"volume"`
	Sector         string       `json:"sector,omitempty"`
	HistoricalData []ClosePrice `json:"historicalData"`
}

// Index reports whether the instrument is a market index.
func (i Instrument) Index() bool {
	return i.Sector == SectorIndex
}

// Region buckets indices by listing market, keyed off well-known symbol
// fragments. Anything unrecognized is global.
type Region string

const (
	RegionIndian Region = "indian"
	RegionUS     Region = "us"
	RegionGlobal Region = "global"
)

var regionFragments = map[Region][]string{
	RegionIndian: {"NIFTY", "SENSEX", "BSE"},
	RegionUS:     {"SPX", "NASDAQ", "DJI", "S&P", "DOW"},
}

// RegionOf classifies an instrument's symbol.
func RegionOf(symbol string) Region {
	for _, region := range []Region{RegionIndian, RegionUS} {
		for _, fragment := range regionFragments[region] {
			if strings.Contains(symbol, fragment) {
				return region
			}
		}
	}

	return RegionGlobal
}

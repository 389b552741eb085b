package asset

// Category classifies a portfolio holding.
type Category string

const (
	CategoryStock      Category = "Stock"
	CategoryBond       Category = "Bond"
	CategoryETF        Category = "ETF"
	CategoryMutualFund Category = "Mutual Fund"
	CategoryCash       Category = "Cash"
	CategoryCrypto     Category = "Crypto"
)

// Categories lists every valid asset category, for parameter validation.
func Categories() []Category {
	return []Category{
		CategoryStock, CategoryBond, CategoryETF,
		CategoryMutualFund, CategoryCash, CategoryCrypto,
	}
}

// Performance holds percent changes over standard windows.
type Performance struct {
	Day   float64 `json:"day"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
	Year  float64 `json:"year"`
}

// Asset is a single portfolio holding from a snapshot. TotalValue is
// quantity × currentPrice and UnrealizedGain is TotalValue − CostBasis;
// both arrive precomputed and consistent from the data source.
type Asset struct {
	ID                    string      `json:"id"`
	Symbol                string      `json:"symbol"`
	Name                  string      `json:"name"`
	Category              Category    `json:"category"`
	Quantity              float64     `json:"quantity"`
	CurrentPrice          float64     `json:"currentPrice"`
	TotalValue            float64     `json:"totalValue"`
	CostBasis             float64     `json:"costBasis"`
	UnrealizedGain        float64     `json:"unrealizedGain"`
	UnrealizedGainPercent float64     `json:"unrealizedGainPercent"`
	Allocation            float64     `json:"allocation"`
	Performance           Performance `json:"performance"`
}

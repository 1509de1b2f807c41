package models

// API response shapes for the forecast endpoints. The revenue forecast keeps
// the pt-BR field names the dashboard frontend consumes; the purchase
// projection uses the item-centric shape shared with the stock screens.

// RealizedBlock summarizes the elapsed portion of the target month.
type RealizedBlock struct {
	Total         float64 `json:"total"`
	DaysPassed    int     `json:"diasPassados"`
	AvgPerDay     float64 `json:"mediaDiaria"`
	OfficialTotal float64 `json:"totalOficial"`
}

// RemainingDays breaks the rest of the month down by day class.
type RemainingDays struct {
	Total        int `json:"total"`
	BusinessDays int `json:"diasUteis"`
	Saturdays    int `json:"sabados"`
	Sundays      int `json:"domingos"`
	Holidays     int `json:"feriados"`
}

// ScenarioTotals carries the three projected month-end totals.
type ScenarioTotals struct {
	Optimistic  float64 `json:"otimista"`
	Realistic   float64 `json:"realista"`
	Pessimistic float64 `json:"pessimista"`
}

// GraphPoint is one calendar day of the month graph. Exactly one side is
// populated per day, except the cutoff day where realized and all three
// scenarios carry the same cumulative value.
type GraphPoint struct {
	Day         int      `json:"dia"`
	Realized    *float64 `json:"realizado"`
	Optimistic  *float64 `json:"otimista"`
	Realistic   *float64 `json:"realista"`
	Pessimistic *float64 `json:"pessimista"`
}

// DailyProjectionPoint is one projected (non-cumulative) day.
type DailyProjectionPoint struct {
	Date        string  `json:"data"`
	Optimistic  float64 `json:"otimista"`
	Realistic   float64 `json:"realista"`
	Pessimistic float64 `json:"pessimista"`
}

// TrendStatistics describes the realized series up to the cutoff day.
type TrendStatistics struct {
	Mean      float64 `json:"media"`
	Median    float64 `json:"mediana"`
	Trend     string  `json:"tendencia"` // crescente | decrescente | estável
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// MonthComparison contrasts the forecast month with the previous one.
type MonthComparison struct {
	PreviousTotal   float64 `json:"totalMesAnterior"`
	RealizedToDate  float64 `json:"realizadoMesmoPeriodo"`
	PercentChange   float64 `json:"variacaoPercentual"`
	RealisticChange float64 `json:"variacaoProjetada"`
}

// RevenueForecastResponse is the full payload of the revenue forecast
// endpoint.
type RevenueForecastResponse struct {
	CompanyID       string                 `json:"companyId"`
	Year            int                    `json:"ano"`
	Month           int                    `json:"mes"`
	ReferenceDate   string                 `json:"dataReferencia"`
	Realized        RealizedBlock          `json:"realizado"`
	RemainingDays   RemainingDays          `json:"diasRestantes"`
	Averages        map[string]float64     `json:"medias"`
	Scenarios       ScenarioTotals         `json:"cenarios"`
	Graph           []GraphPoint           `json:"grafico"`
	GraphRealized   []GraphPoint           `json:"graficoRealizado"`
	DailyProjection []DailyProjectionPoint `json:"projecaoDiaria"`
	Statistics      TrendStatistics        `json:"estatisticas"`
	PreviousMonth   *MonthComparison       `json:"comparativoMesAnterior,omitempty"`
}

// StockStatus classifies an item's current stock position.
type StockStatus string

const (
	StockOut StockStatus = "out"
	StockLow StockStatus = "low"
	StockOK  StockStatus = "ok"
)

// ItemProjection is the per-item payload of the purchase projection
// endpoints.
type ItemProjection struct {
	ItemID               string                 `json:"itemId"`
	Name                 string                 `json:"name"`
	Unit                 string                 `json:"unit"`
	TotalHistorySales    float64                `json:"totalHistorySales"`
	AvgDailySales        float64                `json:"avgDailySales"`
	AveragesByDay        map[string]float64     `json:"averagesByDay"`
	ProjectedConsumption float64                `json:"projectedConsumption"`
	DailyProjection      []DailyProjectionPoint `json:"dailyProjection"`
	CurrentStock         float64                `json:"currentStock"`
	MinStock             float64                `json:"minStock"`
	ConversionFactor     float64                `json:"conversionFactor"`
	PurchaseUnit         string                 `json:"purchaseUnit"`
	PurchaseNeed         float64                `json:"purchaseNeed"`
	PurchaseQuantity     float64                `json:"purchaseQuantity"`
	NeedsPurchase        bool                   `json:"needsPurchase"`
	StockStatus          StockStatus            `json:"stockStatus"`
}

// PurchaseProjectionResponse is the payload of a purchase projection
// endpoint.
type PurchaseProjectionResponse struct {
	GroupID        string           `json:"groupId"`
	ProjectionDays int              `json:"projectionDays"`
	HistoryDays    int              `json:"historyDays"`
	ProjectionType string           `json:"projectionType"`
	Items          []ItemProjection `json:"items"`
}

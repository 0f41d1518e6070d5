package models

// Поддерживаемые валюты
const (
	USD = "USD"
	RUB = "RUB"
	EUR = "EUR"
	GBP = "GBP"
	CNY = "CNY"
)

// Базовая валюта, относительно которой выражены все курсы
const BaseCurrency = USD

// Валюты, в которые конвертируем сумму
var TargetCurrencies = []string{RUB, EUR, GBP, CNY}

// Таблица курсов: 1 единица базовой валюты = rate единиц валюты code
type RateTable map[string]float64

// Clone возвращает независимую копию таблицы
func (r RateTable) Clone() RateTable {
	if r == nil {
		return nil
	}
	out := make(RateTable, len(r))
	for code, rate := range r {
		out[code] = rate
	}
	return out
}

// Запись файлового кэша курсов
type CacheRecord struct {
	Timestamp *float64  `json:"timestamp"` // epoch seconds
	Rates     RateTable `json:"rates"`
}

// Запрос на конвертацию суммы в одну валюту
type ConversionRequest struct {
	Currency string
	Amount   float64
}

// Причины отсутствия результата конвертации
const (
	ReasonRatesUnavailable    = "rates_unavailable"
	ReasonUnsupportedCurrency = "unsupported_currency"
	ReasonOverflow            = "overflow"
)

// Результат конвертации; Reason заполнен, если результата нет
type ConversionResult struct {
	Request ConversionRequest
	Value   float64
	OK      bool
	Reason  string
}

// Ответ от внешнего API (exchangerate-api.com v4)
type ExternalAPIResponse struct {
	Base            string    `json:"base"`
	Date            string    `json:"date"`
	TimeLastUpdated int64     `json:"time_last_updated"`
	Rates           RateTable `json:"rates"`
}

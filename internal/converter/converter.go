package converter

import (
	"context"
	"fmt"

	"usd_converter/internal/models"
	"usd_converter/internal/service"
	"usd_converter/internal/utils"
)

// Converter переводит сумму в одну целевую валюту
type Converter interface {
	Convert(ctx context.Context, amount float64) (float64, error)
}

// RatesProvider отдаёт таблицу курсов относительно USD
type RatesProvider interface {
	GetRates(ctx context.Context) (models.RateTable, error)
}

// Убеждаемся, что сервис курсов реализует RatesProvider
var _ RatesProvider = (*service.RatesService)(nil)

// USDConverter переводит доллары в currency
type USDConverter struct {
	currency string
	provider RatesProvider
}

var _ Converter = (*USDConverter)(nil)

// Создаём конвертер для целевой валюты
func NewUSDConverter(currency string, provider RatesProvider) *USDConverter {
	return &USDConverter{
		currency: currency,
		provider: provider,
	}
}

// Currency возвращает код целевой валюты
func (c *USDConverter) Currency() string {
	return c.currency
}

// Convert запрашивает курсы при каждом вызове; кэшируются они только на уровне провайдера
func (c *USDConverter) Convert(ctx context.Context, amount float64) (float64, error) {
	rates, err := c.provider.GetRates(ctx)
	if err != nil {
		return 0, fmt.Errorf("convert %s %s: %w", models.BaseCurrency, c.currency, err)
	}
	return utils.ConvertFromBase(amount, c.currency, rates)
}

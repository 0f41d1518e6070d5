package utils

import (
	"errors"
	"fmt"

	"usd_converter/internal/models"
)

// ErrCurrencyNotFound - валюты нет в таблице курсов
var ErrCurrencyNotFound = errors.New("currency not found in rates")

// Переводим сумму из базовой валюты в currency по таблице курсов
func ConvertFromBase(amount float64, currency string, rates models.RateTable) (float64, error) {
	rate, exists := rates[currency]
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrCurrencyNotFound, currency)
	}
	return amount * rate, nil
}

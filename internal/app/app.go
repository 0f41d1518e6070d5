package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"usd_converter/internal/converter"
	"usd_converter/internal/models"
	"usd_converter/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	prompt       = "Введите значение в USD: "
	absentMarker = "None"
	lineTemplate = "%s %s to %s: %s\n"
)

// ErrInvalidAmount - введённая строка не является числом
var ErrInvalidAmount = errors.New("invalid amount")

// App связывает ввод пользователя, конвертеры и вывод
type App struct {
	provider   converter.RatesProvider
	currencies []string
	logger     logrus.FieldLogger
}

// Создаём приложение
func New(provider converter.RatesProvider, currencies []string, logger logrus.FieldLogger) *App {
	if len(currencies) == 0 {
		currencies = models.TargetCurrencies
	}
	return &App{
		provider:   provider,
		currencies: currencies,
		logger:     logger,
	}
}

// Run спрашивает сумму и печатает её в каждой из валют
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return fmt.Errorf("failed to read amount: %w", err)
	}

	amount, err := ParseAmount(line)
	if err != nil {
		return err
	}

	for _, result := range a.ConvertAll(ctx, amount) {
		fmt.Fprintf(out, lineTemplate, formatNumber(amount), models.BaseCurrency, result.Request.Currency, formatResult(result))
	}
	return nil
}

// ConvertAll прогоняет сумму через конвертер каждой валюты
func (a *App) ConvertAll(ctx context.Context, amount float64) []models.ConversionResult {
	results := make([]models.ConversionResult, 0, len(a.currencies))
	for _, currency := range a.currencies {
		req := models.ConversionRequest{Currency: currency, Amount: amount}
		conv := converter.NewUSDConverter(currency, a.provider)

		value, err := conv.Convert(ctx, amount)
		if err != nil {
			reason := models.ReasonRatesUnavailable
			if errors.Is(err, utils.ErrCurrencyNotFound) {
				reason = models.ReasonUnsupportedCurrency
			}
			a.logger.WithError(err).WithFields(logrus.Fields{
				"currency": currency,
				"reason":   reason,
			}).Warn("Conversion result unavailable")
			results = append(results, models.ConversionResult{Request: req, Reason: reason})
			continue
		}
		if math.IsInf(value, 0) || math.IsNaN(value) {
			a.logger.WithFields(logrus.Fields{
				"currency": currency,
				"reason":   models.ReasonOverflow,
			}).Warn("Conversion result is not a finite number")
			results = append(results, models.ConversionResult{Request: req, Reason: models.ReasonOverflow})
			continue
		}
		results = append(results, models.ConversionResult{Request: req, Value: value, OK: true})
	}
	return results
}

// ParseAmount разбирает введённую сумму; ожидается целое, дробное тоже принимаем
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidAmount, s, err)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w %q: not a finite number", ErrInvalidAmount, s)
	}
	return amount, nil
}

func formatResult(result models.ConversionResult) string {
	if !result.OK {
		return absentMarker
	}
	return formatNumber(result.Value)
}

// Кратчайшая десятичная запись без экспоненты
func formatNumber(v float64) string {
	return decimal.NewFromFloat(v).String()
}

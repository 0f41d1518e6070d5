package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"usd_converter/internal/cache"
	"usd_converter/internal/external"
	"usd_converter/internal/models"

	"github.com/sirupsen/logrus"
)

// ErrRatesUnavailable - курсы не удалось получить ни из кэша, ни из API
var ErrRatesUnavailable = errors.New("exchange rates unavailable")

// RatesFetcher определяет источник свежих курсов
type RatesFetcher interface {
	GetLatestRates(ctx context.Context) (models.RateTable, error)
}

// Убеждаемся, что клиент внешнего API реализует RatesFetcher
var _ RatesFetcher = (*external.Client)(nil)

// Options содержит параметры повторных запросов
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
}

// RatesService отдаёт таблицу курсов: из свежего кэша или из API с повторами
type RatesService struct {
	cache      cache.RateCache
	fetcher    RatesFetcher
	logger     logrus.FieldLogger
	maxRetries int
	retryDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// Создаём сервис курсов
func NewRatesService(rateCache cache.RateCache, fetcher RatesFetcher, opts Options, logger logrus.FieldLogger) *RatesService {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &RatesService{
		cache:      rateCache,
		fetcher:    fetcher,
		logger:     logger,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		sleep:      sleepContext,
	}
}

// SetSleeper подменяет ожидание между попытками
func (s *RatesService) SetSleeper(sleep func(ctx context.Context, d time.Duration) error) {
	s.sleep = sleep
}

// GetRates возвращает таблицу курсов целиком или ErrRatesUnavailable
func (s *RatesService) GetRates(ctx context.Context) (models.RateTable, error) {
	if rates, ok := s.loadFromCache(); ok {
		return rates.Clone(), nil
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		rates, err := s.fetcher.GetLatestRates(ctx)
		if err == nil {
			s.saveToCache(rates)
			return rates.Clone(), nil
		}

		if errors.Is(err, external.ErrMalformedResponse) {
			s.logger.WithError(err).Error("Error processing JSON response")
			return nil, fmt.Errorf("%w: %w", ErrRatesUnavailable, err)
		}

		lastErr = err
		s.logger.WithError(err).WithFields(logrus.Fields{
			"attempt":     attempt,
			"max_retries": s.maxRetries,
		}).Error("Request failed")

		if attempt == s.maxRetries {
			break
		}
		if err := s.sleep(ctx, s.retryDelay); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRatesUnavailable, err)
		}
	}

	s.logger.Error("Max retries reached. Unable to fetch rates")
	return nil, fmt.Errorf("%w: %w", ErrRatesUnavailable, lastErr)
}

// Читаем кэш; любая проблема с файлом - это промах
func (s *RatesService) loadFromCache() (models.RateTable, bool) {
	rates, err := s.cache.Load()
	switch {
	case err == nil:
		s.logger.WithField("rates_count", len(rates)).Debug("Using cached exchange rates")
		return rates, true
	case errors.Is(err, cache.ErrCacheInvalid):
		s.logger.WithError(err).Error("Invalid cache file. Fetching from API")
	case errors.Is(err, cache.ErrCacheExpired):
		s.logger.WithError(err).Debug("Cached exchange rates expired")
	default:
		s.logger.WithError(err).Debug("No cached exchange rates")
	}
	return nil, false
}

// Сохраняем курсы в кэш; ошибка записи только логируется
func (s *RatesService) saveToCache(rates models.RateTable) {
	if err := s.cache.Save(rates); err != nil {
		s.logger.WithError(err).Error("Error saving to cache")
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

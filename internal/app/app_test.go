package app

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"usd_converter/internal/models"
	"usd_converter/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Мок для провайдера курсов
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetRates(ctx context.Context) (models.RateTable, error) {
	args := m.Called(ctx)
	rates, _ := args.Get(0).(models.RateTable)
	return rates, args.Error(1)
}

func TestRun_PrintsLinePerCurrency(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GetRates", mock.Anything).Return(models.RateTable{
		"EUR": 0.92, "RUB": 90.5, "CNY": 7.25,
	}, nil)
	logger, hook := test.NewNullLogger()

	var out bytes.Buffer
	a := New(provider, nil, logger)
	err := a.Run(context.Background(), strings.NewReader("100\n"), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Введите значение в USD: ", lines[0])
	assert.Equal(t, []string{
		"100 USD to RUB: 9050",
		"100 USD to EUR: 92",
		"100 USD to GBP: None",
		"100 USD to CNY: 725",
	}, lines[1:])

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, models.ReasonUnsupportedCurrency, hook.LastEntry().Data["reason"])
	provider.AssertNumberOfCalls(t, "GetRates", 4)
}

func TestRun_RatesUnavailable(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GetRates", mock.Anything).Return(nil, fmt.Errorf("%w: offline", service.ErrRatesUnavailable))
	logger, hook := test.NewNullLogger()

	var out bytes.Buffer
	a := New(provider, []string{"EUR", "GBP"}, logger)
	require.NoError(t, a.Run(context.Background(), strings.NewReader("5"), &out))

	assert.Contains(t, out.String(), "5 USD to EUR: None\n")
	assert.Contains(t, out.String(), "5 USD to GBP: None\n")
	for _, entry := range hook.AllEntries() {
		assert.Equal(t, models.ReasonRatesUnavailable, entry.Data["reason"])
	}
}

func TestRun_InvalidAmount(t *testing.T) {
	provider := new(MockProvider)
	logger, _ := test.NewNullLogger()

	for _, input := range []string{"abc\n", "\n", "", "NaN\n", "Inf\n"} {
		a := New(provider, nil, logger)
		err := a.Run(context.Background(), strings.NewReader(input), &bytes.Buffer{})
		assert.Error(t, err, "input %q", input)
	}
	provider.AssertNotCalled(t, "GetRates", mock.Anything)
}

func TestConvertAll(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GetRates", mock.Anything).Return(models.RateTable{"EUR": 0.92, "RUB": 90.5}, nil)
	logger, _ := test.NewNullLogger()

	results := New(provider, []string{"EUR", "GBP"}, logger).ConvertAll(context.Background(), 100)

	require.Len(t, results, 2)
	assert.Equal(t, models.ConversionResult{
		Request: models.ConversionRequest{Currency: "EUR", Amount: 100},
		Value:   92.0,
		OK:      true,
	}, results[0])
	assert.False(t, results[1].OK)
	assert.Equal(t, models.ReasonUnsupportedCurrency, results[1].Reason)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{input: "100", expected: 100},
		{input: "  42 \r\n", expected: 42},
		{input: "12.5", expected: 12.5},
		{input: "-3", expected: -3},
		{input: "ten", wantErr: true},
		{input: "+Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, amount)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "92", formatNumber(100*0.92))
	assert.Equal(t, "0.0093", formatNumber(0.0093))
	assert.Equal(t, "12.5", formatNumber(12.5))
}

func TestRun_OverflowRendersAbsent(t *testing.T) {
	provider := new(MockProvider)
	provider.On("GetRates", mock.Anything).Return(models.RateTable{"RUB": 90.5, "EUR": 0.92}, nil)
	logger, hook := test.NewNullLogger()

	var out bytes.Buffer
	a := New(provider, []string{"RUB", "EUR"}, logger)
	require.NotPanics(t, func() {
		require.NoError(t, a.Run(context.Background(), strings.NewReader("1e308\n"), &out))
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1"+strings.Repeat("0", 308)+" USD to RUB: None", lines[1])
	assert.Contains(t, lines[2], " USD to EUR: 9")
	assert.NotContains(t, lines[2], "None")

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, models.ReasonOverflow, hook.LastEntry().Data["reason"])
}

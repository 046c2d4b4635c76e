package services

import (
	"testing"

	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestResolveSeasonalMultiplierDefaultsToOne(t *testing.T) {
	m, season, err := ResolveSeasonalMultiplier(nil, "2024-06-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if season != "" {
		t.Fatalf("expected no season, got %q", season)
	}
	if !m.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected multiplier 1, got %s", m)
	}
}

func TestResolveSeasonalMultiplierLatestStartWins(t *testing.T) {
	prices := []models.SeasonalPrice{
		{ID: 1, SeasonName: "High Season", StartDate: "2024-06-01", EndDate: "2024-08-31", PriceMultiplier: mustDecimal(t, "1.200")},
		{ID: 2, SeasonName: "Peak July", StartDate: "2024-07-01", EndDate: "2024-07-31", PriceMultiplier: mustDecimal(t, "1.500")},
	}

	m, season, err := ResolveSeasonalMultiplier(prices, "2024-07-15")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if season != "Peak July" {
		t.Fatalf("expected later-starting season to win, got %q", season)
	}
	if !m.Equal(mustDecimal(t, "1.500")) {
		t.Fatalf("expected 1.500, got %s", m)
	}

	// outside the nested window the broad season still applies
	m, season, err = ResolveSeasonalMultiplier(prices, "2024-06-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if season != "High Season" || !m.Equal(mustDecimal(t, "1.200")) {
		t.Fatalf("expected High Season 1.200, got %q %s", season, m)
	}
}

func TestResolveSeasonalMultiplierTieBrokenByHighestID(t *testing.T) {
	prices := []models.SeasonalPrice{
		{ID: 3, SeasonName: "Old Promo", StartDate: "2024-07-01", EndDate: "2024-07-31", PriceMultiplier: mustDecimal(t, "0.900")},
		{ID: 9, SeasonName: "New Promo", StartDate: "2024-07-01", EndDate: "2024-07-31", PriceMultiplier: mustDecimal(t, "0.800")},
	}

	_, season, err := ResolveSeasonalMultiplier(prices, "2024-07-10")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if season != "New Promo" {
		t.Fatalf("expected the newest row to win the tie, got %q", season)
	}
}

func TestResolveSeasonalMultiplierYearWrap(t *testing.T) {
	prices := []models.SeasonalPrice{
		{ID: 1, SeasonName: "New Year", StartDate: "2023-12-20", EndDate: "2024-01-05", PriceMultiplier: mustDecimal(t, "1.750")},
	}

	for _, date := range []string{"2024-12-25", "2025-01-03"} {
		m, season, err := ResolveSeasonalMultiplier(prices, date)
		if err != nil {
			t.Fatalf("date %s: expected no error, got %v", date, err)
		}
		if season != "New Year" {
			t.Fatalf("date %s should fall in the wrapped range, got %q", date, season)
		}
		if !m.Equal(mustDecimal(t, "1.750")) {
			t.Fatalf("date %s: expected 1.750, got %s", date, m)
		}
	}

	if _, season, _ := ResolveSeasonalMultiplier(prices, "2024-06-10"); season != "" {
		t.Fatalf("mid-year date should not match the wrapped range, got %q", season)
	}
}

func TestResolveSeasonalMultiplierRejectsBadDate(t *testing.T) {
	if _, _, err := ResolveSeasonalMultiplier(nil, "10-06-2024"); err == nil {
		t.Fatalf("expected validation error for bad date format")
	}
}

func TestEffectivePriceOverrideAndMultiplier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "route_id", "season_name", "start_date", "end_date",
		"price_multiplier", "is_active", "created_at",
	}).AddRow(1, 7, "High Season", "2024-06-01", "2024-08-31", "1.500", true, sampleTime())
	mock.ExpectQuery("FROM seasonal_prices").WithArgs(int64(7)).WillReturnRows(rows)

	svc := PricingService{SeasonalRepo: repositories.SeasonalPriceRepository{DB: db}}
	price, err := svc.EffectivePrice(repositories.BookableDailySchedule{
		RouteID:       7,
		TravelDate:    "2024-06-10",
		BasePrice:     mustDecimal(t, "350000.00"),
		PriceOverride: decimal.NullDecimal{Decimal: mustDecimal(t, "300000.00"), Valid: true},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// override 300000.00 * 1.500, rounded to 2 decimals
	if price.StringFixed(2) != "450000.00" {
		t.Fatalf("expected 450000.00, got %s", price.StringFixed(2))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

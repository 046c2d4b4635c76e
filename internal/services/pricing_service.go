package services

import (
	"strconv"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/shopspring/decimal"
)

// PricingService computes the effective per-seat price for a travel date:
// daily override (if any) else the schedule base price, multiplied by the
// applicable seasonal multiplier for the route.
type PricingService struct {
	SeasonalRepo repositories.SeasonalPriceRepository
	RequestID    string
}

// EffectivePrice returns the per-seat amount rounded to the 2-decimal scale.
func (s PricingService) EffectivePrice(b repositories.BookableDailySchedule) (decimal.Decimal, error) {
	base := b.BasePrice
	if b.PriceOverride.Valid {
		base = b.PriceOverride.Decimal
	}

	prices, err := s.SeasonalRepo.ListActiveByRoute(b.RouteID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	multiplier, season, err := ResolveSeasonalMultiplier(prices, b.TravelDate)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if season != "" {
		utils.LogEvent(s.RequestID, "pricing", "seasonal",
			"route_id="+strconv.FormatInt(b.RouteID, 10)+" season="+season)
	}
	return utils.ApplyMultiplier(base, multiplier), nil
}

// ResolveSeasonalMultiplier picks the multiplier for a date from possibly
// overlapping year-agnostic ranges. A range may wrap the year end
// (start month-day after end month-day, e.g. Dec 20 - Jan 5). When several
// ranges contain the date, the one with the latest start wins (ties by
// highest id): a later-starting season is the more specific one.
func ResolveSeasonalMultiplier(prices []models.SeasonalPrice, travelDate string) (decimal.Decimal, string, error) {
	day, err := utils.ParseDate(travelDate)
	if err != nil {
		return decimal.Decimal{}, "", domain.ValidationError{Field: "travel_date", Msg: "format harus YYYY-MM-DD", Err: err}
	}
	target := int(day.Month())*100 + day.Day()

	var best *models.SeasonalPrice
	bestStart := -1
	for i := range prices {
		p := prices[i]
		start, err := monthDay(p.StartDate)
		if err != nil {
			return decimal.Decimal{}, "", domain.InternalError{Msg: "start_date rusak", Err: err}
		}
		end, err := monthDay(p.EndDate)
		if err != nil {
			return decimal.Decimal{}, "", domain.InternalError{Msg: "end_date rusak", Err: err}
		}

		var contains bool
		if start <= end {
			contains = target >= start && target <= end
		} else {
			// range melewati pergantian tahun
			contains = target >= start || target <= end
		}
		if !contains {
			continue
		}
		if best == nil || start > bestStart || (start == bestStart && p.ID > best.ID) {
			best = &prices[i]
			bestStart = start
		}
	}

	if best == nil {
		return decimal.NewFromInt(1), "", nil
	}
	return best.PriceMultiplier, best.SeasonName, nil
}

func monthDay(date string) (int, error) {
	t, err := utils.ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(t.Month())*100 + t.Day(), nil
}

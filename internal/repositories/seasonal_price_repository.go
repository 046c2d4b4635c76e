package repositories

import (
	"database/sql"

	intconfig "backend/internal/config"
	"backend/internal/domain/models"
)

type SeasonalPriceRepository struct {
	DB *sql.DB
}

func (r SeasonalPriceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListActiveByRoute returns active seasonal ranges for one route. Resolution
// of overlaps happens in the pricing service, not here.
func (r SeasonalPriceRepository) ListActiveByRoute(routeID int64) ([]models.SeasonalPrice, error) {
	rows, err := r.db().Query(`
		SELECT id, route_id, season_name,
		       DATE_FORMAT(start_date, '%Y-%m-%d'),
		       DATE_FORMAT(end_date, '%Y-%m-%d'),
		       price_multiplier, is_active, created_at
		FROM seasonal_prices
		WHERE route_id=? AND is_active=1
		ORDER BY start_date ASC, id ASC
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SeasonalPrice{}
	for rows.Next() {
		var p models.SeasonalPrice
		if err := rows.Scan(
			&p.ID, &p.RouteID, &p.SeasonName,
			&p.StartDate, &p.EndDate,
			&p.PriceMultiplier, &p.IsActive, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r SeasonalPriceRepository) Create(p models.SeasonalPrice) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO seasonal_prices (route_id, season_name, start_date, end_date, price_multiplier, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.RouteID, p.SeasonName, p.StartDate, p.EndDate, p.PriceMultiplier, p.IsActive)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

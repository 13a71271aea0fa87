package list_shop_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/barber-booking/internal/domain"
	"github.com/m04kA/barber-booking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задаёт один день, from/to - период; date имеет приоритет
func ToServiceRequest(shopID int64, query url.Values) (*models.GetShopBookingsRequest, error) {
	req := &models.GetShopBookingsRequest{
		ShopID: shopID,
	}

	if raw := query.Get("barberId"); raw != "" {
		barberID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("barberId: %w", err)
		}
		req.BarberID = &barberID
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		var err error
		if req.StartDate, err = parseOptionalDate(query.Get("from")); err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		if req.EndDate, err = parseOptionalDate(query.Get("to")); err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

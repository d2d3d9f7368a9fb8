package service

import (
	"fmt"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

// ComputeQuote prices a reservation request against the festival's zone
// rates. Pure: no I/O, no rounding beyond float64 arithmetic. Chairs
// accumulate only from table-mode lines; area-based booths do not
// auto-allocate chairs.
func ComputeQuote(requests []domain.ZoneAllocationRequest, zones []domain.PricingZone) (domain.Quote, error) {
	if len(requests) == 0 {
		return domain.Quote{}, domain.ErrNoAllocations
	}

	zonesByID := make(map[uint]domain.PricingZone, len(zones))
	for _, zone := range zones {
		zonesByID[zone.ID] = zone
	}

	quote := domain.Quote{
		Lines: make([]domain.QuoteLine, 0, len(requests)),
	}

	for _, request := range requests {
		zone, ok := zonesByID[request.ZoneID]
		if !ok {
			return domain.Quote{}, fmt.Errorf("%w: id %d", domain.ErrUnknownZone, request.ZoneID)
		}

		var linePrice float64

		switch request.Mode {
		case domain.PayByTable:
			if request.TableCount() == 0 {
				return domain.Quote{}, fmt.Errorf("%w: zone %q", domain.ErrNoTablesRequested, zone.Name)
			}
			linePrice = float64(request.TableCount()) * zone.PricePerTable
			quote.TotalChairs += request.Chairs
		case domain.PayByArea:
			if request.SurfaceM2 <= 0 {
				return domain.Quote{}, fmt.Errorf("%w: zone %q", domain.ErrInvalidSurface, zone.Name)
			}
			linePrice = request.SurfaceM2 * zone.PricePerSquareMeter
		default:
			return domain.Quote{}, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMode, request.Mode)
		}

		quote.TotalPrice += linePrice
		quote.Lines = append(quote.Lines, domain.QuoteLine{
			Request:   request,
			ZoneName:  zone.Name,
			Tables:    request.TablesNeeded(),
			LinePrice: linePrice,
		})
	}

	return quote, nil
}

// CheckAvailability simulates sequential stock decrement across the
// request set against a snapshot of zone availability and reports the
// first insufficiency. Advisory only: the snapshot can be stale by the
// time the transaction runs, so the ledger re-checks under lock.
func CheckAvailability(requests []domain.ZoneAllocationRequest, zones []domain.PricingZone) (domain.AvailabilityReport, error) {
	if len(requests) == 0 {
		return domain.AvailabilityReport{}, domain.ErrNoAllocations
	}

	available := make(map[uint]int, len(zones))
	names := make(map[uint]string, len(zones))
	for _, zone := range zones {
		available[zone.ID] = zone.AvailableTables
		names[zone.ID] = zone.Name
	}

	for _, request := range requests {
		remaining, ok := available[request.ZoneID]
		if !ok {
			return domain.AvailabilityReport{}, fmt.Errorf("%w: id %d", domain.ErrUnknownZone, request.ZoneID)
		}

		needed := request.TablesNeeded()
		if needed > remaining {
			return domain.AvailabilityReport{
				FailingZone: names[request.ZoneID],
				Needed:      needed,
				Available:   remaining,
			}, nil
		}

		available[request.ZoneID] = remaining - needed
	}

	return domain.AvailabilityReport{OK: true}, nil
}

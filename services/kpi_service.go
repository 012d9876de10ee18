package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"

	"gorm.io/gorm"
)

const maxKPIRangeDays = 366

type KPIService struct {
	DB *gorm.DB
}

func NewKPIService(db *gorm.DB) *KPIService {
	return &KPIService{DB: db}
}

type approvedPayment struct {
	Amount    float64
	CreatedAt time.Time
	RoomID    uint
}

// Report aggregates the hotel's figures over the inclusive day range
// [from, to]. Occupancy counts a reservation on each night it covers
// (check_in <= night < check_out); its nightly revenue is total/nights.
func (s *KPIService) Report(ctx context.Context, hotelID uint, from, to time.Time) (models.KPIReport, error) {
	from, to = utils.TruncateDay(from), utils.TruncateDay(to)
	report := models.KPIReport{
		HotelID:       hotelID,
		From:          utils.FormatDay(from),
		To:            utils.FormatDay(to),
		RevenueByDay:  []models.RevenueByDay{},
		Occupancy:     []models.OccupancyByDay{},
		ADR:           []models.ADRByDay{},
		RevPAR:        []models.RevPARByDay{},
		RevenueByRoom: []models.RevenueByRoom{},
	}
	if to.Before(from) {
		return report, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	days := utils.NightsBetween(from, to) + 1
	if days > maxKPIRangeDays {
		return report, fmt.Errorf("%w: range longer than %d days", ErrInvalidInput, maxKPIRangeDays)
	}
	end := to.AddDate(0, 0, 1)
	db := s.DB.WithContext(ctx)

	var rooms []models.Room
	if err := db.Select("id", "name", "status").Where("hotel_id = ?", hotelID).Find(&rooms).Error; err != nil {
		return report, err
	}
	roomNames := make(map[uint]string, len(rooms))
	for _, r := range rooms {
		roomNames[r.ID] = r.Name
		switch r.Status {
		case models.RoomStatusOpen:
			report.Summary.RoomStatus.Open++
		case models.RoomStatusClosed:
			report.Summary.RoomStatus.Closed++
		case models.RoomStatusMaintenance:
			report.Summary.RoomStatus.Maintenance++
		}
	}
	totalRooms := len(rooms)
	report.Summary.RoomStatus.Total = totalRooms

	var pays []approvedPayment
	err := db.Table("payments AS p").
		Select("p.amount, p.created_at, r.room_id").
		Joins("JOIN reservations r ON r.id = p.reservation_id").
		Where("r.hotel_id = ? AND p.status = ?", hotelID, models.PaymentApproved).
		Where("p.created_at >= ? AND p.created_at < ?", from, end).
		Scan(&pays).Error
	if err != nil {
		return report, err
	}

	revenueByDay := map[string]float64{}
	revenueByRoom := map[uint]float64{}
	for _, p := range pays {
		revenueByDay[utils.FormatDay(p.CreatedAt)] += p.Amount
		revenueByRoom[p.RoomID] += p.Amount
		report.Summary.RevenueTotal += p.Amount
	}
	report.Summary.RevenueTotal = utils.RoundMoney(report.Summary.RevenueTotal)

	var stays []models.Reservation
	err = db.Select("room_id", "check_in", "check_out", "total_amount").
		Where("hotel_id = ? AND status IN ?", hotelID, []string{models.ReservationConfirmed, models.ReservationCheckedIn}).
		Where("check_in < ? AND check_out > ?", end, from).
		Find(&stays).Error
	if err != nil {
		return report, err
	}

	var occupiedSum, adrSum, revparSum float64
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		key := utils.FormatDay(day)

		if v, ok := revenueByDay[key]; ok {
			report.RevenueByDay = append(report.RevenueByDay, models.RevenueByDay{Day: key, Revenue: utils.RoundMoney(v)})
		}

		occupied := map[uint]bool{}
		nightly := 0.0
		for _, r := range stays {
			if day.Before(r.CheckIn) || !day.Before(r.CheckOut) {
				continue
			}
			occupied[r.RoomID] = true
			if n := r.Nights(); n > 0 {
				nightly += r.TotalAmount / float64(n)
			}
		}

		report.Occupancy = append(report.Occupancy, models.OccupancyByDay{Day: key, RoomsOccupied: len(occupied)})
		occupiedSum += float64(len(occupied))

		if len(occupied) > 0 {
			adr := utils.RoundMoney(nightly / float64(len(occupied)))
			report.ADR = append(report.ADR, models.ADRByDay{Day: key, ADR: adr})
			adrSum += adr
		}
		if totalRooms > 0 {
			revpar := utils.RoundMoney(nightly / float64(totalRooms))
			report.RevPAR = append(report.RevPAR, models.RevPARByDay{Day: key, RevPAR: revpar})
			revparSum += revpar
		}
	}

	if totalRooms > 0 {
		pct := utils.RoundMoney(occupiedSum / float64(days*totalRooms) * 100)
		report.Summary.OccupancyPct = &pct
	}
	if n := len(report.ADR); n > 0 {
		avg := utils.RoundMoney(adrSum / float64(n))
		report.Summary.ADR = &avg
	}
	if n := len(report.RevPAR); n > 0 {
		avg := utils.RoundMoney(revparSum / float64(n))
		report.Summary.RevPAR = &avg
	}

	for id, v := range revenueByRoom {
		report.RevenueByRoom = append(report.RevenueByRoom, models.RevenueByRoom{RoomID: id, Name: roomNames[id], Value: utils.RoundMoney(v)})
	}
	sort.Slice(report.RevenueByRoom, func(i, j int) bool {
		a, b := report.RevenueByRoom[i], report.RevenueByRoom[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.RoomID < b.RoomID
	})
	return report, nil
}

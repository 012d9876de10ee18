package models

import "time"

// ReservationWithRoom is the reservations ⋈ rooms read model.
type ReservationWithRoom struct {
	ReservationID uint      `json:"reservation_id"`
	HotelID       uint      `json:"hotel_id"`
	RoomID        uint      `json:"room_id"`
	RoomName      string    `json:"room_name"`
	ClientID      string    `json:"client_id"`
	Status        string    `json:"status"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Guests        int       `json:"guests"`
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

type RevenueByDay struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

type OccupancyByDay struct {
	Day           string `json:"day"`
	RoomsOccupied int    `json:"rooms_occupied"`
}

type ADRByDay struct {
	Day string  `json:"day"`
	ADR float64 `json:"adr"`
}

type RevPARByDay struct {
	Day    string  `json:"day"`
	RevPAR float64 `json:"revpar"`
}

type RoomStatusCounts struct {
	Open        int `json:"open"`
	Closed      int `json:"closed"`
	Maintenance int `json:"maintenance"`
	Total       int `json:"total"`
}

type RevenueByRoom struct {
	RoomID uint    `json:"room_id"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
}

// KPISummary averages are nil when the range carries no data for them.
type KPISummary struct {
	RevenueTotal float64          `json:"revenue_total"`
	OccupancyPct *float64         `json:"occupancy_pct"`
	ADR          *float64         `json:"adr"`
	RevPAR       *float64         `json:"revpar"`
	RoomStatus   RoomStatusCounts `json:"room_status"`
}

type KPIReport struct {
	HotelID       uint             `json:"hotel_id"`
	From          string           `json:"from"`
	To            string           `json:"to"`
	RevenueByDay  []RevenueByDay   `json:"revenue_by_day"`
	Occupancy     []OccupancyByDay `json:"occupancy"`
	ADR           []ADRByDay       `json:"adr"`
	RevPAR        []RevPARByDay    `json:"revpar"`
	RevenueByRoom []RevenueByRoom  `json:"revenue_by_room"`
	Summary       KPISummary       `json:"summary"`
}

// All lists the persisted models in migration order.
func All() []interface{} {
	return []interface{}{
		&Hotel{},
		&User{},
		&Profile{},
		&Room{},
		&Reservation{},
		&Payment{},
		&Inquiry{},
	}
}

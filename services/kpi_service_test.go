package services

import (
	"testing"
	"time"

	"hotel-booking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKPIReport(t *testing.T) {
	f := newFixture(t)
	a := f.room(t, "A", 2, 100)
	b := f.room(t, "B", 2, 200)
	c := f.room(t, "C", 2, 50)
	d := f.room(t, "D", 2, 50)
	require.NoError(t, f.db.Model(&c).Update("status", models.RoomStatusClosed).Error)
	require.NoError(t, f.db.Model(&d).Update("status", models.RoomStatusMaintenance).Error)

	// A: 2 nights at 100 (10th, 11th); B: 1 night at 300 (11th); pending and cancelled ignored
	ra := f.reservation(t, a, "x", "2025-03-10", "2025-03-12", models.ReservationConfirmed, 200)
	rb := f.reservation(t, b, "y", "2025-03-11", "2025-03-12", models.ReservationCheckedIn, 300)
	f.reservation(t, c, "z", "2025-03-10", "2025-03-12", models.ReservationPending, 100)
	f.reservation(t, d, "z", "2025-03-10", "2025-03-12", models.ReservationCancelled, 100)

	f.payment(t, ra, models.PaymentApproved, 200, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	f.payment(t, rb, models.PaymentApproved, 300, time.Date(2025, 3, 11, 23, 59, 0, 0, time.UTC))
	f.payment(t, rb, models.PaymentRejected, 300, time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC))
	f.payment(t, ra, models.PaymentApproved, 999, time.Date(2025, 3, 13, 8, 0, 0, 0, time.UTC))

	report, err := f.kpis.Report(f.ctx, f.hotel.ID, day("2025-03-10"), day("2025-03-12"))
	require.NoError(t, err)

	assert.Equal(t, []models.RevenueByDay{
		{Day: "2025-03-10", Revenue: 200},
		{Day: "2025-03-11", Revenue: 300},
	}, report.RevenueByDay)

	assert.Equal(t, []models.OccupancyByDay{
		{Day: "2025-03-10", RoomsOccupied: 1},
		{Day: "2025-03-11", RoomsOccupied: 2},
		{Day: "2025-03-12", RoomsOccupied: 0},
	}, report.Occupancy)

	assert.Equal(t, []models.ADRByDay{
		{Day: "2025-03-10", ADR: 100},
		{Day: "2025-03-11", ADR: 200},
	}, report.ADR)

	assert.Equal(t, []models.RevPARByDay{
		{Day: "2025-03-10", RevPAR: 25},
		{Day: "2025-03-11", RevPAR: 100},
		{Day: "2025-03-12", RevPAR: 0},
	}, report.RevPAR)

	assert.Equal(t, []models.RevenueByRoom{
		{RoomID: b.ID, Name: "B", Value: 300},
		{RoomID: a.ID, Name: "A", Value: 200},
	}, report.RevenueByRoom)

	s := report.Summary
	assert.Equal(t, 500.0, s.RevenueTotal)
	require.NotNil(t, s.OccupancyPct)
	assert.Equal(t, 25.0, *s.OccupancyPct) // 3 room-nights of 12
	require.NotNil(t, s.ADR)
	assert.Equal(t, 150.0, *s.ADR)
	require.NotNil(t, s.RevPAR)
	assert.Equal(t, 41.67, *s.RevPAR)
	assert.Equal(t, models.RoomStatusCounts{Open: 2, Closed: 1, Maintenance: 1, Total: 4}, s.RoomStatus)
}

func TestKPIReportEdgeCases(t *testing.T) {
	f := newFixture(t)

	report, err := f.kpis.Report(f.ctx, f.hotel.ID, day("2025-03-10"), day("2025-03-11"))
	require.NoError(t, err)
	assert.Nil(t, report.Summary.OccupancyPct)
	assert.Nil(t, report.Summary.ADR)
	assert.Nil(t, report.Summary.RevPAR)
	assert.Empty(t, report.RevenueByDay)
	assert.Len(t, report.Occupancy, 2)

	_, err = f.kpis.Report(f.ctx, f.hotel.ID, day("2025-03-11"), day("2025-03-10"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.kpis.Report(f.ctx, f.hotel.ID, day("2024-01-01"), day("2025-06-01"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package controllers

import (
	"net/http"
	"time"

	"hotel-booking/clock"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

const defaultKPIRangeDays = 30

type KPIController struct {
	KPIs  *services.KPIService
	Clock clock.Clock
}

func NewKPIController(kpis *services.KPIService, c clock.Clock) *KPIController {
	return &KPIController{KPIs: kpis, Clock: c}
}

func (kc *KPIController) parseDay(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	d, err := utils.ParseDay(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, name+": "+err.Error())
		return d, false
	}
	return d, true
}

// GET /api/admin/kpis?from&to, also served under /api/manager/kpis.
// Without a range the last 30 days up to today are reported.
func (kc *KPIController) Report(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	to, ok := kc.parseDay(c, "to", clock.Today(kc.Clock))
	if !ok {
		return
	}
	from, ok := kc.parseDay(c, "from", to.AddDate(0, 0, -(defaultKPIRangeDays-1)))
	if !ok {
		return
	}
	report, err := kc.KPIs.Report(c.Request.Context(), hotelID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

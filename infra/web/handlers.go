package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/12dit152/solarsim/core/model"
	"github.com/12dit152/solarsim/core/sizing"
)

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"session_id": s.sim.SessionID(),
		"snapshot":   s.sim.Snapshot(),
	})
}

func (s *Server) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.sim.Config())
}

func (s *Server) putConfig(c *gin.Context) {
	var cfg model.SystemConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.sim.SetConfig(cfg); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) getControls(c *gin.Context) {
	c.JSON(http.StatusOK, s.sim.Controls())
}

func (s *Server) putControls(c *gin.Context) {
	var req controlsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if req.Angle != nil {
		s.sim.SetControlAngle(*req.Angle)
	}
	ctl := s.sim.Controls()
	if req.SunIntensity != nil {
		if *req.SunIntensity < 0 || *req.SunIntensity > 1 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "sun_intensity must be in [0,1]"})
			return
		}
		ctl.SunIntensity = *req.SunIntensity
	}
	if req.TimeOfDay != nil {
		if *req.TimeOfDay < 0 || *req.TimeOfDay >= 24 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "time_of_day must be in [0,24)"})
			return
		}
		ctl.TimeOfDay = *req.TimeOfDay
	}
	if req.ACLoadW != nil {
		if *req.ACLoadW < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "ac_load_w must be non-negative"})
			return
		}
		ctl.ACLoadW = *req.ACLoadW
	}
	if req.Mode != nil {
		mode, err := model.ParseMode(*req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		ctl.Mode = mode
	}
	s.sim.SetControls(ctl)
	c.JSON(http.StatusOK, s.sim.Controls())
}

func (s *Server) postSizing(c *gin.Context) {
	var req sizingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	opts := sizing.DefaultOptions()
	if o := req.Options; o != nil {
		if o.SystemVoltage != nil {
			opts.SystemVoltage = *o.SystemVoltage
		}
		if o.DepthOfDischarge != nil {
			opts.DepthOfDischarge = *o.DepthOfDischarge
		}
		if o.AutonomyDays != nil {
			opts.AutonomyDays = *o.AutonomyDays
		}
		if o.PeakSunHours != nil {
			opts.PeakSunHours = *o.PeakSunHours
		}
		if o.PanelWattage != nil {
			opts.PanelWattage = *o.PanelWattage
		}
		if o.SystemDerate != nil {
			opts.SystemDerate = *o.SystemDerate
		}
		if o.InverterMargin != nil {
			opts.InverterMargin = *o.InverterMargin
		}
	}
	appliances := make([]sizing.Appliance, len(req.Appliances))
	for i, a := range req.Appliances {
		appliances[i] = sizing.Appliance{
			Name:        a.Name,
			Watts:       a.Watts,
			Quantity:    a.Quantity,
			HoursPerDay: a.HoursPerDay,
		}
	}
	rec, err := sizing.Recommend(appliances, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

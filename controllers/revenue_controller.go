package controllers

import (
	"context"
	"time"

	"tomato-backend/pkg/resp"
	"tomato-backend/repository"
	"tomato-backend/services"
	"tomato-backend/utils"

	"github.com/gin-gonic/gin"
)

type RevenueController struct {
	Revenue  *services.RevenueService
	RestRepo *repository.RestaurantRepository
	Timeout  time.Duration
}

func NewRevenueController(revenue *services.RevenueService, restRepo *repository.RestaurantRepository, timeout time.Duration) *RevenueController {
	return &RevenueController{Revenue: revenue, RestRepo: restRepo, Timeout: timeout}
}

// GET /revenue?period=today|weekly|monthly|yearly — owner's restaurant scope.
func (rc *RevenueController) Merchant(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	period, err := services.ParsePeriod(c.DefaultQuery("period", "monthly"))
	if err != nil {
		resp.Error(c, err)
		return
	}

	rest, err := rc.RestRepo.FindByOwner(uid)
	if err != nil {
		resp.NotFound(c, "restaurant not found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), rc.Timeout)
	defer cancel()

	report, err := rc.Revenue.Report(ctx, services.MerchantScope(rest.ID), period)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, report)
}

// GET /platform-revenue?period=... — platform scope, operator only.
func (rc *RevenueController) Platform(c *gin.Context) {
	period, err := services.ParsePeriod(c.DefaultQuery("period", "monthly"))
	if err != nil {
		resp.Error(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), rc.Timeout)
	defer cancel()

	report, err := rc.Revenue.Report(ctx, services.PlatformScope(), period)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, report)
}

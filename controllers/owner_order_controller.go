package controllers

import (
	"strconv"

	"tomato-backend/entity"
	"tomato-backend/pkg/resp"
	"tomato-backend/services"
	"tomato-backend/utils"

	"github.com/gin-gonic/gin"
)

type OwnerOrderController struct {
	Orders *services.OrderService
}

func NewOwnerOrderController(orders *services.OrderService) *OwnerOrderController {
	return &OwnerOrderController{Orders: orders}
}

// PATCH /orders/:id — owner advances the order along
// pending → preparing → ready → completed.
func (oc *OwnerOrderController) UpdateStatus(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	var req struct {
		OrderStatus entity.OrderStatus `json:"orderStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := oc.Orders.AdvanceStatus(uid, uint(id), req.OrderStatus); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": id, "status": req.OrderStatus})
}

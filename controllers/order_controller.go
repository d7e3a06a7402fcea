package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"tomato-backend/pkg/resp"
	"tomato-backend/services"
	"tomato-backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders  *services.OrderService
	Ratings *services.RatingService
}

func NewOrderController(orders *services.OrderService, ratings *services.RatingService) *OrderController {
	return &OrderController{Orders: orders, Ratings: ratings}
}

// POST /orders
func (oc *OrderController) Checkout(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	orders, err := oc.Orders.Checkout(uid, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"orders": orders, "paymentMethod": req.PaymentMethod})
}

// GET /orders — scoped to the caller: customers see their own orders,
// owners see their restaurant's.
func (oc *OrderController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	if utils.CurrentRole(c) == "owner" {
		items, err := oc.Orders.ListForOwner(uid, limit)
		if err != nil {
			resp.Error(c, err)
			return
		}
		resp.OK(c, gin.H{"orders": items})
		return
	}

	items, err := oc.Orders.ListForUser(uid, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": items})
}

// POST /orders/cancel
func (oc *OrderController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := oc.Orders.Cancel(uid, req.OrderID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": req.OrderID, "status": "cancelled"})
}

// POST /orders/rate (multipart: orderId, rating, review, images[])
func (oc *OrderController) Rate(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		OrderID uint   `form:"orderId" binding:"required"`
		Rating  int    `form:"rating" binding:"required"`
		Review  string `form:"review"`
	}
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var imagePaths []string
	if form, err := c.MultipartForm(); err == nil {
		for _, file := range form.File["images"] {
			filename := fmt.Sprintf("review_%d_%d%s", req.OrderID, time.Now().UnixNano(), filepath.Ext(file.Filename))
			savePath := filepath.Join("uploads", "reviews", filename)
			if err := c.SaveUploadedFile(file, savePath); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "cannot save file"})
				return
			}
			imagePaths = append(imagePaths, savePath)
		}
	}

	if err := oc.Ratings.Submit(uid, req.OrderID, req.Rating, req.Review, imagePaths); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": req.OrderID, "rating": req.Rating})
}

// DELETE /orders/:id/rating
func (oc *OrderController) RemoveRating(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}

	if err := oc.Ratings.Remove(uid, uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"orderId": id})
}

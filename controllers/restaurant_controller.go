package controllers

import (
	"strconv"

	"tomato-backend/pkg/resp"
	"tomato-backend/repository"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Repo *repository.RestaurantRepository
}

func NewRestaurantController(repo *repository.RestaurantRepository) *RestaurantController {
	return &RestaurantController{Repo: repo}
}

// GET /restaurants
func (rc *RestaurantController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := rc.Repo.List(limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurants": items})
}

// GET /restaurants/:id/menu
func (rc *RestaurantController) Menu(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}

	if _, err := rc.Repo.FindByID(uint(id)); err != nil {
		resp.NotFound(c, "restaurant not found")
		return
	}

	items, err := rc.Repo.ListMenu(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"menu": items})
}

package controllers

import (
	"strconv"

	"tomato-backend/entity"
	"tomato-backend/pkg/resp"
	"tomato-backend/repository"
	"tomato-backend/services"
	"tomato-backend/utils"

	"github.com/gin-gonic/gin"
)

type WalletController struct {
	Wallet  *services.WalletService
	TxnRepo *repository.TransactionRepository
}

func NewWalletController(wallet *services.WalletService, txnRepo *repository.TransactionRepository) *WalletController {
	return &WalletController{Wallet: wallet, TxnRepo: txnRepo}
}

// POST /wallet/recharge
func (wc *WalletController) Recharge(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		Amount        int64                `json:"amount" binding:"required"`
		PaymentMethod entity.PaymentMethod `json:"paymentMethod" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	txn, err := wc.Wallet.Recharge(uid, req.Amount, req.PaymentMethod)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"transaction": txn})
}

// POST /premium/purchase
func (wc *WalletController) PurchasePremium(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req struct {
		PaymentMethod entity.PaymentMethod `json:"paymentMethod" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	txn, err := wc.Wallet.PurchasePremium(uid, req.PaymentMethod)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"transaction": txn})
}

// GET /transactions — the caller's payment history, newest first.
func (wc *WalletController) History(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := wc.TxnRepo.ListForUser(uid, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"transactions": items})
}

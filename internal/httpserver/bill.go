package httpserver

import (
	"net/http"

	billsvc "billing-app/internal/service/bill"
	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (a *api) createBill(c *gin.Context) {
	var req billsvc.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := a.deps.BillSvc.Create(c.Request.Context(), req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (a *api) listBills(c *gin.Context) {
	bills, err := a.deps.BillSvc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (a *api) getBill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	bill, err := a.deps.BillSvc.Get(c.Request.Context(), id)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (a *api) updateBill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req billsvc.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := a.deps.BillSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (a *api) deleteBill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.deps.BillSvc.Delete(c.Request.Context(), id); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) setBillStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.deps.BillSvc.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

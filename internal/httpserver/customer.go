package httpserver

import (
	"net/http"

	custsvc "billing-app/internal/service/customer"
	"github.com/gin-gonic/gin"
)

func (a *api) createCustomer(c *gin.Context) {
	var req custsvc.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := a.deps.CustomerSvc.Create(c.Request.Context(), req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (a *api) listCustomers(c *gin.Context) {
	customers, err := a.deps.CustomerSvc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (a *api) getCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	customer, err := a.deps.CustomerSvc.Get(c.Request.Context(), id)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (a *api) updateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req custsvc.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := a.deps.CustomerSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (a *api) deleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.deps.CustomerSvc.Delete(c.Request.Context(), id); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) listCustomerBills(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	bills, err := a.deps.BillSvc.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

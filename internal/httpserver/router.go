package httpserver

import (
	"context"
	"log"
	"time"

	"billing-app/internal/domain"
	billsvc "billing-app/internal/service/bill"
	custsvc "billing-app/internal/service/customer"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerService is the customer surface the router depends on.
type CustomerService interface {
	Create(ctx context.Context, in custsvc.Input) (*domain.Customer, error)
	Update(ctx context.Context, id int64, in custsvc.Input) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context, term string) ([]domain.Customer, error)
}

// BillService is the bill surface the router depends on.
type BillService interface {
	Create(ctx context.Context, in billsvc.Input) (*domain.Bill, error)
	Update(ctx context.Context, id int64, in billsvc.Input) (*domain.Bill, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Bill, error)
	SetStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, term string) ([]domain.BillSummary, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.BillSummary, error)
}

// Deps carries the services the router needs.
type Deps struct {
	CustomerSvc CustomerService
	BillSvc     BillService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, requestTimeout time.Duration) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())
	if requestTimeout > 0 {
		router.Use(timeoutMiddleware(requestTimeout))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	a := &api{logger: logger, deps: deps}

	v1 := router.Group("/api/v1")

	customers := v1.Group("/customers")
	customers.POST("", a.createCustomer)
	customers.GET("", a.listCustomers)
	customers.GET("/:id", a.getCustomer)
	customers.PUT("/:id", a.updateCustomer)
	customers.DELETE("/:id", a.deleteCustomer)
	customers.GET("/:id/bills", a.listCustomerBills)

	bills := v1.Group("/bills")
	bills.POST("", a.createBill)
	bills.GET("", a.listBills)
	bills.GET("/:id", a.getBill)
	bills.PUT("/:id", a.updateBill)
	bills.DELETE("/:id", a.deleteBill)
	bills.PATCH("/:id/status", a.setBillStatus)

	return router
}

type api struct {
	logger *log.Logger
	deps   Deps
}

// timeoutMiddleware bounds every request context so no statement can run
// without a deadline.
func timeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

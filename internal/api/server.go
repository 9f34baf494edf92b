package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/fleetdepot/depot/docs"
	v1 "github.com/fleetdepot/depot/internal/api/handler/v1"
	"github.com/fleetdepot/depot/internal/api/middleware"
	"github.com/fleetdepot/depot/internal/config"
	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/repository"
	"github.com/fleetdepot/depot/internal/repository/dao"
	"github.com/fleetdepot/depot/internal/service"
)

const basePath = "/api/v1"

// Deps are the process-wide collaborators the handlers are built on.
// ETL is nil when the parts feed is disabled.
type Deps struct {
	DB        *gorm.DB
	Publisher service.Publisher
	Cache     service.StockCache
	Hub       v1.StreamHub
	ETL       v1.ETLJob
}

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	CORS   *middleware.ReloadableCORS
}

type handlers struct {
	auth     *v1.AuthHandler
	user     *v1.UserHandler
	part     *v1.PartHandler
	bin      *v1.BinHandler
	receipt  *v1.ReceiptHandler
	pickslip *v1.PickslipHandler
	stock    *v1.StockHandler
	sales    *v1.SalesHandler
	report   *v1.ReportHandler
	stream   *v1.StreamHandler
	etl      *v1.ETLHandler
}

func NewServer(conf *config.AppConfig, deps Deps) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		CORS:   middleware.NewReloadableCORS(conf.API.AllowedCORSDomains),
	}

	s.MountMiddlewares()

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(deps.DB)))
	s.MountHandlers(userSvc, s.initHandlers(deps, userSvc))

	return s
}

func (s *Server) initHandlers(deps Deps, userSvc *service.UserService) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(deps.DB))
	partRepo := repository.NewPartRepository(dao.NewPartDAO(deps.DB))
	stockRepo := repository.NewStockRepository(dao.NewStockDAO(deps.DB))
	binRepo := repository.NewBinRepository(dao.NewBinDAO(deps.DB))
	receiptRepo := repository.NewReceiptRepository(dao.NewReceiptDAO(deps.DB))
	pickslipRepo := repository.NewPickslipRepository(dao.NewPickslipDAO(deps.DB))
	salesRepo := repository.NewSalesRepository(dao.NewSalesDAO(deps.DB))
	reportRepo := repository.NewReportRepository(dao.NewReportDAO(deps.DB))

	h := handlers{
		auth:     v1.NewAuthHandler(s.Config.API, service.NewAuthService(userRepo)),
		user:     v1.NewUserHandler(userSvc),
		part:     v1.NewPartHandler(service.NewPartService(partRepo, stockRepo, deps.Cache)),
		bin:      v1.NewBinHandler(service.NewBinService(binRepo)),
		receipt:  v1.NewReceiptHandler(service.NewReceivingService(receiptRepo, deps.Publisher, deps.Cache)),
		pickslip: v1.NewPickslipHandler(service.NewPickslipService(pickslipRepo, deps.Publisher, deps.Cache)),
		stock:    v1.NewStockHandler(service.NewStockService(stockRepo, deps.Publisher, deps.Cache)),
		sales:    v1.NewSalesHandler(service.NewSalesService(salesRepo)),
		report:   v1.NewReportHandler(service.NewReportService(reportRepo)),
		stream:   v1.NewStreamHandler(deps.Hub, s.Config.API.AllowedCORSDomains),
	}
	if deps.ETL != nil {
		h.etl = v1.NewETLHandler(deps.ETL)
	}

	return h
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.AccessLog())
	s.Router.Use(gin.Recovery())
	s.Router.Use(s.CORS.Handler())
}

func (s *Server) MountHandlers(users v1.UserService, h handlers) {
	api := s.Router.Group(basePath)
	{
		api.POST("/auth/signup", h.auth.HandleSignup)
		api.POST("/auth/login", h.auth.HandleLogin)
	}

	authed := api.Group("", middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	authed.GET("/stream", h.stream.HandleStream)

	anyone := authed.Group("", v1.RequireRoles(users))
	{
		anyone.GET("/users/:userID", h.user.HandleGetUser)

		anyone.GET("/parts", h.part.HandleListParts)
		anyone.GET("/parts/:partID", h.part.HandleGetPart)
		anyone.GET("/parts/:partID/stock", h.part.HandleGetPartStock)

		anyone.GET("/bins", h.bin.HandleListBins)
		anyone.GET("/bins/:binID", h.bin.HandleGetBin)
		anyone.GET("/bins/:binID/stock", h.bin.HandleGetBinStock)

		anyone.GET("/receipts", h.receipt.HandleListReceipts)
		anyone.GET("/receipts/:receiptID", h.receipt.HandleGetReceipt)

		anyone.GET("/pickslips", h.pickslip.HandleListPickslips)
		anyone.GET("/pickslips/:pickslipID", h.pickslip.HandleGetPickslip)
		anyone.GET("/pickslips/:pickslipID/picks", h.pickslip.HandleSuggestPicks)
		anyone.GET("/pickslips/:pickslipID/holdings", h.pickslip.HandleListHoldings)

		anyone.GET("/stock/movements", h.stock.HandleListMovements)

		anyone.GET("/reports/stock-on-hand", h.report.HandleStockOnHand)
		anyone.GET("/reports/stock-on-hand.xlsx", h.report.HandleStockOnHandXLSX)
	}

	clerks := authed.Group("", v1.RequireRoles(users, domain.RoleAdmin, domain.RoleClerk))
	{
		clerks.POST("/parts", h.part.HandleCreatePart)
		clerks.PUT("/parts/:partID", h.part.HandleUpdatePart)

		clerks.POST("/bins", h.bin.HandleCreateBin)
		clerks.PUT("/bins/:binID", h.bin.HandleUpdateBin)

		clerks.POST("/receipts", h.receipt.HandleCreateReceipt)
		clerks.POST("/receipts/:receiptID/cancel", h.receipt.HandleCancelReceipt)
		clerks.POST("/receipts/:receiptID/allocations", h.receipt.HandleAllocate)

		clerks.POST("/transfers", h.stock.HandleTransfer)
	}

	pickers := authed.Group("", v1.RequireRoles(users, domain.RoleAdmin, domain.RoleClerk, domain.RolePicker))
	{
		pickers.POST("/pickslips", h.pickslip.HandleCreatePickslip)
		pickers.POST("/pickslips/:pickslipID/complete", h.pickslip.HandleCompletePickslip)
		pickers.POST("/pickslips/:pickslipID/cancel", h.pickslip.HandleCancelPickslip)
		pickers.POST("/pickslips/:pickslipID/holdings", h.pickslip.HandleHold)
		pickers.POST("/holdings/:holdingID/release", h.pickslip.HandleReleaseHolding)
		pickers.POST("/holdings/:holdingID/transfer", h.pickslip.HandleTransferHolding)
	}

	sales := authed.Group("", v1.RequireRoles(users, domain.RoleAdmin, domain.RoleSales))
	{
		sales.GET("/leads", h.sales.HandleListLeads)
		sales.POST("/leads", h.sales.HandleCreateLead)
		sales.GET("/leads/:leadID", h.sales.HandleGetLead)
		sales.PUT("/leads/:leadID", h.sales.HandleUpdateLead)
		sales.GET("/quotes", h.sales.HandleListQuotes)
		sales.POST("/quotes", h.sales.HandleCreateQuote)
		sales.GET("/quotes/:quoteID", h.sales.HandleGetQuote)
		sales.POST("/quotes/:quoteID/status", h.sales.HandleChangeQuoteStatus)
	}

	admins := authed.Group("", v1.RequireRoles(users, domain.RoleAdmin))
	admins.POST("/users", h.auth.HandleCreateUser)

	if h.etl != nil {
		anyone.GET("/etl/runs", h.etl.HandleListRuns)
		admins.POST("/etl/runs", h.etl.HandleRunNow)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

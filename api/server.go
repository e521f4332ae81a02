package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/medi-route/triage-api/external/emergency"
	"github.com/medi-route/triage-api/logmodule"
	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/share/upstream"
	"github.com/medi-route/triage-api/store"
	"github.com/medi-route/triage-api/triage"
	"github.com/medi-route/triage-api/utils"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Triager runs the triage pipeline of a report
type Triager interface {
	Triage(ctx context.Context, req triage.Request) (*triage.Result, error)
	SelectDestination(ctx context.Context, sel triage.Selection) (*triage.RouteResult, error)
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	mongoStore store.MongoStore

	// Triage pipeline
	triager Triager

	// External services
	emergencyInfo emergency.EmergencyInfo
	caller        *upstream.Caller

	// JWT signing secret
	jwtSecret []byte
}

// NewServer new instance of server
func NewServer(
	mongoStore store.MongoStore,
	triager Triager,
	emergencyInfo emergency.EmergencyInfo,
	caller *upstream.Caller,
	jwtSecret []byte) *Server {
	return &Server{
		mongoStore:    mongoStore,
		triager:       triager,
		emergencyInfo: emergencyInfo,
		caller:        caller,
		jwtSecret:     jwtSecret,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(cors.New(corsConfig(viper.GetStringSlice("cors.origins"))))

	r.GET("/healthz", s.healthz)

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.GET("/information", s.information)

	v1Route := apiRoute.Group("/v1")
	v1Route.Use(s.authMiddleware())
	v1Route.Use(s.requireRole(schema.RoleDoctor))

	reportRoute := v1Route.Group("/report")
	{
		reportRoute.POST("/create", s.createReport)
		reportRoute.POST("/getlist", s.getReportList)
		reportRoute.GET("/list", s.getReportList)
		reportRoute.GET("/getdetail/:id", s.getReportDetail)
		reportRoute.PATCH("/update-severe", s.updateSeverity)
		reportRoute.PATCH("/update-destination/:id", s.updateDestination)
		reportRoute.PATCH("/update/:id", s.updateReport)
	}

	triageRoute := v1Route.Group("/triage")
	{
		triageRoute.POST("", s.runTriage)
		triageRoute.POST("/:id/destination", s.selectDestination)
	}

	emergencyRoute := v1Route.Group("/api")
	{
		emergencyRoute.GET("/getEmergencyInfo", s.getEmergencyInfo)
	}

	secretRoute := r.Group("/secret")
	secretRoute.Use(logmodule.Ginrus("Secret"))
	secretRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.admin")))
	{
		secretRoute.POST("/users", s.createUser)
		secretRoute.POST("/tokens", s.issueToken)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return config
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.mongoStore.Ping(c.Request.Context())
	if shouldInterupt(err, c) {
		return
	}

	upstreams := map[string]string{}
	if s.caller != nil {
		for name, state := range s.caller.Breakers() {
			upstreams[name] = state.String()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"version":   viper.GetString("server.version"),
		"upstreams": upstreams,
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"system_version": "Triage 1.0",
			"docs":           viper.GetStringMap("docs"),
		},
	})
}

// Response is the envelope of a successful request
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

var successMessages = map[string]string{
	"ok":             "ok",
	"report_created": "the report has been created",
	"report_updated": "the report has been updated",
	"user_created":   "the user has been created",
}

func localize(c *gin.Context, messageID, fallback string) string {
	return utils.Localize(messageID, fallback, c.GetHeader("Accept-Language"))
}

func responseWithData(c *gin.Context, code int, messageID string, data interface{}) {
	c.JSON(code, Response{
		Success: true,
		Message: localize(c, messageID, successMessages[messageID]),
		Data:    data,
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	obj.Message = localize(c, obj.messageID, obj.Message)

	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}

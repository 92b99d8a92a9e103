// Package handlers exposes one REST resource per entity. Every handler
// follows the same shape: bind, run field rules and referential checks
// (first failure wins), hit the store once, map to the transfer shape.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"insureops/api/internal/config"
	"insureops/api/internal/service"
	"insureops/api/internal/store"
)

type HandlerSet struct {
	log     zerolog.Logger
	cfg     *config.AppConfig
	store   store.Store
	account *service.AccountService
}

func NewHandlerSet(log zerolog.Logger, st store.Store, cfg *config.AppConfig) HandlerSet {
	return HandlerSet{
		log:     log,
		cfg:     cfg,
		store:   st,
		account: service.NewAccountService(st, cfg, log),
	}
}

// Mount registers every resource under the given group.
func (h HandlerSet) Mount(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	customers := router.Group("/customers")
	customers.GET("", h.ListCustomers)
	customers.GET("/:id", h.GetCustomer)
	customers.POST("", h.CreateCustomer)
	customers.PUT("/:id", h.UpdateCustomer)
	customers.DELETE("/:id", h.DeleteCustomer)

	employees := router.Group("/employees")
	employees.GET("", h.ListEmployees)
	employees.GET("/:id", h.GetEmployee)
	employees.POST("", h.CreateEmployee)
	employees.PUT("/:id", h.UpdateEmployee)
	employees.PATCH("/:id", h.PatchEmployee)
	employees.DELETE("/:id", h.DeleteEmployee)

	policies := router.Group("/policies")
	policies.GET("", h.ListPolicies)
	policies.GET("/:id", h.GetPolicy)
	policies.POST("", h.CreatePolicy)
	policies.PUT("/:id", h.UpdatePolicy)
	policies.DELETE("/:id", h.DeletePolicy)

	claims := router.Group("/claims")
	claims.GET("", h.ListClaims)
	claims.GET("/:id", h.GetClaim)
	claims.POST("", h.CreateClaim)
	claims.PUT("/:id", h.UpdateClaim)
	claims.DELETE("/:id", h.DeleteClaim)

	notes := router.Group("/claim-notes")
	notes.GET("", h.ListClaimNotes)
	notes.GET("/:id", h.GetClaimNote)
	notes.POST("", h.CreateClaimNote)
	notes.PUT("/:id", h.UpdateClaimNote)
	notes.DELETE("/:id", h.DeleteClaimNote)

	records := router.Group("/customer-records")
	records.GET("", h.ListCustomerRecords)
	records.GET("/:id", h.GetCustomerRecord)
	records.POST("", h.CreateCustomerRecord)
	records.PUT("/:id", h.UpdateCustomerRecord)
	records.DELETE("/:id", h.DeleteCustomerRecord)

	announcements := router.Group("/announcements")
	announcements.GET("", h.ListAnnouncements)
	announcements.GET("/:id", h.GetAnnouncement)
	announcements.POST("", h.CreateAnnouncement)
	announcements.PUT("/:id", h.UpdateAnnouncement)
	announcements.DELETE("/:id", h.DeleteAnnouncement)

	releases := router.Group("/releases")
	releases.GET("", h.ListReleases)
	releases.GET("/:version", h.GetRelease)
	releases.POST("", h.CreateRelease)
	releases.PUT("/:version", h.UpdateRelease)
	releases.DELETE("/:version", h.DeleteRelease)

	users := router.Group("/users")
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.POST("", h.CreateUser)
	users.PUT("/:id", h.UpdateUser)
	users.PATCH("/:id", h.PatchUser)
	users.DELETE("/:id", h.DeleteUser)

	sessions := router.Group("/sessions")
	sessions.GET("/:id", h.GetSession)
	sessions.POST("", h.CreateSession)

	audits := router.Group("/login-audits")
	audits.GET("", h.ListLoginAudits)
	audits.GET("/:id", h.GetLoginAudit)
	audits.POST("", h.CreateLoginAudit)
	audits.PUT("/:id", h.UpdateLoginAudit)
	audits.DELETE("/:id", h.DeleteLoginAudit)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterAccount)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
}

func (h HandlerSet) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// idParam parses the numeric :id segment; a malformed id is a client error.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// storeError maps a gateway failure: missing rows are the caller's problem,
// anything else is ours and gets logged before the generic 500.
func (h HandlerSet) storeError(c *gin.Context, err error, notFoundMsg string) {
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("persistence error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func inFuture(t time.Time) bool {
	return t.After(time.Now())
}

// patchOp is a single field-level patch operation. Operations are applied
// in order to a copy of the entity, which is re-validated as a whole before
// anything is persisted.
type patchOp struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value"`
}

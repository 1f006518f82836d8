package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hireloop/jobboard-service/internal/auth"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/services"
	"github.com/hireloop/jobboard-service/internal/utils"
	"github.com/hireloop/jobboard-service/internal/validator"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	userHandler        *UserHandler
	companyHandler     *CompanyHandler
	positionHandler    *PositionHandler
	skillHandler       *SkillHandler
	applicationHandler *ApplicationHandler
	testHandler        *TestHandler
	authMiddleware     *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	tokens *auth.TokenManager,
	tokenStore *auth.TokenStore,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewJWTAuthMiddleware(tokens, tokenStore, userRepo)

	return &HandlerManager{
		authHandler:        NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:        NewUserHandler(serviceManager.User(), serviceManager.Auth(), logger),
		companyHandler:     NewCompanyHandler(serviceManager.Company(), logger),
		positionHandler:    NewPositionHandler(serviceManager.Position(), validator, logger),
		skillHandler:       NewSkillHandler(serviceManager.Skill(), validator, logger),
		applicationHandler: NewApplicationHandler(serviceManager.Application(), serviceManager.Export(), validator, logger),
		testHandler:        NewTestHandler(serviceManager.Test(), validator, logger),
		authMiddleware:     authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public routes
	api.POST("/register", hm.authHandler.Register)
	api.POST("/login", hm.authHandler.Login)

	companies := api.Group("/companies")
	{
		companies.GET("/get-all", hm.companyHandler.ListCompanies)
		companies.GET("/get-by-name/:name", hm.companyHandler.SearchCompaniesByName)
	}

	skills := api.Group("/skills")
	{
		skills.GET("/get-all", hm.skillHandler.ListSkills)
		skills.GET("/get-by-title/:title", hm.skillHandler.SearchSkillsByTitle)
	}

	positions := api.Group("/positions")
	{
		positions.GET("/get-all", hm.positionHandler.ListPositions)
		positions.GET("/get-by-id/:positionId", hm.positionHandler.GetPosition)
		positions.GET("/get-by-keyword/:word", hm.positionHandler.SearchPositions)
		positions.GET("/get-by-company/:companyId", hm.positionHandler.ListPositionsByCompany)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.GET("/my-profile", hm.userHandler.GetProfile)
		authed.POST("/logout", hm.authHandler.Logout)
		authed.PUT("/my-profile/update", hm.userHandler.UpdateProfile)
		authed.PUT("/my-profile/delete", hm.userHandler.DeleteProfile)

		authed.POST("/skills/add-known-skill", hm.skillHandler.AddKnownSkill)
		authed.POST("/skills/remove-known-skill", hm.skillHandler.RemoveKnownSkill)

		authed.GET("/applications/my-applications", hm.applicationHandler.ListMyApplications)
		authed.POST("/applications/apply", hm.applicationHandler.Apply)

		authed.GET("/tests/my-tests", hm.testHandler.ListMyTests)

		authed.GET("/users/get-all", hm.userHandler.ListUsers)
		authed.GET("/users/get-by-skill/:word", hm.userHandler.ListUsersBySkill)
	}

	// Recruiter routes
	recruiter := api.Group("")
	recruiter.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRecruiter())
	{
		recruiter.GET("/companies/get-my-companies", hm.companyHandler.ListMyCompanies)
		recruiter.POST("/companies/new", hm.companyHandler.CreateCompany)
		recruiter.PUT("/companies/update/:companyId", hm.companyHandler.UpdateCompany)

		recruiter.POST("/skills/new", hm.skillHandler.CreateSkill)
		recruiter.PUT("/skills/update/:skillId", hm.skillHandler.UpdateSkill)
		recruiter.DELETE("/skills/delete/:skillId", hm.skillHandler.DeleteSkill)

		recruiter.POST("/positions/new", hm.positionHandler.CreatePosition)
		recruiter.POST("/positions/attach-skill", hm.positionHandler.AttachSkill)
		recruiter.POST("/positions/attach-skill-list", hm.positionHandler.AttachSkillList)
		recruiter.POST("/positions/detach-skill", hm.positionHandler.DetachSkill)
		recruiter.POST("/positions/detach-skill-list", hm.positionHandler.DetachSkillList)
		recruiter.PUT("/positions/update/:positionId", hm.positionHandler.UpdatePosition)

		recruiter.GET("/applications/get-by-position/:positionId", hm.applicationHandler.ListByPosition)
		recruiter.GET("/applications/export-by-position/:positionId", hm.applicationHandler.ExportByPosition)
		recruiter.PUT("/applications/reject-application/:applicationId", hm.applicationHandler.Reject)

		recruiter.POST("/tests/new", hm.testHandler.CreateTest)
		recruiter.POST("/tests/attach-skill", hm.testHandler.AttachSkill)
		recruiter.POST("/tests/detach-skill", hm.testHandler.DetachSkill)
		recruiter.PUT("/tests/evaluate-skill/:skillMarkId", hm.testHandler.EvaluateSkill)
		recruiter.PUT("/tests/evaluate-test/:testId", hm.testHandler.EvaluateTest)
		recruiter.PUT("/tests/update/:testId", hm.testHandler.UpdateTest)
		recruiter.DELETE("/tests/delete/:testId", hm.testHandler.DeleteTest)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "jobboard-service",
		})
	})
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/safetrack/ehs-platform/docs"
	"github.com/safetrack/ehs-platform/handlers"
	"github.com/safetrack/ehs-platform/middleware"
	"github.com/safetrack/ehs-platform/response"
	"github.com/safetrack/ehs-platform/utils"
	"github.com/safetrack/ehs-platform/websocket"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers, auth *middleware.Auth, hub *websocket.Hub) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler))

	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)
	r.POST("/billing/webhook", h.Billing.Webhook)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuthMiddleware(), auth.OrgMember())
	{
		authed.GET("/me", h.User.GetMe)
		authed.PUT("/me", h.User.UpdateMe)
		authed.GET("/navigation", h.Navigation.Menu)

		authed.GET("/ws/submissions", auth.Reviewer(), func(c *gin.Context) {
			claims, err := utils.GetClaimsFromContext(c)
			if err != nil {
				c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
				return
			}
			hub.Serve(c.Writer, c.Request, claims.OrgID)
		})

		templates := authed.Group("/templates", auth.RoutePolicy())
		{
			templates.GET("", h.Template.ListTemplates)
			templates.GET("/:id", h.Template.GetTemplate)
			templates.GET("/:id/versions", h.Template.ListVersions)
			templates.POST("", h.Template.CreateTemplate)
			templates.PUT("/:id", h.Template.UpdateTemplate)
			templates.PUT("/:id/active", h.Template.ToggleActive)
			templates.DELETE("/:id", h.Template.DeleteTemplate)
		}

		system := authed.Group("/system-templates", auth.RoutePolicy())
		{
			system.GET("", h.SystemTemplate.ListSystemTemplates)
			system.GET("/:id", h.SystemTemplate.GetSystemTemplate)
			system.POST("/:id/copy", h.SystemTemplate.CopyIntoOrg)
		}

		submissions := authed.Group("/submissions", auth.RoutePolicy())
		{
			submissions.POST("", h.Submission.Submit)
			submissions.GET("", auth.Reviewer(), h.Submission.ListSubmissions)
			submissions.GET("/mine", h.Submission.ListMySubmissions)

			submissions.PUT("/drafts", h.Submission.SaveDraft)
			submissions.GET("/drafts", h.Submission.ListMyDrafts)
			submissions.GET("/drafts/:templateId", h.Submission.GetDraft)
			submissions.DELETE("/drafts/:templateId", h.Submission.DeleteDraft)

			submissions.PUT("/review/:id", h.Submission.Review)

			submissions.GET("/:id", h.Submission.GetSubmission)
			submissions.POST("/:id/attachments", h.Submission.UploadAttachment)
			submissions.GET("/:id/attachments/:key/url", h.Submission.AttachmentURL)
		}

		members := authed.Group("/members", auth.RoutePolicy())
		{
			members.GET("", h.Member.ListMembers)
			members.POST("", h.Member.CreateMember)
			members.PUT("/:id/role", h.Member.UpdateRole)
			members.DELETE("/:id", h.Member.RemoveMember)
		}

		reports := authed.Group("/reports", auth.RoutePolicy())
		{
			reports.GET("/summary", h.Report.Summary)
			reports.GET("/export", h.Report.Export)
		}

		audit := authed.Group("/audit", auth.RoutePolicy())
		{
			audit.GET("", h.Audit.ListAuditLogs)
		}
	}
}

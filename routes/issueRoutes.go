package routes

import (
	"urbanreport-be/controllers"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes. createLimiter guards report
// creation and may be nil.
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController, createLimiter gin.HandlerFunc) {
	create := []gin.HandlerFunc{ic.CreateIssue}
	if createLimiter != nil {
		create = append([]gin.HandlerFunc{createLimiter}, create...)
	}

	issue := r.Group("/api/issues")
	{
		issue.GET("", ic.GetAllIssues)
		issue.GET("/stats", ic.GetIssueStats)
		issue.GET("/export", ic.ExportIssues)
		issue.POST("", create...)
		issue.GET("/:id", ic.GetIssue)
		issue.DELETE("/:id", ic.DeleteIssue)
		issue.PATCH("/:id/status", ic.UpdateIssueStatus)
		issue.POST("/:id/notify", ic.NotifyIssue)
		issue.POST("/:id/like", ic.LikeIssue)
		issue.DELETE("/:id/like", ic.UnlikeIssue)
		issue.GET("/:id/comments", ic.GetComments)
		issue.POST("/:id/comments", ic.AddComment)
	}
}

package routes

import (
	"Scrimhub/controllers"
	"Scrimhub/middleware"
	"Scrimhub/services/redis"
	socketio_types "Scrimhub/services/socket_io/types"
	utils "Scrimhub/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient, sio *socketio_types.SocketServer) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/signup", controllers.SignUp(db))

	api.POST("/login", controllers.Login(db))

	api.GET("/users/:username", controllers.GetUserPublicInfo(db))

	api.GET("/teams/:team_id", controllers.GetTeam(db))

	api.GET("/tournaments", controllers.ListTournaments(db))

	api.GET("/tournaments/:tournament_id", controllers.GetTournament(db))

	api.GET("/tournaments/:tournament_id/standings", controllers.GetTournamentStandings(db))

	api.GET("/stats/players/:username", controllers.GetPlayerStats(db))

	api.GET("/stats/teams/:team_id", controllers.GetTeamStats(db))

	api.GET("/matches", controllers.ListMatches(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.GetUserPrivateInfo(db))

		authentication.PATCH("/update", controllers.UpdateUserInfo(db))

		// Friends
		authentication.GET("/friends", controllers.ListFriends(db, redisClient))

		authentication.POST("/sendFriendRequest", controllers.SendFriendRequest(db))

		authentication.GET("/friendship_requests", controllers.GetAllFriendshipRequests(db))

		authentication.POST("/acceptFriendRequest", controllers.AcceptFriendRequest(db))

		authentication.DELETE("/delete_friendship_request", controllers.DeleteFriendshipRequest(db))

		authentication.DELETE("/deleteFriend", controllers.DeleteFriend(db))

		// Teams
		authentication.POST("/teams", controllers.CreateTeam(db))

		authentication.GET("/teams", controllers.ListMyTeams(db))

		authentication.POST("/teams/:team_id/members", controllers.AddTeamMember(db))

		authentication.DELETE("/teams/:team_id/members/:username", controllers.RemoveTeamMember(db))

		// Matches
		authentication.POST("/matches", controllers.CreateMatch(db))

		authentication.GET("/matches/:match_id", controllers.GetMatch(db))

		authentication.POST("/matches/:match_id/complete_setup", controllers.CompleteMatchSetup(db))

		authentication.POST("/matches/:match_id/start", controllers.StartMatch(db, sio))

		authentication.POST("/matches/:match_id/cancel", controllers.CancelMatch(db, sio))

		authentication.POST("/matches/:match_id/result", controllers.ReportMatchResult(db, sio))

		authentication.GET("/matches/:match_id/chat", controllers.GetMatchChat(db))

		authentication.GET("/matches/:match_id/veto", controllers.GetVetoState(db, redisClient))

		// Invitations
		authentication.GET("/matches/:match_id/team_search", controllers.SearchInvitableTeams(db))

		authentication.POST("/matches/:match_id/invitations", controllers.InviteTeam(db, sio))

		authentication.GET("/invitations", controllers.ListMyInvitations(db))

		authentication.POST("/invitations/:invitation_id/accept", controllers.AcceptInvitation(db, sio))

		authentication.POST("/invitations/:invitation_id/decline", controllers.DeclineInvitation(db))

		authentication.DELETE("/invitations/:invitation_id", controllers.CancelInvitation(db))

		// Disputes
		authentication.POST("/matches/:match_id/disputes", controllers.CreateDispute(db, sio))

		authentication.GET("/matches/:match_id/disputes", controllers.ListDisputes(db))

		authentication.POST("/disputes/:dispute_id/resolve", controllers.ResolveDispute(db))

		// Tournaments
		authentication.POST("/tournaments", controllers.CreateTournament(db))

		authentication.POST("/tournaments/:tournament_id/register", controllers.RegisterTeam(db))

		// External game APIs
		authentication.GET("/players/:player_id/profile", controllers.LookupPlayerProfile(db))

		authentication.GET("/players/:player_id/recent_matches", controllers.LookupRecentMatches(db))
	}
}

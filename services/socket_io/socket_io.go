package socket_io

import (
	redis_models "Scrimhub/models/redis"
	"Scrimhub/services/redis"
	"Scrimhub/services/socket_io/handlers"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	socketio_types "Scrimhub/services/socket_io/types"
	socketio_utils "Scrimhub/services/socket_io/utils"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.UserConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, username, _ := socketio_utils.VerifyUserConnection(client, db)
		if !success {
			return
		}

		// Add connection to map and mark the player online
		(*socketio_types.SocketServer)(sio).AddConnection(username, client)
		if err := redisClient.SavePlayerPresence(&redis_models.PlayerPresence{
			Username: username,
			Status:   redis_models.StatusOnline,
			LastPing: time.Now().Unix(),
			SocketID: string(client.Id()),
		}); err != nil {
			fmt.Println("Error saving presence for", username, ":", err)
		}

		fmt.Println("An individual just connected!: ", username)

		// Join the room of a match the user participates in
		client.On("join_match", handlers.HandleJoinMatch(client, db, username, (*socketio_types.SocketServer)(sio)))

		// Leave a match room voluntarily
		client.On("leave_match", handlers.HandleLeaveMatch(client, username, (*socketio_types.SocketServer)(sio)))

		// Send a chat message to everyone in the match room
		client.On("match_message", handlers.HandleMatchMessage(client, db, username, (*socketio_types.SocketServer)(sio)))

		// Start the map veto of a match (scheduler only)
		client.On("start_veto", handlers.HandleStartVeto(redisClient, client, db, username, (*socketio_types.SocketServer)(sio)))

		// Ban a map on behalf of the caller's team
		client.On("ban_map", handlers.HandleBanMap(redisClient, client, db, username, (*socketio_types.SocketServer)(sio)))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(username, (*socketio_types.SocketServer)(sio), redisClient))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}

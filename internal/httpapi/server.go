// Package httpapi exposes the local store to the cashier and admin UIs
// over HTTP. The server binds to the device's loopback or LAN address; it
// is not the remote sync endpoint.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/clearpond/kassa/internal/pos"
	"github.com/clearpond/kassa/internal/receipt"
)

type Server struct {
	engine *gin.Engine
	store  *pos.Store
	org    receipt.Org
}

func NewServer(store *pos.Store, org receipt.Org) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{engine: r, store: store, org: org}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		services := api.Group("/services")
		services.GET("", s.listServices)
		services.POST("", s.createService)
		services.PUT(":id", s.updateService)
		services.DELETE(":id", s.deleteService)

		orders := api.Group("/orders")
		orders.POST("", s.createOrder)
		orders.GET("", s.listOrders)
		orders.GET(":id", s.getOrder)
		orders.PUT(":id", s.updateOrder)
		orders.DELETE(":id", s.deleteOrder)
		orders.GET(":id/receipt", s.orderReceipt)

		api.GET("/stats", s.getStats)

		clients := api.Group("/clients")
		clients.GET("", s.listClients)
		clients.GET(":phone", s.getClient)
		clients.PUT(":phone", s.setClient)
		clients.DELETE(":phone", s.deleteClient)

		settings := api.Group("/settings")
		settings.GET(":key", s.getSetting)
		settings.PUT(":key", s.setSetting)
		settings.DELETE(":key", s.deleteSetting)

		api.POST("/auth", s.checkPassword)
	}
}

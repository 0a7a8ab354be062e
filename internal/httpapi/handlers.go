package httpapi

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clearpond/kassa/internal/pos"
	"github.com/clearpond/kassa/internal/receipt"
)

// Service handlers

type serviceReq struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Rules string  `json:"rules"`
}

func (r serviceReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "service name must not be empty"
	}
	if r.Price < 0 {
		return "price must not be negative"
	}
	return ""
}

func (s *Server) listServices(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.AllServices())
}

func (s *Server) createService(c *gin.Context) {
	var req serviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	id, err := s.store.AddService(strings.TrimSpace(req.Name), req.Price, req.Rules)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	svc, _ := s.store.ServiceByID(id)
	c.JSON(http.StatusCreated, svc)
}

func (s *Server) updateService(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req serviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if _, ok := s.store.ServiceByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	if err := s.store.UpdateService(id, strings.TrimSpace(req.Name), req.Price, req.Rules); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	svc, _ := s.store.ServiceByID(id)
	c.JSON(http.StatusOK, svc)
}

func (s *Server) deleteService(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.store.DeleteService(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Order handlers

type createOrderReq struct {
	Items    []pos.ItemInput `json:"items"`
	Phone    string          `json:"phone"`
	Discount int             `json:"discount"`
}

func validateItems(items []pos.ItemInput) string {
	if len(items) == 0 {
		return "order must contain at least one item"
	}
	for _, it := range items {
		if strings.TrimSpace(it.ServiceName) == "" {
			return "item service name must not be empty"
		}
		if it.Quantity <= 0 {
			return "item quantity must be positive"
		}
	}
	return ""
}

// orderView decorates an order with its one-line item summary for list
// screens.
type orderView struct {
	pos.Order
	Summary string `json:"summary"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if msg := validateItems(req.Items); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	order, err := s.store.CreateOrder(req.Items, req.Phone, req.Discount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// timeRange parses the optional from/to query parameters, in unix
// milliseconds. Absent bounds default to the full range.
func timeRange(c *gin.Context) (int64, int64, bool) {
	from, to := int64(0), int64(math.MaxInt64)
	if v := c.Query("from"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, 0, false
		}
		from = n
	}
	if v := c.Query("to"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, 0, false
		}
		to = n
	}
	return from, to, true
}

func (s *Server) listOrders(c *gin.Context) {
	from, to, ok := timeRange(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time range"})
		return
	}
	orders := s.store.Orders(from, to)
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderView{Order: o, Summary: s.store.OrderSummary(o.ID)})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getOrder(c *gin.Context) {
	id := pos.OrderID(c.Param("id"))
	order, ok := s.store.OrderByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": s.store.OrderItems(id),
	})
}

type updateOrderReq struct {
	Items []pos.ItemInput `json:"items"`
}

func (s *Server) updateOrder(c *gin.Context) {
	id := pos.OrderID(c.Param("id"))
	var req updateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if msg := validateItems(req.Items); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if _, ok := s.store.OrderByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err := s.store.UpdateOrder(id, req.Items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	order, _ := s.store.OrderByID(id)
	c.JSON(http.StatusOK, order)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id := pos.OrderID(c.Param("id"))
	if err := s.store.DeleteOrder(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) orderReceipt(c *gin.Context) {
	id := pos.OrderID(c.Param("id"))
	order, ok := s.store.OrderByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	html := receipt.RenderHTML(s.org, receipt.Receipt{
		ShortID:     order.ShortID,
		Datetime:    time.UnixMilli(order.Datetime),
		Items:       s.store.OrderItems(id),
		Phone:       order.Phone,
		Discount:    order.Discount,
		GlobalRules: s.store.Setting(pos.SettingGlobalRules),
	})
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Stats

func (s *Server) getStats(c *gin.Context) {
	from, to, ok := timeRange(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time range"})
		return
	}
	c.JSON(http.StatusOK, s.store.StatsByPeriod(from, to))
}

// Client handlers

func (s *Server) listClients(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.AllClients())
}

func (s *Server) getClient(c *gin.Context) {
	client, ok := s.store.ClientByPhone(c.Param("phone"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

type clientReq struct {
	Discount int    `json:"discount"`
	Notes    string `json:"notes"`
}

func (s *Server) setClient(c *gin.Context) {
	phone := strings.TrimSpace(c.Param("phone"))
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone must not be empty"})
		return
	}
	var req clientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.store.SetClientDiscount(phone, req.Discount, req.Notes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	client, _ := s.store.ClientByPhone(phone)
	c.JSON(http.StatusOK, client)
}

func (s *Server) deleteClient(c *gin.Context) {
	if err := s.store.DeleteClient(c.Param("phone")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Settings handlers

func (s *Server) getSetting(c *gin.Context) {
	key := c.Param("key")
	c.JSON(http.StatusOK, gin.H{"key": key, "value": s.store.Setting(key)})
}

type settingReq struct {
	Value string `json:"value"`
}

func (s *Server) setSetting(c *gin.Context) {
	var req settingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.store.SetSetting(c.Param("key"), req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteSetting(c *gin.Context) {
	if err := s.store.UnsetSetting(c.Param("key")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Auth

type authReq struct {
	Password string `json:"password"`
}

// checkPassword verifies the admin password against the stored hash. With
// no hash configured every attempt is rejected.
func (s *Server) checkPassword(c *gin.Context) {
	var req authReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	hash := s.store.Setting(pos.SettingAdminPasswordHash)
	ok := hash != "" && pos.HashPassword(req.Password) == hash
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}

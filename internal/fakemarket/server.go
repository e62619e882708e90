// Package fakemarket is an in-memory prediction market server for tests.
//
// It serves the same routes as a real market server (events, stocks, balance,
// buy orders, signup/signin and the admin create calls) and records every
// request so tests can assert on how often an endpoint was hit.
package fakemarket

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pmarket/pm/pkg/pmarket"
)

// SessionCookie is the cookie the server sets on signin and reads on
// authenticated routes.
const SessionCookie = "SESSION-TOKEN"

const userKey = "user"

// Order is a buy order accepted by the server.
type Order struct {
	User    string
	StockID uint32
	pmarket.BuyOrder
}

type user struct {
	password string
	balance  uint32
}

// Server is a fake market backed by in-memory maps.
type Server struct {
	mu sync.Mutex

	events   map[uint32]*pmarket.EventDetail
	stocks   map[uint32]*pmarket.Stock
	users    map[string]*user
	sessions map[string]string
	orders   []Order
	requests map[string]int

	nextEventID uint32
	nextStockID uint32

	engine *gin.Engine
}

// New creates an empty fake market.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		events:      make(map[uint32]*pmarket.EventDetail),
		stocks:      make(map[uint32]*pmarket.Stock),
		users:       make(map[string]*user),
		sessions:    make(map[string]string),
		requests:    make(map[string]int),
		nextEventID: 1,
		nextStockID: 1,
	}

	r := gin.New()
	r.Use(s.countRequests())

	r.GET("/event", s.listEvents)
	r.GET("/event/:id", s.getEvent)
	r.GET("/stock/:id", s.getStock)
	r.POST("/auth/signup", s.signup)
	r.POST("/auth/signin", s.signin)

	authed := r.Group("/", s.requireSession())
	authed.GET("/me/balance", s.getBalance)
	authed.POST("/stock/:id/buy", s.buy)
	authed.POST("/admin/event/create", s.createEvent)
	authed.POST("/admin/stock/create", s.createStock)

	s.engine = r
	return s
}

// Handler returns the HTTP handler, suitable for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// AddEvent stores an event and returns its ID. A zero ID is assigned.
func (s *Server) AddEvent(event pmarket.EventDetail) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addEventLocked(event)
}

func (s *Server) addEventLocked(event pmarket.EventDetail) uint32 {
	if event.ID == 0 {
		event.ID = s.nextEventID
	}
	if event.ID >= s.nextEventID {
		s.nextEventID = event.ID + 1
	}
	if event.Stocks == nil {
		event.Stocks = []pmarket.StockSummary{}
	}
	s.events[event.ID] = &event
	return event.ID
}

// AddStock stores a stock, attaches it to its event and returns its ID.
func (s *Server) AddStock(stock pmarket.Stock) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addStockLocked(stock)
}

func (s *Server) addStockLocked(stock pmarket.Stock) uint32 {
	if stock.ID == 0 {
		stock.ID = s.nextStockID
	}
	if stock.ID >= s.nextStockID {
		s.nextStockID = stock.ID + 1
	}
	if stock.Asks == nil {
		stock.Asks = []pmarket.PriceBin{}
	}
	if stock.Bids == nil {
		stock.Bids = []pmarket.PriceBin{}
	}
	s.stocks[stock.ID] = &stock

	if event, ok := s.events[stock.EventID]; ok {
		event.Stocks = append(event.Stocks, pmarket.StockSummary{
			ID:    stock.ID,
			Title: stock.Title,
			Price: stock.Price,
		})
	}
	return stock.ID
}

// AddUser registers a user with a starting balance in cents.
func (s *Server) AddUser(username, password string, balance uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[username] = &user{password: password, balance: balance}
}

// Login opens a session for an existing user and returns its token.
func (s *Server) Login(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	s.sessions[token] = username
	return token
}

// Balance returns a user's balance in cents.
func (s *Server) Balance(username string) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[username]; ok {
		return u.balance
	}
	return 0
}

// Orders returns every accepted buy order in arrival order.
func (s *Server) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Order(nil), s.orders...)
}

// Events returns stored events ordered by ID.
func (s *Server) Events() []pmarket.EventDetail {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedEventsLocked()
}

// Requests returns how many requests hit a route, keyed as "METHOD /path"
// with gin path parameters, e.g. "POST /stock/:id/buy".
func (s *Server) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.requests[route]
}

func (s *Server) sortedEventsLocked() []pmarket.EventDetail {
	ids := make([]uint32, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	events := make([]pmarket.EventDetail, 0, len(ids))
	for _, id := range ids {
		events = append(events, *s.events[id])
	}
	return events
}

func (s *Server) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.requests[c.Request.Method+" "+c.FullPath()]++
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}

		s.mu.Lock()
		username, ok := s.sessions[token]
		s.mu.Unlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(userKey, username)
		c.Next()
	}
}

func idParam(c *gin.Context) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid id %q", c.Param("id"))})
		return 0, false
	}
	return uint32(id), true
}

func (s *Server) listEvents(c *gin.Context) {
	s.mu.Lock()
	events := s.sortedEventsLocked()
	s.mu.Unlock()

	list := make([]pmarket.Event, 0, len(events))
	for _, e := range events {
		list = append(list, pmarket.Event{ID: e.ID, Title: e.Title})
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getEvent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	event, found := s.events[id]
	var detail pmarket.EventDetail
	if found {
		detail = *event
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) getStock(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	s.mu.Lock()
	stock, found := s.stocks[id]
	var snapshot pmarket.Stock
	if found {
		snapshot = *stock
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) getBalance(c *gin.Context) {
	username := c.GetString(userKey)
	c.JSON(http.StatusOK, s.Balance(username))
}

func (s *Server) buy(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var order pmarket.BuyOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if order.Price < 1 || order.Price > 99 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be between 1 and 99", "code": "PRICE_RANGE"})
		return
	}
	if order.Count < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be at least 1", "code": "COUNT_RANGE"})
		return
	}

	username := c.GetString(userKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	stock, found := s.stocks[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		return
	}

	u := s.users[username]
	cost := uint64(order.Price) * uint64(order.Count)
	if u == nil || cost > uint64(u.balance) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance", "code": "BALANCE"})
		return
	}
	u.balance -= uint32(cost)

	stock.Bids = addToBook(stock.Bids, order)
	s.orders = append(s.orders, Order{User: username, StockID: id, BuyOrder: order})
	c.Status(http.StatusOK)
}

// addToBook merges an order into a side of the book, keeping levels sorted by
// descending price.
func addToBook(bins []pmarket.PriceBin, order pmarket.BuyOrder) []pmarket.PriceBin {
	for i := range bins {
		if bins[i].Price == order.Price {
			bins[i].Count += order.Count
			return bins
		}
	}
	bins = append(bins, pmarket.PriceBin{Price: order.Price, Count: order.Count})
	sort.Slice(bins, func(i, j int) bool { return bins[i].Price > bins[j].Price })
	return bins
}

func (s *Server) signup(c *gin.Context) {
	var creds pmarket.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if creds.Username == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[creds.Username]; exists {
		c.JSON(http.StatusConflict, gin.H{"error": "username taken"})
		return
	}
	s.users[creds.Username] = &user{password: creds.Password}
	c.Status(http.StatusCreated)
}

func (s *Server) signin(c *gin.Context) {
	var creds pmarket.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	u, found := s.users[creds.Username]
	if !found || u.password != creds.Password {
		s.mu.Unlock()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	token := uuid.NewString()
	s.sessions[token] = creds.Username
	s.mu.Unlock()

	c.SetCookie(SessionCookie, token, int((24 * time.Hour).Seconds()), "/", "", false, true)
	c.Status(http.StatusOK)
}

func (s *Server) createEvent(c *gin.Context) {
	var req pmarket.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Closes.Before(req.Opens) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event closes before it opens"})
		return
	}

	s.mu.Lock()
	id := s.addEventLocked(pmarket.EventDetail{
		Title:       req.Title,
		Description: req.Description,
		Created:     time.Now().UTC(),
		Opens:       req.Opens.UTC(),
		Closes:      req.Closes.UTC(),
	})
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) createStock(c *gin.Context) {
	var req pmarket.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.events[req.EventID]; !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	id := s.addStockLocked(pmarket.Stock{EventID: req.EventID, Title: req.Title, Price: 50})
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

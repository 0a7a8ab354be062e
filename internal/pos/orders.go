package pos

import (
	"sort"
	"strconv"
	"strings"

	"github.com/clearpond/kassa/internal/ident"
)

// newOrderID mints an order identifier and its short display code according
// to the configured id mode. Callers hold the lock.
func (s *Store) newOrderID() (OrderID, string) {
	if s.idMode == IDModeSequential {
		s.data.Seq.Order++
		id := strconv.Itoa(s.data.Seq.Order)
		return OrderID(id), id
	}
	id := s.ids.NewID()
	return OrderID(id), ident.ShortID(id)
}

// newItemID mints an order item identifier. Callers hold the lock.
func (s *Store) newItemID() string {
	if s.idMode == IDModeSequential {
		s.data.Seq.Item++
		return strconv.Itoa(s.data.Seq.Item)
	}
	return s.ids.NewID()
}

// buildItems materializes basket lines into order items. Callers hold the
// lock.
func (s *Store) buildItems(orderID OrderID, items []ItemInput) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, in := range items {
		out = append(out, OrderItem{
			ID:           s.newItemID(),
			OrderID:      orderID,
			ServiceID:    in.ServiceID,
			ServiceName:  in.ServiceName,
			ServicePrice: in.ServicePrice,
			Quantity:     in.Quantity,
		})
	}
	return out
}

func subtotal(items []ItemInput) float64 {
	var sum float64
	for _, in := range items {
		sum += in.ServicePrice * float64(in.Quantity)
	}
	return sum
}

// CreateOrder records a sale: the order, its items, the queued change record
// and the persisted snapshot, all in one synchronous step.
//
// The discount percentage is clamped to [0,100]; the stored total is
// round2(subtotal * (1 - discount/100)).
func (s *Store) CreateOrder(items []ItemInput, phone string, discount int) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	discount = clampDiscount(discount)
	id, shortID := s.newOrderID()

	order := Order{
		ID:       id,
		ShortID:  shortID,
		Datetime: s.now().UnixMilli(),
		Total:    round2(subtotal(items) * (1 - float64(discount)/100)),
		Phone:    strings.TrimSpace(phone),
		Discount: discount,
	}
	s.data.Orders = append(s.data.Orders, order)

	orderItems := s.buildItems(id, items)
	s.data.OrderItems = append(s.data.OrderItems, orderItems...)

	s.enqueue(OrderCreate{Order: order, Items: orderItems})
	return order, s.persist()
}

// UpdateOrder replaces every item of an existing order and recomputes the
// total using the order's stored discount. Unknown ids are a silent no-op.
func (s *Store) UpdateOrder(id OrderID, items []ItemInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var order *Order
	for i := range s.data.Orders {
		if s.data.Orders[i].ID == id {
			order = &s.data.Orders[i]
			break
		}
	}
	if order == nil {
		return nil
	}

	kept := s.data.OrderItems[:0]
	for _, it := range s.data.OrderItems {
		if it.OrderID != id {
			kept = append(kept, it)
		}
	}
	s.data.OrderItems = kept

	order.Total = round2(subtotal(items) * (1 - float64(order.Discount)/100))

	orderItems := s.buildItems(id, items)
	s.data.OrderItems = append(s.data.OrderItems, orderItems...)

	s.enqueue(OrderUpdate{ID: id, Order: *order, Items: orderItems})
	return s.persist()
}

// DeleteOrder removes an order and all of its items.
func (s *Store) DeleteOrder(id OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.data.Orders[:0]
	for _, o := range s.data.Orders {
		if o.ID != id {
			orders = append(orders, o)
		}
	}
	s.data.Orders = orders

	items := s.data.OrderItems[:0]
	for _, it := range s.data.OrderItems {
		if it.OrderID != id {
			items = append(items, it)
		}
	}
	s.data.OrderItems = items

	s.enqueue(OrderDelete{ID: id})
	return s.persist()
}

// OrderByID returns one order.
func (s *Store) OrderByID(id OrderID) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.data.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// AllOrders returns every order, unsorted.
func (s *Store) AllOrders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, len(s.data.Orders))
	copy(out, s.data.Orders)
	return out
}

// Orders returns orders with datetime in [fromMs, toMs] inclusive, newest
// first.
func (s *Store) Orders(fromMs, toMs int64) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ordersLocked(fromMs, toMs)
}

func (s *Store) ordersLocked(fromMs, toMs int64) []Order {
	out := make([]Order, 0)
	for _, o := range s.data.Orders {
		if o.Datetime >= fromMs && o.Datetime <= toMs {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Datetime > out[j].Datetime
	})
	return out
}

// OrderItems returns the items belonging to one order, in insertion order.
func (s *Store) OrderItems(id OrderID) []OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderItemsLocked(id)
}

func (s *Store) orderItemsLocked(id OrderID) []OrderItem {
	out := make([]OrderItem, 0)
	for _, it := range s.data.OrderItems {
		if it.OrderID == id {
			out = append(out, it)
		}
	}
	return out
}

// OrderSummary renders an order's items as "Name ×qty, Name ×qty" for list
// views.
func (s *Store) OrderSummary(id OrderID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := make([]string, 0)
	for _, it := range s.data.OrderItems {
		if it.OrderID == id {
			parts = append(parts, it.ServiceName+" ×"+strconv.Itoa(it.Quantity))
		}
	}
	return strings.Join(parts, ", ")
}

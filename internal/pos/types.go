package pos

// OrderID identifies an order. Depending on the deployment's id mode it is
// either a generated UUID or the decimal form of a local counter. It is
// always treated as opaque; the short display code is a separate field.
type OrderID string

// Service is a catalog entry. The catalog may be overwritten wholesale by a
// server pull.
type Service struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Rules string  `json:"rules,omitempty"`
}

// Order is a completed sale. Datetime is set at creation and never changes;
// Total is derived from the items and the discount percentage.
//
// ShortID is a human-readable display code for printed receipts. It is not
// unique and must never be used as a lookup key.
type Order struct {
	ID       OrderID `json:"uuid"`
	ShortID  string  `json:"shortId,omitempty"`
	Datetime int64   `json:"datetime"`
	Total    float64 `json:"total"`
	Phone    string  `json:"phone"`
	Discount int     `json:"discount"`
}

// OrderItem is one line of an order. ServiceName and ServicePrice are
// denormalized copies taken at time of sale so later catalog edits cannot
// retroactively alter historical receipts.
type OrderItem struct {
	ID           string  `json:"uuid"`
	OrderID      OrderID `json:"order_uuid"`
	ServiceID    int     `json:"service_id"`
	ServiceName  string  `json:"service_name"`
	ServicePrice float64 `json:"service_price"`
	Quantity     int     `json:"quantity"`
}

// ItemInput is a basket line as submitted by the cashier UI.
type ItemInput struct {
	ServiceID    int     `json:"service_id"`
	ServiceName  string  `json:"service_name"`
	ServicePrice float64 `json:"service_price"`
	Quantity     int     `json:"quantity"`
}

// Client holds the explicit per-phone discount record. Visit statistics are
// not stored; they are derived from orders on read.
type Client struct {
	Discount int    `json:"discount"`
	Notes    string `json:"notes"`
}

// ClientInfo is a client decorated with statistics derived from the order
// history. Returned by AllClients.
type ClientInfo struct {
	Phone      string  `json:"phone"`
	Discount   int     `json:"discount"`
	Notes      string  `json:"notes"`
	Visits     int     `json:"visits"`
	TotalSpend float64 `json:"total_spend"`
	LastVisit  int64   `json:"last_visit"`
}

// ServiceStat is the per-service revenue breakdown within a period.
type ServiceStat struct {
	ServiceName  string  `json:"service_name"`
	TotalQty     int     `json:"total_qty"`
	TotalRevenue float64 `json:"total_revenue"`
}

// Stats aggregates a reporting period.
//
// Revenue sums service_price*quantity over the period's items, before any
// order-level discount (matching the admin report this store feeds).
type Stats struct {
	Revenue    float64       `json:"revenue"`
	OrderCount int           `json:"orderCount"`
	ItemCount  int           `json:"itemCount"`
	Orders     []Order       `json:"orders"`
	ByService  []ServiceStat `json:"byService"`
}

// PullData is the authoritative reference data returned by the remote pull
// endpoint. Absent (nil) fields are left unmerged.
type PullData struct {
	Services []Service         `json:"services,omitempty"`
	Settings map[string]string `json:"settings,omitempty"`
	Clients  map[string]Client `json:"clients,omitempty"`
}

// Sequences holds the local id counters persisted with the dataset.
type Sequences struct {
	Service int `json:"service"`
	Order   int `json:"order,omitempty"`
	Item    int `json:"item,omitempty"`
}

// Dataset is the persisted snapshot: conceptually one JSON document holding
// everything the venue's device knows.
type Dataset struct {
	Services   []Service         `json:"services"`
	Orders     []Order           `json:"orders"`
	OrderItems []OrderItem       `json:"order_items"`
	Seq        Sequences         `json:"_seq"`
	Settings   map[string]string `json:"_settings"`
	Clients    map[string]Client `json:"_clients"`
	SyncQueue  []QueueEntry      `json:"_sync_queue"`
}

// emptyDataset returns a fresh dataset with all containers initialized.
func emptyDataset() *Dataset {
	return &Dataset{
		Services:   []Service{},
		Orders:     []Order{},
		OrderItems: []OrderItem{},
		Settings:   map[string]string{},
		Clients:    map[string]Client{},
		SyncQueue:  []QueueEntry{},
	}
}

// normalize repairs a dataset loaded from an older or partial snapshot:
// nil containers become empty ones so the rest of the store never has to
// check. Mirrors the queue migration the original snapshot format needed.
func (d *Dataset) normalize() {
	if d.Services == nil {
		d.Services = []Service{}
	}
	if d.Orders == nil {
		d.Orders = []Order{}
	}
	if d.OrderItems == nil {
		d.OrderItems = []OrderItem{}
	}
	if d.Settings == nil {
		d.Settings = map[string]string{}
	}
	if d.Clients == nil {
		d.Clients = map[string]Client{}
	}
	if d.SyncQueue == nil {
		d.SyncQueue = []QueueEntry{}
	}
}

// Well-known setting keys used by the admin surface.
const (
	SettingGlobalRules       = "global_rules"
	SettingAdminPasswordHash = "admin_password_hash"
)

package marketplace

import "time"

// Deal is one group-buying offer on the marketplace.
type Deal struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Merchant      string    `json:"merchant"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	Discount      int       `json:"discount"`
	SoldCount     int       `json:"soldCount"`
	Tags          []string  `json:"tags,omitempty"`
	StartsAt      time.Time `json:"startsAt"`
	EndsAt        time.Time `json:"endsAt"`
}

// DealFilter narrows deal listings. Zero-valued fields are omitted from
// the request.
type DealFilter struct {
	Category    string
	Tags        []string
	MinDiscount int
	Sort        string
}

func (f DealFilter) query() map[string]any {
	q := make(map[string]any)
	if f.Category != "" {
		q["category"] = f.Category
	}
	if len(f.Tags) > 0 {
		q["tags"] = f.Tags
	}
	if f.MinDiscount > 0 {
		q["minDiscount"] = f.MinDiscount
	}
	if f.Sort != "" {
		q["sort"] = f.Sort
	}
	return q
}

// Order is a purchased deal.
type Order struct {
	ID        string    `json:"id"`
	DealID    string    `json:"dealId"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	Voucher   string    `json:"voucher,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Order statuses returned by the API.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
	OrderRedeemed  = "redeemed"
)

// CreateOrderInput is the payload for placing an order.
type CreateOrderInput struct {
	DealID   string `json:"dealId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=50"`
}

// Profile is the authenticated user's account.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	City      string `json:"city,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// UpdateProfileInput is the payload for editing the profile.
// Empty fields are left unchanged server-side.
type UpdateProfileInput struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	City  string `json:"city,omitempty" validate:"omitempty,max=100"`
}

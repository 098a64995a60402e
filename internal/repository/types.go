package repository

import "time"

// ProductListFilter product list query options
type ProductListFilter struct {
	Page         int
	PageSize     int
	Category     string
	Tag          string
	Search       string
	OnlyActive   bool
	FeaturedOnly bool
}

// PostListFilter blog post list query options
type PostListFilter struct {
	Page          int
	PageSize      int
	Tag           string
	Search        string
	OnlyPublished bool
	FeaturedOnly  bool
}

// OrderListFilter order list query options
type OrderListFilter struct {
	Page        int
	PageSize    int
	ProfileID   uint
	Status      string
	OrderNo     string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ProfileListFilter customer list query options
type ProfileListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReviewListFilter review list query options
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	Status    string
}

// AdminUserListFilter operator list query options
type AdminUserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
}

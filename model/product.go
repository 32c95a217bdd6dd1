package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeStock is one per-size inventory bucket. When a product tracks sizes,
// the flat Stock field must stay equal to the sum of all bucket stocks.
type SizeStock struct {
	Size  string `bson:"size" json:"size"`
	Stock int    `bson:"stock" json:"stock"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	SizeStocks  []SizeStock        `bson:"sizeStocks,omitempty" json:"size_stocks,omitempty"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

// UpdateProductRequest carries a partial admin edit. Nil fields are left
// untouched. Replacing SizeStocks also resets the flat stock to their sum.
type UpdateProductRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Price       *float64    `json:"price" validate:"omitempty,gte=0"`
	Image       *string     `json:"image"`
	Category    *string     `json:"category"`
	Stock       *int        `json:"stock" validate:"omitempty,gte=0"`
	SizeStocks  []SizeStock `json:"size_stocks"`
	Active      *bool       `json:"active"`
}

type ProductListResponse struct {
	Items      []Product `json:"items"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
}

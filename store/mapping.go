package store

import (
	"encoding/json"
	"time"

	"github.com/eringen/glowblog/content"
)

const postsTable = "posts"

// postRow is the remote table shape. Every remote read and write goes
// through toCanonical / toBackendShape.
type postRow struct {
	ID             string            `gorm:"column:id;primaryKey;type:text"`
	Title          string            `gorm:"column:title;not null"`
	Slug           string            `gorm:"column:slug;not null;index"`
	Excerpt        string            `gorm:"column:excerpt"`
	Content        string            `gorm:"column:content"`
	FeaturedImage  string            `gorm:"column:featured_image"`
	Author         string            `gorm:"column:author"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime:false"`
	Published      bool              `gorm:"column:published"`
	Tags           []string          `gorm:"column:tags;type:jsonb;serializer:json"`
	AmazonProducts []content.Product `gorm:"column:amazon_products;type:jsonb;serializer:json"`
}

func (postRow) TableName() string { return postsTable }

func toCanonical(r postRow) content.Post {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	products := r.AmazonProducts
	if products == nil {
		products = []content.Product{}
	}
	return content.Post{
		ID:            r.ID,
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		FeaturedImage: r.FeaturedImage,
		Author:        r.Author,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
		Published:     r.Published,
		Tags:          tags,
		Products:      products,
	}
}

func toBackendShape(p content.Post) postRow {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	products := p.Products
	if products == nil {
		products = []content.Product{}
	}
	return postRow{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Excerpt:        p.Excerpt,
		Content:        p.Content,
		FeaturedImage:  p.FeaturedImage,
		Author:         p.Author,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Published:      p.Published,
		Tags:           tags,
		AmazonProducts: products,
	}
}

// patchColumns maps the set fields of a patch to column values. JSON
// columns are encoded here since map updates bypass the row serializer.
func patchColumns(p content.Patch) (map[string]any, error) {
	cols := make(map[string]any)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Slug != nil {
		cols["slug"] = *p.Slug
	}
	if p.Excerpt != nil {
		cols["excerpt"] = *p.Excerpt
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.FeaturedImage != nil {
		cols["featured_image"] = *p.FeaturedImage
	}
	if p.Author != nil {
		cols["author"] = *p.Author
	}
	if p.Published != nil {
		cols["published"] = *p.Published
	}
	if p.Tags != nil {
		b, err := json.Marshal(p.Tags)
		if err != nil {
			return nil, err
		}
		cols["tags"] = string(b)
	}
	if p.Products != nil {
		b, err := json.Marshal(p.Products)
		if err != nil {
			return nil, err
		}
		cols["amazon_products"] = string(b)
	}
	return cols, nil
}

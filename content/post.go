// Package content defines the blog post entity and the pure helpers that
// operate on it: slug generation, language tags and product messaging links.
package content

import (
	"strings"
	"time"
)

// DefaultAuthor is stamped on posts created from the admin editor.
const DefaultAuthor = "Admin"

// Post is the central content unit. Products are owned by the post and
// persisted inline with it.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	FeaturedImage string    `json:"featuredImage"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Published     bool      `json:"published"`
	Tags          []string  `json:"tags"`
	Products      []Product `json:"products"`
}

// Product is a recommended item embedded in a post.
type Product struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	AffiliateLink  string `json:"affiliateLink,omitempty"`
	ImageURL       string `json:"imageUrl"`
	Price          string `json:"price,omitempty"`
	Description    string `json:"description,omitempty"`
	WhatsAppNumber string `json:"whatsappNumber,omitempty"`
}

// Fields carries everything a caller supplies when creating a post.
type Fields struct {
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	FeaturedImage string
	Author        string
	Published     bool
	Tags          []string
	Products      []Product
}

// Patch is a partial update. Nil pointers leave a field unchanged. Nil
// slices leave Tags/Products unchanged; an empty non-nil slice clears them.
type Patch struct {
	Title         *string
	Slug          *string
	Excerpt       *string
	Content       *string
	FeaturedImage *string
	Author        *string
	Published     *bool
	Tags          []string
	Products      []Product
}

// NewPost builds a post from fields with the given identity and timestamps.
func NewPost(id string, f Fields, now time.Time) Post {
	return Post{
		ID:            id,
		Title:         f.Title,
		Slug:          f.Slug,
		Excerpt:       f.Excerpt,
		Content:       f.Content,
		FeaturedImage: f.FeaturedImage,
		Author:        f.Author,
		CreatedAt:     now,
		UpdatedAt:     now,
		Published:     f.Published,
		Tags:          cloneStrings(f.Tags),
		Products:      cloneProducts(f.Products),
	}
}

// ApplyPatch returns a copy of p with the patch merged onto it. ID and
// CreatedAt are never touched; UpdatedAt is left to the caller.
func (p Post) ApplyPatch(patch Patch) Post {
	out := p
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Slug != nil {
		out.Slug = *patch.Slug
	}
	if patch.Excerpt != nil {
		out.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		out.Content = *patch.Content
	}
	if patch.FeaturedImage != nil {
		out.FeaturedImage = *patch.FeaturedImage
	}
	if patch.Author != nil {
		out.Author = *patch.Author
	}
	if patch.Published != nil {
		out.Published = *patch.Published
	}
	if patch.Tags != nil {
		out.Tags = cloneStrings(patch.Tags)
	} else {
		out.Tags = cloneStrings(p.Tags)
	}
	if patch.Products != nil {
		out.Products = cloneProducts(patch.Products)
	} else {
		out.Products = cloneProducts(p.Products)
	}
	return out
}

// PatchFromFields converts a full field set into a patch that overwrites
// every field. The editor submits complete forms in edit mode.
func PatchFromFields(f Fields) Patch {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	products := f.Products
	if products == nil {
		products = []Product{}
	}
	return Patch{
		Title:         &f.Title,
		Slug:          &f.Slug,
		Excerpt:       &f.Excerpt,
		Content:       &f.Content,
		FeaturedImage: &f.FeaturedImage,
		Author:        &f.Author,
		Published:     &f.Published,
		Tags:          tags,
		Products:      products,
	}
}

// Link returns the site-relative URL of the post.
func (p Post) Link() string {
	return "/blog/" + p.Slug + "/"
}

// LastModified is UpdatedAt, or CreatedAt when UpdatedAt was never set.
func (p Post) LastModified() time.Time {
	if p.UpdatedAt.IsZero() {
		return p.CreatedAt
	}
	return p.UpdatedAt
}

// HasTag reports whether the post carries tag, ignoring case and padding.
func (p Post) HasTag(tag string) bool {
	want := NormalizeTag(tag)
	for _, t := range p.Tags {
		if NormalizeTag(t) == want {
			return true
		}
	}
	return false
}

// NormalizeTag lowercases and trims a tag for comparison.
func NormalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneProducts(in []Product) []Product {
	if in == nil {
		return nil
	}
	out := make([]Product, len(in))
	copy(out, in)
	return out
}

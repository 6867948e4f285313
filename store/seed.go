package store

import (
	"time"

	"github.com/eringen/glowblog/content"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// SamplePosts returns the posts a fresh local store is seeded with, tagged
// with the language lang.
func SamplePosts(lang string) []content.Post {
	return []content.Post{
		{
			ID:            "1",
			Title:         "Best Wireless Headphones for 2025",
			Slug:          "best-wireless-headphones-2025",
			Excerpt:       "Discover the top wireless headphones that deliver exceptional sound quality and comfort.",
			Content:       "<h2>Introduction</h2><p>Finding the perfect wireless headphones can be challenging with so many options available. In this guide we look at the best wireless headphones for 2025.</p><h2>Top Picks</h2><p>After extensive testing, these headphones stand out for their quality and value.</p>",
			FeaturedImage: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800&q=80",
			Author:        content.DefaultAuthor,
			CreatedAt:     day("2025-01-15"),
			UpdatedAt:     day("2025-01-15"),
			Published:     true,
			Tags:          content.WithLanguage([]string{"electronics", "audio", "gadgets"}, lang),
			Products: []content.Product{{
				ID:            "p1",
				Title:         "Premium Wireless Headphones",
				AffiliateLink: "https://amazon.com/your-affiliate-link",
				ImageURL:      "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&q=80",
				Price:         "$299.99",
				Description:   "Premium noise-canceling wireless headphones",
			}},
		},
		{
			ID:            "2",
			Title:         "Top 10 Smart Home Devices",
			Slug:          "top-10-smart-home-devices",
			Excerpt:       "Transform your home with these cutting-edge smart home devices that make life easier.",
			Content:       "<h2>Smart Home Revolution</h2><p>Smart home technology has evolved dramatically. Here are the must-have devices for your connected home.</p><h2>Essential Devices</h2><p>These devices will transform how you interact with your living space.</p>",
			FeaturedImage: "https://images.unsplash.com/photo-1558002038-1055907df827?w=800&q=80",
			Author:        content.DefaultAuthor,
			CreatedAt:     day("2025-02-10"),
			UpdatedAt:     day("2025-02-10"),
			Published:     true,
			Tags:          content.WithLanguage([]string{"smart home", "technology", "automation"}, lang),
			Products: []content.Product{{
				ID:            "p2",
				Title:         "Smart Speaker Hub",
				AffiliateLink: "https://amazon.com/your-affiliate-link",
				ImageURL:      "https://images.unsplash.com/photo-1543512214-318c7553f230?w=400&q=80",
				Price:         "$129.99",
				Description:   "Voice-controlled smart home hub",
			}},
		},
		{
			ID:            "3",
			Title:         "Best Kitchen Gadgets for Home Chefs",
			Slug:          "best-kitchen-gadgets-home-chefs",
			Excerpt:       "Elevate your cooking with these essential kitchen gadgets that every home chef needs.",
			Content:       "<h2>Kitchen Essentials</h2><p>Whether you're a beginner or seasoned cook, these kitchen gadgets will change how you cook.</p><h2>Must-Have Tools</h2><p>From precision to convenience, these tools deliver outstanding results.</p>",
			FeaturedImage: "https://images.unsplash.com/photo-1556911220-bff31c812dba?w=800&q=80",
			Author:        content.DefaultAuthor,
			CreatedAt:     day("2025-03-05"),
			UpdatedAt:     day("2025-03-05"),
			Published:     true,
			Tags:          content.WithLanguage([]string{"kitchen", "cooking", "gadgets"}, lang),
			Products: []content.Product{{
				ID:            "p3",
				Title:         "Professional Knife Set",
				AffiliateLink: "https://amazon.com/your-affiliate-link",
				ImageURL:      "https://images.unsplash.com/photo-1593618998160-e34014e67546?w=400&q=80",
				Price:         "$199.99",
				Description:   "Professional-grade kitchen knife set",
			}},
		},
	}
}

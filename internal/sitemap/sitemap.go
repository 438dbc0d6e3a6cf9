// internal/sitemap/sitemap.go
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bantconfirm/backend/internal/backend"
)

// Static site routes included ahead of the catalog entries.
var staticPaths = []string{
	"/",
	"/products",
	"/blogs",
	"/vendors/register",
	"/enquiry",
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// Generator builds the sitemap from the live catalog. It is the single
// source of sitemap output for both the scheduled job and the standalone
// command.
type Generator struct {
	client  backend.Client
	baseURL string
}

func NewGenerator(client backend.Client, baseURL string) *Generator {
	return &Generator{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Generate renders the sitemap XML for every static route, product and blog
// post.
func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	today := time.Now().Format("2006-01-02")
	for _, path := range staticPaths {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        g.baseURL + path,
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	products, err := g.client.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	for _, p := range products {
		if p.Slug == "" {
			continue
		}
		set.URLs = append(set.URLs, urlEntry{
			Loc:        fmt.Sprintf("%s/products/%s", g.baseURL, p.Slug),
			LastMod:    p.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	blogs, err := g.client.Blogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blogs: %w", err)
	}
	for _, b := range blogs {
		if b.Slug == "" {
			continue
		}
		set.URLs = append(set.URLs, urlEntry{
			Loc:        fmt.Sprintf("%s/blogs/%s", g.baseURL, b.Slug),
			LastMod:    b.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.5",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}

// WriteFile generates the sitemap and writes it atomically to path.
func (g *Generator) WriteFile(ctx context.Context, path string) error {
	data, err := g.Generate(ctx)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move sitemap into place: %w", err)
	}

	return nil
}

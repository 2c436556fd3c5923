// Package main implements a standalone seed script that populates the
// wishlist service's local catalog replica with realistic luxury fashion
// products. Product IDs are deterministic, so re-runs upsert the same rows
// and integration tests can rely on stable IDs.
//
// Run: go run scripts/seed_catalog.go
//
//	(from the repo root, or: cd scripts && go run seed_catalog.go)
package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const batchSize = 100

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// deterministicUUID produces a stable UUID-shaped string from a namespace and
// an integer index so that re-runs always produce the same product IDs.
func deterministicUUID(namespace string, index int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", namespace, index)))
	hex := fmt.Sprintf("%x", h[:16])
	return fmt.Sprintf("%s-%s-4%s-%x%s-%s",
		hex[0:8],
		hex[8:12],
		hex[13:16],
		0x8|(h[8]&0x3),
		hex[17:20],
		hex[20:32],
	)
}

type categoryDef struct {
	Name     string
	Garments []string
	MinPrice float64
	MaxPrice float64
}

var categories = []categoryDef{
	{"Dresses", []string{"Silk Slip Dress", "Draped Midi Dress", "Velvet Evening Gown", "Pleated Wrap Dress", "Satin Column Dress"}, 1800, 7200},
	{"Outerwear", []string{"Cashmere Overcoat", "Cropped Leather Jacket", "Double-Breasted Blazer", "Wool Cape Coat", "Shearling Bomber"}, 2400, 9800},
	{"Knitwear", []string{"Merino Turtleneck", "Ribbed Cashmere Cardigan", "Mohair Crewneck", "Fine-Gauge Polo Sweater"}, 900, 3600},
	{"Bags", []string{"Structured Top-Handle Bag", "Quilted Shoulder Bag", "Suede Bucket Bag", "Croc-Embossed Clutch"}, 2100, 12500},
	{"Shoes", []string{"Pointed Slingback Pump", "Leather Ankle Boot", "Satin Ballet Flat", "Strappy Stiletto Sandal"}, 750, 4300},
	{"Accessories", []string{"Silk Twill Scarf", "Gold-Plated Chain Belt", "Leather Card Holder", "Oversized Acetate Sunglasses"}, 280, 1900},
}

var collections = []string{"Atelier", "Noir", "Riviera", "Heritage", "Lumière", "Studio"}

type product struct {
	ID       string
	Name     string
	Slug     string
	Price    float64
	Image    string
	Category string
}

func slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "è", "e")
	var b strings.Builder
	prevDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case !prevDash:
			b.WriteByte('-')
			prevDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func buildProducts() []product {
	var out []product
	idx := 0
	for _, cat := range categories {
		for _, garment := range cat.Garments {
			for _, coll := range collections {
				id := deterministicUUID("lux-fashion-catalog", idx)
				name := fmt.Sprintf("%s %s", coll, garment)
				// Spread prices across the category band deterministically.
				span := cat.MaxPrice - cat.MinPrice
				price := cat.MinPrice + span*float64(idx%7)/7.0
				price = float64(int(price/10)) * 10
				out = append(out, product{
					ID:       id,
					Name:     name,
					Slug:     fmt.Sprintf("%s-%s", slugify(name), id[:8]),
					Price:    price,
					Image:    fmt.Sprintf("https://cdn.lux-fashion.example/products/%s.jpg", id),
					Category: cat.Name,
				})
				idx++
			}
		}
	}
	return out
}

func main() {
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "luxfashion")
	pass := getEnv("POSTGRES_PASSWORD", "luxfashion_secret")
	dbName := getEnv("WISHLIST_DB_NAME", "wishlist_db")
	sslMode := getEnv("POSTGRES_SSL_MODE", "disable")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, pass, host, port, dbName, sslMode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connecting to postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("pinging postgres: %v", err)
	}

	products := buildProducts()
	log.Printf("seeding %d catalog products into %s", len(products), dbName)

	inserted := 0
	for start := 0; start < len(products); start += batchSize {
		end := start + batchSize
		if end > len(products) {
			end = len(products)
		}
		batch := products[start:end]

		var sb strings.Builder
		sb.WriteString("INSERT INTO products (id, name, slug, price, image, category, updated_at) VALUES ")
		args := make([]any, 0, len(batch)*6)
		for i, p := range batch {
			if i > 0 {
				sb.WriteString(", ")
			}
			base := i * 6
			fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, NOW())",
				base+1, base+2, base+3, base+4, base+5, base+6)
			args = append(args, p.ID, p.Name, p.Slug, p.Price, p.Image, p.Category)
		}
		sb.WriteString(` ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			price = EXCLUDED.price,
			image = EXCLUDED.image,
			category = EXCLUDED.category,
			updated_at = NOW()`)

		if _, err := pool.Exec(ctx, sb.String(), args...); err != nil {
			log.Fatalf("inserting batch starting at %d: %v", start, err)
		}
		inserted += len(batch)
		log.Printf("upserted %d/%d products", inserted, len(products))
	}

	log.Printf("done; first product id: %s", products[0].ID)
}

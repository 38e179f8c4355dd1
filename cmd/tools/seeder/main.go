package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	rulesID := os.Getenv("RULES_DOCUMENT_ID")
	if rulesID == "" {
		rulesID = "business_rules"
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	seedPapers(tx)
	seedRules(tx, rulesID)
	seedProducts(tx)
	seedPricingMatrix(tx)

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit seed: %v", err)
	}
	log.Println("Seeding completed successfully!")
}

func seedPapers(tx *sql.Tx) {
	log.Println("Seeding paper stocks...")
	for _, p := range papers {
		_, err := tx.Exec(`
			INSERT INTO paper_stocks (sku, name, gsm, paper_type, finish, parent_width, parent_height, cost_per_sheet, usage)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (sku) DO UPDATE SET
				name = EXCLUDED.name,
				gsm = EXCLUDED.gsm,
				paper_type = EXCLUDED.paper_type,
				finish = EXCLUDED.finish,
				parent_width = EXCLUDED.parent_width,
				parent_height = EXCLUDED.parent_height,
				cost_per_sheet = EXCLUDED.cost_per_sheet,
				usage = EXCLUDED.usage,
				updated_at = now()`,
			p.SKU, p.Name, p.GSM, p.Type, p.Finish, p.ParentWidth, p.ParentHeight, p.CostPerSheet, p.Usage)
		if err != nil {
			log.Fatalf("Failed to seed paper %s: %v", p.SKU, err)
		}
	}
	log.Printf("Seeded %d paper stocks", len(papers))
}

var businessRules = map[string]float64{
	"COLOR_CLICK_COST":                     0.039,
	"BW_CLICK_COST":                        0.009,
	"GLOSS_LAMINATE_COST_PER_COVER":        0.30,
	"MATTE_LAMINATE_COST_PER_COVER":        0.60,
	"PRINTING_SPEED_SPM":                   15,
	"PERFECT_BINDER_SETUP_MINS":            15,
	"PERFECT_BINDER_SPEED_BPH":             300,
	"SADDLE_STITCHER_SETUP_MINS":           10,
	"SADDLE_STITCHER_SPEED_BPH":            400,
	"BASE_PREP_TIME_MINS":                  20,
	"WASTAGE_FACTOR":                       0.15,
	"BINDING_INEFFICIENCY_FACTOR":          1.20,
	"TRIMMING_SETUP_MINS":                  10,
	"TRIMMING_BOOKS_PER_CYCLE":             250,
	"TRIMMING_CYCLE_TIME_MINS":             5,
	"SQ_INCH_TO_SQ_METER":                  0.00064516,
	"GRAMS_TO_LBS":                         0.00220462,
	"LAMINATION_THICKNESS_PER_SIDE_INCHES": 0.0015,
	"defaultLaborRate":                     50,
	"defaultMarkupPercent":                 35,
	"defaultSpoilagePercent":               5,
}

func seedRules(tx *sql.Tx, id string) {
	log.Println("Seeding business rules...")
	_, err := tx.Exec(`
		INSERT INTO business_rules (id, version, rules)
		VALUES ($1, 1, $2)
		ON CONFLICT (id) DO UPDATE SET
			rules = EXCLUDED.rules,
			version = business_rules.version + 1,
			updated_at = now()`,
		id, mustJSON(businessRules))
	if err != nil {
		log.Fatalf("Failed to seed business rules: %v", err)
	}
}

type seedOption struct {
	PricingDoc   string                       `json:"pricingDoc,omitempty"`
	PricingLogic string                       `json:"pricingLogic,omitempty"`
	Choices      map[string]map[string]string `json:"choices,omitempty"`
}

type seedProduct struct {
	ID       string
	Name     string
	BaseDays int
	Options  map[string]seedOption
}

func choices(pairs ...string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = map[string]string{"name": pairs[i+1]}
	}
	return out
}

// Books are priced by the book engine; their options only describe the
// configurator choices.
var products = []seedProduct{
	{
		ID:       "book",
		Name:     "Books (Doujinshi, Manga)",
		BaseDays: 5,
		Options: map[string]seedOption{
			"binding":    {Choices: choices("perfect", "Perfect Bound", "saddle", "Saddle Stitch")},
			"size":       {Choices: choices("A5", `A5 (5.8" x 8.3")`, "B5", `B5 (7" x 10")`, "Letter", `US Letter (8.5" x 11")`)},
			"coverStock": {Choices: choices("100lb_gloss", "100lb Gloss", "100lb_matte", "100lb Matte")},
		},
	},
	{
		ID:       "art_print",
		Name:     "Art Prints",
		BaseDays: 2,
		Options: map[string]seedOption{
			"size":  {PricingDoc: "art_print_size", PricingLogic: "per-item", Choices: choices("4x6", `4" x 6"`, "8x10", `8" x 10"`, "11x17", `11" x 17"`)},
			"stock": {PricingDoc: "art_print_size", PricingLogic: "modifier", Choices: choices("100lb_gloss", "100lb Gloss", "100lb_matte", "100lb Matte")},
		},
	},
	{
		ID:       "sticker",
		Name:     "Stickers",
		BaseDays: 3,
		Options: map[string]seedOption{
			"material": {PricingDoc: "sticker_material", PricingLogic: "per-item", Choices: choices("vinyl", "Vinyl", "paper", "Paper")},
		},
	},
}

var pricingMatrix = map[string]any{
	"interior_bw": map[string]float64{
		"paper_80lb_matte":    0.015,
		"paper_100lb_gloss":   0.018,
		"paper_60lb_uncoated": 0.012,
	},
	"cover_color": map[string]float64{
		"stock_100lb_gloss": 0.25,
		"stock_100lb_matte": 0.27,
	},
	"lamination": map[string]float64{
		"gloss_lamination": 0.15,
		"matte_lamination": 0.17,
	},
	"art_print_size": map[string]any{
		"4x6": map[string]float64{"1-49": 1.50, "50-": 1.10},
		"8x10": map[string]any{
			"1-49":        4.00,
			"50-":         3.20,
			"100lb_matte": map[string]float64{"1-49": 4.40, "50-": 3.50},
		},
		"11x17": map[string]float64{"1-49": 9.00, "50-": 7.50},
	},
	"sticker_material": map[string]any{
		"vinyl": map[string]float64{"1-99": 0.50, "100-": 0.40},
		"paper": 0.20,
	},
}

func seedProducts(tx *sql.Tx) {
	log.Println("Seeding products...")
	for _, p := range products {
		_, err := tx.Exec(`
			INSERT INTO products (id, name, base_production_days, options)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				base_production_days = EXCLUDED.base_production_days,
				options = EXCLUDED.options`,
			p.ID, p.Name, p.BaseDays, mustJSON(p.Options))
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.ID, err)
		}
		log.Printf("  - Wrote %s", p.ID)
	}
}

func seedPricingMatrix(tx *sql.Tx) {
	log.Println("Seeding pricing matrix...")
	for id, data := range pricingMatrix {
		_, err := tx.Exec(`
			INSERT INTO pricing_matrix (id, data) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
			id, mustJSON(data))
		if err != nil {
			log.Fatalf("Failed to seed pricing document %s: %v", id, err)
		}
		log.Printf("  - Wrote %s", id)
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("Failed to encode seed value: %v", err)
	}
	return string(b)
}

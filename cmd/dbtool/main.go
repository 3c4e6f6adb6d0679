package main

import (
	"context"
	"flag"
	"log"
	"sparcel-journey-service/internal/adapters/repositories"
	"sparcel-journey-service/internal/config"
	"sparcel-journey-service/internal/platform/db"
	"sparcel-journey-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// dbtool prepares the Postgres and local SQLite schemas and can pre-generate
// a batch of QR codes for printing.
func main() {
	qrCount := flag.Int("qr", 0, "number of QR codes to generate (max 100)")
	baseURL := flag.String("base-url", "", "public site the QR codes link to")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	log.Println("Initializing postgres schema...")
	if err := repositories.InitPostgresSchema(ctx, pg); err != nil {
		log.Fatalf("postgres schema initialization failed: %v", err)
	}
	log.Println("Postgres schema ready.")

	local, err := db.OpenSQLite(cfg.LocalDBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer local.Close()

	log.Printf("Initializing local schema path=%s...", cfg.LocalDBPath)
	if err := repositories.InitSqliteSchema(ctx, local); err != nil {
		log.Fatalf("local schema initialization failed: %v", err)
	}
	log.Println("Local schema ready.")

	if *qrCount <= 0 {
		return
	}

	if *baseURL == "" {
		*baseURL = cfg.PublicBaseURL
	}
	svc := services.NewQRCodeService(repositories.NewPostgresQRCodeRepository(pg), cfg.QRImageURL, *baseURL)

	log.Printf("Generating QR codes count=%d...", *qrCount)
	res, err := svc.GenerateBatch(ctx, *qrCount, *baseURL)
	if err != nil {
		log.Fatalf("qr generation failed: %v", err)
	}
	for _, qr := range res.QRCodes {
		log.Printf("bag_id=%s url=%s image=%s", qr.BagID, qr.QRURL, qr.ImageURL)
	}
	for _, e := range res.Errors {
		log.Printf("qr index=%d err=%s", e.Index, e.Error)
	}
	log.Printf("QR generation complete generated=%d errors=%d", res.TotalGenerated, res.TotalErrors)
}

// seed creates (or updates) the admin account and, on an empty database, a
// few job postings and portfolio items.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/infrastructure/postgres"
	"github.com/nextelligentia/leadops/internal/password"
)

var sampleJobs = []domain.Job{
	{
		Title: "Senior Go Engineer", Department: "Engineering", Location: "Remote",
		EmploymentType: domain.EmploymentFullTime,
		Description:    "Own backend services end to end.",
		Requirements:   []string{"5+ years of backend experience", "PostgreSQL"},
		Status:         domain.JobStatusActive,
	},
	{
		Title: "UI/UX Design Intern", Department: "Design", Location: "Lahore",
		EmploymentType: domain.EmploymentInternship,
		Description:    "Help design client-facing products.",
		Requirements:   []string{"Figma portfolio"},
		Status:         domain.JobStatusActive,
	},
}

var samplePortfolio = []domain.PortfolioItem{
	{
		Title: "Clinic Booking Platform", Category: "web",
		Description:  "Appointment booking with reminders for a clinic chain.",
		Technologies: []string{"Go", "React", "PostgreSQL"},
	},
	{
		Title: "Field Sales App", Category: "mobile",
		Description:  "Offline-first order capture for field sales teams.",
		Technologies: []string{"Flutter", "Go"},
	},
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	email := os.Getenv("SEED_ADMIN_EMAIL")
	plain := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || plain == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}
	name := os.Getenv("SEED_ADMIN_NAME")
	if name == "" {
		name = "Admin"
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := password.Hash(plain)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	admin, err := postgres.NewAccountRepository(pool).Upsert(ctx, &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("upsert admin: %v", err)
	}

	jobs := postgres.NewJobRepository(pool)
	var jobsCreated int
	if n, err := jobs.Count(ctx, ""); err != nil {
		log.Fatalf("count jobs: %v", err)
	} else if n == 0 {
		for i := range sampleJobs {
			if _, err := jobs.Create(ctx, &sampleJobs[i]); err != nil {
				log.Fatalf("create job %q: %v", sampleJobs[i].Title, err)
			}
			jobsCreated++
		}
	}

	portfolio := postgres.NewPortfolioRepository(pool)
	var itemsCreated int
	if n, err := portfolio.Count(ctx); err != nil {
		log.Fatalf("count portfolio: %v", err)
	} else if n == 0 {
		for i := range samplePortfolio {
			if _, err := portfolio.Create(ctx, &samplePortfolio[i]); err != nil {
				log.Fatalf("create portfolio item %q: %v", samplePortfolio[i].Title, err)
			}
			itemsCreated++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Admin:            %s (%s)\n", admin.Email, admin.ID)
	fmt.Printf("  Jobs created:     %d\n", jobsCreated)
	fmt.Printf("  Portfolio items:  %d\n", itemsCreated)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 - log in with the password; the code is emailed (or logged with EMAIL_PROVIDER=log):")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:3000/api/admin/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"...\"}'\n", admin.Email)
	fmt.Println()
	fmt.Println("  Step 2 - exchange the code for a token:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:3000/api/admin/verify-2fa \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"adminId\":\"%s\",\"otp\":\"CODE\"}'\n", admin.ID)
	fmt.Println()
	fmt.Println("  Step 3 - call an admin route:")
	fmt.Println()
	fmt.Println("    curl -s http://localhost:3000/api/admin/dashboard/stats -H \"Authorization: Bearer $JWT\"")
}

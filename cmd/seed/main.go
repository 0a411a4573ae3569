package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/carebridge/healthcare-backend/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedDoctors(context.Background(), pool, 50); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedUsers(context.Background(), pool, 500); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	if err := seedBloodBank(context.Background(), pool); err != nil {
		log.Fatalf("seed blood bank: %v", err)
	}
	if err := seedPharmacies(context.Background(), pool, 20); err != nil {
		log.Fatalf("seed pharmacies: %v", err)
	}
	if err := seedMedicines(context.Background(), pool, 100); err != nil {
		log.Fatalf("seed medicines: %v", err)
	}

	log.Println("seed complete")
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d doctors", count)

	specializations := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
		"Psychiatry",
		"Ophthalmology",
		"ENT",
	}
	genders := []string{"male", "female"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (id, name, specialization, experience, contact, availability, gender, fees, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		`,
			uuid.New(),
			"Dr. "+gofakeit.Name(),
			specializations[gofakeit.Number(0, len(specializations)-1)],
			fmt.Sprintf("%d years", gofakeit.Number(1, 30)),
			gofakeit.Phone(),
			"Mon-Fri 09:00-17:00",
			genders[gofakeit.Number(0, 1)],
			float64(gofakeit.Number(300, 2000)),
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("doctors seeded")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d users", count)

	// One shared hash keeps the run fast; every seeded account logs in
	// with "password123".
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const batchSize = 100

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			_, err := tx.Exec(ctx, `
				INSERT INTO users (id, email, name, phone, password_hash, role, created_at)
				VALUES ($1, $2, $3, $4, $5, 'user', now())
				ON CONFLICT (email) DO NOTHING
			`,
				uuid.New(),
				gofakeit.Email(),
				gofakeit.Name(),
				gofakeit.Phone(),
				string(hash),
			)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("users seeded: %d/%d", end, count)
	}

	log.Println("users seeded")
	return nil
}

func seedBloodBank(ctx context.Context, pool *pgxpool.Pool) error {
	bloodTypes := []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

	log.Printf("seeding %d blood bank records", len(bloodTypes))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, bt := range bloodTypes {
		_, err := tx.Exec(ctx, `
			INSERT INTO blood_bank (id, blood_type, units_available, hospital_name, contact, address, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6, now())
		`,
			uuid.New(),
			bt,
			gofakeit.Number(0, 60),
			gofakeit.Company()+" Hospital",
			gofakeit.Phone(),
			gofakeit.Address().Address,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("blood bank seeded")
	return nil
}

func seedPharmacies(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d pharmacies", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		_, err := tx.Exec(ctx, `
			INSERT INTO pharmacies (id, name, address, contact, operating_hours, services, location, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		`,
			uuid.New(),
			gofakeit.Company()+" Pharmacy",
			gofakeit.Address().Address,
			gofakeit.Phone(),
			"08:00-22:00",
			"Prescriptions, OTC, Delivery",
			gofakeit.City(),
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("pharmacies seeded")
	return nil
}

func seedMedicines(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d medicines", count)

	categories := []string{
		"Pain Relief",
		"Antibiotics",
		"Cardiac",
		"Diabetes",
		"Vitamins",
		"Allergy",
		"Digestive",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		_, err := tx.Exec(ctx, `
			INSERT INTO medicines (id, name, description, price, stock, category, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, now())
		`,
			uuid.New(),
			gofakeit.ProductName(),
			gofakeit.Sentence(8),
			float64(gofakeit.Number(10, 500)),
			gofakeit.Number(0, 1000),
			categories[gofakeit.Number(0, len(categories)-1)],
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("medicines seeded")
	return nil
}

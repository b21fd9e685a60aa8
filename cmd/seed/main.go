package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"tripcoach/internal/packages"
	"tripcoach/internal/packagetypes"
	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/database"
	"tripcoach/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Trip Coach database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.GetPostgreSQL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	seeder := &Seeder{db: db}

	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned")

	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("Database seeded")

	fmt.Println("\nSeeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"bookings",
		"guide_applications",
		"packages",
		"package_types",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	typeIDs, err := s.SeedPackageTypes(userIDs["admin"])
	if err != nil {
		return fmt.Errorf("failed to seed package types: %w", err)
	}

	if err := s.SeedPackages(userIDs["guide"], typeIDs); err != nil {
		return fmt.Errorf("failed to seed packages: %w", err)
	}

	// Clear Redis so cached lists don't mask the fresh data
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates one admin, one approved guide and two tourists.
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key        string
		name       string
		email      string
		role       users.Role
		isVerified bool
		guideCity  string
		guideLangs string
		guideBio   string
	}{
		{"admin", "Admin User", "admin@tripcoach.app", users.RoleAdmin, true, "", "", ""},
		{"guide", "Sofia Martinez", "sofia.guide@tripcoach.app", users.RoleGuide, true,
			"Barcelona", "English, Spanish, Catalan",
			"Licensed guide with a decade of experience running food and history tours across Catalonia."},
		{"tourist1", "Aiko Tanaka", "aiko@example.com", users.RoleTourist, false, "", "", ""},
		{"tourist2", "James Okafor", "james@example.com", users.RoleTourist, false, "", "", ""},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:             uuid.New(),
			Name:           userData.name,
			Email:          userData.email,
			Password:       string(hashedPassword),
			Role:           userData.role,
			Status:         users.StatusActive,
			IsVerified:     userData.isVerified,
			GuideCity:      userData.guideCity,
			GuideLanguages: userData.guideLangs,
			GuideBio:       userData.guideBio,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedPackageTypes creates the trip taxonomy.
func (s *Seeder) SeedPackageTypes(adminID uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  Seeding package types...")

	var typeIDs []uuid.UUID

	typesData := []struct {
		name        string
		description string
	}{
		{"Adventure", "Trekking, climbing and high-adrenaline trips"},
		{"Cultural", "Museums, heritage walks and local history"},
		{"Food & Wine", "Tastings, cooking classes and market tours"},
		{"Beach & Relax", "Coastal escapes and island getaways"},
		{"Wildlife", "Safaris, birdwatching and nature reserves"},
	}

	for _, typeData := range typesData {
		packageType := packagetypes.PackageType{
			ID:          uuid.New(),
			Name:        typeData.name,
			Slug:        packagetypes.GenerateSlug(typeData.name),
			Description: typeData.description,
			IsActive:    true,
			CreatedBy:   adminID,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&packageType).Error; err != nil {
			return nil, fmt.Errorf("failed to create package type %s: %w", packageType.Name, err)
		}

		typeIDs = append(typeIDs, packageType.ID)
		fmt.Printf("    Created package type: %s\n", packageType.Name)
	}

	return typeIDs, nil
}

// SeedPackages creates published sample packages owned by the seeded guide.
func (s *Seeder) SeedPackages(guideID uuid.UUID, typeIDs []uuid.UUID) error {
	fmt.Println("  Seeding packages...")

	packagesData := []struct {
		title        string
		description  string
		destination  string
		costFrom     float64
		currency     string
		durationDays int
		totalSeats   int
		typeIndex    int
		itinerary    []string
		included     []string
		excluded     []string
		tags         []string
	}{
		{
			title:        "Pyrenees Highline Trek",
			description:  "Five days of ridge walking through the Catalan Pyrenees with mountain hut stays.",
			destination:  "Pyrenees, Spain",
			costFrom:     890.0,
			currency:     "EUR",
			durationDays: 5,
			totalSeats:   12,
			typeIndex:    0,
			itinerary:    []string{"Arrival and gear check", "Vall de Nuria ascent", "Ridge traverse", "Summit day", "Descent and farewell dinner"},
			included:     []string{"Mountain hut lodging", "All meals on trail", "Certified mountain guide"},
			excluded:     []string{"Flights", "Personal gear", "Travel insurance"},
			tags:         []string{"trekking", "mountains", "small-group"},
		},
		{
			title:        "Barcelona Gothic Quarter Deep Dive",
			description:  "A two-day walk through two thousand years of Barcelona history, from Roman walls to Gaudi.",
			destination:  "Barcelona, Spain",
			costFrom:     240.0,
			currency:     "EUR",
			durationDays: 2,
			totalSeats:   16,
			typeIndex:    1,
			itinerary:    []string{"Roman Barcino and the Cathedral", "Modernisme and the Eixample"},
			included:     []string{"All museum entries", "Local guide", "Tapas lunch both days"},
			excluded:     []string{"Hotel", "Dinners"},
			tags:         []string{"history", "walking", "architecture"},
		},
		{
			title:        "Priorat Wine Country Weekend",
			description:  "Cellar visits, vertical tastings and vineyard lunches in one of Spain's great wine regions.",
			destination:  "Priorat, Spain",
			costFrom:     410.0,
			currency:     "EUR",
			durationDays: 3,
			totalSeats:   10,
			typeIndex:    2,
			itinerary:    []string{"Arrival and first cellar visit", "Full day vineyard tour", "Market morning and departure"},
			included:     []string{"All tastings", "Two vineyard lunches", "Minibus transport"},
			excluded:     []string{"Accommodation", "Bottles purchased"},
			tags:         []string{"wine", "food", "weekend"},
		},
	}

	for _, pkgData := range packagesData {
		pkg := packages.Package{
			ID:            uuid.New(),
			Title:         pkgData.title,
			Description:   pkgData.description,
			Destination:   pkgData.destination,
			CostFrom:      pkgData.costFrom,
			Currency:      pkgData.currency,
			DurationDays:  pkgData.durationDays,
			TotalSeats:    pkgData.totalSeats,
			BookedSeats:   0,
			Itinerary:     packages.StringList(pkgData.itinerary),
			Included:      packages.StringList(pkgData.included),
			Excluded:      packages.StringList(pkgData.excluded),
			Tags:          packages.StringList(pkgData.tags),
			Images:        packages.StringList{},
			Status:        packages.StatusPublished,
			PackageTypeID: typeIDs[pkgData.typeIndex],
			OwnerGuideID:  guideID,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&pkg).Error; err != nil {
			return fmt.Errorf("failed to create package %s: %w", pkg.Title, err)
		}

		fmt.Printf("    Created package: %s\n", pkg.Title)
	}

	return nil
}

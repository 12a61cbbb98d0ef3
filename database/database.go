package database

import (
	"fmt"
	"log"

	"api/config"
	"api/models"
	"api/scoring"
	"api/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var AdminEmail = "admin@admin.com"
var DefaultPassword = "admin"

// InitDB initializes the database connection, migrates the models and
// populates the database with default values if needed
func InitDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=America/La_Paz",
		config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.Athlete{},
		&models.Weapon{},
		&models.Discipline{},
		&models.Category{},
		&models.Competition{},
		&models.Entrant{},
		&models.Participation{},
		&models.Result{},
		&models.Record{},
	)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	Populate()
}

// Disciplines seeded on first start. The scoring strategy is resolved from
// the name once, here, and stored on the row.
var defaultDisciplines = []struct {
	name         string
	usesLiveAmmo bool
	categories   []string
}{
	{"Silueta Metálica .22", true, []string{"Pistola", "Rifle", "Damas", "Juveniles"}},
	{"FBI 9mm", true, []string{"Abierta", "Producción"}},
	{"Escopeta Fosa", true, []string{"Única"}},
	{"Bench Rest", true, []string{"Rimfire", "Aire"}},
	{"Aire Comprimido 10m", false, []string{"Pistola", "Rifle"}},
}

// Populate populates the database with default values if needed
func Populate() {
	var countUser int64
	DB.Model(&models.User{}).Count(&countUser)
	if countUser == 0 {
		// Create default admin with a hashed password either from the
		// .env file or the DefaultPassword constant
		password := DefaultPassword
		if config.DefaultPassword != "" {
			password = config.DefaultPassword
		}

		password, err := utils.HashPassword(password)
		if err != nil {
			panic(err)
		}

		admin := models.User{
			Email:     AdminEmail,
			Firstname: "Admin",
			Lastname:  "Admin",
			Password:  password,
			Role:      models.RoleAdmin,
		}
		DB.Create(&admin)
		log.Println("Default admin user created")
	}

	// Seed reference disciplines and categories once
	var countDiscipline int64
	DB.Model(&models.Discipline{}).Count(&countDiscipline)
	if countDiscipline == 0 {
		for _, seed := range defaultDisciplines {
			discipline := models.Discipline{
				Name:            seed.name,
				ScoringStrategy: scoring.ResolveStrategy(seed.name),
				UsesLiveAmmo:    seed.usesLiveAmmo,
			}
			if err := DB.Create(&discipline).Error; err != nil {
				log.Println("failed to seed discipline: ", err)
				continue
			}
			for _, categoryName := range seed.categories {
				category := models.Category{Name: categoryName, DisciplineID: discipline.ID}
				if err := DB.Create(&category).Error; err != nil {
					log.Println("failed to seed category: ", err)
				}
			}
			log.Println("Seeded discipline: ", seed.name)
		}
	}
}

package main

import (
	"errors"
	"log"
	"os"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/maithilikosh/api/internal/auth"
	"github.com/maithilikosh/api/internal/config"
	"github.com/maithilikosh/api/internal/database"
	"github.com/maithilikosh/api/internal/model"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	seedDictionaries(db)
	seedParameters(db)
	seedSuperAdmin(db)

	log.Println("Seeding complete")
}

func strPtr(s string) *string {
	return &s
}

// seedDictionaries creates the three standard dictionaries if they don't
// exist yet. Dictionaries are matched by name so reruns are safe.
func seedDictionaries(db *gorm.DB) {
	dictionaries := []model.Dictionary{
		{
			Name:            "MLRC Dictionary",
			NameMaithili:    strPtr("एम.एल.आर.सी. शब्दकोश"),
			Description:     "The main community dictionary of the Maithili Language Research Centre",
			SourceLanguage:  "maithili",
			TargetLanguages: pq.StringArray{"hindi", "english", "sanskrit"},
			IsMain:          true,
			IsActive:        true,
		},
		{
			Name:            "Kalyani Sabdkosh",
			NameMaithili:    strPtr("कल्याणी शब्दकोश"),
			Description:     "Digitised entries from the Kalyani Sabdkosh",
			SourceLanguage:  "maithili",
			TargetLanguages: pq.StringArray{"hindi", "english"},
			IsActive:        true,
		},
		{
			Name:            "Jaikant ji Sabdkosh",
			NameMaithili:    strPtr("जयकान्त जी शब्दकोश"),
			Description:     "Digitised entries from the Jaikant ji Sabdkosh",
			SourceLanguage:  "maithili",
			TargetLanguages: pq.StringArray{"hindi", "english"},
			IsActive:        true,
		},
	}

	for _, dict := range dictionaries {
		var existing model.Dictionary
		err := db.Where("name = ?", dict.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check dictionary %q: %v", dict.Name, err)
		}
		if err := db.Create(&dict).Error; err != nil {
			log.Fatalf("Failed to create dictionary %q: %v", dict.Name, err)
		}
		log.Printf("Created dictionary %q", dict.Name)
	}
}

// seedParameters installs the starting attribute catalog.
func seedParameters(db *gorm.DB) {
	definitions := []model.ParameterDefinition{
		{
			ParameterKey:          "meaning",
			ParameterName:         "Meaning",
			ParameterNameMaithili: strPtr("अर्थ"),
			ParameterType:         model.ParameterTypeMultilingual,
			IsMultilingual:        true,
			SupportedLanguages:    pq.StringArray{"hindi", "english", "sanskrit"},
			IsRequired:            true,
			OrderIndex:            0,
			IsActive:              true,
			CanEdit:               model.CanEditAll,
		},
		{
			ParameterKey:          "example",
			ParameterName:         "Example Sentence",
			ParameterNameMaithili: strPtr("उदाहरण"),
			ParameterType:         model.ParameterTypeMultilingual,
			IsMultilingual:        true,
			SupportedLanguages:    pq.StringArray{"maithili", "hindi", "english"},
			OrderIndex:            1,
			IsActive:              true,
			CanEdit:               model.CanEditAll,
		},
		{
			ParameterKey:          "etymology",
			ParameterName:         "Etymology",
			ParameterNameMaithili: strPtr("व्युत्पत्ति"),
			ParameterType:         model.ParameterTypeText,
			OrderIndex:            2,
			IsActive:              true,
			CanEdit:               model.CanEditAdminOnly,
		},
		{
			ParameterKey:          "usage",
			ParameterName:         "Usage Notes",
			ParameterNameMaithili: strPtr("प्रयोग"),
			ParameterType:         model.ParameterTypeRichText,
			OrderIndex:            3,
			IsActive:              true,
			CanEdit:               model.CanEditAll,
		},
		{
			ParameterKey:          "synonyms",
			ParameterName:         "Synonyms",
			ParameterNameMaithili: strPtr("पर्यायवाची"),
			ParameterType:         model.ParameterTypeArray,
			OrderIndex:            4,
			IsActive:              true,
			CanEdit:               model.CanEditAll,
		},
	}

	for _, def := range definitions {
		var existing model.ParameterDefinition
		err := db.Where("parameter_key = ?", def.ParameterKey).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check parameter %q: %v", def.ParameterKey, err)
		}
		if err := db.Create(&def).Error; err != nil {
			log.Fatalf("Failed to create parameter %q: %v", def.ParameterKey, err)
		}
		log.Printf("Created parameter %q", def.ParameterKey)
	}
}

// seedSuperAdmin creates the bootstrap SUPER_ADMIN account from environment
// variables, skipped when unset or when the account already exists.
func seedSuperAdmin(db *gorm.DB) {
	email := os.Getenv("SUPER_ADMIN_EMAIL")
	password := os.Getenv("SUPER_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("SUPER_ADMIN_EMAIL / SUPER_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Super admin %s already exists", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check super admin: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash super admin password: %v", err)
	}

	user := model.User{
		Email:        email,
		PasswordHash: &hash,
		FullName:     "Super Admin",
		Role:         model.RoleSuperAdmin,
		AuthProvider: model.ProviderEmail,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create super admin: %v", err)
	}
	log.Printf("Created super admin %s", email)
}

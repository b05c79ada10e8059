package database

import (
	"github.com/maithilikosh/api/internal/config"
	"github.com/maithilikosh/api/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Dictionary{},
		&model.ParameterDefinition{},
		&model.DictionaryColumnDefinition{},
		&model.Word{},
		&model.WordParameter{},
		&model.WordWorkflow{},
		&model.WorkAssignment{},
		&model.EditSuggestion{},
		&model.SearchHistory{},
	)
	if err != nil {
		return err
	}

	// Column order is unique per dictionary only among active columns;
	// a partial index keeps replaced layouts around as inactive rows.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_column_defs_dictionary_order ON dictionary_column_definitions(dictionary_id, column_order) WHERE is_active")

	// One multilingual value per (word, key, language) after replace-all updates.
	db.Exec("CREATE INDEX IF NOT EXISTS idx_word_parameters_word_key_lang ON word_parameters(word_id, parameter_key, language)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_words_dictionary_headword ON words(dictionary_id, word_maithili)")

	return nil
}

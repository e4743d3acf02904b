package postgres

import (
	"github.com/dom/scrim-team-builder/internal/domain"
	"github.com/dom/scrim-team-builder/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by the application in dependency order
func Models() []interface{} {
	return []interface{}{
		&domain.Team{},
		&domain.Member{},
		&domain.Generation{},
		&domain.GenerationAssignment{},
		&domain.Game{},
		&domain.GameParticipant{},
		&domain.TeamBuilderDraft{},
	}
}

// Config returns the GORM settings shared by the server and the tests
func Config(logLevel logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}
}

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), Config(logLevel))
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Team:       NewTeamRepository(db),
		Member:     NewMemberRepository(db),
		Generation: NewGenerationRepository(db),
		Game:       NewGameRepository(db),
		Draft:      NewDraftRepository(db),
	}
}

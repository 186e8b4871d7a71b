package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func SetupDatabase(
	dbBackend string,
	dsn string,
	debug bool,
) *gorm.DB {
	var dialector gorm.Dialector

	switch dbBackend {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		panic(fmt.Sprintf("Unsupported/Unimplemented database backend: %s", dbBackend))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	stmt := &gorm.Statement{DB: db}
	if debug {
		for i, table := range Tabels {
			stmt.Parse(table)
			tableName := stmt.Schema.Table
			log.Println(fmt.Sprintf("Dropping tables (%v/%v): %v", i+1, len(Tabels), tableName))
			db.Migrator().DropTable(table)
		}
	}

	for i, table := range Tabels {
		stmt.Parse(table)
		tableName := stmt.Schema.Table
		log.Println(fmt.Sprintf("Migrating table (%v/%v): %v", i+1, len(Tabels), tableName))
		err = db.AutoMigrate(table)
		if err != nil {
			panic(fmt.Sprintf("Failed to migrate table: %v", err))
		}
	}

	return db
}

func SetupTestUsers(DB *gorm.DB) {
	for i, email := range []string{"test1@example.com", "test2@example.com"} {
		user, err := RegisterUser(DB, fmt.Sprintf("Test-User-%v", i+1), email, []byte("password"))
		if err != nil {
			panic(fmt.Sprintf("Failed to create test user: %v", err))
		} else {
			log.Println(fmt.Sprintf("Created test user: '%v'", user.Name))
		}
	}
}

package main

import (
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"

	"github.com/bikeanjo/bikeanjo-api/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("bikeanjo")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	db, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		panic(err)
	}

	if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS bikeanjo`).Error; err != nil {
		panic(err)
	}

	if err := db.Exec("SET search_path TO bikeanjo").Error; err != nil {
		panic(err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(
		&schema.User{},
		&schema.HelpRequest{},
		&schema.HelpReply{},
	).Error; err != nil {
		panic(err)
	}

	if err := db.Model(schema.HelpRequest{}).
		AddForeignKey("requester_id", "users(id)", "RESTRICT", "RESTRICT").
		AddForeignKey("volunteer_id", "users(id)", "RESTRICT", "RESTRICT").Error; err != nil {
		panic(err)
	}

	if err := db.Model(schema.HelpReply{}).
		AddForeignKey("author_id", "users(id)", "RESTRICT", "RESTRICT").
		AddForeignKey("help_request_id", "help_requests(id)", "CASCADE", "CASCADE").Error; err != nil {
		panic(err)
	}

	schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database")).IndexAll()
}

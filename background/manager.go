package background

import (
	"errors"
	"net/http"
	"time"

	"github.com/RichardKnop/machinery/v1"
	"github.com/jinzhu/gorm"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bikeanjo/bikeanjo-api/external/onesignal"
	"github.com/bikeanjo/bikeanjo-api/store"
)

// BackgroundManager is a struct for bikeanjo background manager
type BackgroundManager struct {
	store store.BikeanjoCore

	mongo store.MongoStore

	notification NotificationCenter

	taskServer *machinery.Server

	worker *machinery.Worker
}

func New(ormDB *gorm.DB, mongoClient *mongo.Client, taskServer *machinery.Server) *BackgroundManager {
	mongoStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))
	bikeanjoCore := store.NewBikeanjoStore(ormDB, mongoStore)

	o := onesignal.NewClient(&http.Client{
		Timeout: 15 * time.Second,
	})

	return &BackgroundManager{
		store:        bikeanjoCore,
		mongo:        mongoStore,
		notification: NewOnesignalNotificationCenter(viper.GetString("onesignal.appid"), o),
		taskServer:   taskServer,
	}
}

func (m *BackgroundManager) RegisterTask(name string, taskFunc interface{}) error {
	return m.taskServer.RegisterTask(name, taskFunc)
}

// Run spawn workers to execute background jobs
func (m *BackgroundManager) Run() error {
	if m.worker != nil {
		return errors.New("background worker has started")
	}
	m.worker = m.taskServer.NewWorker("bikeanjo-worker", 5)
	return m.worker.Launch()
}

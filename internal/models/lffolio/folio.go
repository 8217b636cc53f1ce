package lffolio

import (
	"fmt"
	"html/template"
	"littlefolio/internal/gormzerologger"
	"littlefolio/internal/models/lfanalytics"
	"littlefolio/internal/models/lfcaptchas"
	"littlefolio/internal/models/lfconfig"
	"littlefolio/internal/models/lfcontact"
	"littlefolio/internal/models/lfgeo"
	"littlefolio/internal/models/lfmarkdown"
	"littlefolio/internal/models/lfposts"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	instance *Littlefolio
)

// Section est une section du portfolio rendue au démarrage
type Section struct {
	Key   string
	Title string
	HTML  template.HTML
}

type Littlefolio struct {
	Db            *gorm.DB
	Configuration *lfconfig.Config
	Captcha       *lfcaptchas.Captchas
	Posts         *lfposts.Repository
	Lifecycle     *lfposts.Lifecycle
	Analytics     *lfanalytics.Service
	Geo           lfgeo.Resolver
	Sections      []Section
	Version       string
	BuildID       string
}

func GetInstance() *Littlefolio {
	if instance == nil {
		instance = &Littlefolio{}
	}
	return instance
}

func Init(config *lfconfig.Config, version string, buildid string) *Littlefolio {
	instance = &Littlefolio{
		Configuration: config,
		Version:       version,
		BuildID:       buildid,
	}
	instance.initDatabase()
	instance.initSections()
	instance.initCaptcha()
	instance.initAnalytics()
	instance.initGeo()
	return instance
}

func (lf *Littlefolio) initCaptcha() {
	lf.Captcha = lfcaptchas.New(lf.Configuration.Database.Redis.Addr, lf.Configuration.Database.Redis.Db)
}

func (lf *Littlefolio) initDatabase() {
	var err error

	// Créer le logger GORM avec Zerolog
	level := "warn"
	if lf.Configuration.Logger.Level == "debug" || !lf.Configuration.Production {
		level = "trace"
	}
	gormLogger := gormzerologger.New(level)

	var db *gorm.DB
	switch lf.Configuration.Database.Db {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(lf.Configuration.Database.Path), &gorm.Config{
			Logger: gormLogger,
			// Traduire les erreurs driver en erreurs gorm (clé dupliquée...)
			TranslateError: true,
		})
	case "mysql":
		db, err = gorm.Open(mysql.Open(lf.Configuration.Database.Dsn), &gorm.Config{
			Logger:         gormLogger,
			TranslateError: true,
		})
	default:
		err = fmt.Errorf("le type de database doit etre sqlite ou mysql")
	}

	if err != nil {
		log.Fatal(err, "Erreur connexion base de données:")
	}

	err = db.AutoMigrate(&lfposts.Post{}, &lfcontact.Message{})
	if err != nil {
		log.Fatal(err, "Erreur migration:")
	}

	lf.Db = db
	lf.Posts = lfposts.NewRepository(db)
	lf.Lifecycle = lfposts.NewLifecycle(lf.Posts)
}

// initAnalytics ouvre la base analytics (la même que la principale si
// aucune n'est configurée) et démarre le service avec sa rétention
func (lf *Littlefolio) initAnalytics() {
	cfg := lf.Configuration.Analytics
	if !cfg.Enabled {
		return
	}

	db := lf.Db
	var err error
	switch {
	case cfg.Db == "sqlite" && cfg.Path != "":
		db, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
			Logger: gormzerologger.New("warn"),
		})
	case cfg.Db == "mysql" && cfg.Dsn != "":
		db, err = gorm.Open(mysql.Open(cfg.Dsn), &gorm.Config{
			Logger: gormzerologger.New("warn"),
		})
	}
	if err != nil {
		log.Fatal(err, "Erreur connexion base analytics:")
	}

	if err := db.AutoMigrate(&lfanalytics.Event{}); err != nil {
		log.Fatal(err, "Erreur migration analytics:")
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.Db,
		})
	}

	lf.Analytics = lfanalytics.NewService(db, redisClient, cfg.RetentionDays)
}

func (lf *Littlefolio) initGeo() {
	resolver, err := lfgeo.FromConfig(lf.Configuration.Geo)
	if err != nil {
		log.Fatal(err, "Erreur initialisation géolocalisation:")
	}
	lf.Geo = resolver
}

// initSections rend le markdown des sections une seule fois au démarrage
func (lf *Littlefolio) initSections() {
	lf.Sections = make([]Section, 0, len(lf.Configuration.Sections))
	for _, item := range lf.Configuration.Sections {
		if item.Key == "files" || item.Key == "static" {
			log.Fatal("la clé de section doit etre différente de 'files' et de 'static'")
		}
		lf.Sections = append(lf.Sections, Section{
			Key:   item.Key,
			Title: item.Title,
			HTML:  lfmarkdown.RenderSection(item.Body),
		})
	}
}

package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	handlers_analytics "littlefolio/internal/handlers/analytics"
	handlers_auth "littlefolio/internal/handlers/auth"
	handlers_blog "littlefolio/internal/handlers/blog"
	handlers_contact "littlefolio/internal/handlers/contact"
	handlers_public "littlefolio/internal/handlers/public"
	handlers_rss "littlefolio/internal/handlers/rss"
	handlers_upload "littlefolio/internal/handlers/upload"
	"littlefolio/internal/lfmiddleware"
	"littlefolio/internal/models/lfconfig"
	"littlefolio/internal/models/lffolio"
	"littlefolio/internal/models/lflog"
	"littlefolio/internal/models/lfmarkdown"

	"github.com/andskur/argon2-hashing"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

const VERSION string = "0.1.0"

// global instance
var (
	configuration *lfconfig.Config
	BuildID       string
)

func parseCommandLineArgs() (configFile string, shouldCreateExample bool, versionDisplay bool, err error) {
	var config = flag.String("config", "", "Fichier de configuration YAML")
	var example = flag.Bool("example", false, "Créer un fichier de configuration exemple")
	var version = flag.Bool("version", false, "version du produit")
	flag.Parse()

	if *version {
		return "", false, true, nil
	}

	if *example {
		return "", true, false, nil
	}

	if *config == "" {
		return "", false, false, fmt.Errorf("fichier de configuration requis")
	}

	return *config, false, false, nil
}

func initConfiguration() {
	configFile, shouldCreateExample, versionDisplay, err := parseCommandLineArgs()
	if err != nil {
		fmt.Println("Usage:")
		fmt.Println("  littlefolio -config littlefolio.yaml")
		fmt.Println("  littlefolio -example  (pour créer un fichier exemple)")
		fmt.Println("  littlefolio -version  (affiche la version)")
		os.Exit(1)
	}

	if versionDisplay {
		println(VERSION)
		os.Exit(0)
	}

	lfconfig.CreateExample(shouldCreateExample, configFile)

	conf, err := loadAndValidateConfig(configFile)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	configuration = conf
}

func loadAndValidateConfig(configFile string) (*lfconfig.Config, error) {
	conf, err := lfconfig.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("erreur chargement config: %v", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	if conf.Listen.Website == "" {
		conf.Listen.Website = "localhost:8080"
	}
	if strings.HasPrefix(conf.Listen.Website, ":") {
		conf.Listen.Website = "localhost" + conf.Listen.Website
	}

	// Hash du mot de passe en clair au premier lancement, puis réécriture
	// du YAML sans le mot de passe
	if conf.User.Pass != "" {
		if len(conf.User.Pass) < 8 {
			return nil, fmt.Errorf("le mot de passe doit contenir au moins 8 caractères")
		}

		hash, err := argon2.GenerateFromPassword([]byte(conf.User.Pass), argon2.DefaultParams)
		if err != nil {
			return nil, err
		}
		conf.User.Hash = string(hash)
		conf.User.Pass = ""
		err = lfconfig.WriteConfigYaml(configFile, conf)
		if err != nil {
			return nil, err
		}
	}

	return conf, nil
}

func newServer() *gin.Engine {
	if configuration.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	if configuration.TrustedProxies != nil {
		r.SetTrustedProxies(configuration.TrustedProxies)
	}
	if configuration.TrustedPlatform != "" {
		switch configuration.TrustedPlatform {
		case "cloudflare":
			r.TrustedPlatform = "CF-Connecting-IP"
		case "google":
			r.TrustedPlatform = gin.PlatformGoogleAppEngine
		case "flyio":
			r.TrustedPlatform = gin.PlatformFlyIO
		default:
			r.TrustedPlatform = configuration.TrustedPlatform
		}
	}

	return r
}

func setMiddleware(r *gin.Engine) {
	lfmiddleware.InitMiddleware(r, configuration.Production)

	lf := lffolio.GetInstance()
	if lf.Analytics != nil {
		r.Use(lfmiddleware.Analytics(lf.Analytics, lf.Geo, configuration.Production))
	}
}

func setRoutes(r *gin.Engine) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)

	// middleware rate limiter
	middlewareLimiter := lfmiddleware.NewLimiter()

	//default
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page non trouvée"})
	})

	// Routes statiques
	r.Static("/static/", configuration.StaticPath)
	r.GET("/files/*filepath", lfmiddleware.ServeMinifiedStatic(m, configuration.StaticPath))

	// API publiques
	api := r.Group("/api")
	{
		api.GET("/portfolio", handlers_public.PortfolioHandler)
		api.GET("/posts", handlers_public.ListPostsHandler)
		api.GET("/posts/:slug", handlers_public.GetPostHandler)
		api.GET("/search", handlers_public.SearchPostsHandler)
		api.GET("/captcha", handlers_public.CaptchaHandler)
		api.POST("/contact", middlewareLimiter, handlers_contact.ContactHandler)
	}

	// Routes d'authentification
	r.POST("/admin/login", middlewareLimiter, handlers_auth.LoginHandler)
	r.POST("/admin/logout", handlers_auth.LogoutHandler)

	// Routes d'administration protégées
	admin := r.Group("/admin")
	admin.Use(handlers_auth.AuthRequired())
	{
		admin.GET("/posts", handlers_blog.ListPostsHandler)
		admin.GET("/posts/:id", handlers_blog.GetPostHandler)
		admin.POST("/posts", handlers_blog.SaveDraftHandler)
		admin.POST("/posts/publish", handlers_blog.PublishHandler)
		admin.POST("/posts/:id/unpublish", handlers_blog.UnpublishHandler)
		admin.DELETE("/posts/:id", handlers_blog.DeletePostHandler)
		admin.POST("/upload/image", handlers_upload.UploadImageHandler)
		admin.GET("/messages", handlers_contact.ListMessagesHandler)
	}

	// Tableaux de bord analytics, seulement si le service est activé
	lf := lffolio.GetInstance()
	if lf.Analytics != nil {
		ah := handlers_analytics.NewAnalyticsHandler(lf.Analytics)
		admin.GET("/analytics", ah.GetStats30Days)
		admin.GET("/analytics/realtime", ah.GetRealtimeStats)
	}

	// Flux RSS
	r.GET("/rss.xml", handlers_rss.RssHandler)
}

func startServer(r *gin.Engine) {
	log.Info().Msgf("Website démarré sur http://%s", configuration.Listen.Website)
	log.Info().Msgf("Admin: http://%s/admin/login", configuration.Listen.Website)
	r.Run(configuration.Listen.Website)
}

func main() {
	if BuildID == "" {
		BuildID = VERSION
	}

	initConfiguration()
	lflog.InitLogger(configuration.Logger, configuration.Production)
	lfconfig.DisplayConfiguration(configuration, VERSION)
	lfmarkdown.InitMarkdown()
	lffolio.Init(configuration, VERSION, BuildID)

	r := newServer()

	setMiddleware(r)
	setRoutes(r)

	startServer(r)
}

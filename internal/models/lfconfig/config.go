package lfconfig

import (
	"fmt"
	"log/syslog"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TrustedProxies  []string        `yaml:"trustedproxies"`
	TrustedPlatform string          `yaml:"trustedplatform"`
	Database        DatabaseConfig  `yaml:"database"`
	StaticPath      string          `yaml:"staticpath"`
	UploadPath      string          `yaml:"uploadpath"`
	User            UserConfig      `yaml:"user"`
	Production      bool            `yaml:"production"`
	Listen          ListenConfig    `yaml:"listen"`
	Logger          LoggerConfig    `yaml:"logger"`
	Site            SiteConfig      `yaml:"site"`
	Sections        []SectionConfig `yaml:"sections"`
	Analytics       AnalyticsConfig `yaml:"analytics"`
	Geo             GeoConfig       `yaml:"geo"`
}

type AnalyticsConfig struct {
	Enabled       bool        `yaml:"enabled"`
	Db            string      `yaml:"db"`
	Path          string      `yaml:"path"`
	Dsn           string      `yaml:"dsn"`
	Redis         RedisConfig `yaml:"redis"`
	RetentionDays int         `yaml:"retentiondays"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
	Db   int    `yaml:"db"`
}

// SiteConfig décrit l'identité du portfolio
type SiteConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"baseurl"`
}

// SectionConfig est une section du portfolio (bio, projets, parcours...)
// rédigée en markdown, rendue une seule fois au démarrage
type SectionConfig struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// GeoConfig choisit la source de géolocalisation des visiteurs :
// "mmdb" pour une base MaxMind locale, "http" pour un service
// type ipapi, vide pour désactiver
type GeoConfig struct {
	Provider string `yaml:"provider"`
	MmdbPath string `yaml:"mmdbpath"`
	Endpoint string `yaml:"endpoint"`
}

type LoggerConfig struct {
	Level  string             `yaml:"level"`
	File   LoggerFileConfig   `yaml:"file"`
	Syslog LoggerSyslogConfig `yaml:"syslog"`
}

type LoggerFileConfig struct {
	Enable     bool   `yaml:"enable"`
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"maxsize"`
	MaxBackups int    `yaml:"maxbackups"`
	MaxAge     int    `yaml:"maxage"`
	Compress   bool   `yaml:"compress"`
}

type LoggerSyslogConfig struct {
	Enable   bool            `yaml:"enable"`
	Protocol string          `yaml:"protocol"`
	Address  string          `yaml:"address"`
	Tag      string          `yaml:"tag"`
	Priority syslog.Priority `yaml:"priority"`
}

type ListenConfig struct {
	Website string `yaml:"website"`
}

type UserConfig struct {
	Login string `yaml:"login"`
	Pass  string `yaml:"pass"`
	Hash  string `yaml:"hash"`
}

type DatabaseConfig struct {
	Redis RedisConfig `yaml:"redis"`
	Db    string      `yaml:"db"`
	Path  string      `yaml:"path"`
	Dsn   string      `yaml:"dsn"`
}

func CreateExampleConfig(filename string) (string, error) {
	example := &Config{
		Database: DatabaseConfig{
			Db:   "sqlite",
			Path: "./littlefolio.db",
		},
		Analytics: AnalyticsConfig{
			Enabled:       false,
			RetentionDays: 30,
		},
		User: UserConfig{
			Login: "admin",
			Pass:  "admin1234",
		},
		StaticPath: "./static",
		UploadPath: "./uploads",
		Production: false,
		Logger: LoggerConfig{
			Level: "info",
			File: LoggerFileConfig{
				Enable: false,
			},
			Syslog: LoggerSyslogConfig{
				Enable: false,
			},
		},
		Listen: ListenConfig{
			Website: "0.0.0.0:8080",
		},
		Site: SiteConfig{
			Name:        "Mon Portfolio",
			Description: "Portfolio et blog propulsés par littlefolio",
			BaseURL:     "http://localhost:8080",
		},
		Sections: []SectionConfig{
			{Key: "bio", Title: "À propos", Body: "Développeur **full-stack**, amateur de systèmes simples."},
			{Key: "projects", Title: "Projets", Body: "- littlefolio\n- divers outils internes"},
		},
	}

	if filename == "/etc/" {
		example.Listen.Website = "127.0.0.1:8000"
		example.Production = true
		example.Database.Path = "/var/lib/littlefolio/sqlite.db"
		example.StaticPath = "/var/lib/littlefolio/static"
		example.UploadPath = "/var/lib/littlefolio/uploads"
		example.Logger.File = LoggerFileConfig{
			Enable:     true,
			Path:       "/var/log/littlefolio/littlefolio.log",
			MaxSize:    100,
			MaxBackups: 30,
			MaxAge:     7,
			Compress:   true,
		}
		filename = "/etc/littlefolio/config.yaml"
	}

	return filename, WriteConfigYaml(filename, example)
}

func WriteConfigYaml(filename string, conf *Config) error {
	data, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// Charger la configuration YAML
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("impossible de lire le fichier %s: %v", filename, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("erreur de parsing YAML: %v", err)
	}

	if config.Analytics.RetentionDays <= 0 {
		config.Analytics.RetentionDays = 30
	}

	return &config, nil
}

// Validate vérifie la cohérence de la configuration chargée
func (c *Config) Validate() error {
	if c.Database.Db != "sqlite" && c.Database.Db != "mysql" {
		return fmt.Errorf("database.db doit être sqlite ou mysql, reçu %q", c.Database.Db)
	}
	if c.Database.Db == "sqlite" && c.Database.Path == "" {
		return fmt.Errorf("database.path est requis en sqlite")
	}
	if c.Database.Db == "mysql" && c.Database.Dsn == "" {
		return fmt.Errorf("database.dsn est requis en mysql")
	}

	switch c.Geo.Provider {
	case "", "mmdb", "http":
	default:
		return fmt.Errorf("geo.provider doit être mmdb, http ou vide, reçu %q", c.Geo.Provider)
	}
	if c.Geo.Provider == "mmdb" && c.Geo.MmdbPath == "" {
		return fmt.Errorf("geo.mmdbpath est requis avec le provider mmdb")
	}
	if c.Geo.Provider == "http" && c.Geo.Endpoint == "" {
		return fmt.Errorf("geo.endpoint est requis avec le provider http")
	}

	return nil
}

func CreateExample(shouldCreateExample bool, configFile string) {
	if shouldCreateExample {
		if err := handleExampleCreation(configFile); err != nil {
			fmt.Printf("❌ %v\n", err)
		}
		os.Exit(1)
	}

	_, err := os.Stat(configFile)
	if err != nil && os.IsNotExist(err) {
		if err := handleExampleCreation(configFile); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

	}
}

func handleExampleCreation(filename string) error {
	if filename == "" {
		filename = "littlefolio.yaml"
	}
	filename, err := CreateExampleConfig(filename)
	if err != nil {
		return fmt.Errorf("erreur création exemple: %v", err)
	}

	fmt.Printf("✅ Fichier exemple créé: %s", filename)
	fmt.Println("⚠️  Pass sera automatiquement hash en argon2 dans Hash au premier lancement")
	return nil
}

func DisplayConfiguration(config *Config, version string) {
	logPrintf("Littlefolio version %s", version)

	logPrintf("Mode Production %v", config.Production)
	logPrintf("Administrateur login %s", config.User.Login)

	logPrintf("Database")
	if config.Database.Db == "sqlite" {
		logPrintf("  • Type sqlite")
		logPrintf("  • Path %s", config.Database.Path)
	}
	if config.Database.Db == "mysql" {
		logPrintf("  • Type mysql")
		logPrintf("  • DSN %s", config.Database.Dsn)
	}
	if config.Database.Redis.Addr != "" {
		logPrintf("  • Cache redis %s", config.Database.Redis.Addr)
	}

	if config.Analytics.Enabled {
		logPrintf("  • Analytics activé")
		if config.Analytics.Db == "sqlite" && config.Analytics.Path != "" {
			logPrintf("  	• Sqlite path %s", config.Analytics.Path)
		} else if config.Analytics.Db == "mysql" && config.Analytics.Dsn != "" {
			logPrintf("  	• mysql dsn %s", config.Analytics.Dsn)
		} else {
			logPrintf("  	• La base est la même que la principale")
		}
		logPrintf("  	• Rétention %d jours", config.Analytics.RetentionDays)
		if config.Analytics.Redis.Addr != "" {
			logPrintf("  	• Redis addr %s", config.Analytics.Redis.Addr)
		}
	} else {
		logPrintf("  • Analytics désactivé")
	}

	if config.Geo.Provider != "" {
		logPrintf("Géolocalisation via %s", config.Geo.Provider)
	} else {
		logPrintf("Géolocalisation désactivée")
	}

	// Logger
	logPrintf("Logger en level %s", config.Logger.Level)
	if config.Logger.File.Enable {
		logPrintf("  Log en fichier activé")
		logPrintf("  • Path %s", config.Logger.File.Path)
		logPrintf("  • Max size %d", config.Logger.File.MaxSize)
		logPrintf("  • Max age %d", config.Logger.File.MaxAge)
		logPrintf("  • Max backup %d", config.Logger.File.MaxBackups)
		logPrintf("  • Compression %v", config.Logger.File.Compress)
	} else {
		logPrintf("  Log en fichier désactivé")
	}
	if config.Logger.Syslog.Enable {
		logPrintf("  Log en syslog activé")
		logPrintf("  • Protocol %s", config.Logger.Syslog.Protocol)
		logPrintf("  • Address %s", config.Logger.Syslog.Address)
		logPrintf("  • Tag %s", config.Logger.Syslog.Tag)
		logPrintf("  • Priority %v", config.Logger.Syslog.Priority)
	} else {
		logPrintf("  Log en syslog désactivé")
	}

	logPrintf("Site \"%s\" sur %s", config.Site.Name, config.Site.BaseURL)
	for _, section := range config.Sections {
		logPrintf("  • Section \"%s\" (%s)", section.Title, section.Key)
	}
}

// Info logue avec printf
func logPrintf(format string, a ...any) {
	log.Info().Msg(fmt.Sprintf(format, a...))
}

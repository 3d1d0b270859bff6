package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

const envPrefix = "PENNYWISE_"

type Application struct {
	Server   Server   `koanf:"server"`
	Database Database `koanf:"db"`
	Entry    Entry    `koanf:"entry"`
	Sheets   Sheets   `koanf:"sheets"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Entry holds the suggestion lists offered by the entry forms. Values are
// suggestions only, the store keeps whatever text it is given.
type Entry struct {
	Persons           []string `koanf:"persons"`
	DefaultPerson     string   `koanf:"defaultperson"`
	ExpenseCategories []string `koanf:"expensecategories"`
	RevenueSources    []string `koanf:"revenuesources"`
}

type Sheets struct {
	SpreadsheetId      string `koanf:"spreadsheetid"`
	ServiceAccountFile string `koanf:"serviceaccountfile"`
	OAuthClientFile    string `koanf:"oauthclientfile"`
	OAuthTokenFile     string `koanf:"oauthtokenfile"`
}

func (s Sheets) Enabled() bool {
	return s.SpreadsheetId != ""
}

func defaults() Application {
	return Application{
		Server: Server{
			Addr: ":8181",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "pennywise",
			Pass:   "",
			Name:   "pennywise",
			Schema: "pennywise",
		},
		Entry: Entry{
			Persons:       []string{"Yateesh", "Prasanna"},
			DefaultPerson: "Yateesh",
			ExpenseCategories: []string{
				"Groceries", "Rent", "Transport", "Utilities", "Dining Out",
				"Entertainment", "Health", "Shopping", "Other",
			},
			RevenueSources: []string{"Salary", "Bonus", "Gift", "Investment", "Other"},
		},
	}
}

// Load reads the configuration from struct defaults, then the YAML file at
// path, then PENNYWISE_ environment variables. A .env file in the working
// directory is loaded into the environment first when present.
func Load(path string) (Application, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("could not load .env file: %v", err)
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			// list values are comma separated, e.g. PENNYWISE_ENTRY_PERSONS=Ann,Bob
			if strings.Contains(v, ",") {
				return k, strings.Split(v, ",")
			}
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if app.Entry.DefaultPerson == "" && len(app.Entry.Persons) > 0 {
		app.Entry.DefaultPerson = app.Entry.Persons[0]
	}

	return app, nil
}

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug                        bool   `envconfig:"debug"`
	Port                         int    `envconfig:"port" default:"8080"`
	Env                          string `envconfig:"env" default:"dev"`
	AppName                      string `envconfig:"app_name" default:"cleancity"`
	PostgresHost                 string `envconfig:"postgres_host"`
	PostgresUser                 string `envconfig:"postgres_user"`
	PostgresDB                   string `envconfig:"postgres_db"`
	PostgresPort                 int    `envconfig:"postgres_port" default:"5432"`
	PostgresPassword             string `envconfig:"postgres_password"`
	JWTSecret                    string `envconfig:"jwt_secret"`
	MailgunApiKey                string `envconfig:"mg_public_api_key"`
	MgDomain                     string `envconfig:"mg_domain"`
	MgEmailFrom                  string `envconfig:"email_from"`
	GoogleApplicationCredentials string `envconfig:"google_application_credentials"`
	AwsRegion                    string `envconfig:"aws_region"`
	AwsAccessKeyID               string `envconfig:"aws_access_key_id"`
	AwsSecretAccessKey           string `envconfig:"aws_secret_access_key"`
	EvidenceBucket               string `envconfig:"evidence_bucket"`
	LokiURL                      string `envconfig:"loki_url"`
	AccessControlAllowOrigin     string `envconfig:"access_control_allow_origin"`

	// Lifecycle tuning
	EscalationThreshold int    `envconfig:"escalation_threshold" default:"5"`
	DistanceStrategy    string `envconfig:"distance_strategy" default:"euclidean"`
	VotesPerMinute      uint   `envconfig:"votes_per_minute" default:"30"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("citizenx", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

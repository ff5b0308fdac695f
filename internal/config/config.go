package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config concentra toda a configuração por ambiente.
// Carregada uma vez no boot; .env é opcional (dev local).
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	Migrations  string `env:"MIGRATIONS_DIR" envDefault:"file://db/migrations"`

	// Supabase Auth: o cookie de sessão é um JWT HS256 assinado com esse segredo.
	SupabaseJWTSecret string `env:"SUPABASE_JWT_SECRET,required"`

	// ActiveCampaign
	ACBaseURL       string `env:"AC_BASE_URL,required"`
	ACToken         string `env:"AC_API_TOKEN,required"`
	ACWebhookSecret string `env:"AC_WEBHOOK_SECRET"` // vazio = não valida

	// Nuvemshop
	NSBaseURL       string `env:"NUVEMSHOP_BASE_URL" envDefault:"https://api.nuvemshop.com.br"`
	NSStoreID       string `env:"NUVEMSHOP_STORE_ID,required"`
	NSToken         string `env:"NUVEMSHOP_ACCESS_TOKEN,required"`
	NSWebhookSecret string `env:"NUVEMSHOP_WEBHOOK_SECRET"`

	// Sync de deals
	SyncWindowDays  int `env:"SYNC_WINDOW_DAYS" envDefault:"90"`
	SyncConcurrency int `env:"SYNC_CONCURRENCY" envDefault:"3"`
	SyncRPS         int `env:"SYNC_RPS" envDefault:"5"`

	// RabbitMQ (fan-out de notificações)
	RabbitUser string `env:"RABBITMQ_USER" envDefault:"guest"`
	RabbitPass string `env:"RABBITMQ_PASS" envDefault:"guest"`
	RabbitHost string `env:"RABBITMQ_HOST" envDefault:"localhost"`
	RabbitPort string `env:"RABBITMQ_PORT" envDefault:"5672"`

	// SMTP (espelho de notificações por email, opcional)
	MailHost string `env:"MAIL_HOST"`
	MailPort int    `env:"MAIL_PORT" envDefault:"587"`
	MailUser string `env:"MAIL_USER"`
	MailPass string `env:"MAIL_PASS"`
	MailFrom string `env:"MAIL_FROM" envDefault:"nao-responda@hudlab.com.br"`
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

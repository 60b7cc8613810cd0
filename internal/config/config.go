package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string   `env:"PORT" envDefault:"3000"`
		ReadTimeout     int      `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int      `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int      `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int      `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
		AllowedOrigins  []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN            string `env:"DSN,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	JWT struct {
		Secret     string `env:"SECRET,required"` // 由外部认证服务签发，这里只做校验
		CookieName string `env:"COOKIE_NAME" envDefault:"__restaurant_ops_token"`
	} `envPrefix:"JWT_"`
	Compliance struct {
		RulesFile  string `env:"RULES_FILE"` // 为空时使用内置的法国 HCR 规则表
		CacheTTL   int    `env:"CACHE_TTL" envDefault:"300"`
		AlertQueue string `env:"ALERT_QUEUE" envDefault:"compliance_alerts"`
	} `envPrefix:"COMPLIANCE_"`
	Seed struct {
		EmployeesPerRestaurant int `env:"EMPLOYEES_PER_RESTAURANT" envDefault:"8"`
	} `envPrefix:"SEED_"`
	Email struct {
		TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"./templates"`
		SMTP         struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD"`
		DB                  int    `env:"DB" envDefault:"0"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
}

func LoadConfig() (*Config, error) {
	// 本地开发时可以把环境变量放在 .env 中，已经存在的环境变量优先
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

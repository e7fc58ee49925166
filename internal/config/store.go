package config

import "time"

type Store struct {
	Driver         string        `env:"STORE_DRIVER" envDefault:"memory"`
	RequestTimeout time.Duration `env:"STORE_REQUEST_TIMEOUT" envDefault:"10s"`
	Migrate        bool          `env:"STORE_MIGRATE" envDefault:"true"`
}

type MasterData struct {
	BaseURL   string `env:"MASTERDATA_BASE_URL"`
	Entity    string `env:"MASTERDATA_ENTITY" envDefault:"CF"`
	IDField   string `env:"MASTERDATA_ID_FIELD" envDefault:"id"`
	TextField string `env:"MASTERDATA_TEXT_FIELD" envDefault:"CookieFortune"`
	AppKey    string `env:"MASTERDATA_APP_KEY" json:"-"`
	AppToken  string `env:"MASTERDATA_APP_TOKEN" json:"-"`
}

// Postgres — пул для STORE_DRIVER=postgres. DSN в логи не попадает.
type Postgres struct {
	DSN             string        `env:"PG_DSN" json:"-"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"5"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"5m"`
}

// SQLite держит одно соединение: драйвер не любит параллельных писателей.
type SQLite struct {
	DSN string `env:"SQLITE_DSN" envDefault:"file:fortune_cookie.db?_pragma=busy_timeout(5000)"`
}

type Redis struct {
	Address            string `env:"REDIS_ADDRESS"`
	Username           string `env:"REDIS_USERNAME"`
	Password           string `env:"REDIS_PASSWORD" json:"-"`
	DatabaseNumber     int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize           int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConnections int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	MaxIdleConnections int    `env:"REDIS_MAX_IDLE_CONNS" envDefault:"5"`
	QueueConcurrency   int    `env:"REDIS_QUEUE_CONCURRENCY" envDefault:"2"`
}

// Enabled: Redis нужен и для драйвера redis, и для очереди уведомлений.
func (r Redis) Enabled() bool {
	return r.Address != ""
}

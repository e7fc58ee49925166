package config

import "time"

type App struct {
	Name      string `env:"APP_NAME" envDefault:"fortune-cookie"`
	Version   string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

type HTTP struct {
	ListenAddress     string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogFieldMaxLen    int           `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"4096"`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

type Widget struct {
	SampleSize int `env:"WIDGET_SAMPLE_SIZE" envDefault:"10"`
}

// MaxAdminPageSize: страница бота вместе с кнопками должна влезть в одно
// сообщение Telegram (4096 символов, до 100 кнопок).
const MaxAdminPageSize = 20

// Admin. Бот всегда листает список страницами по PageSize фраз.
type Admin struct {
	PageSize    int     `env:"ADMIN_PAGE_SIZE" envDefault:"10"`
	APIToken    string  `env:"ADMIN_API_TOKEN" json:"-"`
	TelegramIDs []int64 `env:"ADMIN_TELEGRAM_IDS" envSeparator:","`
}

type Bot struct {
	Token        string        `env:"BOT_TOKEN" json:"-"`
	NotifyChatID int64         `env:"BOT_NOTIFY_CHAT_ID"`
	SessionTTL   time.Duration `env:"BOT_SESSION_TTL" envDefault:"30m"`
}

func (b Bot) Enabled() bool {
	return b.Token != ""
}

package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

type Config struct {
	Bot     *BotCfg
	Http    *HTTPConfig
	Store   *StoreCfg
	Session *SessionCfg
	Gateway *GatewayCfg
	Redis   *RedisCfg // nil, если Redis не настроен
	Kafka   *KafkaCfg // nil, если Kafka не настроена
	Minio   *MinIOCfg // nil, если MinIO не настроено
}

type BotCfg struct {
	Token    string  // Токен бота для чат-шлюза
	AdminIDs []int64 // Операторы: каталог, рассылка, подтверждение заказов
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StoreCfg struct {
	Dir string // Каталог с JSON-файлами хранилищ
}

type SessionCfg struct {
	TTL time.Duration // Время жизни брошенной сессии
}

type GatewayCfg struct {
	URL     string // Базовый адрес чат-шлюза для исходящих отправок
	Timeout time.Duration
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
}

type KafkaCfg struct {
	Brokers []string
	Topic   string
}

type MinIOCfg struct {
	Endpoint     string
	BucketName   string
	RootUser     string
	RootPassword string
	UseSSL       bool
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// .env подхватывается, если лежит рядом; его отсутствие — не ошибка.
func Load(log logger.Logger) (*Config, error) {
	_ = godotenv.Load()

	bot, err := loadBotCfg(log)
	if err != nil {
		return nil, e.Wrap("bot config", err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap("http config", err)
	}

	session, err := loadSessionCfg(log)
	if err != nil {
		return nil, e.Wrap("session config", err)
	}

	gateway, err := loadGatewayCfg(log)
	if err != nil {
		return nil, e.Wrap("gateway config", err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap("redis config", err)
	}

	minio, err := loadMinIOCfg()
	if err != nil {
		return nil, e.Wrap("minio config", err)
	}

	return &Config{
		Bot:     bot,
		Http:    http,
		Store:   loadStoreCfg(),
		Session: session,
		Gateway: gateway,
		Redis:   redis,
		Kafka:   loadKafkaCfg(),
		Minio:   minio,
	}, nil
}

func loadBotCfg(log logger.Logger) (*BotCfg, error) {
	token := getEnv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is required")
	}

	var adminIDs []int64
	if raw := getEnv("ADMIN_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, e.Wrap("ADMIN_IDS", e.ErrIncorrectEnvVariable)
			}
			adminIDs = append(adminIDs, id)
		}
	}

	if len(adminIDs) == 0 {
		// Бот работоспособен и без операторов, но об этом стоит знать.
		log.Warnf("ADMIN_IDS is empty: operator features are disabled")
	}

	return &BotCfg{Token: token, AdminIDs: adminIDs}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadStoreCfg() *StoreCfg {
	const defaultDir = "data"

	return &StoreCfg{Dir: getEnvOrDefault("DATA_DIR", defaultDir)}
}

func loadSessionCfg(log logger.Logger) (*SessionCfg, error) {
	// Сутки на брошенную сессию: покупатель, не приславший чек,
	// возвращается в Idle, а не паркуется навсегда.
	const defaultTTL = 24 * time.Hour

	ttl, err := parseDurationEnv("SESSION_TTL", defaultTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_TTL")
		return nil, err
	}

	return &SessionCfg{TTL: ttl}, nil
}

func loadGatewayCfg(log logger.Logger) (*GatewayCfg, error) {
	const defaultTimeout = 10 * time.Second

	url := getEnv("CHATGW_URL")
	if url == "" {
		return nil, fmt.Errorf("CHATGW_URL environment variable is required")
	}

	timeout, err := parseDurationEnv("CHATGW_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid CHATGW_TIMEOUT")
		return nil, err
	}

	return &GatewayCfg{URL: strings.TrimRight(url, "/"), Timeout: timeout}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultDB          = 0
		defaultMaxRetries  = 3
		defaultDialTimeout = 5 * time.Second
		defaultTimeout     = 3 * time.Second
	)

	addr := getEnv("REDIS_ADDR")
	if addr == "" {
		return nil, nil // Redis не настроен — сессии живут в памяти
	}

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("REDIS_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid REDIS_MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("REDIS_DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DIAL_TIMEOUT")
		return nil, err
	}

	timeout, err := parseDurationEnv("REDIS_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_TIMEOUT")
		return nil, err
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
	}, nil
}

func loadKafkaCfg() *KafkaCfg {
	const defaultTopic = "shop-bot.analytics"

	brokersStr := getEnv("KAFKA_BROKERS")
	if brokersStr == "" {
		return nil // Kafka не настроена — события остаются только в журнале
	}

	return &KafkaCfg{
		Brokers: strings.Split(brokersStr, ","),
		Topic:   getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
	}
}

func loadMinIOCfg() (*MinIOCfg, error) {
	const defaultBucket = "receipts"

	endpoint := getEnv("MINIO_ENDPOINT")
	if endpoint == "" {
		return nil, nil // MinIO не настроено — чеки не архивируются
	}

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", "false"))
	if err != nil {
		return nil, e.Wrap("MINIO_USE_SSL", e.ErrIncorrectEnvVariable)
	}

	return &MinIOCfg{
		Endpoint:     endpoint,
		BucketName:   getEnvOrDefault("BUCKET_NAME", defaultBucket),
		RootUser:     getEnv("MINIO_ROOT_USER"),
		RootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		UseSSL:       useSSL,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"giftdrip/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "GIFTDRIP_LOG_LEVEL")
	viper.BindEnv("database.url", "GIFTDRIP_DATABASE_URL")
	viper.BindEnv("gift.slug", "GIFTDRIP_GIFT_SLUG")
	viper.BindEnv("gift.startDate", "GIFTDRIP_GIFT_START_DATE")
	viper.BindEnv("push.vapidSubject", "GIFTDRIP_VAPID_SUBJECT")
	viper.BindEnv("push.vapidPublicKey", "GIFTDRIP_VAPID_PUBLIC_KEY")
	viper.BindEnv("push.vapidPrivateKey", "GIFTDRIP_VAPID_PRIVATE_KEY")
	viper.BindEnv("push.dispatchSecret", "GIFTDRIP_DISPATCH_SECRET")
	viper.BindEnv("cache.enabled", "GIFTDRIP_CACHE_ENABLED")
	viper.BindEnv("cache.size", "GIFTDRIP_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "GiftDrip"
	conf.Version = os.Getenv("GIFTDRIP_VERSION")
	if conf.Version == "" {
		conf.Version = "local-dev"
	}
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
